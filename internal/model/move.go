package model

import "time"

// Placement is one proposed tile position within a single uncommitted move.
// For a blank, Tile.IsBlank is true and Tile.Letter carries the letter the
// blank represents.
type Placement struct {
	Row  int
	Col  int
	Tile Tile
}

// WordPlay is one word formed by a committed or candidate move.
type WordPlay struct {
	Word       string
	Start      Position
	Horizontal bool
	Positions  []Position
	Score      int
}

// MoveResult is the outcome of validating and scoring a tile placement.
type MoveResult struct {
	Words        []WordPlay
	Score        int
	UsedFullRack bool
	Board        *Board // The board with the move applied, not yet committed
}

// MoveType distinguishes the ways a turn can be consumed.
type MoveType string

const (
	MoveTypePlace    MoveType = "place"
	MoveTypePass     MoveType = "pass"
	MoveTypeExchange MoveType = "exchange"
)

// MoveRecord is the per-move history entry handed to the persistence
// collaborator after a command commits. The coordinator never blocks on it.
type MoveRecord struct {
	ID        string
	RoomID    RoomID
	PlayerID  PlayerID
	Type      MoveType
	Words     []string
	Score     int
	Timestamp time.Time
}
