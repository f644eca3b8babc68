package model

import "time"

// RoomID uniquely identifies a game room.
type RoomID string

// PlayerID uniquely identifies a player across the system.
type PlayerID string

// RoomStatus represents the lifecycle phase of a room.
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"  // Fewer than 2 players joined
	RoomStatusActive   RoomStatus = "active"   // Turns in progress
	RoomStatusFinished RoomStatus = "finished" // Terminal
)

// Limits on the number of seats in a room.
const (
	MinRoomPlayers = 2
	MaxRoomPlayers = 4
)

// ScorelessTurnLimit ends the game after this many consecutive turns without
// a tile placement (passes and exchanges).
const ScorelessTurnLimit = 6

// Player is a seated game participant. Identity, rack and score survive a
// transport disconnect; only eviction removes them.
type Player struct {
	ID          PlayerID
	Name        string
	Score       int
	Rack        *Rack
	IsBot       bool
	BotStrategy string
	IsConnected bool
	LastSeen    time.Time
}

// Spectator is a read-only room observer; it never occupies a turn slot.
type Spectator struct {
	ID       PlayerID
	Name     string
	JoinedAt time.Time
}

// Room is one game's complete live state: seats, board, bag and turn
// position. It is owned by the session coordinator and mutated only inside
// the per-room serialized command section.
type Room struct {
	ID                 RoomID
	Players            []*Player
	CurrentPlayerIndex int
	Board              *Board
	Bag                *Bag
	Status             RoomStatus
	MaxPlayers         int
	Spectators         []*Spectator
	ScorelessTurns     int
	FinalScores        map[PlayerID]int // Set when Status becomes finished
	CreatedAt          time.Time
	LastActivity       time.Time
}

// CurrentPlayer returns the player whose turn it is, or nil before the room
// has any players.
func (r *Room) CurrentPlayer() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	return r.Players[r.CurrentPlayerIndex]
}

// PlayerByID returns the seated player with the given ID, or nil.
func (r *Room) PlayerByID(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// SpectatorByID returns the spectator with the given ID, or nil.
func (r *Room) SpectatorByID(id PlayerID) *Spectator {
	for _, s := range r.Spectators {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// IsFull returns true when every seat is taken.
func (r *Room) IsFull() bool {
	return len(r.Players) >= r.MaxPlayers
}

// AdvanceTurn moves the turn to the next seat, cycling 0..n-1.
func (r *Room) AdvanceTurn() {
	if len(r.Players) == 0 {
		return
	}
	r.CurrentPlayerIndex = (r.CurrentPlayerIndex + 1) % len(r.Players)
}

// ConnectedPlayers returns how many seated players are currently attached.
func (r *Room) ConnectedPlayers() int {
	count := 0
	for _, p := range r.Players {
		if p.IsConnected {
			count++
		}
	}
	return count
}

// TileConservation returns bag + racks + board tile counts; it must always
// equal TotalTiles for a room whose game has started.
func (r *Room) TileConservation() int {
	total := r.Bag.Count() + r.Board.TileCount()
	for _, p := range r.Players {
		total += p.Rack.Count()
	}
	return total
}

// RoomListing is the lightweight lobby-browser view of a room.
type RoomListing struct {
	ID          RoomID
	PlayerCount int
	MaxPlayers  int
	Status      RoomStatus
}

// Listing returns the room's lobby-browser snapshot.
func (r *Room) Listing() RoomListing {
	return RoomListing{
		ID:          r.ID,
		PlayerCount: len(r.Players),
		MaxPlayers:  r.MaxPlayers,
		Status:      r.Status,
	}
}
