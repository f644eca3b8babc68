package model

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrRoomNotWaiting = errors.New("room is not accepting players")
	ErrRoomNotActive  = errors.New("room has no active game")
	ErrAlreadyInRoom  = errors.New("player is already in room")
	ErrNotInRoom      = errors.New("player is not in room")
	ErrNotYourTurn    = errors.New("not this player's turn")
	ErrNotHost        = errors.New("player is not the room host")

	// Board errors
	ErrOutOfBounds  = errors.New("position is out of bounds")
	ErrCellOccupied = errors.New("cell is already occupied")

	// Placement geometry errors
	ErrEmptyPlacement   = errors.New("no tiles placed")
	ErrPlacementNotLine = errors.New("tiles must lie in a single row or column")
	ErrPlacementGap     = errors.New("tiles must form one contiguous run")
	ErrDisconnectedMove = errors.New("tiles must connect to existing tiles")
	ErrFirstMoveCenter  = errors.New("first move must cover the center cell")
	ErrNoWordFormed     = errors.New("placement forms no word")

	// Tile supply errors
	ErrTileNotInRack       = errors.New("tile is not in rack")
	ErrNotEnoughTilesInBag = errors.New("not enough tiles in bag")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)

// InvalidWordsError reports every word formed by a move that the dictionary
// rejected. Partial validity is not a thing; the whole move is refused.
type InvalidWordsError struct {
	Words []string
}

func (e *InvalidWordsError) Error() string {
	return fmt.Sprintf("invalid words: %s", strings.Join(e.Words, ", "))
}
