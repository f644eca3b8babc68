package redis

import (
	"fmt"

	"github.com/lexroom/lexroom/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "lexroom"

// profileKey returns the Redis key for a Profile
func profileKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, id)
}

// accountKey returns the Redis key for an Account
func accountKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomIndexKey returns the Redis key for the SET of all room keys
func roomIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}

// movesKey returns the Redis key for a room's move history LIST
func movesKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:moves:%s", keyPrefix, roomID)
}

// dictionaryKey returns the Redis key for the dictionary word SET
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
