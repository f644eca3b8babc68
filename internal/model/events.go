package model

import "time"

// EventType identifies the type of room notification
type EventType string

const (
	EventRoomJoined    EventType = "room_joined"
	EventRoomUpdated   EventType = "room_updated"
	EventPlayerJoined  EventType = "player_joined"
	EventPlayerLeft    EventType = "player_left"
	EventTurnChanged   EventType = "turn_changed"
	EventMoveMade      EventType = "move_made"
	EventGameFinished  EventType = "game_finished"
	EventErrorOccurred EventType = "error_occurred"
)

// Event is the base structure for all room notifications. Unlike the rest
// of the model it carries JSON tags: events are serialized straight onto
// the SSE stream, so the keys are part of the client-facing API.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	RoomID    RoomID    `json:"room_id"`
	PlayerID  PlayerID  `json:"player_id,omitempty"` // The player who triggered or is affected
	Payload   any       `json:"payload,omitempty"`   // Type-specific data
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	PlayerID    PlayerID `json:"player_id"`
	Name        string   `json:"name"`
	AsSpectator bool     `json:"as_spectator"`
}

// PlayerLeftPayload contains data for player left / disconnected events
type PlayerLeftPayload struct {
	PlayerID     PlayerID `json:"player_id"`
	Name         string   `json:"name"`
	Disconnected bool     `json:"disconnected"` // true for a transport drop, false for a seat release
}

// TurnChangedPayload contains data for turn changed events
type TurnChangedPayload struct {
	CurrentPlayerIndex int      `json:"current_player_index"`
	CurrentPlayerID    PlayerID `json:"current_player_id"`
}

// MoveMadePayload contains data for move made events
type MoveMadePayload struct {
	PlayerID PlayerID `json:"player_id"`
	Type     MoveType `json:"type"`
	Words    []string `json:"words"`
	Score    int      `json:"score"`
}

// GameFinishedPayload contains data for game finished events
type GameFinishedPayload struct {
	FinalScores map[PlayerID]int `json:"final_scores"`
	Winner      PlayerID         `json:"winner,omitempty"` // Empty if tie
}
