package events

import (
	"encoding/json"
	"log/slog"

	"github.com/lexroom/lexroom/internal/dependencies/clock"
	"github.com/lexroom/lexroom/internal/model"
)

// Broadcaster publishes room events to SSE clients as JSON
type Broadcaster struct {
	hubManager *HubManager
	clock      clock.Clock
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, clk clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		clock:      clk,
		logger:     logger.With(slog.String("component", "broadcaster")),
	}
}

// Publish stamps the event and sends it to every client watching the room.
// A room nobody is watching has no hub; the event is silently discarded.
func (b *Broadcaster) Publish(roomID model.RoomID, event model.Event) {
	hub := b.hubManager.GetHub(roomID)
	if hub == nil {
		return
	}

	event.RoomID = roomID
	event.Timestamp = b.clock.Now()

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("failed to marshal event",
			slog.String("room", string(roomID)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}

// PlayerJoined announces a new player or spectator
func (b *Broadcaster) PlayerJoined(roomID model.RoomID, playerID model.PlayerID, name string, asSpectator bool) {
	b.Publish(roomID, model.Event{
		Type:     model.EventPlayerJoined,
		PlayerID: playerID,
		Payload: model.PlayerJoinedPayload{
			PlayerID:    playerID,
			Name:        name,
			AsSpectator: asSpectator,
		},
	})
}

// PlayerLeft announces a departure or disconnection
func (b *Broadcaster) PlayerLeft(roomID model.RoomID, playerID model.PlayerID, name string, disconnected bool) {
	b.Publish(roomID, model.Event{
		Type:     model.EventPlayerLeft,
		PlayerID: playerID,
		Payload: model.PlayerLeftPayload{
			PlayerID:     playerID,
			Name:         name,
			Disconnected: disconnected,
		},
	})
}

// TurnChanged announces whose turn it now is
func (b *Broadcaster) TurnChanged(roomID model.RoomID, room *model.Room) {
	current := room.CurrentPlayer()
	if current == nil {
		return
	}
	b.Publish(roomID, model.Event{
		Type: model.EventTurnChanged,
		Payload: model.TurnChangedPayload{
			CurrentPlayerIndex: room.CurrentPlayerIndex,
			CurrentPlayerID:    current.ID,
		},
	})
}

// MoveMade announces a committed move
func (b *Broadcaster) MoveMade(roomID model.RoomID, playerID model.PlayerID, moveType model.MoveType, words []string, score int) {
	b.Publish(roomID, model.Event{
		Type:     model.EventMoveMade,
		PlayerID: playerID,
		Payload: model.MoveMadePayload{
			PlayerID: playerID,
			Type:     moveType,
			Words:    words,
			Score:    score,
		},
	})
}

// GameFinished announces the final standings
func (b *Broadcaster) GameFinished(roomID model.RoomID, finalScores map[model.PlayerID]int, winner model.PlayerID) {
	b.Publish(roomID, model.Event{
		Type: model.EventGameFinished,
		Payload: model.GameFinishedPayload{
			FinalScores: finalScores,
			Winner:      winner,
		},
	})
}

// RoomUpdated announces a change to room composition or status
func (b *Broadcaster) RoomUpdated(roomID model.RoomID) {
	b.Publish(roomID, model.Event{Type: model.EventRoomUpdated})
}

// RoomClosed tears down the hub for an evicted room
func (b *Broadcaster) RoomClosed(roomID model.RoomID) {
	b.hubManager.RemoveHub(roomID)
}
