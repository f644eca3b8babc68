package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/lexroom/lexroom/internal/api/middleware"
	"github.com/lexroom/lexroom/internal/events"
	"github.com/lexroom/lexroom/internal/model"
	"github.com/lexroom/lexroom/internal/services/room"
)

// EventsHandler serves per-room SSE streams. The stream doubles as the
// presence signal: attaching reconnects a seated player, detaching marks
// them disconnected.
type EventsHandler struct {
	roomController *room.Controller
	hubManager     *events.HubManager
	logger         *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(roomController *room.Controller, hubManager *events.HubManager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		roomController: roomController,
		hubManager:     hubManager,
		logger:         logger,
	}
}

// Stream handles GET /api/v1/rooms/{id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	profile := middleware.MustGetProfile(r.Context())
	id := roomID(r)

	current, err := h.roomController.GetRoom(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	seated := current.PlayerByID(profile.ID) != nil
	if seated {
		if _, err := h.roomController.Reconnect(r.Context(), id, profile.ID); err != nil {
			WriteError(w, err)
			return
		}
	}

	hub := h.hubManager.GetOrCreateHub(id)

	// Blocks until the client goes away or the hub shuts down
	events.ServeSSE(w, r, hub, profile.ID)

	if seated {
		if err := h.disconnect(id, profile.ID); err != nil {
			h.logger.Warn("disconnect after stream close failed",
				slog.String("room_id", string(id)),
				slog.String("player_id", string(profile.ID)),
				slog.Any("error", err))
		}
	}
}

// disconnect runs outside the request context, which is already canceled
// once the stream closes
func (h *EventsHandler) disconnect(id model.RoomID, playerID model.PlayerID) error {
	return h.roomController.Disconnect(context.Background(), id, playerID)
}
