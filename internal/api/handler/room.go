package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"unicode"

	"github.com/gorilla/mux"

	"github.com/lexroom/lexroom/internal/api/middleware"
	"github.com/lexroom/lexroom/internal/api/request"
	"github.com/lexroom/lexroom/internal/api/response"
	"github.com/lexroom/lexroom/internal/model"
	"github.com/lexroom/lexroom/internal/services/bot"
	"github.com/lexroom/lexroom/internal/services/room"
)

// RoomHandler handles room lifecycle and gameplay endpoints
type RoomHandler struct {
	roomController *room.Controller
	botService     *bot.Service
	logger         *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController *room.Controller, botService *bot.Service, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		roomController: roomController,
		botService:     botService,
		logger:         logger,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
	}

	profile := middleware.MustGetProfile(r.Context())
	created, err := h.roomController.CreateRoom(r.Context(), profile, req.MaxPlayers)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created, profile.ID))
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.roomController.ListRooms(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.RoomListing, len(listings))
	for i, l := range listings {
		out[i] = response.RoomListingFromModel(l)
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := middleware.MustGetProfile(r.Context())
	current, err := h.roomController.GetRoom(r.Context(), roomID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(current, profile.ID))
}

// Join handles POST /api/v1/rooms/{id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	profile := middleware.MustGetProfile(r.Context())
	id := roomID(r)

	joined, err := h.roomController.JoinRoom(r.Context(), id, profile)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.runBots(r, id)
	response.JSON(w, http.StatusOK, response.RoomFromModel(joined, profile.ID))
}

// Spectate handles POST /api/v1/rooms/{id}/spectate
func (h *RoomHandler) Spectate(w http.ResponseWriter, r *http.Request) {
	profile := middleware.MustGetProfile(r.Context())
	current, err := h.roomController.SpectateRoom(r.Context(), roomID(r), profile)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(current, profile.ID))
}

// SubmitMove handles POST /api/v1/rooms/{id}/moves
func (h *RoomHandler) SubmitMove(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	placements, err := parsePlacements(req.Placements)
	if err != nil {
		WriteError(w, err)
		return
	}

	profile := middleware.MustGetProfile(r.Context())
	id := roomID(r)

	result, err := h.roomController.SubmitMove(r.Context(), id, profile.ID, placements)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.runBots(r, id)

	current, err := h.roomController.GetRoom(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MoveResultFromModel(result, current, profile.ID))
}

// Pass handles POST /api/v1/rooms/{id}/pass
func (h *RoomHandler) Pass(w http.ResponseWriter, r *http.Request) {
	profile := middleware.MustGetProfile(r.Context())
	id := roomID(r)

	if err := h.roomController.PassTurn(r.Context(), id, profile.ID); err != nil {
		WriteError(w, err)
		return
	}

	h.runBots(r, id)
	h.writeRoom(w, r, id, profile.ID)
}

// Exchange handles POST /api/v1/rooms/{id}/exchange
func (h *RoomHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	var req request.ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Letters == "" {
		WriteError(w, NewInvalidRequestError("letters is required"))
		return
	}

	profile := middleware.MustGetProfile(r.Context())
	id := roomID(r)

	if err := h.roomController.ExchangeTiles(r.Context(), id, profile.ID, []rune(req.Letters)); err != nil {
		WriteError(w, err)
		return
	}

	h.runBots(r, id)
	h.writeRoom(w, r, id, profile.ID)
}

// Leave handles POST /api/v1/rooms/{id}/leave. Leaving only marks the seat
// disconnected; the eviction sweep reclaims abandoned rooms.
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	profile := middleware.MustGetProfile(r.Context())

	if err := h.roomController.Disconnect(r.Context(), roomID(r), profile.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddBot handles POST /api/v1/rooms/{id}/bots
func (h *RoomHandler) AddBot(w http.ResponseWriter, r *http.Request) {
	var req request.AddBotRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("invalid request body"))
			return
		}
	}

	profile := middleware.MustGetProfile(r.Context())
	id := roomID(r)

	if _, err := h.botService.AddBotToRoom(r.Context(), id, profile.ID, req.Strategy); err != nil {
		WriteError(w, err)
		return
	}

	h.runBots(r, id)
	h.writeRoom(w, r, id, profile.ID)
}

// MoveHistory handles GET /api/v1/rooms/{id}/moves
func (h *RoomHandler) MoveHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.roomController.MoveHistory(r.Context(), roomID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.MoveRecord, len(records))
	for i, rec := range records {
		out[i] = response.MoveRecordFromModel(*rec)
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *RoomHandler) writeRoom(w http.ResponseWriter, r *http.Request, id model.RoomID, viewerID model.PlayerID) {
	current, err := h.roomController.GetRoom(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(current, viewerID))
}

// runBots plays out any bot turns the command unlocked
func (h *RoomHandler) runBots(r *http.Request, id model.RoomID) {
	if h.botService == nil {
		return
	}
	if _, err := h.botService.ProcessBotTurns(r.Context(), id); err != nil {
		h.logger.Error("bot turns failed",
			slog.String("room_id", string(id)),
			slog.Any("error", err))
	}
}

func roomID(r *http.Request) model.RoomID {
	return model.RoomID(mux.Vars(r)["id"])
}

func parsePlacements(in []request.PlacementRequest) ([]model.Placement, error) {
	if len(in) == 0 {
		return nil, NewInvalidRequestError("placements is required")
	}

	placements := make([]model.Placement, len(in))
	for i, p := range in {
		runes := []rune(p.Letter)
		if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
			return nil, NewInvalidRequestError("letter must be a single letter A-Z")
		}
		placements[i] = model.Placement{
			Row: p.Row,
			Col: p.Col,
			Tile: model.Tile{
				Letter:  unicode.ToUpper(runes[0]),
				IsBlank: p.IsBlank,
			},
		}
	}
	return placements, nil
}
