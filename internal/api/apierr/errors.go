package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lexroom/lexroom/internal/model"
	"github.com/lexroom/lexroom/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Words   []string `json:"words,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotHost             = "NOT_HOST"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeRoomNotFound        = "ROOM_NOT_FOUND"
	CodeRoomFull            = "ROOM_FULL"
	CodeRoomNotWaiting      = "ROOM_NOT_WAITING"
	CodeRoomNotActive       = "ROOM_NOT_ACTIVE"
	CodeAlreadyInRoom       = "ALREADY_IN_ROOM"
	CodeNotInRoom           = "NOT_IN_ROOM"
	CodeCellOccupied        = "CELL_OCCUPIED"
	CodeGeometry            = "GEOMETRY_ERROR"
	CodeInvalidWord         = "INVALID_WORD"
	CodeTileNotInRack       = "TILE_NOT_IN_RACK"
	CodeInsufficientBag     = "INSUFFICIENT_BAG_TILES"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeDictionaryNotLoaded = "DICTIONARY_NOT_LOADED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Dictionary rejections carry the offending word list
	var iwe *model.InvalidWordsError
	if errors.As(err, &iwe) {
		return &httpError{http.StatusUnprocessableEntity, APIError{
			Code:    CodeInvalidWord,
			Message: "Not valid words: " + strings.Join(iwe.Words, ", "),
			Words:   iwe.Words,
		}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodePlayerNotFound, Message: "Player not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeRoomNotFound, Message: "Room not found"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{Code: CodeRoomFull, Message: "Room is full"}}
	case errors.Is(err, model.ErrRoomNotWaiting):
		return &httpError{http.StatusConflict, APIError{Code: CodeRoomNotWaiting, Message: "Game already in progress"}}
	case errors.Is(err, model.ErrRoomNotActive):
		return &httpError{http.StatusConflict, APIError{Code: CodeRoomNotActive, Message: "Room has no active game"}}
	case errors.Is(err, model.ErrAlreadyInRoom):
		return &httpError{http.StatusConflict, APIError{Code: CodeAlreadyInRoom, Message: "Already in this room"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusNotFound, APIError{Code: CodeNotInRoom, Message: "Not in this room"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{Code: CodeNotHost, Message: "Only the host can perform this action"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{Code: CodeNotYourTurn, Message: "Not your turn"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{Code: CodeCellOccupied, Message: "Cell is already occupied"}}
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeGeometry, Message: "Position is out of bounds"}}
	case errors.Is(err, model.ErrEmptyPlacement),
		errors.Is(err, model.ErrPlacementNotLine),
		errors.Is(err, model.ErrPlacementGap),
		errors.Is(err, model.ErrDisconnectedMove),
		errors.Is(err, model.ErrFirstMoveCenter),
		errors.Is(err, model.ErrNoWordFormed):
		return &httpError{http.StatusUnprocessableEntity, APIError{Code: CodeGeometry, Message: err.Error()}}
	case errors.Is(err, model.ErrTileNotInRack):
		return &httpError{http.StatusUnprocessableEntity, APIError{Code: CodeTileNotInRack, Message: "Tile is not in your rack"}}
	case errors.Is(err, model.ErrNotEnoughTilesInBag):
		return &httpError{http.StatusConflict, APIError{Code: CodeInsufficientBag, Message: "Not enough tiles left in the bag"}}
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeDictionaryNotLoaded, Message: "Dictionary not loaded"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeInvalidCredentials, Message: "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{Code: CodeUsernameExists, Message: "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
