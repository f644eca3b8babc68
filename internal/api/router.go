package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lexroom/lexroom/internal/api/handler"
	apimiddleware "github.com/lexroom/lexroom/internal/api/middleware"
	"github.com/lexroom/lexroom/internal/events"
	"github.com/lexroom/lexroom/internal/middleware"
	"github.com/lexroom/lexroom/internal/services/auth"
	"github.com/lexroom/lexroom/internal/services/bot"
	"github.com/lexroom/lexroom/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	RoomController *room.Controller
	BotService     *bot.Service
	HubManager     *events.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.BotService, cfg.Logger)
	eventsHandler := handler.NewEventsHandler(cfg.RoomController, cfg.HubManager, cfg.Logger)

	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Identity routes (no auth required to obtain a session)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	players.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Room routes (all require auth)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("", roomHandler.List).Methods(http.MethodGet)
	rooms.HandleFunc("/{id}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{id}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{id}/spectate", roomHandler.Spectate).Methods(http.MethodPost)
	rooms.HandleFunc("/{id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{id}/bots", roomHandler.AddBot).Methods(http.MethodPost)
	rooms.HandleFunc("/{id}/moves", roomHandler.SubmitMove).Methods(http.MethodPost)
	rooms.HandleFunc("/{id}/moves", roomHandler.MoveHistory).Methods(http.MethodGet)
	rooms.HandleFunc("/{id}/pass", roomHandler.Pass).Methods(http.MethodPost)
	rooms.HandleFunc("/{id}/exchange", roomHandler.Exchange).Methods(http.MethodPost)
	rooms.HandleFunc("/{id}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
