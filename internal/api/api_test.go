package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexroom/lexroom/internal/api"
	"github.com/lexroom/lexroom/internal/api/response"
	"github.com/lexroom/lexroom/internal/factory"
	"github.com/lexroom/lexroom/internal/services/auth"
	"github.com/lexroom/lexroom/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	app.WordsService.LoadWords([]string{
		"AT", "SO", "TO", "CAT", "CATS", "DOG", "HELLO", "WORD",
	})

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		RoomController: app.RoomController,
		BotService:     app.BotService,
		HubManager:     app.HubManager,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestProfile(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.Profile.Name)
	assert.True(t, resp.Profile.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestCreateGuestRequiresName(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username": "alice",
		"password": "secret123",
		"name":     "Alice",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.False(t, registerResp.Profile.IsGuest)

	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.Profile.ID, loginResp.Profile.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_EXISTS")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	body["password"] = "wrong"
	rr = ts.request(http.MethodPost, "/api/v1/players/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Profile
	err := json.Unmarshal(rr.Body.Bytes(), &meResp)
	require.NoError(t, err)
	assert.Equal(t, "Bob", meResp.Name)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/players/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Alice")

	body := map[string]int{"max_players": 2}
	rr := ts.request(http.MethodPost, "/api/v1/rooms", body, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var roomResp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &roomResp)
	require.NoError(t, err)

	assert.Len(t, roomResp.ID, 6)
	assert.Equal(t, "waiting", roomResp.Status)
	assert.Equal(t, 2, roomResp.MaxPlayers)
	require.Len(t, roomResp.Players, 1)
	assert.Equal(t, "Alice", roomResp.Players[0].Name)
	assert.Equal(t, 7, roomResp.Players[0].RackSize)
	// The creator sees their own rack
	assert.Len(t, roomResp.Players[0].Rack, 7)
	assert.Equal(t, 93, roomResp.BagCount)
	assert.Empty(t, roomResp.Board)
}

func TestRackHiddenFromOtherViewers(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)

	rr := ts.request(http.MethodGet, "/api/v1/rooms/"+roomID, nil, token2)
	assert.Equal(t, http.StatusOK, rr.Code)

	var roomResp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &roomResp)
	require.NoError(t, err)

	require.Len(t, roomResp.Players, 1)
	assert.Empty(t, roomResp.Players[0].Rack)
	assert.Equal(t, 7, roomResp.Players[0].RackSize)
}

func TestGetUnknownRoom(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/rooms/NOSUCH", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_NOT_FOUND")
}

func TestJoinRoomStartsGame(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/join", nil, token2)
	assert.Equal(t, http.StatusOK, rr.Code)

	var roomResp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &roomResp)
	require.NoError(t, err)

	assert.Equal(t, "active", roomResp.Status)
	require.Len(t, roomResp.Players, 2)
	// The creator holds the first turn
	assert.Equal(t, roomResp.Players[0].ID, roomResp.CurrentPlayerID)
	assert.Equal(t, 86, roomResp.BagCount)
}

func TestJoinFullRoom(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")
	token3 := createGuest(t, ts, "Carol")

	roomID := createRoom(t, ts, token1, 2)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/join", nil, token2)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/join", nil, token3)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_FULL")
}

func TestJoinRoomTwice(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Alice")
	roomID := createRoom(t, ts, token, 2)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/join", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_IN_ROOM")
}

func TestListRooms(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Alice")
	roomID := createRoom(t, ts, token, 4)

	rr := ts.request(http.MethodGet, "/api/v1/rooms", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var listings []response.RoomListing
	err := json.Unmarshal(rr.Body.Bytes(), &listings)
	require.NoError(t, err)

	require.Len(t, listings, 1)
	assert.Equal(t, roomID, listings[0].ID)
	assert.Equal(t, 1, listings[0].PlayerCount)
	assert.Equal(t, 4, listings[0].MaxPlayers)
}

func TestSpectateRoom(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Watcher")

	roomID := createRoom(t, ts, token1, 2)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/spectate", nil, token2)
	assert.Equal(t, http.StatusOK, rr.Code)

	var roomResp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &roomResp)
	require.NoError(t, err)

	require.Len(t, roomResp.Spectators, 1)
	assert.Equal(t, "Watcher", roomResp.Spectators[0].Name)
	assert.Len(t, roomResp.Players, 1)
}

func TestPassTurn(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/pass", nil, token1)
	assert.Equal(t, http.StatusOK, rr.Code)

	var roomResp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &roomResp)
	require.NoError(t, err)

	// Turn moved to the second seat
	assert.Equal(t, roomResp.Players[1].ID, roomResp.CurrentPlayerID)
	assert.Equal(t, 1, roomResp.ScorelessTurns)
}

func TestPassOutOfTurn(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/pass", nil, token2)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_YOUR_TURN")
}

func TestPassInWaitingRoom(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Alice")
	roomID := createRoom(t, ts, token, 2)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/pass", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_NOT_ACTIVE")
}

func TestSubmitMoveRequiresPlacements(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	body := map[string]any{"placements": []any{}}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/moves", body, token1)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestSubmitMoveRejectsBadLetter(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	body := map[string]any{"placements": []map[string]any{
		{"row": 7, "col": 7, "letter": "ZZ"},
	}}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/moves", body, token1)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestSubmitSingleTileFormsNoWord(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	// Pick a letter actually on the creator's rack so the move survives
	// the rack check and fails on geometry
	letter := rackLetter(t, ts, token1, roomID)
	body := map[string]any{"placements": []map[string]any{
		{"row": 7, "col": 7, "letter": letter},
	}}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/moves", body, token1)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "GEOMETRY_ERROR")
}

func TestExchangeTiles(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	// Swap the first two tiles of the creator's rack
	rack := viewRoom(t, ts, token1, roomID).Players[0].Rack
	body := map[string]string{"letters": rack[:2]}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/exchange", body, token1)
	assert.Equal(t, http.StatusOK, rr.Code)

	var roomResp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &roomResp)
	require.NoError(t, err)

	assert.Equal(t, 7, roomResp.Players[0].RackSize)
	assert.Equal(t, 86, roomResp.BagCount)
	// Exchanging consumes the turn
	assert.Equal(t, roomResp.Players[1].ID, roomResp.CurrentPlayerID)
}

func TestExchangeRequiresLetters(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	body := map[string]string{"letters": ""}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/exchange", body, token1)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMoveHistory(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	// No moves yet
	rr := ts.request(http.MethodGet, "/api/v1/rooms/"+roomID+"/moves", nil, token1)
	assert.Equal(t, http.StatusOK, rr.Code)

	var records []response.MoveRecord
	err := json.Unmarshal(rr.Body.Bytes(), &records)
	require.NoError(t, err)
	assert.Empty(t, records)

	// A pass shows up in the history
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/pass", nil, token1)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+roomID+"/moves", nil, token1)
	assert.Equal(t, http.StatusOK, rr.Code)

	err = json.Unmarshal(rr.Body.Bytes(), &records)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "pass", records[0].Type)
	assert.Equal(t, 0, records[0].Score)
}

func TestAddBot(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Alice")
	roomID := createRoom(t, ts, token, 2)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/bots", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var roomResp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &roomResp)
	require.NoError(t, err)

	assert.Equal(t, "active", roomResp.Status)
	require.Len(t, roomResp.Players, 2)
	assert.True(t, roomResp.Players[1].IsBot)
}

func TestAddBotNotHost(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 3)
	joinRoom(t, ts, token2, roomID)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/bots", nil, token2)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_HOST")
}

func TestAddBotUnknownStrategy(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Alice")
	roomID := createRoom(t, ts, token, 2)

	body := map[string]string{"strategy": "psychic"}
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/bots", body, token)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestLeaveRoom(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/leave", nil, token2)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Leaving marks the seat disconnected but keeps it
	roomResp := viewRoom(t, ts, token1, roomID)
	require.Len(t, roomResp.Players, 2)
	assert.False(t, roomResp.Players[1].IsConnected)
}

func TestEventStream(t *testing.T) {
	ts := newTestServer(t)

	token1 := createGuest(t, ts, "Alice")
	token2 := createGuest(t, ts, "Bob")

	roomID := createRoom(t, ts, token1, 2)
	joinRoom(t, ts, token2, roomID)

	// The stream blocks until the client goes away, so give the request a
	// short deadline
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+roomID+"/events?token="+token2, nil)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "event: connected")

	// Detaching from the stream marks a seated player disconnected
	roomResp := viewRoom(t, ts, token1, roomID)
	assert.False(t, roomResp.Players[1].IsConnected)
}

func TestEventStreamUnknownRoom(t *testing.T) {
	ts := newTestServer(t)

	token := createGuest(t, ts, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/rooms/NOSUCH/events", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// Helper functions

func createGuest(t *testing.T, ts *testServer, name string) string {
	t.Helper()

	body := map[string]string{"name": name}
	rr := ts.request(http.MethodPost, "/api/v1/players/guest", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.SessionToken
}

func createRoom(t *testing.T, ts *testServer, token string, maxPlayers int) string {
	t.Helper()

	body := map[string]int{"max_players": maxPlayers}
	rr := ts.request(http.MethodPost, "/api/v1/rooms", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.ID
}

func joinRoom(t *testing.T, ts *testServer, token, roomID string) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+roomID+"/join", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
}

func viewRoom(t *testing.T, ts *testServer, token, roomID string) response.Room {
	t.Helper()

	rr := ts.request(http.MethodGet, "/api/v1/rooms/"+roomID, nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

// rackLetter returns a letter from the viewer's own rack, skipping blanks
func rackLetter(t *testing.T, ts *testServer, token, roomID string) string {
	t.Helper()

	rack := viewRoom(t, ts, token, roomID).Players[0].Rack
	require.NotEmpty(t, rack)
	for _, r := range rack {
		if r != '*' {
			return string(r)
		}
	}
	t.Fatal("rack holds only blanks")
	return ""
}
