package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexroom/lexroom/internal/dependencies/clock"
	"github.com/lexroom/lexroom/internal/dependencies/random"
	"github.com/lexroom/lexroom/internal/events"
	"github.com/lexroom/lexroom/internal/model"
	"github.com/lexroom/lexroom/internal/services/rules"
	"github.com/lexroom/lexroom/internal/services/tiles"
	"github.com/lexroom/lexroom/internal/storage"
)

const (
	// RoomIDLength is the length of generated room join codes
	RoomIDLength = 6
	// RoomIDAlphabet is the characters used in room codes (avoid confusing chars)
	RoomIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Config holds the eviction policy windows
type Config struct {
	// GracePeriod is how long a room may sit with no connected players
	GracePeriod time.Duration
	// IdleTimeout is how long a room may sit with no activity at all
	IdleTimeout time.Duration
}

// DefaultConfig returns the default eviction policy
func DefaultConfig() Config {
	return Config{
		GracePeriod: 2 * time.Minute,
		IdleTimeout: 10 * time.Minute,
	}
}

// Controller is the session coordinator. Every command against a room runs
// under that room's entry in the lock directory, so commands for one room
// are serialized while independent rooms progress in parallel. Broadcasts
// for a committed command go out before the room lock is released.
type Controller struct {
	storage     storage.Storage
	tiles       *tiles.Service
	rules       *rules.Service
	broadcaster *events.Broadcaster
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
	cfg         Config

	// Lock directory: coarse mutex guards the map, per-room mutexes guard
	// each room's command handling
	mu    sync.Mutex
	locks map[model.RoomID]*sync.Mutex
}

// NewController creates a new session coordinator
func NewController(
	store storage.Storage,
	tilesService *tiles.Service,
	rulesService *rules.Service,
	broadcaster *events.Broadcaster,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	if cfg.GracePeriod == 0 {
		cfg.GracePeriod = DefaultConfig().GracePeriod
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultConfig().IdleTimeout
	}
	return &Controller{
		storage:     store,
		tiles:       tilesService,
		rules:       rulesService,
		broadcaster: broadcaster,
		clock:       clk,
		random:      rnd,
		logger:      logger.With(slog.String("component", "room-controller")),
		cfg:         cfg,
		locks:       make(map[model.RoomID]*sync.Mutex),
	}
}

// lockRoom acquires the per-room mutex, creating it on first use
func (c *Controller) lockRoom(id model.RoomID) *sync.Mutex {
	c.mu.Lock()
	lock, ok := c.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[id] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock
}

// forgetLock drops a deleted room's entry from the lock directory
func (c *Controller) forgetLock(id model.RoomID) {
	c.mu.Lock()
	delete(c.locks, id)
	c.mu.Unlock()
}

// CreateRoom allocates a fresh waiting room with the host seated and their
// opening rack dealt from a freshly shuffled bag
func (c *Controller) CreateRoom(ctx context.Context, host *model.Profile, maxPlayers int) (*model.Room, error) {
	if maxPlayers < model.MinRoomPlayers || maxPlayers > model.MaxRoomPlayers {
		maxPlayers = model.MinRoomPlayers
	}

	// Generate a join code not already in use
	var id model.RoomID
	for {
		id = model.RoomID(c.random.String(RoomIDLength, RoomIDAlphabet))
		_, err := c.storage.GetRoom(ctx, id)
		if err == nil {
			continue
		}
		if errors.Is(err, model.ErrRoomNotFound) {
			break
		}
		return nil, err
	}

	now := c.clock.Now()
	bag := c.tiles.NewBag()

	room := &model.Room{
		ID:         id,
		Board:      model.NewBoard(),
		Bag:        bag,
		Status:     model.RoomStatusWaiting,
		MaxPlayers: maxPlayers,
		Players: []*model.Player{
			{
				ID:          host.ID,
				Name:        host.Name,
				Rack:        c.tiles.DealRack(bag),
				IsConnected: true,
				LastSeen:    now,
			},
		},
		CreatedAt:    now,
		LastActivity: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room_id", string(id)),
		slog.String("host_id", string(host.ID)),
		slog.Int("max_players", maxPlayers))

	return room, nil
}

// GetRoom retrieves a room by ID
func (c *Controller) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, id)
}

// ListRooms returns a snapshot of rooms currently accepting players
func (c *Controller) ListRooms(ctx context.Context) ([]model.RoomListing, error) {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]model.RoomListing, 0, len(rooms))
	for _, room := range rooms {
		if room.Status != model.RoomStatusWaiting || room.IsFull() {
			continue
		}
		listings = append(listings, room.Listing())
	}
	return listings, nil
}

// JoinRoom seats a player in a waiting room and deals their opening rack.
// The room goes active as soon as a second player is seated.
func (c *Controller) JoinRoom(ctx context.Context, id model.RoomID, profile *model.Profile) (*model.Room, error) {
	lock := c.lockRoom(id)
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if room.PlayerByID(profile.ID) != nil {
		return nil, model.ErrAlreadyInRoom
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}
	if room.Status != model.RoomStatusWaiting {
		return nil, model.ErrRoomNotWaiting
	}

	now := c.clock.Now()
	player := &model.Player{
		ID:          profile.ID,
		Name:        profile.Name,
		Rack:        c.tiles.DealRack(room.Bag),
		IsConnected: true,
		LastSeen:    now,
	}
	room.Players = append(room.Players, player)
	room.LastActivity = now

	if len(room.Players) >= model.MinRoomPlayers {
		room.Status = model.RoomStatusActive
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.broadcaster.PlayerJoined(id, player.ID, player.Name, false)
	c.broadcaster.RoomUpdated(id)
	if room.Status == model.RoomStatusActive {
		c.broadcaster.TurnChanged(id, room)
	}

	return room, nil
}

// AddBot seats a bot player in a waiting room. Only the host may add bots.
// The bot is dealt a rack and takes turns through the same commands as
// everyone else.
func (c *Controller) AddBot(ctx context.Context, id model.RoomID, requesterID model.PlayerID, name, strategy string) (*model.Player, error) {
	lock := c.lockRoom(id)
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(room.Players) == 0 || room.Players[0].ID != requesterID {
		return nil, model.ErrNotHost
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}
	if room.Status != model.RoomStatusWaiting {
		return nil, model.ErrRoomNotWaiting
	}

	now := c.clock.Now()
	bot := &model.Player{
		ID:          model.PlayerID("bot_" + uuid.NewString()),
		Name:        name,
		Rack:        c.tiles.DealRack(room.Bag),
		IsBot:       true,
		BotStrategy: strategy,
		IsConnected: true,
		LastSeen:    now,
	}
	room.Players = append(room.Players, bot)
	room.LastActivity = now

	if len(room.Players) >= model.MinRoomPlayers {
		room.Status = model.RoomStatusActive
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.broadcaster.PlayerJoined(id, bot.ID, bot.Name, false)
	c.broadcaster.RoomUpdated(id)
	if room.Status == model.RoomStatusActive {
		c.broadcaster.TurnChanged(id, room)
	}

	return bot, nil
}

// SpectateRoom attaches a read-only observer. Spectators never occupy a
// turn slot and may watch rooms in any state.
func (c *Controller) SpectateRoom(ctx context.Context, id model.RoomID, profile *model.Profile) (*model.Room, error) {
	lock := c.lockRoom(id)
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if room.SpectatorByID(profile.ID) == nil {
		room.Spectators = append(room.Spectators, &model.Spectator{
			ID:       profile.ID,
			Name:     profile.Name,
			JoinedAt: c.clock.Now(),
		})
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return nil, err
		}
		c.broadcaster.PlayerJoined(id, profile.ID, profile.Name, true)
	}

	return room, nil
}

// SubmitMove validates and commits a tile placement for the acting player.
// A rejected move leaves the room untouched and answers only the caller.
func (c *Controller) SubmitMove(ctx context.Context, id model.RoomID, playerID model.PlayerID, placements []model.Placement) (*model.MoveResult, error) {
	lock := c.lockRoom(id)
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	player, err := c.actingPlayer(room, playerID)
	if err != nil {
		return nil, err
	}

	// The placements must be covered by the player's rack. Work on a clone
	// so a failed validation leaves the real rack alone.
	rack := player.Rack.Clone()
	placed := make([]model.Placement, 0, len(placements))
	for _, p := range placements {
		letter := p.Tile.Letter
		if p.Tile.IsBlank {
			// A blank is submitted as the letter it stands for, worth zero
			letter = model.BlankLetter
		}
		tile, err := rack.Remove(letter)
		if err != nil {
			return nil, err
		}
		if tile.IsBlank {
			tile = model.Tile{Letter: p.Tile.Letter, Points: 0, IsBlank: true}
		}
		placed = append(placed, model.Placement{Row: p.Row, Col: p.Col, Tile: tile})
	}

	result, err := c.rules.ValidateAndScore(room.Board, playerID, placed, room.Board.IsEmpty())
	if err != nil {
		return nil, err
	}

	// Commit: board, score, rack refill, turn advance
	room.Board = result.Board
	player.Score += result.Score
	player.Rack = rack
	c.tiles.Refill(player.Rack, room.Bag)
	room.ScorelessTurns = 0
	room.LastActivity = c.clock.Now()
	player.LastSeen = room.LastActivity

	wordTexts := make([]string, len(result.Words))
	for i, w := range result.Words {
		wordTexts[i] = w.Word
	}

	finished := room.Bag.IsEmpty() && player.Rack.IsEmpty()
	if finished {
		c.finishRoom(room)
	} else {
		room.AdvanceTurn()
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.recordMove(ctx, room.ID, playerID, model.MoveTypePlace, wordTexts, result.Score)

	c.broadcaster.MoveMade(id, playerID, model.MoveTypePlace, wordTexts, result.Score)
	c.broadcaster.RoomUpdated(id)
	if finished {
		c.broadcaster.GameFinished(id, room.FinalScores, rules.Winner(room.Players, room.FinalScores))
	} else {
		c.broadcaster.TurnChanged(id, room)
	}

	return result, nil
}

// PassTurn advances the turn without touching the board
func (c *Controller) PassTurn(ctx context.Context, id model.RoomID, playerID model.PlayerID) error {
	lock := c.lockRoom(id)
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	player, err := c.actingPlayer(room, playerID)
	if err != nil {
		return err
	}

	room.ScorelessTurns++
	room.LastActivity = c.clock.Now()
	player.LastSeen = room.LastActivity

	finished := room.ScorelessTurns >= model.ScorelessTurnLimit
	if finished {
		c.finishRoom(room)
	} else {
		room.AdvanceTurn()
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.recordMove(ctx, room.ID, playerID, model.MoveTypePass, nil, 0)

	c.broadcaster.MoveMade(id, playerID, model.MoveTypePass, nil, 0)
	c.broadcaster.RoomUpdated(id)
	if finished {
		c.broadcaster.GameFinished(id, room.FinalScores, rules.Winner(room.Players, room.FinalScores))
	} else {
		c.broadcaster.TurnChanged(id, room)
	}

	return nil
}

// ExchangeTiles swaps rack tiles with the bag and uses the turn
func (c *Controller) ExchangeTiles(ctx context.Context, id model.RoomID, playerID model.PlayerID, letters []rune) error {
	lock := c.lockRoom(id)
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	player, err := c.actingPlayer(room, playerID)
	if err != nil {
		return err
	}

	if err := c.tiles.Exchange(player.Rack, letters, room.Bag); err != nil {
		return err
	}

	room.ScorelessTurns++
	room.LastActivity = c.clock.Now()
	player.LastSeen = room.LastActivity

	finished := room.ScorelessTurns >= model.ScorelessTurnLimit
	if finished {
		c.finishRoom(room)
	} else {
		room.AdvanceTurn()
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.recordMove(ctx, room.ID, playerID, model.MoveTypeExchange, nil, 0)

	c.broadcaster.MoveMade(id, playerID, model.MoveTypeExchange, nil, 0)
	c.broadcaster.RoomUpdated(id)
	if finished {
		c.broadcaster.GameFinished(id, room.FinalScores, rules.Winner(room.Players, room.FinalScores))
	} else {
		c.broadcaster.TurnChanged(id, room)
	}

	return nil
}

// Disconnect marks a player as away. The player keeps their seat, rack,
// score, and turn slot; only reconnection or eviction moves things along.
func (c *Controller) Disconnect(ctx context.Context, id model.RoomID, playerID model.PlayerID) error {
	lock := c.lockRoom(id)
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return err
	}

	player := room.PlayerByID(playerID)
	if player == nil {
		return model.ErrNotInRoom
	}

	player.IsConnected = false
	player.LastSeen = c.clock.Now()
	room.LastActivity = player.LastSeen

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.broadcaster.PlayerLeft(id, playerID, player.Name, true)
	c.broadcaster.RoomUpdated(id)

	return nil
}

// Reconnect restores a player's connection flag. Pure re-attachment: rack,
// score, and turn position are untouched.
func (c *Controller) Reconnect(ctx context.Context, id model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	lock := c.lockRoom(id)
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, model.ErrNotInRoom
	}

	player.IsConnected = true
	player.LastSeen = c.clock.Now()
	room.LastActivity = player.LastSeen

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.broadcaster.PlayerJoined(id, playerID, player.Name, false)
	c.broadcaster.RoomUpdated(id)

	return room, nil
}

// MoveHistory returns the committed move records for a room, oldest first
func (c *Controller) MoveHistory(ctx context.Context, id model.RoomID) ([]*model.MoveRecord, error) {
	if _, err := c.storage.GetRoom(ctx, id); err != nil {
		return nil, err
	}
	return c.storage.GetMoveRecords(ctx, id)
}

// actingPlayer checks the room is active and the player holds the turn
func (c *Controller) actingPlayer(room *model.Room, playerID model.PlayerID) (*model.Player, error) {
	if room.Status != model.RoomStatusActive {
		return nil, model.ErrRoomNotActive
	}

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, model.ErrNotInRoom
	}

	current := room.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return nil, model.ErrNotYourTurn
	}

	return player, nil
}

// finishRoom settles final scores and moves the room to its terminal state
func (c *Controller) finishRoom(room *model.Room) {
	room.Status = model.RoomStatusFinished
	room.FinalScores = rules.FinalizeScores(room.Players)

	c.logger.Info("game finished",
		slog.String("room_id", string(room.ID)),
		slog.String("winner", string(rules.Winner(room.Players, room.FinalScores))))
}

// recordMove appends to the room's move history. History is an audit trail,
// not game state, so a storage failure here only logs.
func (c *Controller) recordMove(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, moveType model.MoveType, words []string, score int) {
	record := model.MoveRecord{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		PlayerID:  playerID,
		Type:      moveType,
		Words:     words,
		Score:     score,
		Timestamp: c.clock.Now(),
	}
	if err := c.storage.AppendMoveRecord(ctx, &record); err != nil {
		c.logger.Error("failed to record move",
			slog.String("room_id", string(roomID)),
			slog.String("player_id", string(playerID)),
			slog.Any("error", err))
	}
}
