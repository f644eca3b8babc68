package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexroom/lexroom/internal/model"
	"github.com/lexroom/lexroom/internal/services/room"
)

// MaxBotIterations is a safety limit for the ProcessBotTurns loop
const MaxBotIterations = 100

// StrategyGreedy is the default bot strategy name
const StrategyGreedy = "greedy"

// Action records one turn a bot took during ProcessBotTurns
type Action struct {
	PlayerID model.PlayerID
	Type     model.MoveType
	Score    int
}

// Service runs bot players. Bots hold ordinary seats and act through the
// same coordinator commands as humans, with no rules bypass.
type Service struct {
	roomController *room.Controller
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(roomController *room.Controller, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		roomController: roomController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// AddBotToRoom seats a new bot in a waiting room on the host's behalf
func (s *Service) AddBotToRoom(ctx context.Context, roomID model.RoomID, requesterID model.PlayerID, strategy string) (*model.Player, error) {
	if strategy == "" {
		strategy = StrategyGreedy
	}
	if _, ok := s.strategies[strategy]; !ok {
		return nil, fmt.Errorf("unknown bot strategy: %s", strategy)
	}

	current, err := s.roomController.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	botCount := 0
	for _, p := range current.Players {
		if p.IsBot {
			botCount++
		}
	}
	name := fmt.Sprintf("Bot %d", botCount+1)

	bot, err := s.roomController.AddBot(ctx, roomID, requesterID, name, strategy)
	if err != nil {
		return nil, err
	}

	s.logger.Info("bot added to room",
		slog.String("room_id", string(roomID)),
		slog.String("bot_id", string(bot.ID)),
		slog.String("strategy", strategy))

	return bot, nil
}

// ProcessBotTurns plays out consecutive bot turns until a human is up or
// the game ends. Call it after any command that may have advanced the turn.
func (s *Service) ProcessBotTurns(ctx context.Context, roomID model.RoomID) ([]Action, error) {
	var actions []Action

	for i := 0; i < MaxBotIterations; i++ {
		current, err := s.roomController.GetRoom(ctx, roomID)
		if err != nil {
			if errors.Is(err, model.ErrRoomNotFound) {
				return actions, nil
			}
			return actions, err
		}

		if current.Status != model.RoomStatusActive {
			return actions, nil
		}

		player := current.CurrentPlayer()
		if player == nil || !player.IsBot {
			return actions, nil
		}

		strategy, ok := s.strategies[player.BotStrategy]
		if !ok {
			strategy = s.strategies[StrategyGreedy]
		}
		if strategy == nil {
			return actions, fmt.Errorf("no strategy available for bot %s", player.ID)
		}

		action, err := s.takeTurn(ctx, current, player, strategy)
		if err != nil {
			return actions, err
		}
		actions = append(actions, action)
	}

	return actions, fmt.Errorf("bot turn limit reached in room %s", roomID)
}

func (s *Service) takeTurn(ctx context.Context, current *model.Room, player *model.Player, strategy Strategy) (Action, error) {
	decision := strategy.ChooseMove(current, player)

	switch {
	case len(decision.Placements) > 0:
		result, err := s.roomController.SubmitMove(ctx, current.ID, player.ID, decision.Placements)
		if err == nil {
			return Action{PlayerID: player.ID, Type: model.MoveTypePlace, Score: result.Score}, nil
		}
		// A move the strategy liked but the coordinator refused falls
		// back to a pass so the room keeps moving
		s.logger.Warn("bot placement rejected",
			slog.String("room_id", string(current.ID)),
			slog.String("bot_id", string(player.ID)),
			slog.Any("error", err))

	case len(decision.Exchange) > 0:
		if err := s.roomController.ExchangeTiles(ctx, current.ID, player.ID, decision.Exchange); err == nil {
			return Action{PlayerID: player.ID, Type: model.MoveTypeExchange}, nil
		}
	}

	if err := s.roomController.PassTurn(ctx, current.ID, player.ID); err != nil {
		return Action{}, err
	}
	return Action{PlayerID: player.ID, Type: model.MoveTypePass}, nil
}

// DefaultStrategies returns the standard strategy registry
func DefaultStrategies(greedy *GreedyStrategy) map[string]Strategy {
	return map[string]Strategy{
		StrategyGreedy: greedy,
	}
}
