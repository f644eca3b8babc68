package bot

import "github.com/lexroom/lexroom/internal/model"

// Decision is what a bot wants to do with its turn. Exactly one of the
// fields is meaningful: placements, letters to exchange, or a pass.
type Decision struct {
	Placements []model.Placement
	Exchange   []rune
	Pass       bool
}

// Strategy defines how a bot spends its turn
type Strategy interface {
	// ChooseMove picks the bot's action given the current room state and
	// the bot's own seat
	ChooseMove(room *model.Room, player *model.Player) Decision
}
