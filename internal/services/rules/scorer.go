package rules

import "github.com/lexroom/lexroom/internal/model"

// BingoBonus is awarded when a move places all seven rack tiles at once.
const BingoBonus = 50

// scoreWord totals a single word. Premium squares apply only under tiles
// placed this move; tiles already on the board score face value.
func scoreWord(board *model.Board, play model.WordPlay, newPositions map[model.Position]bool) int {
	score := 0
	wordMultiplier := 1
	for _, pos := range play.Positions {
		tile := board.TileAt(pos.Row, pos.Col)
		if tile == nil {
			continue
		}
		points := tile.Points
		if newPositions[pos] {
			premium := board.PremiumAt(pos.Row, pos.Col)
			points *= premium.LetterMultiplier()
			wordMultiplier *= premium.WordMultiplier()
		}
		score += points
	}
	return score * wordMultiplier
}

// FinalizeScores settles endgame accounting: every player forfeits the face
// value of tiles left on their rack, and if exactly one player emptied their
// rack they additionally collect the sum of everyone else's leftovers.
func FinalizeScores(players []*model.Player) map[model.PlayerID]int {
	final := make(map[model.PlayerID]int, len(players))

	leftoverTotal := 0
	var emptied *model.Player
	emptiedCount := 0
	for _, p := range players {
		leftover := p.Rack.Value()
		leftoverTotal += leftover
		final[p.ID] = p.Score - leftover
		if p.Rack.IsEmpty() {
			emptied = p
			emptiedCount++
		}
	}

	if emptiedCount == 1 {
		final[emptied.ID] += leftoverTotal
	}

	return final
}

// Winner returns the player ID with the highest final score. Ties go to the
// earliest-seated player.
func Winner(players []*model.Player, final map[model.PlayerID]int) model.PlayerID {
	var winner model.PlayerID
	best := 0
	for i, p := range players {
		if i == 0 || final[p.ID] > best {
			winner = p.ID
			best = final[p.ID]
		}
	}
	return winner
}
