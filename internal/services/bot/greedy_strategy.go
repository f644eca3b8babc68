package bot

import (
	"sort"

	"github.com/lexroom/lexroom/internal/model"
	"github.com/lexroom/lexroom/internal/services/rules"
)

const (
	// MaxPlacementTiles bounds the search: the greedy bot only considers
	// moves placing up to this many tiles, which keeps a full board scan
	// cheap while still finding solid plays
	MaxPlacementTiles = 3

	// blankPlaysAs is the letter a greedy bot assigns to a blank tile
	blankPlaysAs = 'E'

	// minBagForExchange is the bag size below which exchanging is not
	// worth a turn
	minBagForExchange = 7

	exchangeCount = 3
)

// GreedyStrategy scans every start cell and direction with small rack
// permutations, validates each candidate, and plays the highest-scoring
// legal move. With no legal move it exchanges its worst tiles, or passes
// when the bag is running dry.
type GreedyStrategy struct {
	rules *rules.Service
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(rulesService *rules.Service) *GreedyStrategy {
	return &GreedyStrategy{rules: rulesService}
}

// ChooseMove picks the highest-scoring placement the bounded search finds
func (s *GreedyStrategy) ChooseMove(room *model.Room, player *model.Player) Decision {
	if best := s.bestPlacement(room.Board, player); best != nil {
		return Decision{Placements: best}
	}

	if room.Bag.Count() >= minBagForExchange {
		if letters := worstLetters(player.Rack, exchangeCount); len(letters) > 0 {
			return Decision{Exchange: letters}
		}
	}

	return Decision{Pass: true}
}

func (s *GreedyStrategy) bestPlacement(board *model.Board, player *model.Player) []model.Placement {
	tiles := make([]model.Tile, 0, player.Rack.Count())
	for _, t := range player.Rack.Tiles {
		if t.IsBlank {
			t = model.Tile{Letter: blankPlaysAs, Points: 0, IsBlank: true}
		}
		tiles = append(tiles, t)
	}

	firstMove := board.IsEmpty()
	bestScore := 0
	var best []model.Placement

	for _, perm := range permutations(len(tiles), MaxPlacementTiles) {
		for row := 0; row < model.BoardSize; row++ {
			for col := 0; col < model.BoardSize; col++ {
				for _, horizontal := range []bool{true, false} {
					placements := layOut(board, tiles, perm, row, col, horizontal)
					if placements == nil {
						continue
					}
					result, err := s.rules.ValidateAndScore(board, player.ID, placements, firstMove)
					if err != nil {
						continue
					}
					if result.Score > bestScore {
						bestScore = result.Score
						best = placements
					}
				}
			}
		}
	}

	return best
}

// layOut drops the chosen tiles onto successive empty cells from the start
// position, sliding past occupied cells. Returns nil if the tiles do not
// fit on the board, or if the run would extend a word leftward/upward
// (those candidates are found from their own start cell instead).
func layOut(board *model.Board, tiles []model.Tile, perm []int, row, col int, horizontal bool) []model.Placement {
	prevRow, prevCol := row, col-1
	if !horizontal {
		prevRow, prevCol = row-1, col
	}
	if board.IsInside(prevRow, prevCol) && board.HasTile(prevRow, prevCol) {
		return nil
	}

	placements := make([]model.Placement, 0, len(perm))
	r, c := row, col
	for _, idx := range perm {
		for board.IsInside(r, c) && board.HasTile(r, c) {
			if horizontal {
				c++
			} else {
				r++
			}
		}
		if !board.IsInside(r, c) {
			return nil
		}
		placements = append(placements, model.Placement{Row: r, Col: c, Tile: tiles[idx]})
		if horizontal {
			c++
		} else {
			r++
		}
	}
	return placements
}

// permutations returns every ordered selection of 1..maxLen distinct
// indices from [0, n)
func permutations(n, maxLen int) [][]int {
	var out [][]int
	used := make([]bool, n)
	var current []int

	var walk func()
	walk = func() {
		if len(current) > 0 {
			out = append(out, append([]int(nil), current...))
		}
		if len(current) == maxLen {
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, i)
			walk()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	walk()
	return out
}

// worstLetters picks the lowest-value tiles to throw back
func worstLetters(rack *model.Rack, count int) []rune {
	tiles := append([]model.Tile(nil), rack.Tiles...)
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].Points < tiles[j].Points
	})

	if count > len(tiles) {
		count = len(tiles)
	}
	letters := make([]rune, 0, count)
	for _, t := range tiles[:count] {
		if t.IsBlank {
			// Blanks are too valuable to throw back
			continue
		}
		letters = append(letters, t.Letter)
	}
	return letters
}
