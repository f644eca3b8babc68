package rules

import (
	"github.com/lexroom/lexroom/internal/model"
	"github.com/lexroom/lexroom/internal/services/words"
)

// Service validates and scores tile placements. It never mutates the board
// it is given: candidate state is built on copies, so a rejected move leaves
// committed state untouched.
type Service struct {
	oracle words.Oracle
}

// New creates a new rules Service
func New(oracle words.Oracle) *Service {
	return &Service{
		oracle: oracle,
	}
}

// ValidateAndScore checks a proposed placement against the committed board
// and, if legal, returns every word formed, the move score, and the
// candidate board carrying the new tiles. firstMove selects the
// center-cross rule instead of the adjacency rule.
func (s *Service) ValidateAndScore(
	board *model.Board,
	owner model.PlayerID,
	placements []model.Placement,
	firstMove bool,
) (*model.MoveResult, error) {
	if len(placements) == 0 {
		return nil, model.ErrEmptyPlacement
	}

	// Build the candidate board; this also rejects out-of-bounds targets,
	// occupied cells, and duplicate positions within the placement set.
	candidate := board
	for _, p := range placements {
		next, err := candidate.Placed(p.Row, p.Col, model.PlacedTile{Tile: p.Tile, OwnerID: owner})
		if err != nil {
			return nil, err
		}
		candidate = next
	}

	horizontal, err := placementLine(placements)
	if err != nil {
		return nil, err
	}

	if err := checkContiguity(candidate, placements, horizontal); err != nil {
		return nil, err
	}

	if err := checkConnectivity(board, placements, firstMove); err != nil {
		return nil, err
	}

	plays := formedWords(candidate, placements, horizontal)
	if len(plays) == 0 {
		return nil, model.ErrNoWordFormed
	}

	var invalid []string
	for _, play := range plays {
		if !s.oracle.IsValidWord(play.Word) {
			invalid = append(invalid, play.Word)
		}
	}
	if len(invalid) > 0 {
		return nil, &model.InvalidWordsError{Words: invalid}
	}

	newPositions := make(map[model.Position]bool, len(placements))
	for _, p := range placements {
		newPositions[model.Position{Row: p.Row, Col: p.Col}] = true
	}

	total := 0
	for i := range plays {
		plays[i].Score = scoreWord(candidate, plays[i], newPositions)
		total += plays[i].Score
	}

	usedFullRack := len(placements) == model.RackSize
	if usedFullRack {
		total += BingoBonus
	}

	return &model.MoveResult{
		Words:        plays,
		Score:        total,
		UsedFullRack: usedFullRack,
		Board:        candidate,
	}, nil
}

// placementLine determines the move's orientation. A single tile counts as
// horizontal here; its real orientation is settled during word extraction.
func placementLine(placements []model.Placement) (horizontal bool, err error) {
	sameRow, sameCol := true, true
	for _, p := range placements[1:] {
		if p.Row != placements[0].Row {
			sameRow = false
		}
		if p.Col != placements[0].Col {
			sameCol = false
		}
	}
	if !sameRow && !sameCol {
		return false, model.ErrPlacementNotLine
	}
	return sameRow, nil
}

// checkContiguity verifies the placements plus existing tiles form one
// unbroken run on the candidate board.
func checkContiguity(candidate *model.Board, placements []model.Placement, horizontal bool) error {
	if len(placements) < 2 {
		return nil
	}

	if horizontal {
		row := placements[0].Row
		minCol, maxCol := placements[0].Col, placements[0].Col
		for _, p := range placements[1:] {
			minCol = min(minCol, p.Col)
			maxCol = max(maxCol, p.Col)
		}
		for col := minCol; col <= maxCol; col++ {
			if !candidate.HasTile(row, col) {
				return model.ErrPlacementGap
			}
		}
		return nil
	}

	col := placements[0].Col
	minRow, maxRow := placements[0].Row, placements[0].Row
	for _, p := range placements[1:] {
		minRow = min(minRow, p.Row)
		maxRow = max(maxRow, p.Row)
	}
	for row := minRow; row <= maxRow; row++ {
		if !candidate.HasTile(row, col) {
			return model.ErrPlacementGap
		}
	}
	return nil
}

// checkConnectivity enforces the anchor rule: the first move must cover the
// center star, and every later move must touch at least one committed tile.
// Touching a committed tile at either end of the run is the same adjacency
// test, so a single pass over the placements covers both cases.
func checkConnectivity(board *model.Board, placements []model.Placement, firstMove bool) error {
	if firstMove || board.IsEmpty() {
		for _, p := range placements {
			if p.Row == model.BoardCenter && p.Col == model.BoardCenter {
				return nil
			}
		}
		return model.ErrFirstMoveCenter
	}

	for _, p := range placements {
		if board.AdjacentOccupied(p.Row, p.Col) {
			return nil
		}
	}
	return model.ErrDisconnectedMove
}

// formedWords extracts the main word through the placement line plus the
// perpendicular cross word through each new tile, deduplicated by start
// position and direction. Runs of length 1 are not words.
func formedWords(candidate *model.Board, placements []model.Placement, horizontal bool) []model.WordPlay {
	type wordKey struct {
		start      model.Position
		horizontal bool
	}

	seen := make(map[wordKey]bool)
	var plays []model.WordPlay

	add := func(word string, positions []model.Position, horiz bool) {
		if len(positions) < 2 {
			return
		}
		key := wordKey{start: positions[0], horizontal: horiz}
		if seen[key] {
			return
		}
		seen[key] = true
		plays = append(plays, model.WordPlay{
			Word:       word,
			Start:      positions[0],
			Horizontal: horiz,
			Positions:  positions,
		})
	}

	if len(placements) == 1 {
		// Single tile: whichever directions extend to length >= 2 count,
		// the longer one reading as the main word
		p := placements[0]
		hWord, hPos := candidate.HorizontalRun(p.Row, p.Col)
		vWord, vPos := candidate.VerticalRun(p.Row, p.Col)
		if len(hPos) >= len(vPos) {
			add(hWord, hPos, true)
			add(vWord, vPos, false)
		} else {
			add(vWord, vPos, false)
			add(hWord, hPos, true)
		}
		return plays
	}

	// Main word along the placement line
	first := placements[0]
	if horizontal {
		word, positions := candidate.HorizontalRun(first.Row, first.Col)
		add(word, positions, true)
	} else {
		word, positions := candidate.VerticalRun(first.Row, first.Col)
		add(word, positions, false)
	}

	// Cross word through each new tile
	for _, p := range placements {
		if horizontal {
			word, positions := candidate.VerticalRun(p.Row, p.Col)
			add(word, positions, false)
		} else {
			word, positions := candidate.HorizontalRun(p.Row, p.Col)
			add(word, positions, true)
		}
	}

	return plays
}
