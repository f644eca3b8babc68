package rules

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lexroom/lexroom/internal/model"
	"github.com/lexroom/lexroom/internal/services/words"
	"github.com/lexroom/lexroom/internal/storage/memory"
	"github.com/lexroom/lexroom/internal/testutil"
)

type ValidatorSuite struct {
	suite.Suite
	oracle  *words.Service
	service *Service
	board   *model.Board
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupTest() {
	s.oracle = words.New(memory.New(), testutil.NopLogger())
	s.oracle.LoadWords([]string{
		"AT", "SO", "TO", "CAT", "CATS", "HELLO", "NETWORK",
	})
	s.service = New(s.oracle)
	s.board = model.NewBoard()
}

// commit places a horizontal word directly, bypassing validation
func (s *ValidatorSuite) commit(row, col int, word string) {
	for i, letter := range word {
		next, err := s.board.Placed(row, col+i, model.PlacedTile{Tile: model.NewTile(letter), OwnerID: "p0"})
		s.Require().NoError(err)
		s.board = next
	}
}

func place(row, col int, letter rune) model.Placement {
	return model.Placement{Row: row, Col: col, Tile: model.NewTile(letter)}
}

// horizontal builds placements for a word laid left to right
func horizontal(row, col int, word string) []model.Placement {
	placements := make([]model.Placement, 0, len(word))
	for i, letter := range word {
		placements = append(placements, place(row, col+i, letter))
	}
	return placements
}

func (s *ValidatorSuite) TestFirstMoveThroughCenter() {
	result, err := s.service.ValidateAndScore(s.board, "p1", horizontal(7, 5, "HELLO"), true)
	s.Require().NoError(err)

	s.Require().Len(result.Words, 1)
	s.Equal("HELLO", result.Words[0].Word)
	// H4+E1+L1+L1+O1 = 8, doubled by the center star
	s.Equal(16, result.Score)
	s.False(result.UsedFullRack)

	// Committed board untouched; candidate carries the tiles
	s.True(s.board.IsEmpty())
	s.Equal(5, result.Board.TileCount())
}

func (s *ValidatorSuite) TestFirstMoveMissingCenter() {
	_, err := s.service.ValidateAndScore(s.board, "p1", horizontal(0, 0, "CAT"), true)
	s.ErrorIs(err, model.ErrFirstMoveCenter)
}

func (s *ValidatorSuite) TestEmptyPlacement() {
	_, err := s.service.ValidateAndScore(s.board, "p1", nil, true)
	s.ErrorIs(err, model.ErrEmptyPlacement)
}

func (s *ValidatorSuite) TestPlacementsNotInLine() {
	placements := []model.Placement{
		place(7, 7, 'C'),
		place(8, 8, 'A'),
	}
	_, err := s.service.ValidateAndScore(s.board, "p1", placements, true)
	s.ErrorIs(err, model.ErrPlacementNotLine)
}

func (s *ValidatorSuite) TestPlacementGap() {
	placements := []model.Placement{
		place(7, 6, 'C'),
		place(7, 7, 'A'),
		place(7, 9, 'T'),
	}
	_, err := s.service.ValidateAndScore(s.board, "p1", placements, true)
	s.ErrorIs(err, model.ErrPlacementGap)
}

func (s *ValidatorSuite) TestGapFilledByExistingTile() {
	s.commit(7, 6, "CAT")

	// C..S around the committed word leaves no actual gap
	placements := []model.Placement{place(7, 9, 'S')}
	result, err := s.service.ValidateAndScore(s.board, "p1", placements, false)
	s.Require().NoError(err)
	s.Equal("CATS", result.Words[0].Word)
}

func (s *ValidatorSuite) TestDisconnectedMove() {
	s.commit(7, 6, "CAT")

	_, err := s.service.ValidateAndScore(s.board, "p1", horizontal(0, 0, "SO"), false)
	s.ErrorIs(err, model.ErrDisconnectedMove)
}

func (s *ValidatorSuite) TestOutOfBounds() {
	_, err := s.service.ValidateAndScore(s.board, "p1", horizontal(7, 13, "CAT"), true)
	s.ErrorIs(err, model.ErrOutOfBounds)
}

func (s *ValidatorSuite) TestOccupiedCell() {
	s.commit(7, 6, "CAT")

	_, err := s.service.ValidateAndScore(s.board, "p1", []model.Placement{place(7, 7, 'X')}, false)
	s.ErrorIs(err, model.ErrCellOccupied)
}

func (s *ValidatorSuite) TestDuplicatePositionsRejected() {
	placements := []model.Placement{
		place(7, 7, 'A'),
		place(7, 7, 'T'),
	}
	_, err := s.service.ValidateAndScore(s.board, "p1", placements, true)
	s.ErrorIs(err, model.ErrCellOccupied)
}

func (s *ValidatorSuite) TestSingleTileNoWord() {
	_, err := s.service.ValidateAndScore(s.board, "p1", []model.Placement{place(7, 7, 'A')}, true)
	s.ErrorIs(err, model.ErrNoWordFormed)
}

func (s *ValidatorSuite) TestInvalidWordsRejected() {
	_, err := s.service.ValidateAndScore(s.board, "p1", horizontal(7, 6, "TAC"), true)

	var invalidErr *model.InvalidWordsError
	s.Require().ErrorAs(err, &invalidErr)
	s.Equal([]string{"TAC"}, invalidErr.Words)
}

func (s *ValidatorSuite) TestCrossWordsScored() {
	s.commit(7, 6, "CAT")

	// SO played vertically off the T column forms CATS as a cross word
	placements := []model.Placement{
		place(7, 9, 'S'),
		place(8, 9, 'O'),
	}
	result, err := s.service.ValidateAndScore(s.board, "p1", placements, false)
	s.Require().NoError(err)

	s.Require().Len(result.Words, 2)
	wordScores := make(map[string]int)
	for _, w := range result.Words {
		wordScores[w.Word] = w.Score
	}
	s.Equal(2, wordScores["SO"])
	// Existing tiles score face value; the center star under the A was
	// consumed on the turn it was covered
	s.Equal(6, wordScores["CATS"])
	s.Equal(8, result.Score)
}

func (s *ValidatorSuite) TestCrossWordInvalidRejectsWholeMove() {
	s.commit(7, 6, "CAT")

	// TO reads fine but the cross words CT and AO do not exist
	placements := []model.Placement{
		place(8, 6, 'T'),
		place(8, 7, 'O'),
	}
	_, err := s.service.ValidateAndScore(s.board, "p1", placements, false)

	var invalidErr *model.InvalidWordsError
	s.Require().ErrorAs(err, &invalidErr)
	s.Contains(invalidErr.Words, "CT")
	s.Contains(invalidErr.Words, "AO")
}

func (s *ValidatorSuite) TestBingoBonus() {
	result, err := s.service.ValidateAndScore(s.board, "p1", horizontal(7, 4, "NETWORK"), true)
	s.Require().NoError(err)

	s.True(result.UsedFullRack)
	// N1+E1+T1+W4+O1+R1+K5 = 14, doubled by the center, plus the bonus
	s.Equal(28+BingoBonus, result.Score)
}

func (s *ValidatorSuite) TestBlankScoresZero() {
	placements := []model.Placement{
		place(7, 6, 'C'),
		{Row: 7, Col: 7, Tile: model.Tile{Letter: 'A', Points: 0, IsBlank: true}},
		place(7, 8, 'T'),
	}
	result, err := s.service.ValidateAndScore(s.board, "p1", placements, true)
	s.Require().NoError(err)

	// C3+A0+T1 = 4, doubled by the center
	s.Equal(8, result.Score)
}

func (s *ValidatorSuite) TestSingleTileFormsBothDirections() {
	s.commit(7, 6, "CAT")
	s.commit(8, 8, "O")

	// S completes CATS horizontally; the lone O below is not adjacent to
	// the S column, so only one word forms
	result, err := s.service.ValidateAndScore(s.board, "p1", []model.Placement{place(7, 9, 'S')}, false)
	s.Require().NoError(err)
	s.Len(result.Words, 1)
	s.Equal("CATS", result.Words[0].Word)
}

func (s *ValidatorSuite) TestSingleTileTwoWords() {
	s.commit(7, 6, "CAT")
	s.commit(8, 9, "O")

	// S at (7,9) reads CATS across and SO down
	result, err := s.service.ValidateAndScore(s.board, "p1", []model.Placement{place(7, 9, 'S')}, false)
	s.Require().NoError(err)

	s.Len(result.Words, 2)
	found := make(map[string]bool)
	for _, w := range result.Words {
		found[w.Word] = true
	}
	s.True(found["CATS"])
	s.True(found["SO"])
}

func (s *ValidatorSuite) TestPremiumAppliesOnlyToNewTiles() {
	s.commit(7, 7, "AT")

	// CAT down through the existing A: (6,6) is a normal cell and the A's
	// center star was already consumed
	placements := []model.Placement{
		place(6, 7, 'C'),
		place(8, 7, 'T'),
	}
	result, err := s.service.ValidateAndScore(s.board, "p1", placements, false)
	s.Require().NoError(err)

	s.Require().Len(result.Words, 1)
	s.Equal("CAT", result.Words[0].Word)
	s.Equal(5, result.Score)
}
