package model

// BoardSize is the grid dimension of the board.
const BoardSize = 15

// BoardCenter is the row and column of the center star cell.
const BoardCenter = 7

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// InBounds returns true if the position is within the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Premium is a cell's score multiplier kind, fixed at board creation.
type Premium string

const (
	PremiumNone         Premium = ""
	PremiumDoubleLetter Premium = "DL"
	PremiumTripleLetter Premium = "TL"
	PremiumDoubleWord   Premium = "DW"
	PremiumTripleWord   Premium = "TW"
	PremiumCenter       Premium = "STAR" // behaves as a double-word square
)

// LetterMultiplier returns the multiplier applied to a single letter.
func (p Premium) LetterMultiplier() int {
	switch p {
	case PremiumDoubleLetter:
		return 2
	case PremiumTripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier returns the multiplier applied to a whole word.
func (p Premium) WordMultiplier() int {
	switch p {
	case PremiumDoubleWord, PremiumCenter:
		return 2
	case PremiumTripleWord:
		return 3
	default:
		return 1
	}
}

// Standard premium layout, encoded per row. Word grid: 1 = none, 2 = double
// word, 3 = triple word; the center star is handled separately. Letter grid:
// 1 = none, 2 = double letter, 3 = triple letter.
var (
	wordPremiums = [BoardSize]string{
		"311111131111113",
		"121111111111121",
		"112111111111211",
		"111211111112111",
		"111121111121111",
		"111111111111111",
		"111111111111111",
		"311111121111113",
		"111111111111111",
		"111111111111111",
		"111121111121111",
		"111211111112111",
		"112111111111211",
		"121111111111121",
		"311111131111113",
	}

	letterPremiums = [BoardSize]string{
		"111211111112111",
		"111113111311111",
		"111111212111111",
		"211111121111112",
		"111111111111111",
		"131113111311131",
		"112111212111211",
		"111211111112111",
		"112111212111211",
		"131113111311131",
		"111111111111111",
		"211111121111112",
		"111111212111111",
		"111113111311111",
		"111211111112111",
	}
)

// premiumAt decodes the premium kind for a cell from the layout grids.
func premiumAt(row, col int) Premium {
	if row == BoardCenter && col == BoardCenter {
		return PremiumCenter
	}
	switch wordPremiums[row][col] {
	case '2':
		return PremiumDoubleWord
	case '3':
		return PremiumTripleWord
	}
	switch letterPremiums[row][col] {
	case '2':
		return PremiumDoubleLetter
	case '3':
		return PremiumTripleLetter
	}
	return PremiumNone
}

// Cell is one board square: an optional committed tile plus a premium kind.
type Cell struct {
	Tile    *PlacedTile
	Premium Premium
}

// Board is the 15x15 grid. It is treated as an immutable value: Placed
// returns a new board rather than mutating, so validation can build
// speculative boards without touching committed state.
type Board struct {
	Cells [BoardSize][BoardSize]Cell
}

// NewBoard creates an empty board with the standard premium layout.
func NewBoard() *Board {
	b := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			b.Cells[row][col] = Cell{Premium: premiumAt(row, col)}
		}
	}
	return b
}

// IsInside returns true if (row, col) is within the board.
func (b *Board) IsInside(row, col int) bool {
	return Position{Row: row, Col: col}.InBounds()
}

// HasTile returns true if the cell at (row, col) holds a committed tile.
func (b *Board) HasTile(row, col int) bool {
	return b.IsInside(row, col) && b.Cells[row][col].Tile != nil
}

// TileAt returns the committed tile at (row, col), or nil.
func (b *Board) TileAt(row, col int) *PlacedTile {
	if !b.IsInside(row, col) {
		return nil
	}
	return b.Cells[row][col].Tile
}

// PremiumAt returns the premium kind at (row, col).
func (b *Board) PremiumAt(row, col int) Premium {
	if !b.IsInside(row, col) {
		return PremiumNone
	}
	return b.Cells[row][col].Premium
}

// Clone returns a copy of the board. Cell tiles are shared pointers; placed
// tiles are immutable.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// Placed returns a new board with the tile placed at (row, col). The
// receiver is never modified.
func (b *Board) Placed(row, col int, tile PlacedTile) (*Board, error) {
	if !b.IsInside(row, col) {
		return nil, ErrOutOfBounds
	}
	if b.Cells[row][col].Tile != nil {
		return nil, ErrCellOccupied
	}
	nb := b.Clone()
	t := tile
	nb.Cells[row][col].Tile = &t
	return nb, nil
}

// IsEmpty returns true if no tile has been committed anywhere on the board.
func (b *Board) IsEmpty() bool {
	return b.TileCount() == 0
}

// TileCount returns the number of committed tiles.
func (b *Board) TileCount() int {
	count := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Cells[row][col].Tile != nil {
				count++
			}
		}
	}
	return count
}

// AdjacentOccupied returns true if any of the four orthogonal neighbors of
// (row, col) holds a tile.
func (b *Board) AdjacentOccupied(row, col int) bool {
	return b.HasTile(row-1, col) || b.HasTile(row+1, col) ||
		b.HasTile(row, col-1) || b.HasTile(row, col+1)
}

// HorizontalRun returns the contiguous occupied run through (row, col) along
// its row, as the letter sequence and the covered positions in reading
// order. An empty cell yields an empty run. A run of length 1 is not a word;
// that judgement is left to callers.
func (b *Board) HorizontalRun(row, col int) (string, []Position) {
	return b.run(row, col, 0, 1)
}

// VerticalRun is HorizontalRun along the column.
func (b *Board) VerticalRun(row, col int) (string, []Position) {
	return b.run(row, col, 1, 0)
}

func (b *Board) run(row, col, dRow, dCol int) (string, []Position) {
	if !b.HasTile(row, col) {
		return "", nil
	}
	startRow, startCol := row, col
	for b.HasTile(startRow-dRow, startCol-dCol) {
		startRow -= dRow
		startCol -= dCol
	}

	var word []rune
	var positions []Position
	for r, c := startRow, startCol; b.HasTile(r, c); r, c = r+dRow, c+dCol {
		word = append(word, b.Cells[r][c].Tile.Letter)
		positions = append(positions, Position{Row: r, Col: c})
	}
	return string(word), positions
}
