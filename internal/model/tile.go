package model

// BlankLetter is the rune a blank tile carries while it sits in the bag or
// on a rack, before a placement assigns it a letter.
const BlankLetter = '*'

// TotalTiles is the size of a full bag at game start.
const TotalTiles = 100

// letterPoints is the standard letter scoring table. Blanks score 0.
var letterPoints = map[rune]int{
	'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2, 'H': 4,
	'I': 1, 'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1, 'P': 3,
	'Q': 10, 'R': 1, 'S': 1, 'T': 1, 'U': 1, 'V': 4, 'W': 4, 'X': 8,
	'Y': 4, 'Z': 10, BlankLetter: 0,
}

// letterCounts is the standard 100-tile distribution, including 2 blanks.
var letterCounts = map[rune]int{
	'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 2,
	'I': 9, 'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2,
	'Q': 1, 'R': 6, 'S': 4, 'T': 6, 'U': 4, 'V': 2, 'W': 2, 'X': 1,
	'Y': 2, 'Z': 1, BlankLetter: 2,
}

// Tile is an immutable letter tile. For a blank, IsBlank is true and Points
// is always 0, regardless of the letter the blank ends up representing.
type Tile struct {
	Letter  rune
	Points  int
	IsBlank bool
}

// NewTile creates a tile for the given letter using the standard point table.
func NewTile(letter rune) Tile {
	if letter == BlankLetter {
		return Tile{Letter: BlankLetter, Points: 0, IsBlank: true}
	}
	return Tile{Letter: letter, Points: letterPoints[letter]}
}

// LetterPoints returns the base point value for a letter, or 0 if unknown.
func LetterPoints(letter rune) int {
	return letterPoints[letter]
}

// DistributionCount returns how many tiles of a letter a full bag contains.
func DistributionCount(letter rune) int {
	return letterCounts[letter]
}

// FullDistribution returns the 100 tiles of a fresh, unshuffled bag in
// alphabetical order (blanks last).
func FullDistribution() []Tile {
	tiles := make([]Tile, 0, TotalTiles)
	for letter := 'A'; letter <= 'Z'; letter++ {
		for i := 0; i < letterCounts[letter]; i++ {
			tiles = append(tiles, NewTile(letter))
		}
	}
	for i := 0; i < letterCounts[BlankLetter]; i++ {
		tiles = append(tiles, NewTile(BlankLetter))
	}
	return tiles
}

// PlacedTile is a tile committed to a board cell, tagged with the player who
// played it. A placed blank records the letter it represents but keeps
// IsBlank true and Points 0.
type PlacedTile struct {
	Tile
	OwnerID PlayerID
}
