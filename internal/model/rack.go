package model

import "strings"

// RackSize is the maximum number of tiles a player holds.
const RackSize = 7

// Rack is a player's current hand of tiles. It is owned exclusively by its
// player's room and mutated only under the room's command lock.
type Rack struct {
	Tiles []Tile
}

// NewRack creates an empty rack.
func NewRack() *Rack {
	return &Rack{Tiles: make([]Tile, 0, RackSize)}
}

// Count returns the number of tiles on the rack.
func (r *Rack) Count() int {
	return len(r.Tiles)
}

// IsEmpty returns true if the rack holds no tiles.
func (r *Rack) IsEmpty() bool {
	return len(r.Tiles) == 0
}

// Value returns the summed point value of the tiles on the rack.
func (r *Rack) Value() int {
	total := 0
	for _, t := range r.Tiles {
		total += t.Points
	}
	return total
}

// Letters returns the rack's letters as a string, blanks as '*'.
func (r *Rack) Letters() string {
	var sb strings.Builder
	for _, t := range r.Tiles {
		sb.WriteRune(t.Letter)
	}
	return sb.String()
}

// Add appends tiles to the rack.
func (r *Rack) Add(tiles ...Tile) {
	r.Tiles = append(r.Tiles, tiles...)
}

// indexOf finds a tile matching the letter, treating '*' as a blank.
func (r *Rack) indexOf(letter rune) int {
	for i, t := range r.Tiles {
		if letter == BlankLetter {
			if t.IsBlank {
				return i
			}
			continue
		}
		if !t.IsBlank && t.Letter == letter {
			return i
		}
	}
	return -1
}

// Has returns true if the rack holds a tile for the letter ('*' for blanks).
func (r *Rack) Has(letter rune) bool {
	return r.indexOf(letter) >= 0
}

// Remove takes the first tile matching the letter off the rack and returns
// it. '*' removes a blank.
func (r *Rack) Remove(letter rune) (Tile, error) {
	i := r.indexOf(letter)
	if i < 0 {
		return Tile{}, ErrTileNotInRack
	}
	tile := r.Tiles[i]
	r.Tiles = append(r.Tiles[:i], r.Tiles[i+1:]...)
	return tile, nil
}

// Clone returns an independent copy of the rack.
func (r *Rack) Clone() *Rack {
	tiles := make([]Tile, len(r.Tiles))
	copy(tiles, r.Tiles)
	return &Rack{Tiles: tiles}
}
