package model

// Bag is the undrawn tile reserve, used as a stack: Draw pops from the
// front. Shuffling is the tile supply service's job; the bag itself is
// dumb storage so it serializes cleanly.
type Bag struct {
	Tiles []Tile
}

// Count returns the number of undrawn tiles.
func (b *Bag) Count() int {
	return len(b.Tiles)
}

// IsEmpty returns true once every tile has been drawn.
func (b *Bag) IsEmpty() bool {
	return len(b.Tiles) == 0
}

// Draw removes up to n tiles from the front of the bag. It returns fewer
// than requested when the bag runs out; an exhausted bag is the endgame
// signal, not an error.
func (b *Bag) Draw(n int) []Tile {
	if n > len(b.Tiles) {
		n = len(b.Tiles)
	}
	drawn := make([]Tile, n)
	copy(drawn, b.Tiles[:n])
	b.Tiles = b.Tiles[n:]
	return drawn
}

// Return puts tiles back into the bag.
func (b *Bag) Return(tiles ...Tile) {
	b.Tiles = append(b.Tiles, tiles...)
}
