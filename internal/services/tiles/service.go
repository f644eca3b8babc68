package tiles

import (
	"github.com/lexroom/lexroom/internal/dependencies/random"
	"github.com/lexroom/lexroom/internal/model"
)

// Service manages the finite tile supply: bag creation, rack dealing, and
// exchanges. All mutation happens under the owning room's command lock; the
// service itself holds no per-room state.
type Service struct {
	random random.Random
}

// New creates a new tile supply Service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// NewBag builds the 100-tile standard bag and shuffles it.
func (s *Service) NewBag() *model.Bag {
	bag := &model.Bag{Tiles: model.FullDistribution()}
	s.shuffle(bag)
	return bag
}

// DealRack draws a fresh rack of up to 7 tiles from the bag.
func (s *Service) DealRack(bag *model.Bag) *model.Rack {
	rack := model.NewRack()
	rack.Add(bag.Draw(model.RackSize)...)
	return rack
}

// Refill tops the rack back up to 7 tiles, or as close as the bag allows,
// and returns the tiles drawn.
func (s *Service) Refill(rack *model.Rack, bag *model.Bag) []model.Tile {
	need := model.RackSize - rack.Count()
	if need <= 0 {
		return nil
	}
	drawn := bag.Draw(need)
	rack.Add(drawn...)
	return drawn
}

// Exchange swaps the given rack letters ('*' for a blank) for fresh tiles
// from the bag. It fails atomically: when the bag is short or any letter is
// missing from the rack, neither the rack nor the bag is touched.
func (s *Service) Exchange(rack *model.Rack, letters []rune, bag *model.Bag) error {
	if bag.Count() < len(letters) {
		return model.ErrNotEnoughTilesInBag
	}

	// Dry run against a copy so a missing letter leaves the rack intact
	probe := rack.Clone()
	for _, letter := range letters {
		if _, err := probe.Remove(letter); err != nil {
			return err
		}
	}

	removed := make([]model.Tile, 0, len(letters))
	for _, letter := range letters {
		tile, _ := rack.Remove(letter)
		removed = append(removed, tile)
	}

	// Draw replacements before the returned tiles go back in, so a player
	// cannot immediately redraw a tile they just gave up
	rack.Add(bag.Draw(len(removed))...)
	bag.Return(removed...)
	s.shuffle(bag)

	return nil
}

func (s *Service) shuffle(bag *model.Bag) {
	random.Shuffle(s.random, len(bag.Tiles), func(i, j int) {
		bag.Tiles[i], bag.Tiles[j] = bag.Tiles[j], bag.Tiles[i]
	})
}
