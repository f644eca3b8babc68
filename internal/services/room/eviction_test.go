package room

import (
	"time"

	"github.com/lexroom/lexroom/internal/model"
)

func (s *ControllerSuite) TestEvictionSkipsActiveRooms() {
	s.createActiveRoom()

	s.clock.Advance(time.Minute)
	evicted, err := s.controller.EvictIdleRooms(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, evicted)

	_, err = s.controller.GetRoom(s.ctx, "ROOM01")
	s.NoError(err)
}

func (s *ControllerSuite) TestEvictionAfterGracePeriod() {
	s.createActiveRoom()
	s.Require().NoError(s.controller.Disconnect(s.ctx, "ROOM01", s.alice.ID))
	s.Require().NoError(s.controller.Disconnect(s.ctx, "ROOM01", s.bob.ID))

	s.clock.Advance(2*time.Minute + time.Second)
	evicted, err := s.controller.EvictIdleRooms(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, evicted)

	_, err = s.controller.GetRoom(s.ctx, "ROOM01")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ControllerSuite) TestEvictionDeletesMoveHistory() {
	s.createActiveRoom()
	s.stage("ROOM01", func(room *model.Room) {
		room.Players[0].Rack = rackOf("CATXYZW")
	})
	_, err := s.controller.SubmitMove(s.ctx, "ROOM01", s.alice.ID, placements(7, 6, "CAT"))
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Disconnect(s.ctx, "ROOM01", s.alice.ID))
	s.Require().NoError(s.controller.Disconnect(s.ctx, "ROOM01", s.bob.ID))
	s.clock.Advance(3 * time.Minute)

	_, err = s.controller.EvictIdleRooms(s.ctx)
	s.Require().NoError(err)

	records, err := s.storage.GetMoveRecords(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *ControllerSuite) TestEvictionGraceNotReached() {
	s.createActiveRoom()
	s.Require().NoError(s.controller.Disconnect(s.ctx, "ROOM01", s.alice.ID))
	s.Require().NoError(s.controller.Disconnect(s.ctx, "ROOM01", s.bob.ID))

	s.clock.Advance(time.Minute)
	evicted, err := s.controller.EvictIdleRooms(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, evicted)
}

func (s *ControllerSuite) TestEvictionAfterIdleTimeout() {
	// Connected players do not keep a room alive forever
	s.createActiveRoom()

	s.clock.Advance(10*time.Minute + time.Second)
	evicted, err := s.controller.EvictIdleRooms(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, evicted)
}

func (s *ControllerSuite) TestEvictionRespectsRacingCommand() {
	s.createActiveRoom()
	s.Require().NoError(s.controller.Disconnect(s.ctx, "ROOM01", s.alice.ID))
	s.Require().NoError(s.controller.Disconnect(s.ctx, "ROOM01", s.bob.ID))
	s.clock.Advance(3 * time.Minute)

	// A reconnect between the sweep's snapshot and the locked re-check
	// rescues the room; staging LastActivity simulates that window
	s.stage("ROOM01", func(room *model.Room) {
		room.Players[0].IsConnected = true
		room.LastActivity = s.clock.Now()
	})

	evicted, err := s.controller.EvictIdleRooms(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, evicted)
}
