package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lexroom/lexroom/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) room(id model.RoomID, createdAt time.Time) *model.Room {
	return &model.Room{
		ID:         id,
		Board:      model.NewBoard(),
		Bag:        &model.Bag{Tiles: model.FullDistribution()},
		Status:     model.RoomStatusWaiting,
		MaxPlayers: 2,
		CreatedAt:  createdAt,
	}
}

// Profiles

func (s *StorageSuite) TestSaveAndGetProfile() {
	profile := &model.Profile{ID: "p1", Name: "Alice", IsGuest: true}
	s.Require().NoError(s.storage.SaveProfile(s.ctx, profile))

	got, err := s.storage.GetProfile(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)
	s.True(got.IsGuest)
}

func (s *StorageSuite) TestGetProfileNotFound() {
	_, err := s.storage.GetProfile(s.ctx, "nope")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeleteProfile() {
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{ID: "p1"}))
	s.Require().NoError(s.storage.DeleteProfile(s.ctx, "p1"))

	_, err := s.storage.GetProfile(s.ctx, "p1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Accounts

func (s *StorageSuite) TestSaveAndGetAccount() {
	account := &model.Account{PlayerID: "p1", Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	got, err := s.storage.GetAccount(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
}

func (s *StorageSuite) TestGetAccountByUsername() {
	account := &model.Account{PlayerID: "p1", Username: "alice"}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	got, err := s.storage.GetAccountByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.PlayerID)

	_, err = s.storage.GetAccountByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Rooms

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := s.room("ROOM01", time.Now())
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	got, err := s.storage.GetRoom(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Equal(model.RoomStatusWaiting, got.Status)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NOPE12")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestDeleteRoom() {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.room("ROOM01", time.Now())))
	s.Require().NoError(s.storage.DeleteRoom(s.ctx, "ROOM01"))

	_, err := s.storage.GetRoom(s.ctx, "ROOM01")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestListRoomsSortedByCreation() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.room("ROOM02", base.Add(time.Minute))))
	s.Require().NoError(s.storage.SaveRoom(s.ctx, s.room("ROOM01", base)))

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rooms, 2)
	s.Equal(model.RoomID("ROOM01"), rooms[0].ID)
	s.Equal(model.RoomID("ROOM02"), rooms[1].ID)
}

// Move history

func (s *StorageSuite) TestMoveRecordsAppendInOrder() {
	first := &model.MoveRecord{ID: "m1", RoomID: "ROOM01", Type: model.MoveTypePlace}
	second := &model.MoveRecord{ID: "m2", RoomID: "ROOM01", Type: model.MoveTypePass}
	s.Require().NoError(s.storage.AppendMoveRecord(s.ctx, first))
	s.Require().NoError(s.storage.AppendMoveRecord(s.ctx, second))

	records, err := s.storage.GetMoveRecords(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("m1", records[0].ID)
	s.Equal("m2", records[1].ID)
}

func (s *StorageSuite) TestMoveRecordsScopedToRoom() {
	s.Require().NoError(s.storage.AppendMoveRecord(s.ctx, &model.MoveRecord{ID: "m1", RoomID: "ROOM01"}))

	records, err := s.storage.GetMoveRecords(s.ctx, "ROOM02")
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *StorageSuite) TestDeleteMoveRecords() {
	s.Require().NoError(s.storage.AppendMoveRecord(s.ctx, &model.MoveRecord{ID: "m1", RoomID: "ROOM01"}))
	s.Require().NoError(s.storage.DeleteMoveRecords(s.ctx, "ROOM01"))

	records, err := s.storage.GetMoveRecords(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Empty(records)
}

// Dictionary

func (s *StorageSuite) TestDictionaryRoundTrip() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"CAT", "DOG"}))

	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"CAT", "DOG"}, words)
}

func (s *StorageSuite) TestDictionaryNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}
