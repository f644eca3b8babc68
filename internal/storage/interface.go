package storage

import (
	"context"

	"github.com/lexroom/lexroom/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Profile operations
	SaveProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, id model.PlayerID) (*model.Profile, error)
	DeleteProfile(ctx context.Context, id model.PlayerID) error

	// Account operations (registered players)
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, playerID model.PlayerID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)

	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error
	ListRooms(ctx context.Context) ([]*model.Room, error)

	// Move history operations
	AppendMoveRecord(ctx context.Context, record *model.MoveRecord) error
	GetMoveRecords(ctx context.Context, roomID model.RoomID) ([]*model.MoveRecord, error)
	DeleteMoveRecords(ctx context.Context, roomID model.RoomID) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
