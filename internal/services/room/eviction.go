package room

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lexroom/lexroom/internal/model"
)

// EvictIdleRooms deletes rooms nobody is using: rooms with no connected
// players past the grace window, and rooms with no activity at all past
// the idle window. Returns the number of rooms evicted.
func (c *Controller) EvictIdleRooms(ctx context.Context) (int, error) {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return 0, err
	}

	now := c.clock.Now()
	evicted := 0
	for _, snapshot := range rooms {
		if !c.shouldEvict(snapshot, now) {
			continue
		}
		if err := c.evictRoom(ctx, snapshot.ID, now); err != nil {
			c.logger.Error("failed to evict room",
				slog.String("room_id", string(snapshot.ID)),
				slog.Any("error", err))
			continue
		}
		evicted++
	}

	if evicted > 0 {
		c.logger.Info("idle rooms evicted", slog.Int("count", evicted))
	}
	return evicted, nil
}

func (c *Controller) shouldEvict(room *model.Room, now time.Time) bool {
	idle := now.Sub(room.LastActivity)
	if idle >= c.cfg.IdleTimeout {
		return true
	}
	return room.ConnectedPlayers() == 0 && idle >= c.cfg.GracePeriod
}

// evictRoom re-reads the room under its lock so a command that raced the
// sweep is respected, then deletes the room and its history
func (c *Controller) evictRoom(ctx context.Context, id model.RoomID, now time.Time) error {
	lock := c.lockRoom(id)
	defer lock.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrRoomNotFound) {
			return nil
		}
		return err
	}
	if !c.shouldEvict(room, now) {
		return nil
	}

	if err := c.storage.DeleteRoom(ctx, id); err != nil {
		return err
	}
	if err := c.storage.DeleteMoveRecords(ctx, id); err != nil {
		c.logger.Warn("failed to delete move history",
			slog.String("room_id", string(id)),
			slog.Any("error", err))
	}

	c.broadcaster.RoomClosed(id)
	c.forgetLock(id)

	c.logger.Info("room evicted",
		slog.String("room_id", string(id)),
		slog.String("status", string(room.Status)),
		slog.Duration("idle", now.Sub(room.LastActivity)))
	return nil
}

// RunEvictionLoop sweeps on the given interval until the context is done
func (c *Controller) RunEvictionLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := c.EvictIdleRooms(ctx); err != nil {
				c.logger.Error("eviction sweep failed", slog.Any("error", err))
			}
		case <-ctx.Done():
			return
		}
	}
}
