package sync

import (
	"Tombolo/services/redis"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SyncManager flushes the live Redis room state into the durable
// Postgres row. Redis holds the playable document, Postgres holds what
// must survive it: lifecycle status and recorded winners.
type SyncManager struct {
	redisClient *redis.RedisClient
	db          *sql.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *sql.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
	}
}

// SyncRoomState synchronizes the room state from Redis to PostgreSQL
func (sm *SyncManager) SyncRoomState(code string) error {
	room, err := sm.redisClient.GetGameRoom(code)
	if err != nil {
		return fmt.Errorf("error getting room state from Redis: %v", err)
	}

	winners, err := json.Marshal(room.BingoWinners)
	if err != nil {
		return fmt.Errorf("error marshaling winners: %v", err)
	}

	query := `
		UPDATE game_rooms
		SET
			status = $1,
			winners = $2
		WHERE code = $3
	`

	_, err = sm.db.Exec(query, room.Status, winners, code)
	if err != nil {
		return fmt.Errorf("error updating room state in PostgreSQL: %v", err)
	}

	return nil
}

// CleanupRoomData synchronizes the final state and cleans the Redis document
func (sm *SyncManager) CleanupRoomData(code string) error {
	if err := sm.SyncRoomState(code); err != nil {
		return fmt.Errorf("error syncing final room state: %v", err)
	}

	if err := sm.redisClient.DeleteGameRoom(code); err != nil && err != redis.ErrRoomNotFound {
		return fmt.Errorf("error cleaning room data: %v", err)
	}
	return nil
}
