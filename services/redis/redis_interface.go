package redis

import (
	redis_models "Tombolo/models/redis"
	redis_utils "Tombolo/services/redis/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations. Each game room lives in Redis
// as one JSON document keyed by the room code; every successful write
// publishes the full updated snapshot on the room's pub/sub channel so
// subscribed clients always re-render from complete state, never diffs.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// Rooms expire after a day of inactivity
const roomTTL = 24 * time.Hour

// How often an optimistic merge retries before giving up. Contention on
// a single room is human-scale, three attempts is already generous.
const maxMergeRetries = 3

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
)

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// CreateGameRoom stores a brand new room document.
// Key format: "room:{code}". Fails with ErrRoomAlreadyExists when the
// code is taken (SETNX, so two racing creators can't both win).
func (rc *RedisClient) CreateGameRoom(room *redis_models.GameRoom) error {
	key := redis_utils.FormatRoomKey(room.Code)
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling room data: %v", err)
	}

	ok, err := rc.client.SetNX(rc.ctx, key, data, roomTTL).Result()
	if err != nil {
		return fmt.Errorf("error creating room: %v", err)
	}
	if !ok {
		return ErrRoomAlreadyExists
	}
	return nil
}

// GetGameRoom retrieves a room document from Redis.
// Key format: "room:{code}"
func (rc *RedisClient) GetGameRoom(code string) (*redis_models.GameRoom, error) {
	key := redis_utils.FormatRoomKey(code)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting room data: %v", err)
	}

	var room redis_models.GameRoom
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("error unmarshaling room data: %v", err)
	}
	return &room, nil
}

// DeleteGameRoom removes a room document from Redis
func (rc *RedisClient) DeleteGameRoom(code string) error {
	key := redis_utils.FormatRoomKey(code)
	deleted, err := rc.client.Del(rc.ctx, key).Result()
	if err != nil {
		return fmt.Errorf("error deleting room data: %v", err)
	}
	if deleted == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// MergeGameRoom applies a field-level patch to the latest persisted
// version of the room: WATCH the key, read, apply the patch on top and
// write back inside the transaction. Concurrent writers touching
// disjoint fields never clobber each other; a raced write on the same
// key fails the transaction and the merge re-reads and retries.
// Returns the merged document and publishes it to subscribers.
func (rc *RedisClient) MergeGameRoom(code string, patch *redis_models.RoomPatch) (*redis_models.GameRoom, error) {
	key := redis_utils.FormatRoomKey(code)

	var merged *redis_models.GameRoom
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(rc.ctx, key).Bytes()
		if err == redis.Nil {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		var room redis_models.GameRoom
		if err := json.Unmarshal(data, &room); err != nil {
			return fmt.Errorf("error unmarshaling room data: %v", err)
		}
		patch.Apply(&room)

		out, err := json.Marshal(&room)
		if err != nil {
			return fmt.Errorf("error marshaling merged room: %v", err)
		}

		_, err = tx.TxPipelined(rc.ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(rc.ctx, key, out, roomTTL)
			return nil
		})
		if err == nil {
			merged = &room
		}
		return err
	}

	for i := 0; i < maxMergeRetries; i++ {
		err := rc.client.Watch(rc.ctx, txf, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		rc.publishRoom(merged)
		return merged, nil
	}
	return nil, fmt.Errorf("room %s kept changing during merge, giving up", code)
}

// AddPlayerIfAbsent atomically appends a member to the room. Joining is
// the highest-contention path (many players joining at once), so it has
// its own append-if-absent primitive instead of a generic merge.
// Returns the updated room and whether the player was actually added.
func (rc *RedisClient) AddPlayerIfAbsent(code, nickname string, joinedAt time.Time) (*redis_models.GameRoom, bool, error) {
	key := redis_utils.FormatRoomKey(code)

	var joined bool
	var result *redis_models.GameRoom
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(rc.ctx, key).Bytes()
		if err == redis.Nil {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		var room redis_models.GameRoom
		if err := json.Unmarshal(data, &room); err != nil {
			return fmt.Errorf("error unmarshaling room data: %v", err)
		}
		if room.HasPlayer(nickname) {
			joined = false
			result = &room
			return nil
		}
		room.Players = append(room.Players, redis_models.RoomPlayer{
			Nickname: nickname,
			JoinedAt: joinedAt,
		})

		out, err := json.Marshal(&room)
		if err != nil {
			return fmt.Errorf("error marshaling room data: %v", err)
		}
		_, err = tx.TxPipelined(rc.ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(rc.ctx, key, out, roomTTL)
			return nil
		})
		if err == nil {
			joined = true
			result = &room
		}
		return err
	}

	for i := 0; i < maxMergeRetries; i++ {
		err := rc.client.Watch(rc.ctx, txf, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		if joined {
			rc.publishRoom(result)
		}
		return result, joined, nil
	}
	return nil, false, fmt.Errorf("room %s kept changing during join, giving up", code)
}

// publishRoom pushes the full room snapshot to the room's channel.
// Publish failures are logged, not surfaced: the write already
// happened, subscribers will catch up on the next change.
func (rc *RedisClient) publishRoom(room *redis_models.GameRoom) {
	data, err := json.Marshal(room)
	if err != nil {
		log.Printf("[PUBLISH-ERROR] Error marshaling room %s: %v", room.Code, err)
		return
	}
	channel := redis_utils.FormatRoomChannel(room.Code)
	if err := rc.client.Publish(rc.ctx, channel, data).Err(); err != nil {
		log.Printf("[PUBLISH-ERROR] Error publishing room %s: %v", room.Code, err)
	}
}
