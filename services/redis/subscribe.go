package redis

import (
	redis_models "Tombolo/models/redis"
	redis_utils "Tombolo/services/redis/utils"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// RoomSubscription is a live feed of full room snapshots. A consumer
// (one socket session) holds at most one of these at a time and must
// Close it when leaving the room, otherwise the pub/sub goroutine and
// its channel leak.
type RoomSubscription struct {
	Updates <-chan *redis_models.GameRoom
	Errors  <-chan error

	pubsub *redis.PubSub
}

// SubscribeRoom starts listening for changes on a room document. Every
// message carries the complete current room state.
func (rc *RedisClient) SubscribeRoom(code string) *RoomSubscription {
	pubsub := rc.client.Subscribe(rc.ctx, redis_utils.FormatRoomChannel(code))

	updates := make(chan *redis_models.GameRoom, 8)
	errs := make(chan error, 1)

	go func() {
		defer close(updates)
		for msg := range pubsub.Channel() {
			var room redis_models.GameRoom
			if err := json.Unmarshal([]byte(msg.Payload), &room); err != nil {
				log.Printf("[SUBSCRIBE-ERROR] Bad payload on %s: %v", msg.Channel, err)
				select {
				case errs <- err:
				default:
				}
				continue
			}
			updates <- &room
		}
	}()

	return &RoomSubscription{
		Updates: updates,
		Errors:  errs,
		pubsub:  pubsub,
	}
}

// Close unsubscribes and ends the update feed
func (s *RoomSubscription) Close() error {
	return s.pubsub.Close()
}
