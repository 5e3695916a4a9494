package handlers

import (
	"Tombolo/services/bingo"
	"Tombolo/services/redis"
	socketio_types "Tombolo/services/socket_io/types"
	"Tombolo/sync"
	"Tombolo/utils"
	"log"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Start the game: flips the room to active and assigns every player a
// freshly drawn grid in one atomic merge. Starting an already active
// room resumes it without touching anything; restarting is the
// explicit reset_game + start_game sequence, a user decision the
// engine never makes silently.
func HandleStartGame(redisClient *redis.RedisClient, client *socket.Socket,
	username string, sio *socketio_types.SocketServer,
	syncManager *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[START] HandleStartGame started - User: %s", username)

		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing the room code"})
			return
		}
		roomCode, ok := asString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Room code must be a string"})
			return
		}

		room, err := utils.CheckRoomExists(redisClient, roomCode, client)
		if err != nil {
			return
		}
		if !utils.IsRoomCreator(room, username) {
			emitGameError(client, bingo.ErrNotRoomCreator)
			return
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		patch, err := bingo.StartGame(room, rng, time.Now())
		if err != nil {
			log.Printf("[START-ERROR] Can't start room %s: %v", roomCode, err)
			emitGameError(client, err)
			return
		}
		if patch == nil {
			// Already active, resume
			client.Emit("game_resumed", gin.H{"room_code": roomCode})
			client.Emit("room_update", room)
			return
		}

		if _, err := redisClient.MergeGameRoom(roomCode, patch); err != nil {
			log.Printf("[START-ERROR] Error saving started room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error starting the game"})
			return
		}

		if err := syncManager.SyncRoomState(roomCode); err != nil {
			log.Printf("[START-ERROR] Error syncing room %s to PostgreSQL: %v", roomCode, err)
		}

		sio.Sio_server.To(socket.Room(roomCode)).Emit("game_started", gin.H{
			"room_code": roomCode,
		})
		log.Printf("[START-SUCCESS] Room %s is now active", roomCode)
	}
}

// Reset the game back to setup: grids, pending approvals and winners
// are cleared, the word pool and the member list stay.
func HandleResetGame(redisClient *redis.RedisClient, client *socket.Socket,
	username string, sio *socketio_types.SocketServer,
	syncManager *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[RESET] HandleResetGame started - User: %s", username)

		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing the room code"})
			return
		}
		roomCode, ok := asString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Room code must be a string"})
			return
		}

		room, err := utils.CheckRoomExists(redisClient, roomCode, client)
		if err != nil {
			return
		}
		if !utils.IsRoomCreator(room, username) {
			emitGameError(client, bingo.ErrNotRoomCreator)
			return
		}

		patch := bingo.ResetGame(room)
		if _, err := redisClient.MergeGameRoom(roomCode, patch); err != nil {
			log.Printf("[RESET-ERROR] Error saving reset room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error resetting the game"})
			return
		}

		if err := syncManager.SyncRoomState(roomCode); err != nil {
			log.Printf("[RESET-ERROR] Error syncing room %s to PostgreSQL: %v", roomCode, err)
		}

		sio.Sio_server.To(socket.Room(roomCode)).Emit("game_reset", gin.H{
			"room_code": roomCode,
		})
		log.Printf("[RESET-SUCCESS] Room %s is back in setup", roomCode)
	}
}

// Regenerate every player's grid without a reset. Recovery path for a
// room that went active with grids missing (or a player who joined
// after assignment).
func HandleReassignGrids(redisClient *redis.RedisClient, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[REASSIGN] HandleReassignGrids started - User: %s", username)

		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing the room code"})
			return
		}
		roomCode, ok := asString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Room code must be a string"})
			return
		}

		room, err := utils.CheckRoomExists(redisClient, roomCode, client)
		if err != nil {
			return
		}
		if !utils.IsRoomCreator(room, username) {
			emitGameError(client, bingo.ErrNotRoomCreator)
			return
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		patch, err := bingo.AssignPlayerGrids(room, rng)
		if err != nil {
			emitGameError(client, err)
			return
		}
		if _, err := redisClient.MergeGameRoom(roomCode, patch); err != nil {
			log.Printf("[REASSIGN-ERROR] Error saving grids for room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error assigning grids"})
			return
		}

		sio.Sio_server.To(socket.Room(roomCode)).Emit("grids_reassigned", gin.H{
			"room_code": roomCode,
		})
		log.Printf("[REASSIGN-SUCCESS] Grids regenerated for room %s", roomCode)
	}
}
