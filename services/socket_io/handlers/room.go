package handlers

import (
	models "Tombolo/models/postgres"
	"Tombolo/services/redis"
	socketio_types "Tombolo/services/socket_io/types"
	"Tombolo/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle the act of joining a room. The player is appended
// to the room membership (append-if-absent, joins are the contended
// path), the client is placed in the socket.io room for broadcasts and
// the session subscribes to the room's live snapshot feed. Every
// subsequent change to the room document reaches this client as a full
// "room_update" snapshot.
func HandleJoinRoom(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer,
	session *socketio_types.RoomSession) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinRoom started - User: %s, Socket ID: %s", username, client.Id())

		if len(args) < 1 {
			log.Printf("[JOIN-ERROR] Missing arguments for user %s", username)
			client.Emit("error", gin.H{"error": "Missing the room code"})
			return
		}
		roomCode, ok := asString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Room code must be a string"})
			return
		}

		room, joined, err := redisClient.AddPlayerIfAbsent(roomCode, username, time.Now())
		if err == redis.ErrRoomNotFound {
			log.Printf("[JOIN-ERROR] Room %s not found for user %s", roomCode, username)
			client.Emit("error", gin.H{"error": "Room not found"})
			return
		}
		if err != nil {
			log.Printf("[JOIN-ERROR] Error joining room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error joining the room"})
			return
		}

		// Join the socket.io room used for room-wide broadcasts
		client.Join(socket.Room(roomCode))

		// One live subscription per session; switching rooms closes the
		// previous feed
		sub := redisClient.SubscribeRoom(roomCode)
		session.Attach(roomCode, sub)
		go func() {
			for {
				select {
				case snapshot, open := <-sub.Updates:
					if !open {
						return
					}
					client.Emit("room_update", snapshot)
				case subErr := <-sub.Errors:
					log.Printf("[SUBSCRIBE-ERROR] Room %s feed for %s: %v", roomCode, username, subErr)
					client.Emit("error", gin.H{"error": "Lost track of a room update"})
				}
			}
		}()

		if joined {
			sio.Sio_server.To(socket.Room(roomCode)).Emit("player_joined", gin.H{
				"room_code": roomCode,
				"nickname":  username,
			})
		}

		log.Printf("[JOIN-SUCCESS] User %s joined room %s", username, roomCode)
		client.Emit("joined_room", gin.H{
			"room_code": roomCode,
			"message":   "Welcome to the room!",
		})
		client.Emit("room_update", room)
	}
}

// Exit a room voluntarily. Membership is kept in the document (leavers
// are not purged), only the live feed and the socket room are dropped.
func HandleExitRoom(client *socket.Socket, username string,
	session *socketio_types.RoomSession) func(args ...interface{}) {
	return func(args ...interface{}) {
		roomCode := session.RoomCode()
		if roomCode == "" {
			client.Emit("error", gin.H{"error": "You are not in a room"})
			return
		}

		session.Detach()
		client.Leave(socket.Room(roomCode))

		log.Printf("[EXIT] User %s left room %s", username, roomCode)
		client.Emit("left_room", gin.H{"room_code": roomCode})
	}
}

// Get the full current state of a room on demand
func GetRoomInfo(redisClient *redis.RedisClient, client *socket.Socket,
	username string) func(args ...interface{}) {
	return func(args ...interface{}) {
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

		client.Emit("room_info", room)
	}
}

// Destroy a room entirely. Only the creator can do this; everyone in
// the socket room is told to leave before the document disappears.
func HandleDeleteRoom(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
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
			client.Emit("error", gin.H{"error": "Only the room creator can delete it"})
			return
		}

		sio.Sio_server.To(socket.Room(roomCode)).Emit("room_deleted", gin.H{
			"room_code": roomCode,
		})

		if err := db.Where("code = ?", roomCode).Delete(&models.GameRoom{}).Error; err != nil {
			log.Printf("[DELETE-ERROR] Error deleting room row %s: %v", roomCode, err)
		}
		if err := redisClient.DeleteGameRoom(roomCode); err != nil && err != redis.ErrRoomNotFound {
			log.Printf("[DELETE-ERROR] Error deleting room document %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error deleting the room"})
			return
		}

		log.Printf("[DELETE-SUCCESS] Room %s deleted by %s", roomCode, username)
	}
}
