package handlers

import (
	redis_models "Tombolo/models/redis"
	"Tombolo/services/redis"
	socketio_types "Tombolo/services/socket_io/types"
	"Tombolo/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to broadcast a chat message to all clients in a room. Only
// members may talk.
func BroadcastMessageToRoom(redisClient *redis.RedisClient, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing the room code or the message"})
			return
		}
		roomCode, ok := asString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Room code must be a string"})
			return
		}
		message, ok := asString(args[1])
		if !ok {
			client.Emit("error", gin.H{"error": "Message must be a string"})
			return
		}

		room, err := utils.CheckRoomExists(redisClient, roomCode, client)
		if err != nil {
			return
		}
		if !room.HasPlayer(username) && !utils.IsRoomCreator(room, username) {
			client.Emit("error", gin.H{"error": "You must join the room before sending messages"})
			return
		}

		chatMessage := redis_models.ChatMessage{
			Message:   message,
			Username:  username,
			Timestamp: time.Now(),
		}

		sio.Sio_server.To(socket.Room(roomCode)).Emit("new_message", chatMessage)
		log.Printf("[CHAT] %s sent a message to room %s", username, roomCode)
	}
}
