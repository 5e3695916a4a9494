package utils

import (
	"errors"
	"fmt"

	models "Tombolo/models/postgres"
	redis_models "Tombolo/models/redis"
	"Tombolo/services/redis"

	"gorm.io/gorm"

	"github.com/zishang520/socket.io/v2/socket"

	"github.com/gin-gonic/gin"
)

// UserExists checks that the connecting user is a registered account
func UserExists(db *gorm.DB, email string) error {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	return err
}

// CheckRoomExists fetches the live room document, emitting the error to
// the client when the room is gone
func CheckRoomExists(redisClient *redis.RedisClient, code string, client *socket.Socket) (*redis_models.GameRoom, error) {
	room, err := redisClient.GetGameRoom(code)
	if err != nil {
		fmt.Println("Room does not exist:", code)
		client.Emit("error", gin.H{"error": "Room does not exist"})
		return nil, err
	}
	return room, nil
}

// IsRoomCreator reports whether username is the admin of the room
func IsRoomCreator(room *redis_models.GameRoom, username string) bool {
	return room.CreatorUsername == username
}

func GetUsernameFromClient(client *socket.Socket) (string, error) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No username provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing username"})
		return "", errors.New("authentication data missing")
	}

	username, exists := authData["username"].(string)
	if !exists {
		return "", errors.New("username not found in authentication")
	}

	return username, nil
}
