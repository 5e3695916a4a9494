package controllers

import (
	game_constants "Tombolo/constants/game"
	"Tombolo/middleware"
	models "Tombolo/models/postgres"
	redis_models "Tombolo/models/redis"
	"Tombolo/services/redis"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// requesterUsername resolves the authenticated user behind the request
func requesterUsername(c *gin.Context, db *gorm.DB) (string, bool) {
	email, err := middleware.JWT_decoder(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
		return "", false
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found: invalid email"})
		return "", false
	}
	return user.Username, true
}

// @Summary Creates a new bingo room
// @Description Creates the durable room row and the live room document, returns the room code
// @Tags rooms
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param grid_size formData int true "Grid size (3-5)"
// @Success 200 {object} object{room_code=string,message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/rooms [post]
// @Security ApiKeyAuth
func CreateRoom(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := requesterUsername(c, db)
		if !ok {
			return
		}

		gridSize, err := strconv.Atoi(c.PostForm("grid_size"))
		if err != nil || gridSize < game_constants.MinGridSize || gridSize > game_constants.MaxGridSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "grid_size must be an integer between 3 and 5"})
			return
		}

		newRoom := models.GameRoom{
			CreatorUsername: username,
			GridSize:        gridSize,
			Status:          redis_models.RoomStatusSetup,
		}
		if err := db.Create(&newRoom).Error; err != nil {
			log.Printf("[ROOM-CREATE-ERROR] Failed to create room row: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating room"})
			return
		}

		doc := &redis_models.GameRoom{
			Code:            newRoom.Code,
			GridSize:        gridSize,
			CreatorUsername: username,
			Status:          redis_models.RoomStatusSetup,
			Words:           []string{},
			Players:         []redis_models.RoomPlayer{},
			PlayerGrids:     map[string]*redis_models.Grid{},
			BingoWinners:    []string{},
			CreatedAt:       time.Now(),
		}
		if err := redisClient.CreateGameRoom(doc); err != nil {
			// Roll the durable row back so the code isn't left dangling
			db.Delete(&newRoom)
			log.Printf("[ROOM-CREATE-ERROR] Failed to create room document: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating room"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"room_code": newRoom.Code, "message": "Room created successfully"})
	}
}

// @Summary Gives the live state of a room
// @Description Given a room code, returns the full current room document
// @Tags rooms
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param room_code path string true "Code of the room wanted"
// @Success 200 {object} object{room=object}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/rooms/{room_code} [get]
// @Security ApiKeyAuth
func GetRoomInfo(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("room_code")

		room, err := redisClient.GetGameRoom(code)
		if err == redis.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"room": room})
	}
}

// @Summary Lists the rooms created by the requester
// @Description Returns the durable rows of every room this user created
// @Tags rooms
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{room_code=string,status=string,grid_size=integer,created_at=string}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/rooms [get]
// @Security ApiKeyAuth
func GetMyRooms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := requesterUsername(c, db)
		if !ok {
			return
		}

		var gameRooms []models.GameRoom
		if err := db.Where("creator_username = ?", username).Order("created_at").Find(&gameRooms).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing rooms"})
			return
		}

		rooms := make([]gin.H, len(gameRooms))
		for i, room := range gameRooms {
			rooms[i] = gin.H{
				"room_code":  room.Code,
				"status":     room.Status,
				"grid_size":  room.GridSize,
				"winners":    room.Winners,
				"created_at": room.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, rooms)
	}
}

// @Summary Deletes a room
// @Description Destroys the room document and its durable row; only the creator may do this
// @Tags rooms
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param room_code path string true "Code of the room to delete"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/rooms/{room_code} [delete]
// @Security ApiKeyAuth
func DeleteRoom(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := requesterUsername(c, db)
		if !ok {
			return
		}
		code := c.Param("room_code")

		var room models.GameRoom
		if err := db.Where("code = ?", code).First(&room).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		if room.CreatorUsername != username {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the room creator can delete it"})
			return
		}

		if err := db.Delete(&room).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting room"})
			return
		}
		if err := redisClient.DeleteGameRoom(code); err != nil && err != redis.ErrRoomNotFound {
			log.Printf("[ROOM-DELETE-ERROR] Error deleting room document %s: %v", code, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
	}
}
