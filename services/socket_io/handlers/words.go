package handlers

import (
	"Tombolo/services/bingo"
	"Tombolo/services/redis"
	"Tombolo/utils"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Append a word to the room's pool. Admin-only, setup only. The merged
// document is fanned out to subscribers by the store layer.
func HandleAddWord(redisClient *redis.RedisClient, client *socket.Socket,
	username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing the room code or the word"})
			return
		}
		roomCode, ok := asString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Room code must be a string"})
			return
		}
		word, ok := asString(args[1])
		if !ok {
			client.Emit("error", gin.H{"error": "Word must be a string"})
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

		patch, err := bingo.AddWord(room, word)
		if err != nil {
			emitGameError(client, err)
			return
		}
		if _, err := redisClient.MergeGameRoom(roomCode, patch); err != nil {
			log.Printf("[WORD-ERROR] Error saving word for room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error saving the word"})
			return
		}

		log.Printf("[WORD] %s added a word to room %s", username, roomCode)
	}
}

// Remove the word at the given position of the pool. Admin-only,
// setup only.
func HandleDeleteWord(redisClient *redis.RedisClient, client *socket.Socket,
	username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing the room code or the word position"})
			return
		}
		roomCode, ok := asString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Room code must be a string"})
			return
		}
		index, ok := asInt(args[1])
		if !ok {
			client.Emit("error", gin.H{"error": "Word position must be a number"})
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

		patch, err := bingo.RemoveWord(room, index)
		if err != nil {
			emitGameError(client, err)
			return
		}
		if _, err := redisClient.MergeGameRoom(roomCode, patch); err != nil {
			log.Printf("[WORD-ERROR] Error removing word from room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error removing the word"})
			return
		}

		log.Printf("[WORD] %s removed word %d from room %s", username, index, roomCode)
	}
}
