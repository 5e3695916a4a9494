package handlers

import (
	"Tombolo/services/bingo"
	"Tombolo/services/redis"
	socketio_types "Tombolo/services/socket_io/types"
	"Tombolo/sync"
	"Tombolo/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// A player claims the word at (row, col) on their own grid was called.
// The cell goes to marked-pending and the admin sees a new entry in the
// approval queue. Each failure mode is reported with its own code.
func HandleProposeMark(redisClient *redis.RedisClient, client *socket.Socket,
	username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[MARK] HandleProposeMark started - User: %s", username)

		if len(args) < 3 {
			client.Emit("error", gin.H{"error": "Missing the room code or the cell coordinates"})
			return
		}
		roomCode, ok := asString(args[0])
		if !ok {
			client.Emit("error", gin.H{"error": "Room code must be a string"})
			return
		}
		row, rowOk := asInt(args[1])
		col, colOk := asInt(args[2])
		if !rowOk || !colOk {
			client.Emit("error", gin.H{"error": "Cell coordinates must be numbers"})
			return
		}

		room, err := utils.CheckRoomExists(redisClient, roomCode, client)
		if err != nil {
			return
		}

		patch, err := bingo.ProposeMark(room, username, row, col, time.Now())
		if err != nil {
			log.Printf("[MARK-ERROR] %s can't mark (%d,%d) in room %s: %v", username, row, col, roomCode, err)
			emitGameError(client, err)
			return
		}

		if _, err := redisClient.MergeGameRoom(roomCode, patch); err != nil {
			log.Printf("[MARK-ERROR] Error saving mark for room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error saving the mark"})
			return
		}

		log.Printf("[MARK-SUCCESS] %s marked (%d,%d) in room %s", username, row, col, roomCode)
		client.Emit("mark_pending", gin.H{
			"room_code": roomCode,
			"row":       row,
			"col":       col,
		})
	}
}

// The admin confirms a pending mark, addressed by its stable id. When
// the approval completes a line, the whole room hears about the bingo.
// Resolving an id that a concurrent action already settled is a normal
// outcome, reported as such rather than as a failure.
func HandleApproveMark(redisClient *redis.RedisClient, client *socket.Socket,
	username string, sio *socketio_types.SocketServer,
	syncManager *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[APPROVE] HandleApproveMark started - User: %s", username)

		roomCode, approvalId, ok := resolveArgs(client, args)
		if !ok {
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

		patch, winner, err := bingo.ApproveMark(room, approvalId)
		if err == bingo.ErrApprovalNotFound {
			client.Emit("approval_already_resolved", gin.H{
				"room_code":   roomCode,
				"approval_id": approvalId,
			})
			return
		}
		if err != nil {
			emitGameError(client, err)
			return
		}

		if _, err := redisClient.MergeGameRoom(roomCode, patch); err != nil {
			log.Printf("[APPROVE-ERROR] Error saving approval for room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error saving the approval"})
			return
		}

		if winner != "" {
			log.Printf("[BINGO] %s completed a line in room %s", winner, roomCode)
			sio.Sio_server.To(socket.Room(roomCode)).Emit("bingo", gin.H{
				"room_code": roomCode,
				"winner":    winner,
			})
			if err := syncManager.SyncRoomState(roomCode); err != nil {
				log.Printf("[APPROVE-ERROR] Error syncing winners for room %s: %v", roomCode, err)
			}
		}

		log.Printf("[APPROVE-SUCCESS] Approval %s resolved in room %s", approvalId, roomCode)
	}
}

// The admin turns a pending mark down: the cell returns to unmarked and
// the player may propose it again later.
func HandleRejectMark(redisClient *redis.RedisClient, client *socket.Socket,
	username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[REJECT] HandleRejectMark started - User: %s", username)

		roomCode, approvalId, ok := resolveArgs(client, args)
		if !ok {
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

		patch, err := bingo.RejectMark(room, approvalId)
		if err == bingo.ErrApprovalNotFound {
			client.Emit("approval_already_resolved", gin.H{
				"room_code":   roomCode,
				"approval_id": approvalId,
			})
			return
		}
		if err != nil {
			emitGameError(client, err)
			return
		}

		if _, err := redisClient.MergeGameRoom(roomCode, patch); err != nil {
			log.Printf("[REJECT-ERROR] Error saving rejection for room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error saving the rejection"})
			return
		}

		log.Printf("[REJECT-SUCCESS] Approval %s rejected in room %s", approvalId, roomCode)
	}
}

// resolveArgs pulls the (room code, approval id) pair both resolution
// events share
func resolveArgs(client *socket.Socket, args []interface{}) (string, string, bool) {
	if len(args) < 2 {
		client.Emit("error", gin.H{"error": "Missing the room code or the approval id"})
		return "", "", false
	}
	roomCode, ok := asString(args[0])
	if !ok {
		client.Emit("error", gin.H{"error": "Room code must be a string"})
		return "", "", false
	}
	approvalId, ok := asString(args[1])
	if !ok {
		client.Emit("error", gin.H{"error": "Approval id must be a string"})
		return "", "", false
	}
	return roomCode, approvalId, true
}
