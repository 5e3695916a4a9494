package handlers

import (
	"errors"

	"Tombolo/services/bingo"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// emitGameError reports a failed operation back to the client, keeping
// the per-condition code so the frontend can pick the right toast
func emitGameError(client *socket.Socket, err error) {
	var gameErr *bingo.Error
	if errors.As(err, &gameErr) {
		client.Emit("error", gin.H{
			"error": gameErr.Message,
			"code":  gameErr.Code,
			"kind":  string(gameErr.Kind),
		})
		return
	}
	client.Emit("error", gin.H{"error": err.Error()})
}

// asInt converts a socket.io argument to an int. Numbers arrive as
// float64 after JSON decoding.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// asString converts a socket.io argument to a string
func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
