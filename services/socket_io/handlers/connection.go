package handlers

import (
	socketio_types "Tombolo/services/socket_io/types"
	"log"
)

// Function to handle socket.io client disconnections. The session's
// room subscription is closed here so a dropped client never leaves a
// pub/sub listener behind.
func HandleDisconnecting(username string, sio *socketio_types.SocketServer,
	session *socketio_types.RoomSession) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] HandleDisconnecting started - User: %s", username)

		session.Detach()
		sio.RemoveConnection(username)

		log.Printf("[DISCONNECT-SUCCESS] User %s cleaned up", username)
	}
}
