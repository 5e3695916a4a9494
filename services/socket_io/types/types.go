package socketio_types

import (
	"sync"

	"Tombolo/services/redis"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track username -> socket connections
	UserConnections map[string]*socket.Socket
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(username string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[username] = socket
}

func (s *SocketServer) RemoveConnection(username string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, username)
}

func (s *SocketServer) GetConnection(username string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.UserConnections[username]
	return socket, exists
}

// RoomSession is the per-connection context object. It owns at most one
// live room subscription at a time: switching rooms closes the previous
// feed first, so listeners never leak when a client hops between rooms.
type RoomSession struct {
	mu       sync.Mutex
	roomCode string
	sub      *redis.RoomSubscription
}

func NewRoomSession() *RoomSession {
	return &RoomSession{}
}

// Attach binds the session to a room, replacing (and closing) any
// previous subscription
func (s *RoomSession) Attach(roomCode string, sub *redis.RoomSubscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Close()
	}
	s.roomCode = roomCode
	s.sub = sub
}

// Detach closes the current subscription, if any
func (s *RoomSession) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
	s.roomCode = ""
}

// RoomCode returns the room this session is currently attached to
func (s *RoomSession) RoomCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomCode
}
