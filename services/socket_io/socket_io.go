package socket_io

import (
	"Tombolo/services/redis"
	"Tombolo/services/socket_io/handlers"
	syncpkg "Tombolo/sync"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	socketio_types "Tombolo/services/socket_io/types"
	socketio_utils "Tombolo/services/socket_io/utils"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.UserConnections = make(map[string]*socket.Socket)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Error reading SQL DB instance for sync manager: %v", err)
	}
	syncManager := syncpkg.NewSyncManager(redisClient, sqlDB)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, username, email := socketio_utils.VerifyUserConnection(client, db)
		if !success {
			return
		}

		// Add connection to map
		(*socketio_types.SocketServer)(sio).AddConnection(username, client)
		log.Printf("[CONNECT] %s (%s) connected, socket %s", username, email, client.Id())

		// One session per connection: it owns the (single) live room
		// subscription for this client
		session := socketio_types.NewRoomSession()

		// Join a room and start receiving full room snapshots
		client.On("join_room", handlers.HandleJoinRoom(redisClient, client, db, username, (*socketio_types.SocketServer)(sio), session))

		// Exit a room voluntarily
		client.On("exit_room", handlers.HandleExitRoom(client, username, session))

		// Get the full current state of a room
		client.On("get_room_info", handlers.GetRoomInfo(redisClient, client, username))

		// Word pool edits (admin, setup only)
		client.On("add_word", handlers.HandleAddWord(redisClient, client, username))
		client.On("delete_word", handlers.HandleDeleteWord(redisClient, client, username))

		// Lifecycle (admin)
		client.On("start_game", handlers.HandleStartGame(redisClient, client, username, (*socketio_types.SocketServer)(sio), syncManager))
		client.On("reset_game", handlers.HandleResetGame(redisClient, client, username, (*socketio_types.SocketServer)(sio), syncManager))
		client.On("reassign_grids", handlers.HandleReassignGrids(redisClient, client, username, (*socketio_types.SocketServer)(sio)))

		// Mark-approval protocol
		client.On("propose_mark", handlers.HandleProposeMark(redisClient, client, username))
		client.On("approve_mark", handlers.HandleApproveMark(redisClient, client, username, (*socketio_types.SocketServer)(sio), syncManager))
		client.On("reject_mark", handlers.HandleRejectMark(redisClient, client, username))

		// Destroy a room (admin)
		client.On("delete_room", handlers.HandleDeleteRoom(redisClient, client, db, username, (*socketio_types.SocketServer)(sio)))

		// Broadcast a chat message to all clients in a specific room
		client.On("broadcast_to_room", handlers.BroadcastMessageToRoom(redisClient, client, username, (*socketio_types.SocketServer)(sio)))

		// NOTE: will remove sio connection from map and close the session feed
		client.On("disconnecting", handlers.HandleDisconnecting(username, (*socketio_types.SocketServer)(sio), session))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	log.Println("Socket server started")
}
