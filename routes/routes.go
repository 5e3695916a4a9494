package routes

import (
	"Tombolo/controllers"
	"Tombolo/middleware"
	"Tombolo/services/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/login", controllers.Login(db))

	api.POST("/signup", controllers.SignUp(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.POST("/rooms", controllers.CreateRoom(db, redisClient))

		authentication.GET("/rooms", controllers.GetMyRooms(db))

		authentication.GET("/rooms/:room_code", controllers.GetRoomInfo(redisClient))

		authentication.DELETE("/rooms/:room_code", controllers.DeleteRoom(db, redisClient))
	}
}
