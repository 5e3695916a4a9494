package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Ping the server
// @Description Returns a pong, to check availability
// @Tags testing
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
