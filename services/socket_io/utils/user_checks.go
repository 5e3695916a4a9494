package socketio_utils

import (
	"Tombolo/utils"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyUserConnection validates the handshake auth data of a new
// socket.io connection against the registered accounts. Returns the
// username and email when the connection is acceptable.
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (success bool, username string, email string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("Handshake auth data is missing or invalid!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, "", ""
	}

	username, hasUsername := authData["username"].(string)
	email, hasEmail := authData["email"].(string)
	if !hasUsername || !hasEmail {
		fmt.Println("No username/email provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing username or email"})
		return false, "", ""
	}

	if err := utils.UserExists(db, email); err != nil {
		fmt.Println("Unknown account tried to connect:", email)
		client.Emit("error", gin.H{"error": "Authentication failed: unknown account"})
		return false, "", ""
	}

	return true, username, email
}
