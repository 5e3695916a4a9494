package postgres

import (
	"math/rand"
	"time"

	game_constants "Tombolo/constants/game"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'GameRoom' is the durable row behind a bingo room. The live document
 * (words, grids, approval queue) lives in Redis; this row is the
 * ownership index that survives Redis expiry and backs the
 * "rooms I created" listing.
 */
type GameRoom struct {
	Code            string         `gorm:"primaryKey;size:50;not null"`
	CreatorUsername string         `gorm:"size:50;index:idx_game_rooms_creator"`
	GridSize        int            `gorm:"not null"`
	Status          string         `gorm:"size:20;default:'setup'"`
	Winners         datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}

// Random room code generation
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateRoomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// Ensure the generated code is truly unique before inserting
func (r *GameRoom) BeforeCreate(tx *gorm.DB) (err error) {
	if r.Code != "" {
		return nil
	}
	for {
		newCode := generateRoomCode(game_constants.RoomCodeLength)
		var existing GameRoom
		if err := tx.Where("code = ?", newCode).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				r.Code = newCode
				return nil
			}
			return err
		}
		// Otherwise, loop again to generate a new unique code
	}
}
