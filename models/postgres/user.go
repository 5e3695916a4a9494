package postgres

import (
	"time"
)

/*
 * 'User' contains the blueprint definition of a User. Users own the
 * rooms they create; authorization for destructive room operations is
 * checked against this identity.
 */
type User struct {
	Email        string    `gorm:"primaryKey;size:100;not null"`
	Username     string    `gorm:"size:50;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Rooms created by this user
	GameRooms []*GameRoom `gorm:"foreignKey:CreatorUsername;references:Username"`
}
