package bingo

import (
	"math/rand"

	game_constants "Tombolo/constants/game"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newApprovalId generates the stable identifier an approval request is
// resolved by. 12 chars over a 62-char alphabet, collisions inside one
// room's queue are not a realistic concern.
func newApprovalId() string {
	b := make([]byte, game_constants.ApprovalIdLength)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
