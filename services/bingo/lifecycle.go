package bingo

import (
	"math/rand"
	"time"

	redis_models "Tombolo/models/redis"
)

// StartGame validates the start precondition and returns the patch that
// activates the room: status flips to active, a start timestamp is
// recorded and every current player receives a freshly drawn grid, all
// in one merge so no reader ever observes a half-assigned room.
//
// Calling StartGame on an already active room is a no-op resume and
// returns a nil patch. Restarting is an explicit user decision: the
// caller resets first, then starts again.
func StartGame(room *redis_models.GameRoom, rng *rand.Rand, now time.Time) (*redis_models.RoomPatch, error) {
	if room.Status == redis_models.RoomStatusActive {
		return nil, nil
	}

	patch, err := AssignPlayerGrids(room, rng)
	if err != nil {
		return nil, err
	}

	status := redis_models.RoomStatusActive
	startedAt := &now
	patch.Status = &status
	patch.StartedAt = &startedAt
	return patch, nil
}

// ResetGame returns the patch that puts the room back into setup:
// grids, the approval queue and the winner list are cleared, the word
// pool and the member list survive. Always succeeds.
func ResetGame(room *redis_models.GameRoom) *redis_models.RoomPatch {
	status := redis_models.RoomStatusSetup
	grids := map[string]*redis_models.Grid{}
	approvals := []redis_models.ApprovalRequest{}
	winners := []string{}
	var startedAt *time.Time

	return &redis_models.RoomPatch{
		Status:           &status,
		PlayerGrids:      &grids,
		PendingApprovals: &approvals,
		BingoWinners:     &winners,
		StartedAt:        &startedAt,
	}
}

// AssignPlayerGrids draws an independent shuffle for every current
// member and returns the complete player_grids map as a single patch.
// Grids are not required to be distinct between players, collisions are
// fine. Re-running it regenerates everything, which is the supported
// recovery path when a room went active with grids missing.
func AssignPlayerGrids(room *redis_models.GameRoom, rng *rand.Rand) (*redis_models.RoomPatch, error) {
	if len(room.Words) < MinWordsToStart(room.GridSize) {
		return nil, ErrInsufficientWords
	}

	grids := make(map[string]*redis_models.Grid, len(room.Players))
	for _, player := range room.Players {
		grids[player.Nickname] = GenerateGrid(room.Words, room.GridSize, rng)
	}
	return &redis_models.RoomPatch{PlayerGrids: &grids}, nil
}
