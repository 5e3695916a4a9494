package bingo

import (
	"math/rand"
	"testing"
	"time"

	redis_models "Tombolo/models/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRoom(gridSize, wordCount int, players ...string) *redis_models.GameRoom {
	room := &redis_models.GameRoom{
		Code:            "TEST01",
		GridSize:        gridSize,
		CreatorUsername: "admin@test.com",
		Status:          redis_models.RoomStatusSetup,
		Words:           testWords(wordCount),
		PlayerGrids:     map[string]*redis_models.Grid{},
		CreatedAt:       time.Now(),
	}
	for _, nickname := range players {
		room.Players = append(room.Players, redis_models.RoomPlayer{
			Nickname: nickname,
			JoinedAt: time.Now(),
		})
	}
	return room
}

func TestStartGameAssignsGridsToEveryPlayer(t *testing.T) {
	room := setupRoom(3, 9, "alice", "bob", "carol")

	patch, err := StartGame(room, rand.New(rand.NewSource(1)), time.Now())
	require.NoError(t, err)
	require.NotNil(t, patch)

	patch.Apply(room)
	assert.Equal(t, redis_models.RoomStatusActive, room.Status)
	require.NotNil(t, room.StartedAt)
	require.Len(t, room.PlayerGrids, 3)
	for _, nickname := range []string{"alice", "bob", "carol"} {
		grid := room.PlayerGrids[nickname]
		require.NotNil(t, grid, "missing grid for %s", nickname)
		assert.Equal(t, 3, grid.Size)
	}
}

func TestStartGameInsufficientWords(t *testing.T) {
	room := setupRoom(3, 8, "alice")

	patch, err := StartGame(room, rand.New(rand.NewSource(1)), time.Now())
	assert.ErrorIs(t, err, ErrInsufficientWords)
	assert.Nil(t, patch)
	assert.Equal(t, redis_models.RoomStatusSetup, room.Status)
	assert.Empty(t, room.PlayerGrids)
}

func TestStartGameOnActiveRoomIsANoOpResume(t *testing.T) {
	room := setupRoom(3, 9, "alice")
	patch, err := StartGame(room, rand.New(rand.NewSource(1)), time.Now())
	require.NoError(t, err)
	patch.Apply(room)
	before := room.PlayerGrids["alice"]

	patch, err = StartGame(room, rand.New(rand.NewSource(2)), time.Now())
	require.NoError(t, err)
	assert.Nil(t, patch, "resume must not regenerate anything")
	assert.Same(t, before, room.PlayerGrids["alice"])
}

func TestResetGameClearsGameStateOnly(t *testing.T) {
	room := setupRoom(3, 10, "alice", "bob")
	patch, err := StartGame(room, rand.New(rand.NewSource(1)), time.Now())
	require.NoError(t, err)
	patch.Apply(room)

	markPatch, err := ProposeMark(room, "alice", 0, 0, time.Now())
	require.NoError(t, err)
	markPatch.Apply(room)
	room.BingoWinners = []string{"bob"}

	ResetGame(room).Apply(room)

	assert.Equal(t, redis_models.RoomStatusSetup, room.Status)
	assert.Empty(t, room.PlayerGrids)
	assert.Empty(t, room.PendingApprovals)
	assert.Empty(t, room.BingoWinners)
	assert.Nil(t, room.StartedAt)
	// Words and membership survive a reset
	assert.Len(t, room.Words, 10)
	assert.Len(t, room.Players, 2)
}

func TestAssignPlayerGridsIsReRunnable(t *testing.T) {
	room := setupRoom(4, 20, "alice")
	patch, err := StartGame(room, rand.New(rand.NewSource(1)), time.Now())
	require.NoError(t, err)
	patch.Apply(room)
	first := room.PlayerGrids["alice"]

	// Recovery path: regenerate all grids without a full reset
	patch, err = AssignPlayerGrids(room, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	patch.Apply(room)

	second := room.PlayerGrids["alice"]
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, redis_models.RoomStatusActive, room.Status)
}

func TestAssignPlayerGridsChecksWordCount(t *testing.T) {
	room := setupRoom(5, 24, "alice")

	patch, err := AssignPlayerGrids(room, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInsufficientWords)
	assert.Nil(t, patch)
}
