package bingo

import (
	"math/rand"
	"testing"
	"time"

	redis_models "Tombolo/models/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeRoom(t *testing.T, gridSize, wordCount int, players ...string) *redis_models.GameRoom {
	t.Helper()
	room := setupRoom(gridSize, wordCount, players...)
	patch, err := StartGame(room, rand.New(rand.NewSource(42)), time.Now())
	require.NoError(t, err)
	patch.Apply(room)
	return room
}

func TestProposeMarkQueuesApproval(t *testing.T) {
	room := activeRoom(t, 3, 9, "alice")

	patch, err := ProposeMark(room, "alice", 0, 0, time.Now())
	require.NoError(t, err)
	patch.Apply(room)

	cell := room.PlayerGrids["alice"].Cells[0][0]
	assert.True(t, cell.Marked)
	assert.False(t, cell.Approved)
	require.Len(t, room.PendingApprovals, 1)

	req := room.PendingApprovals[0]
	assert.NotEmpty(t, req.Id)
	assert.Equal(t, "alice", req.PlayerName)
	assert.Equal(t, 0, req.Row)
	assert.Equal(t, 0, req.Col)
	assert.Equal(t, cell.Word, req.Word)
}

func TestProposeMarkFailureModes(t *testing.T) {
	room := setupRoom(3, 9, "alice")

	_, err := ProposeMark(room, "alice", 0, 0, time.Now())
	assert.ErrorIs(t, err, ErrRoomNotActive)

	room = activeRoom(t, 3, 9, "alice")

	_, err = ProposeMark(room, "mallory", 0, 0, time.Now())
	assert.ErrorIs(t, err, ErrNotAMember)

	_, err = ProposeMark(room, "alice", 3, 0, time.Now())
	assert.ErrorIs(t, err, ErrInvalidCell)

	// A player who joined after assignment has no grid yet
	room.Players = append(room.Players, redis_models.RoomPlayer{Nickname: "dave", JoinedAt: time.Now()})
	_, err = ProposeMark(room, "dave", 0, 0, time.Now())
	assert.ErrorIs(t, err, ErrGridNotReady)
}

func TestProposeMarkOnMarkedCellIsRejected(t *testing.T) {
	room := activeRoom(t, 3, 9, "alice")

	patch, err := ProposeMark(room, "alice", 0, 1, time.Now())
	require.NoError(t, err)
	patch.Apply(room)

	// Pending cell
	_, err = ProposeMark(room, "alice", 0, 1, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyMarked)
	assert.Len(t, room.PendingApprovals, 1)

	// Approved cell rejects a re-propose as well
	patch, _, err = ApproveMark(room, room.PendingApprovals[0].Id)
	require.NoError(t, err)
	patch.Apply(room)

	_, err = ProposeMark(room, "alice", 0, 1, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyMarked)

	// The pre-marked FREE center can never be proposed again either
	_, err = ProposeMark(room, "alice", 1, 1, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyMarked)
}

func TestApproveMarkRoundTrip(t *testing.T) {
	room := activeRoom(t, 3, 9, "alice")

	patch, err := ProposeMark(room, "alice", 2, 2, time.Now())
	require.NoError(t, err)
	patch.Apply(room)
	require.Len(t, room.PendingApprovals, 1)

	patch, winner, err := ApproveMark(room, room.PendingApprovals[0].Id)
	require.NoError(t, err)
	patch.Apply(room)

	cell := room.PlayerGrids["alice"].Cells[2][2]
	assert.True(t, cell.Marked)
	assert.True(t, cell.Approved)
	assert.Empty(t, room.PendingApprovals)
	assert.Empty(t, winner)
}

func TestRejectMarkRoundTrip(t *testing.T) {
	room := activeRoom(t, 3, 9, "alice")

	patch, err := ProposeMark(room, "alice", 2, 0, time.Now())
	require.NoError(t, err)
	patch.Apply(room)

	patch, err = RejectMark(room, room.PendingApprovals[0].Id)
	require.NoError(t, err)
	patch.Apply(room)

	cell := room.PlayerGrids["alice"].Cells[2][0]
	assert.False(t, cell.Marked)
	assert.False(t, cell.Approved)
	assert.Empty(t, room.PendingApprovals)

	// A rejected mark is forgotten, the player may try the cell again
	patch, err = ProposeMark(room, "alice", 2, 0, time.Now())
	require.NoError(t, err)
	patch.Apply(room)
	assert.True(t, room.PlayerGrids["alice"].Cells[2][0].Marked)
	assert.Len(t, room.PendingApprovals, 1)
}

func TestResolveByStaleIdIsRecoverable(t *testing.T) {
	room := activeRoom(t, 3, 9, "alice")

	patch, err := ProposeMark(room, "alice", 0, 0, time.Now())
	require.NoError(t, err)
	patch.Apply(room)
	id := room.PendingApprovals[0].Id

	patch, _, err = ApproveMark(room, id)
	require.NoError(t, err)
	patch.Apply(room)

	// A second admin acting on the same snapshot resolves nothing
	_, _, err = ApproveMark(room, id)
	assert.ErrorIs(t, err, ErrApprovalNotFound)
	_, err = RejectMark(room, id)
	assert.ErrorIs(t, err, ErrApprovalNotFound)
}

func TestApprovalsResolveTheRightEntryUnderReordering(t *testing.T) {
	room := activeRoom(t, 3, 9, "alice", "bob")

	for _, rc := range [][2]int{{0, 0}, {0, 1}} {
		patch, err := ProposeMark(room, "alice", rc[0], rc[1], time.Now())
		require.NoError(t, err)
		patch.Apply(room)
	}
	patch, err := ProposeMark(room, "bob", 2, 2, time.Now())
	require.NoError(t, err)
	patch.Apply(room)
	require.Len(t, room.PendingApprovals, 3)

	// Resolve the middle entry first; the ids keep the others addressable
	second := room.PendingApprovals[1].Id
	last := room.PendingApprovals[2].Id

	patch, err = RejectMark(room, second)
	require.NoError(t, err)
	patch.Apply(room)

	patch, _, err = ApproveMark(room, last)
	require.NoError(t, err)
	patch.Apply(room)

	assert.True(t, room.PlayerGrids["bob"].Cells[2][2].Approved)
	assert.False(t, room.PlayerGrids["alice"].Cells[0][1].Marked)
	require.Len(t, room.PendingApprovals, 1)
	assert.Equal(t, "alice", room.PendingApprovals[0].PlayerName)
}

// Full walkthrough: one player fills row 0 of a 3x3 card and the third
// approval produces the bingo.
func TestFirstApprovalCompletingALineWins(t *testing.T) {
	room := setupRoom(3, 9, "alice")
	room.Words = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	patch, err := StartGame(room, rand.New(rand.NewSource(42)), time.Now())
	require.NoError(t, err)
	patch.Apply(room)

	for col := 0; col < 3; col++ {
		patch, err := ProposeMark(room, "alice", 0, col, time.Now())
		require.NoError(t, err)
		patch.Apply(room)

		approvePatch, winner, err := ApproveMark(room, room.PendingApprovals[0].Id)
		require.NoError(t, err)
		approvePatch.Apply(room)

		if col < 2 {
			assert.Empty(t, winner)
			assert.Empty(t, room.BingoWinners)
		} else {
			assert.Equal(t, "alice", winner)
			assert.Equal(t, []string{"alice"}, room.BingoWinners)
		}
	}
	assert.Empty(t, room.PendingApprovals)
	assert.Equal(t, redis_models.RoomStatusActive, room.Status, "winners don't end the game")
}

func TestWinnerIsCreditedOnlyOnce(t *testing.T) {
	room := activeRoom(t, 3, 9, "alice")
	room.BingoWinners = []string{"alice"}

	// Complete the anti-diagonal; alice already holds a credited bingo
	for _, rc := range [][2]int{{0, 2}, {2, 0}} {
		patch, err := ProposeMark(room, "alice", rc[0], rc[1], time.Now())
		require.NoError(t, err)
		patch.Apply(room)

		approvePatch, winner, err := ApproveMark(room, room.PendingApprovals[0].Id)
		require.NoError(t, err)
		approvePatch.Apply(room)
		assert.Empty(t, winner)
	}
	assert.Equal(t, []string{"alice"}, room.BingoWinners)
}
