package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomPatchAppliesOnlySetFields(t *testing.T) {
	room := &GameRoom{
		Code:     "ABC123",
		GridSize: 3,
		Status:   RoomStatusSetup,
		Words:    []string{"a", "b"},
		Players:  []RoomPlayer{{Nickname: "alice", JoinedAt: time.Now()}},
	}

	status := RoomStatusActive
	patch := &RoomPatch{Status: &status}
	patch.Apply(room)

	assert.Equal(t, RoomStatusActive, room.Status)
	// Untouched fields survive the merge
	assert.Equal(t, []string{"a", "b"}, room.Words)
	assert.Len(t, room.Players, 1)
}

func TestRoomPatchCanClearFields(t *testing.T) {
	now := time.Now()
	room := &GameRoom{
		Code:         "ABC123",
		BingoWinners: []string{"alice"},
		StartedAt:    &now,
	}

	winners := []string{}
	var startedAt *time.Time
	patch := &RoomPatch{BingoWinners: &winners, StartedAt: &startedAt}
	patch.Apply(room)

	assert.Empty(t, room.BingoWinners)
	assert.Nil(t, room.StartedAt)
}

func TestFindApproval(t *testing.T) {
	room := &GameRoom{
		PendingApprovals: []ApprovalRequest{
			{Id: "one", PlayerName: "alice"},
			{Id: "two", PlayerName: "bob"},
		},
	}

	idx, req := room.FindApproval("two")
	require.NotNil(t, req)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "bob", req.PlayerName)

	idx, req = room.FindApproval("gone")
	assert.Nil(t, req)
	assert.Equal(t, -1, idx)
}

func TestGridCloneIsIndependent(t *testing.T) {
	grid := NewGrid(3)
	grid.Cells[0][0] = Cell{Word: "a"}

	clone := grid.Clone()
	clone.Cells[0][0].Marked = true

	assert.False(t, grid.Cells[0][0].Marked)
	assert.True(t, clone.Cells[0][0].Marked)
}
