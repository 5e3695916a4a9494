package bingo

import (
	"time"

	redis_models "Tombolo/models/redis"
)

// Per-cell protocol: unmarked -> marked(pending) -> approved, or back
// to unmarked on rejection. Player and admin only talk through the
// shared room document, there is no direct channel between them.

// ProposeMark claims that the word at (row, col) on playerName's grid
// was called. The cell flips to marked and an approval request joins
// the queue, unless one is already outstanding for that exact cell.
// Marked cells (pending or approved) reject a second proposal.
func ProposeMark(room *redis_models.GameRoom, playerName string, row, col int, now time.Time) (*redis_models.RoomPatch, error) {
	if room.Status != redis_models.RoomStatusActive {
		return nil, ErrRoomNotActive
	}
	if !room.HasPlayer(playerName) {
		return nil, ErrNotAMember
	}
	grid := room.PlayerGrids[playerName]
	if grid == nil {
		return nil, ErrGridNotReady
	}
	cell := grid.CellAt(row, col)
	if cell == nil {
		return nil, ErrInvalidCell
	}
	if cell.Marked {
		return nil, ErrAlreadyMarked
	}

	grids := cloneGridsFor(room, playerName)
	grids[playerName].Cells[row][col].Marked = true

	approvals := append([]redis_models.ApprovalRequest{}, room.PendingApprovals...)
	if !room.HasPendingApproval(playerName, row, col) {
		approvals = append(approvals, redis_models.ApprovalRequest{
			Id:         newApprovalId(),
			PlayerName: playerName,
			Row:        row,
			Col:        col,
			Word:       cell.Word,
			Timestamp:  now,
		})
	}

	return &redis_models.RoomPatch{
		PlayerGrids:      &grids,
		PendingApprovals: &approvals,
	}, nil
}

// ApproveMark confirms the pending request with the given id: the cell
// becomes approved, the request leaves the queue and the player's grid
// is re-checked for a bingo. The first approval completing a line
// credits the player once; winner is the credited nickname or "".
//
// An unknown id means a concurrent admin action already resolved the
// request; callers should treat ErrApprovalNotFound as informational.
func ApproveMark(room *redis_models.GameRoom, approvalId string) (patch *redis_models.RoomPatch, winner string, err error) {
	idx, req := room.FindApproval(approvalId)
	if req == nil {
		return nil, "", ErrApprovalNotFound
	}

	grid := room.PlayerGrids[req.PlayerName]
	if grid == nil {
		return nil, "", ErrGridNotReady
	}
	// Should not happen under correct sequencing, but a request must
	// never dereference a cell outside the current grid.
	if grid.CellAt(req.Row, req.Col) == nil {
		return nil, "", ErrInvalidCell
	}

	grids := cloneGridsFor(room, req.PlayerName)
	grids[req.PlayerName].Cells[req.Row][req.Col].Approved = true

	approvals := removeApproval(room.PendingApprovals, idx)
	patch = &redis_models.RoomPatch{
		PlayerGrids:      &grids,
		PendingApprovals: &approvals,
	}

	if CheckWin(grids[req.PlayerName]) && !room.HasWinner(req.PlayerName) {
		winners := append(append([]string{}, room.BingoWinners...), req.PlayerName)
		patch.BingoWinners = &winners
		winner = req.PlayerName
	}
	return patch, winner, nil
}

// RejectMark turns down the pending request with the given id. The cell
// returns to unmarked (a rejected mark is not remembered, the player may
// re-mark and resubmit) and the request leaves the queue. Rejection can
// never produce a win, so no check runs.
func RejectMark(room *redis_models.GameRoom, approvalId string) (*redis_models.RoomPatch, error) {
	idx, req := room.FindApproval(approvalId)
	if req == nil {
		return nil, ErrApprovalNotFound
	}

	grid := room.PlayerGrids[req.PlayerName]
	if grid == nil {
		return nil, ErrGridNotReady
	}
	if grid.CellAt(req.Row, req.Col) == nil {
		return nil, ErrInvalidCell
	}

	grids := cloneGridsFor(room, req.PlayerName)
	grids[req.PlayerName].Cells[req.Row][req.Col].Marked = false
	grids[req.PlayerName].Cells[req.Row][req.Col].Approved = false

	approvals := removeApproval(room.PendingApprovals, idx)
	return &redis_models.RoomPatch{
		PlayerGrids:      &grids,
		PendingApprovals: &approvals,
	}, nil
}

// cloneGridsFor copies the grids map, deep-copying only the grid that
// is about to change. The other grids stay shared with the snapshot.
func cloneGridsFor(room *redis_models.GameRoom, playerName string) map[string]*redis_models.Grid {
	grids := make(map[string]*redis_models.Grid, len(room.PlayerGrids))
	for name, g := range room.PlayerGrids {
		grids[name] = g
	}
	grids[playerName] = room.PlayerGrids[playerName].Clone()
	return grids
}

func removeApproval(approvals []redis_models.ApprovalRequest, idx int) []redis_models.ApprovalRequest {
	out := make([]redis_models.ApprovalRequest, 0, len(approvals)-1)
	out = append(out, approvals[:idx]...)
	return append(out, approvals[idx+1:]...)
}
