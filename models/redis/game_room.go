package redis

import "time"

// Room lifecycle states. There is no "finished" state: a room that
// already has winners stays active until the admin resets it.
const (
	RoomStatusSetup  = "setup"
	RoomStatusActive = "active"
)

// RoomPlayer is one member of a game room, unique by nickname.
// Insertion order is preserved for display only.
type RoomPlayer struct {
	Nickname string    `json:"nickname"`
	JoinedAt time.Time `json:"joined_at"`
}

// ApprovalRequest is a snapshot of a proposed mark waiting for the
// admin's decision. Word is denormalized for display. Id is the stable
// identifier requests are resolved by, so that two admins (or a stale
// client) racing on the queue cannot resolve the wrong entry.
type ApprovalRequest struct {
	Id         string    `json:"id"`
	PlayerName string    `json:"player_name"`
	Row        int       `json:"row"`
	Col        int       `json:"col"`
	Word       string    `json:"word"`
	Timestamp  time.Time `json:"timestamp"`
}

// GameRoom is the shared room document stored in Redis as a single
// JSON value keyed by the room code. Key format: "room:{code}"
type GameRoom struct {
	Code             string            `json:"code"`
	GridSize         int               `json:"grid_size"`
	CreatorUsername  string            `json:"creator_username"`
	Status           string            `json:"status"`
	Words            []string          `json:"words"`
	Players          []RoomPlayer      `json:"players"`
	PlayerGrids      map[string]*Grid  `json:"player_grids"`
	PendingApprovals []ApprovalRequest `json:"pending_approvals"`
	BingoWinners     []string          `json:"bingo_winners"`
	CreatedAt        time.Time         `json:"created_at"`
	StartedAt        *time.Time        `json:"started_at,omitempty"`
}

// HasPlayer reports whether nickname is a current member of the room
func (r *GameRoom) HasPlayer(nickname string) bool {
	for i := range r.Players {
		if r.Players[i].Nickname == nickname {
			return true
		}
	}
	return false
}

// HasWinner reports whether nickname was already credited with a bingo
func (r *GameRoom) HasWinner(nickname string) bool {
	for _, w := range r.BingoWinners {
		if w == nickname {
			return true
		}
	}
	return false
}

// FindApproval returns the queue position and the request with the given
// id, or (-1, nil) when it was already resolved by someone else.
func (r *GameRoom) FindApproval(id string) (int, *ApprovalRequest) {
	for i := range r.PendingApprovals {
		if r.PendingApprovals[i].Id == id {
			return i, &r.PendingApprovals[i]
		}
	}
	return -1, nil
}

// HasPendingApproval reports whether an approval request is already
// queued for the (playerName, row, col) triple. At most one outstanding
// request per cell is allowed.
func (r *GameRoom) HasPendingApproval(playerName string, row, col int) bool {
	for i := range r.PendingApprovals {
		a := &r.PendingApprovals[i]
		if a.PlayerName == playerName && a.Row == row && a.Col == col {
			return true
		}
	}
	return false
}

// RoomPatch describes a partial update to a GameRoom. Nil fields are
// left untouched by Apply, so concurrent writers touching disjoint
// fields do not clobber each other. The store merge call is the only
// place a patch is externally observed.
type RoomPatch struct {
	Status           *string            `json:"status,omitempty"`
	Words            *[]string          `json:"words,omitempty"`
	Players          *[]RoomPlayer      `json:"players,omitempty"`
	PlayerGrids      *map[string]*Grid  `json:"player_grids,omitempty"`
	PendingApprovals *[]ApprovalRequest `json:"pending_approvals,omitempty"`
	BingoWinners     *[]string          `json:"bingo_winners,omitempty"`
	StartedAt        **time.Time        `json:"started_at,omitempty"`
}

// Apply merges the patch into room, field by field
func (p *RoomPatch) Apply(room *GameRoom) {
	if p.Status != nil {
		room.Status = *p.Status
	}
	if p.Words != nil {
		room.Words = *p.Words
	}
	if p.Players != nil {
		room.Players = *p.Players
	}
	if p.PlayerGrids != nil {
		room.PlayerGrids = *p.PlayerGrids
	}
	if p.PendingApprovals != nil {
		room.PendingApprovals = *p.PendingApprovals
	}
	if p.BingoWinners != nil {
		room.BingoWinners = *p.BingoWinners
	}
	if p.StartedAt != nil {
		room.StartedAt = *p.StartedAt
	}
}
