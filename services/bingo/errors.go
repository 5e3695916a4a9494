package bingo

// Kind classifies an engine error so callers can map it to the right
// HTTP status or socket payload without matching on message strings.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindPrecondition  Kind = "precondition"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindTransport     Kind = "transport"
)

// Error is a typed game error with a stable per-condition code
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrInsufficientWords = &Error{KindPrecondition, "insufficient_words", "not enough words for the grid size"}
	ErrRoomNotActive     = &Error{KindPrecondition, "room_not_active", "the game has not started yet"}
	ErrRoomNotInSetup    = &Error{KindPrecondition, "room_not_in_setup", "the room is not in setup"}
	ErrAlreadyMarked     = &Error{KindPrecondition, "already_marked", "that cell is already marked"}
	ErrNotAMember        = &Error{KindPrecondition, "not_a_member", "player is not a member of this room"}
	ErrGridNotReady      = &Error{KindPrecondition, "grid_not_ready", "no grid has been assigned to this player"}
	ErrInvalidCell       = &Error{KindValidation, "invalid_cell", "cell coordinates are outside the grid"}
	ErrInvalidGridSize   = &Error{KindValidation, "invalid_grid_size", "grid size must be between 3 and 5"}
	ErrEmptyWord         = &Error{KindValidation, "empty_word", "words can't be empty"}
	ErrInvalidWordIndex  = &Error{KindValidation, "invalid_word_index", "no word at that position"}
	ErrEmptyNickname     = &Error{KindValidation, "empty_nickname", "nickname can't be empty"}
	ErrNotRoomCreator    = &Error{KindAuthorization, "not_room_creator", "only the room creator can do that"}

	// ErrApprovalNotFound is a normal, recoverable outcome: the request
	// was already resolved by a concurrent admin action.
	ErrApprovalNotFound = &Error{KindNotFound, "approval_not_found", "approval request no longer pending"}
)
