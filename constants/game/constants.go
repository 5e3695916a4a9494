package game_constants

// Grid sizes the frontend offers when creating a room
const MinGridSize = 3
const MaxGridSize = 5

// Word placed in the pre-marked center cell of odd-sized grids
const FreeCellWord = "FREE"

// Length of generated room codes and approval request ids
const (
	RoomCodeLength   = 6
	ApprovalIdLength = 12
)
