package redis

// Cell is one position of a player's bingo card. A cell only counts
// towards a winning line once it is both marked AND approved.
type Cell struct {
	Word     string `json:"word"`
	Marked   bool   `json:"marked"`
	Approved bool   `json:"approved"`
}

// Grid is one player's bingo card: a Size x Size matrix of cells,
// addressed by zero-based (row, col) integer pairs.
type Grid struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"`
}

// NewGrid allocates an empty size x size grid
func NewGrid(size int) *Grid {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
	}
	return &Grid{Size: size, Cells: cells}
}

// ValidCell reports whether (row, col) addresses a cell of the grid
func (g *Grid) ValidCell(row, col int) bool {
	return row >= 0 && row < g.Size && col >= 0 && col < g.Size
}

// CellAt returns a pointer to the cell at (row, col), or nil when the
// coordinates fall outside the grid
func (g *Grid) CellAt(row, col int) *Cell {
	if !g.ValidCell(row, col) {
		return nil
	}
	return &g.Cells[row][col]
}

// Clone returns a deep copy of the grid. Update helpers work on copies
// so a snapshot handed to the engine is never mutated in place.
func (g *Grid) Clone() *Grid {
	clone := NewGrid(g.Size)
	for i := range g.Cells {
		copy(clone.Cells[i], g.Cells[i])
	}
	return clone
}

// HasFreeCenter reports whether this grid size carries the pre-marked
// center cell (odd sizes only)
func (g *Grid) HasFreeCenter() bool {
	return g.Size%2 == 1
}

// Center returns the coordinates of the center cell
func (g *Grid) Center() (int, int) {
	return g.Size / 2, g.Size / 2
}
