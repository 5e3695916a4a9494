package bingo

import (
	"math/rand"

	game_constants "Tombolo/constants/game"
	redis_models "Tombolo/models/redis"
)

// MinWordsToStart returns how many words the room pool must hold before
// grids of the given size may be assigned. Odd sizes draw one word less
// (the FREE center), but the lifecycle requires the full gridSize² so
// the pool never runs tight across regenerations.
func MinWordsToStart(gridSize int) int {
	return gridSize * gridSize
}

// GenerateGrid draws a uniformly random permutation of words and places
// the first gridSize² (minus one on odd sizes) of them row-major into a
// fresh grid. On odd sizes the exact center cell is pre-seeded with the
// FREE word, already marked and approved, and excluded from the draw.
//
// The word-count precondition is enforced by the lifecycle engine
// before this is called, not here.
func GenerateGrid(words []string, gridSize int, rng *rand.Rand) *redis_models.Grid {
	shuffled := make([]string, len(words))
	copy(shuffled, words)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	grid := redis_models.NewGrid(gridSize)
	centerRow, centerCol := grid.Center()
	next := 0
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			if grid.HasFreeCenter() && row == centerRow && col == centerCol {
				grid.Cells[row][col] = redis_models.Cell{
					Word:     game_constants.FreeCellWord,
					Marked:   true,
					Approved: true,
				}
				continue
			}
			grid.Cells[row][col] = redis_models.Cell{Word: shuffled[next]}
			next++
		}
	}
	return grid
}

// CheckWin reports whether the grid holds at least one fully
// marked-and-approved row, column, or diagonal. A marked cell that the
// admin has not approved yet does not count, which is why the win check
// runs after approvals, never after plain marks. Pure function of the
// snapshot, safe to re-run idempotently.
func CheckWin(grid *redis_models.Grid) bool {
	counts := func(c redis_models.Cell) bool {
		return c.Marked && c.Approved
	}

	for row := 0; row < grid.Size; row++ {
		full := true
		for col := 0; col < grid.Size; col++ {
			if !counts(grid.Cells[row][col]) {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}

	for col := 0; col < grid.Size; col++ {
		full := true
		for row := 0; row < grid.Size; row++ {
			if !counts(grid.Cells[row][col]) {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}

	mainFull, antiFull := true, true
	for i := 0; i < grid.Size; i++ {
		if !counts(grid.Cells[i][i]) {
			mainFull = false
		}
		if !counts(grid.Cells[i][grid.Size-1-i]) {
			antiFull = false
		}
	}
	return mainFull || antiFull
}
