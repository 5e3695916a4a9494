package bingo

import (
	"math/rand"
	"testing"

	redis_models "Tombolo/models/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = string(rune('A' + i%26))
	}
	return words
}

func TestGenerateGridEvenSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	grid := GenerateGrid(testWords(16), 4, rng)

	require.Equal(t, 4, grid.Size)
	require.Len(t, grid.Cells, 4)
	for row := 0; row < 4; row++ {
		require.Len(t, grid.Cells[row], 4)
		for col := 0; col < 4; col++ {
			cell := grid.Cells[row][col]
			assert.NotEmpty(t, cell.Word)
			assert.False(t, cell.Marked)
			assert.False(t, cell.Approved)
		}
	}
}

func TestGenerateGridOddSizeHasFreeCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	grid := GenerateGrid(testWords(9), 3, rng)

	center := grid.Cells[1][1]
	assert.Equal(t, "FREE", center.Word)
	assert.True(t, center.Marked)
	assert.True(t, center.Approved)

	// Only 8 words are drawn on a 3x3, the center never comes from the pool
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 1 && col == 1 {
				continue
			}
			cell := grid.Cells[row][col]
			assert.NotEmpty(t, cell.Word)
			assert.NotEqual(t, "FREE", cell.Word)
			assert.False(t, cell.Marked)
		}
	}
}

func TestGenerateGridDrawsFromPool(t *testing.T) {
	words := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	rng := rand.New(rand.NewSource(7))
	grid := GenerateGrid(words, 3, rng)

	pool := map[string]bool{}
	for _, w := range words {
		pool[w] = true
	}
	seen := map[string]int{}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 1 && col == 1 {
				continue
			}
			word := grid.Cells[row][col].Word
			assert.True(t, pool[word], "word %q not from the pool", word)
			seen[word]++
		}
	}
	// A permutation draw never repeats a pool entry
	for word, count := range seen {
		assert.Equal(t, 1, count, "word %q drawn twice", word)
	}
}

func markLine(grid *redis_models.Grid, cells [][2]int, approved bool) {
	for _, rc := range cells {
		grid.Cells[rc[0]][rc[1]].Marked = true
		grid.Cells[rc[0]][rc[1]].Approved = approved
	}
}

func TestCheckWinRows(t *testing.T) {
	grid := GenerateGrid(testWords(16), 4, rand.New(rand.NewSource(2)))
	assert.False(t, CheckWin(grid))

	markLine(grid, [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}}, true)
	assert.True(t, CheckWin(grid))
}

func TestCheckWinColumns(t *testing.T) {
	grid := GenerateGrid(testWords(16), 4, rand.New(rand.NewSource(3)))
	markLine(grid, [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}}, true)
	assert.True(t, CheckWin(grid))
}

func TestCheckWinDiagonals(t *testing.T) {
	grid := GenerateGrid(testWords(16), 4, rand.New(rand.NewSource(4)))
	markLine(grid, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, true)
	assert.True(t, CheckWin(grid))

	grid = GenerateGrid(testWords(16), 4, rand.New(rand.NewSource(5)))
	markLine(grid, [][2]int{{0, 3}, {1, 2}, {2, 1}, {3, 0}}, true)
	assert.True(t, CheckWin(grid))
}

func TestCheckWinIgnoresUnapprovedMarks(t *testing.T) {
	grid := GenerateGrid(testWords(16), 4, rand.New(rand.NewSource(6)))

	// A full row of marks means nothing until the admin approves them
	markLine(grid, [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}}, false)
	assert.False(t, CheckWin(grid))

	// One unapproved cell keeps the whole line from counting
	markLine(grid, [][2]int{{0, 0}, {0, 1}, {0, 2}}, true)
	assert.False(t, CheckWin(grid))

	markLine(grid, [][2]int{{0, 3}}, true)
	assert.True(t, CheckWin(grid))
}

func TestCheckWinWithNoiseElsewhere(t *testing.T) {
	grid := GenerateGrid(testWords(16), 4, rand.New(rand.NewSource(8)))

	// Full approved row plus scattered marked-but-unapproved cells
	markLine(grid, [][2]int{{3, 0}, {3, 1}, {3, 2}, {3, 3}}, true)
	markLine(grid, [][2]int{{0, 2}, {1, 0}, {2, 3}}, false)
	assert.True(t, CheckWin(grid))
}

func TestCheckWinFreeCenterCountsTowardLines(t *testing.T) {
	grid := GenerateGrid(testWords(9), 3, rand.New(rand.NewSource(9)))

	// Middle row only needs the two non-center cells approved
	markLine(grid, [][2]int{{1, 0}, {1, 2}}, true)
	assert.True(t, CheckWin(grid))
}
