package bingo

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWord(t *testing.T) {
	room := setupRoom(3, 0)

	patch, err := AddWord(room, "  gopher  ")
	require.NoError(t, err)
	patch.Apply(room)
	assert.Equal(t, []string{"gopher"}, room.Words)

	// Duplicates are allowed, insertion order is kept
	patch, err = AddWord(room, "gopher")
	require.NoError(t, err)
	patch.Apply(room)
	assert.Equal(t, []string{"gopher", "gopher"}, room.Words)

	_, err = AddWord(room, "   ")
	assert.ErrorIs(t, err, ErrEmptyWord)
}

func TestRemoveWord(t *testing.T) {
	room := setupRoom(3, 0)
	room.Words = []string{"a", "b", "c"}

	patch, err := RemoveWord(room, 1)
	require.NoError(t, err)
	patch.Apply(room)
	assert.Equal(t, []string{"a", "c"}, room.Words)

	_, err = RemoveWord(room, 2)
	assert.ErrorIs(t, err, ErrInvalidWordIndex)
	_, err = RemoveWord(room, -1)
	assert.ErrorIs(t, err, ErrInvalidWordIndex)
}

func TestWordEditsOnlyDuringSetup(t *testing.T) {
	room := setupRoom(3, 9, "alice")
	patch, err := StartGame(room, rand.New(rand.NewSource(1)), time.Now())
	require.NoError(t, err)
	patch.Apply(room)

	_, err = AddWord(room, "late")
	assert.ErrorIs(t, err, ErrRoomNotInSetup)
	_, err = RemoveWord(room, 0)
	assert.ErrorIs(t, err, ErrRoomNotInSetup)
}
