package bingo

import (
	"strings"

	redis_models "Tombolo/models/redis"
)

// Word pool edits are an admin activity while the room is still in
// setup. Order of the pool is insertion order, duplicates are allowed.

// AddWord appends a word to the room's pool
func AddWord(room *redis_models.GameRoom, word string) (*redis_models.RoomPatch, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}
	if room.Status != redis_models.RoomStatusSetup {
		return nil, ErrRoomNotInSetup
	}

	words := append(append([]string{}, room.Words...), word)
	return &redis_models.RoomPatch{Words: &words}, nil
}

// RemoveWord drops the word at the given position of the pool
func RemoveWord(room *redis_models.GameRoom, index int) (*redis_models.RoomPatch, error) {
	if index < 0 || index >= len(room.Words) {
		return nil, ErrInvalidWordIndex
	}
	if room.Status != redis_models.RoomStatusSetup {
		return nil, ErrRoomNotInSetup
	}

	words := make([]string, 0, len(room.Words)-1)
	words = append(words, room.Words[:index]...)
	words = append(words, room.Words[index+1:]...)
	return &redis_models.RoomPatch{Words: &words}, nil
}
