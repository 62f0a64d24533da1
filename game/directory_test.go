package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_CreateRoom(t *testing.T) {
	t.Parallel()

	dir := NewDirectory()
	room, err := dir.CreateRoom("ana", connID("ana"))
	require.NoError(t, err)

	assert.Len(t, room.Code, codeLength)
	for _, ch := range room.Code {
		assert.Contains(t, codeAlphabet, string(ch))
	}
	assert.Equal(t, StateWaiting, room.State)
	require.Len(t, room.Players, 1)
	assert.Equal(t, "ana", room.Players[0].Name)
	assert.Same(t, room, dir.RoomByCode(room.Code))
}

func TestDirectory_JoinRoom(t *testing.T) {
	t.Parallel()

	dir := NewDirectory()
	room, err := dir.CreateRoom("ana", connID("ana"))
	require.NoError(t, err)

	_, err = dir.JoinRoom("ZZZZZ", "ben", connID("ben"))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	joined, err := dir.JoinRoom(room.Code, "ben", connID("ben"))
	require.NoError(t, err)
	require.Same(t, room, joined)

	_, err = dir.JoinRoom(room.Code, "cleo", connID("cleo"))
	require.NoError(t, err)

	names := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"ana", "ben", "cleo"}, names, "join order is the rotation")
}

func TestDirectory_LeaveRoom(t *testing.T) {
	t.Parallel()

	dir := NewDirectory()
	room, err := dir.CreateRoom("ana", connID("ana"))
	require.NoError(t, err)
	_, err = dir.JoinRoom(room.Code, "ben", connID("ben"))
	require.NoError(t, err)

	_, _, _, err = dir.LeaveRoom(connID("ana"), "ZZZZZ")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, _, _, err = dir.LeaveRoom("conn-nobody", room.Code)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	// Disconnects carry no code; the directory scans for the player.
	left, removed, wasDrawer, err := dir.LeaveRoom(connID("ben"), "")
	require.NoError(t, err)
	assert.Same(t, room, left)
	assert.Equal(t, "ben", removed.Name)
	assert.False(t, wasDrawer)

	_, removed, wasDrawer, err = dir.LeaveRoom(connID("ana"), room.Code)
	require.NoError(t, err)
	assert.Equal(t, "ana", removed.Name)
	assert.True(t, wasDrawer)
	assert.True(t, room.IsEmpty())
	assert.Nil(t, dir.RoomByCode(room.Code), "empty rooms must not exist")
}

func TestDirectory_FindPlayerByConnection(t *testing.T) {
	t.Parallel()

	dir := NewDirectory()
	room, err := dir.CreateRoom("ana", connID("ana"))
	require.NoError(t, err)

	gotRoom, gotPlayer := dir.FindPlayerByConnection(connID("ana"))
	assert.Same(t, room, gotRoom)
	assert.Equal(t, "ana", gotPlayer.Name)

	gotRoom, gotPlayer = dir.FindPlayerByConnection("conn-nobody")
	assert.Nil(t, gotRoom)
	assert.Nil(t, gotPlayer)
}

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for range 200 {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Len(t, code, codeLength)
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, ch))
		}
		seen[code] = true
	}
	// 32^5 codes; 200 draws colliding would point at a broken generator.
	assert.Greater(t, len(seen), 190)
}
