package game

import (
	"fmt"
	"sync"
)

// Directory owns the set of live rooms keyed by join code. It guards its
// own map so it is safe to use standalone, but the coordinator serializes
// all game mutations on top of it.
type Directory struct {
	mu          sync.Mutex
	roomsByCode map[string]*Room
}

func NewDirectory() *Directory {
	return &Directory{roomsByCode: make(map[string]*Room)}
}

// CreateRoom generates a fresh code, retried until unique among live
// rooms, and seats the creator as the only player.
func (d *Directory) CreateRoom(displayName, connectionID string) (*Room, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for range 10 {
		code, err := generateCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := d.roomsByCode[code]; exists {
			continue
		}
		room := NewRoom(code, NewPlayer(connectionID, displayName))
		d.roomsByCode[code] = room
		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room code after 10 attempts")
}

// JoinRoom seats a player at the end of the join order. No size cap is
// enforced here; that is caller policy.
func (d *Directory) JoinRoom(code, displayName, connectionID string) (*Room, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.roomsByCode[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.AddPlayer(NewPlayer(connectionID, displayName))
	return room, nil
}

// LeaveRoom removes a player by connection id, searching by code when
// given and scanning every room otherwise (the disconnect path has no
// code). An emptied room is deleted from the directory on the spot;
// callers see that as room.IsEmpty() on the returned room.
func (d *Directory) LeaveRoom(connectionID, code string) (room *Room, removed *Player, wasDrawer bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if code != "" {
		room = d.roomsByCode[code]
	} else {
		room = d.findRoomByConnection(connectionID)
	}
	if room == nil {
		return nil, nil, false, ErrRoomNotFound
	}

	removed, wasDrawer = room.RemovePlayer(connectionID)
	if removed == nil {
		return nil, nil, false, ErrPlayerNotFound
	}
	if room.IsEmpty() {
		delete(d.roomsByCode, room.Code)
	}
	return room, removed, wasDrawer, nil
}

func (d *Directory) RoomByCode(code string) *Room {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.roomsByCode[code]
}

func (d *Directory) FindPlayerByConnection(connectionID string) (*Room, *Player) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room := d.findRoomByConnection(connectionID)
	if room == nil {
		return nil, nil
	}
	return room, room.FindPlayer(connectionID)
}

func (d *Directory) findRoomByConnection(connectionID string) *Room {
	for _, room := range d.roomsByCode {
		if room.FindPlayer(connectionID) != nil {
			return room
		}
	}
	return nil
}
