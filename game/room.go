package game

import "github.com/google/uuid"

func NewRoom(code string, creator *Player) *Room {
	return &Room{
		ID:      uuid.NewString(),
		Code:    code,
		State:   StateWaiting,
		Players: []*Player{creator},
	}
}

func NewPlayer(connectionID, name string) *Player {
	return &Player{ConnectionID: connectionID, Name: name}
}

// AddPlayer appends at the end of join order, which places the newcomer
// last in the turn rotation.
func (r *Room) AddPlayer(p *Player) {
	r.Players = append(r.Players, p)
}

// RemovePlayer takes a player out of the rotation and keeps DrawerIndex
// aimed at the same relative drawer. Removing someone seated before the
// drawer shifts the drawer left by one; removing the drawer leaves the
// index on their successor (wrapping to 0 off the end).
func (r *Room) RemovePlayer(connectionID string) (removed *Player, wasDrawer bool) {
	idx := -1
	for i, p := range r.Players {
		if p.ConnectionID == connectionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false
	}

	removed = r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	switch {
	case len(r.Players) == 0:
		r.DrawerIndex = 0
	case idx < r.DrawerIndex:
		r.DrawerIndex--
	case idx == r.DrawerIndex:
		wasDrawer = true
		if r.DrawerIndex >= len(r.Players) {
			r.DrawerIndex = 0
		}
	}
	return removed, wasDrawer
}

func (p *Player) snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ConnectionID: p.ConnectionID,
		Name:         p.Name,
		Score:        p.Score,
		Guessed:      p.Guessed,
	}
}

// Snapshot copies the room state the transport is allowed to see. The
// copy stays coherent after the coordinator lock is released, which the
// live Players slice does not.
func (r *Room) Snapshot() RoomSnapshot {
	s := RoomSnapshot{
		Code:          r.Code,
		State:         r.State,
		DrawerIndex:   r.DrawerIndex,
		CurrentRound:  r.CurrentRound,
		TotalRounds:   r.TotalRounds,
		Category:      r.Category,
		RoundDuration: r.RoundDuration,
		Players:       make([]PlayerSnapshot, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		s.Players = append(s.Players, p.snapshot())
	}
	return s
}

func (r *Room) FindPlayer(connectionID string) *Player {
	for _, p := range r.Players {
		if p.ConnectionID == connectionID {
			return p
		}
	}
	return nil
}

func (r *Room) CurrentDrawer() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	return r.Players[r.DrawerIndex]
}

func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

func (r *Room) AddMessage(author *Player, text string) ChatMessage {
	msg := ChatMessage{ID: uuid.NewString(), Author: author, Text: text}
	r.Messages = append(r.Messages, msg)
	return msg
}

// ResetGuesses clears every player's solved-this-turn flag.
func (r *Room) ResetGuesses() {
	for _, p := range r.Players {
		p.Guessed = false
	}
}

// AllGuessed reports whether every player other than the drawer has
// solved the current word. False while nobody can guess at all.
func (r *Room) AllGuessed() bool {
	if len(r.Players) < MinPlayersToStart {
		return false
	}
	for i, p := range r.Players {
		if i == r.DrawerIndex {
			continue
		}
		if !p.Guessed {
			return false
		}
	}
	return true
}

// Standings returns the leaderboard, highest score first. Ties keep
// join order.
func (r *Room) Standings() []Standing {
	out := make([]Standing, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, Standing{Name: p.Name, Score: p.Score})
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Score > out[i].Score {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}
