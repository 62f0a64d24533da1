package transport

import (
	"encoding/json"

	"github.com/Onyxxx17/Skribble-Clone/game"
)

// Packet is the wire envelope, both directions. Data holds the
// type-specific payload.
type Packet struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound payloads.

type createRoomPayload struct {
	Username string `json:"username"`
}

type joinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Username string `json:"username"`
}

type chatPayload struct {
	Message string `json:"message"`
}

type startGamePayload struct {
	TotalRounds int    `json:"totalRounds"`
	RoundTime   int    `json:"roundTime"` // seconds
	Category    string `json:"category"`
}

type chooseWordPayload struct {
	Word string `json:"word"`
}

type linePayload struct {
	Line    json.RawMessage `json:"line"` // opaque stroke data, relayed untouched
	NewLine bool            `json:"newLine"`
}

// Outbound payloads.

type playerView struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	Guessed  bool   `json:"guessed"`
}

type roomView struct {
	Code         string       `json:"code"`
	Players      []playerView `json:"players"`
	GameState    string       `json:"gameState"`
	CurrentRound int          `json:"currentRound,omitempty"`
	TotalRounds  int          `json:"totalRounds,omitempty"`
	Category     string       `json:"category,omitempty"`
}

type chatMessageView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type guessView struct {
	Username    string `json:"username"`
	Award       int    `json:"award"`
	DrawerAward int    `json:"drawerAward"`
}

type standingView struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

func viewRoom(room game.RoomSnapshot) roomView {
	v := roomView{
		Code:         room.Code,
		Players:      make([]playerView, 0, len(room.Players)),
		GameState:    room.State.String(),
		CurrentRound: room.CurrentRound,
		TotalRounds:  room.TotalRounds,
		Category:     room.Category,
	}
	for _, p := range room.Players {
		v.Players = append(v.Players, playerView{Username: p.Name, Score: p.Score, Guessed: p.Guessed})
	}
	return v
}

func viewMessage(msg game.ChatMessage) chatMessageView {
	return chatMessageView{ID: msg.ID, Username: msg.Author.Name, Message: msg.Text}
}

func viewStandings(standings []game.Standing) []standingView {
	out := make([]standingView, 0, len(standings))
	for _, s := range standings {
		out = append(out, standingView{Username: s.Name, Score: s.Score})
	}
	return out
}

// marshal builds a wire frame. Payload types are all local structs, so a
// marshal failure is a programming error and yields an error packet
// instead of a silent drop.
func marshal(packetType string, payload any) []byte {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return marshal("error", "internal error")
		}
		data = b
	}
	b, _ := json.Marshal(Packet{Type: packetType, Data: data})
	return b
}

func errorPacket(msg string) []byte {
	return marshal("error", msg)
}
