package transport

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Onyxxx17/Skribble-Clone/game"
)

// Hub holds the live connections and translates coordinator results and
// events into deliveries. It carries no game state; room membership is
// always read off the snapshot the core hands back, never a live room.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	coord   *game.Coordinator
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// SetCoordinator breaks the construction cycle: the coordinator needs
// the hub as its event sink, the hub needs the coordinator to call.
func (h *Hub) SetCoordinator(c *game.Coordinator) {
	h.coord = c
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

// Unregister drops the client and signals its write pump to flush and
// exit. The send channel itself is never closed: broadcasts racing the
// unregister may still be holding it, and a send on a closed channel
// would panic the whole server.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()
	if ok {
		close(c.done)
	}
}

// SendTo drops the frame if the client's buffer is full rather than
// blocking the caller, which may be holding the coordinator lock.
func (h *Hub) SendTo(id string, data []byte) {
	h.mu.Lock()
	c, ok := h.clients[id]
	h.mu.Unlock()
	if !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().Str("conn", id).Msg("send buffer full, dropping frame")
	}
}

func (h *Hub) Broadcast(room game.RoomSnapshot, data []byte) {
	h.BroadcastExcept(room, "", data)
}

func (h *Hub) BroadcastExcept(room game.RoomSnapshot, exceptID string, data []byte) {
	for _, p := range room.Players {
		if p.ConnectionID == exceptID {
			continue
		}
		h.SendTo(p.ConnectionID, data)
	}
}

// game.EventSink. These run with the coordinator lock held, so they only
// enqueue frames and return.

func (h *Hub) DrawerChoosing(room game.RoomSnapshot, drawer game.PlayerSnapshot, choices []string) {
	h.SendTo(drawer.ConnectionID, marshal("choose_word", struct {
		Choices []string `json:"choices"`
	}{Choices: choices}))
	h.BroadcastExcept(room, drawer.ConnectionID, marshal("player_choosing", struct {
		Username string `json:"username"`
	}{Username: drawer.Name}))
}

func (h *Hub) TurnStarted(room game.RoomSnapshot, drawer game.PlayerSnapshot, word string) {
	h.Broadcast(room, marshal("turn_started", struct {
		Drawer       string `json:"drawer"`
		WordLength   int    `json:"wordLength"`
		CurrentRound int    `json:"currentRound"`
		Duration     int    `json:"durationSeconds"`
	}{
		Drawer:       drawer.Name,
		WordLength:   len(word),
		CurrentRound: room.CurrentRound,
		Duration:     int(room.RoundDuration.Seconds()),
	}))
	// Only the drawer learns the word itself.
	h.SendTo(drawer.ConnectionID, marshal("word_assigned", struct {
		Word string `json:"word"`
	}{Word: word}))
}

// CorrectGuess is always room-wide, so everyone learns someone solved
// it without seeing the word.
func (h *Hub) CorrectGuess(room game.RoomSnapshot, guesser game.PlayerSnapshot, guesserAward, drawerAward int) {
	h.Broadcast(room, marshal("guess", guessView{
		Username:    guesser.Name,
		Award:       guesserAward,
		DrawerAward: drawerAward,
	}))
}

func (h *Hub) TurnEnded(room game.RoomSnapshot, word string) {
	h.Broadcast(room, marshal("turn_ended", struct {
		Word string `json:"word"`
	}{Word: word}))
}

func (h *Hub) GameEnded(room game.RoomSnapshot, standings []game.Standing) {
	h.Broadcast(room, marshal("game_over", struct {
		Standings []standingView `json:"standings"`
	}{Standings: viewStandings(standings)}))
}
