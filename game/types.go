package game

import "time"

type GameState int

const (
	StateWaiting GameState = iota
	StatePlaying
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

const (
	MinPlayersToStart = 2

	// Candidate words offered to the drawer each turn, and how long
	// they get to pick one before the server picks for them.
	WordChoiceCount   = 3
	WordChoiceTimeout = 15 * time.Second

	MaxGuessScore       = 1000
	MinGuessScore       = 99
	GuessScoreDecay     = 900
	DrawerAwardPerGuess = 400
)

// Player is one seat in a room, keyed by the ephemeral connection id.
// Owned exclusively by its Room.
type Player struct {
	ConnectionID string
	Name         string
	Score        int
	Guessed      bool // guessed correctly this turn
}

// ChatMessage is immutable once appended to a room's log.
type ChatMessage struct {
	ID     string
	Author *Player
	Text   string
}

// GuessOutcome is derived per message, never stored.
type GuessOutcome struct {
	Author    *Player
	IsCorrect bool
}

type Room struct {
	// Identity / configuration
	ID       string
	Code     string
	Category string

	// Runtime state
	State         GameState
	Players       []*Player // join order; this ordering is the turn rotation
	DrawerIndex   int
	CurrentWord   string
	WordChoices   []string
	TotalRounds   int
	CurrentRound  int
	RoundDuration time.Duration
	Messages      []ChatMessage

	// Bumped on every turn transition so a stale timer callback can
	// tell it lost the race and must not touch the room.
	turnSeq uint64
}

// PlayerSnapshot is a value copy of one seat, detached from the live
// Player the coordinator keeps mutating.
type PlayerSnapshot struct {
	ConnectionID string
	Name         string
	Score        int
	Guessed      bool
}

// RoomSnapshot is a read-only copy of a room's shareable state, taken
// under the coordinator lock. Everything the transport fans out works
// from a snapshot, never the live Room, so deliveries cannot race the
// membership slice.
type RoomSnapshot struct {
	Code          string
	State         GameState
	DrawerIndex   int
	CurrentRound  int
	TotalRounds   int
	Category      string
	RoundDuration time.Duration
	Players       []PlayerSnapshot // join order
}

// Drawer returns the seat holding the brush at snapshot time.
func (s RoomSnapshot) Drawer() PlayerSnapshot {
	if len(s.Players) == 0 {
		return PlayerSnapshot{}
	}
	return s.Players[s.DrawerIndex]
}

// Standing is one row of the final leaderboard.
type Standing struct {
	Name  string
	Score int
}

// Scope tags who a chat echo is for. The transport layer switches on it
// exhaustively instead of inspecting payload shapes.
type Scope int

const (
	ScopeRoom   Scope = iota // broadcast to every player in the room
	ScopeSender              // echo to the author's connection only
)

// ChatResult describes everything the transport must deliver for one
// inbound chat message. Room is a snapshot taken after any cascaded
// turn advance, so it reflects what the message caused.
type ChatResult struct {
	Room         RoomSnapshot
	Message      ChatMessage
	Outcome      GuessOutcome
	EchoScope    Scope
	FirstCorrect bool // first correct guess by this player this turn
	GuesserAward int
	DrawerAward  int
	TurnAdvanced bool // everyone solved it, the turn rolled over early
}

// LeaveResult reports what a removal did to the room. RoomDeleted is an
// explicit post-condition: timer cleanup downstream depends on it.
type LeaveResult struct {
	Room        RoomSnapshot
	Player      PlayerSnapshot
	WasDrawer   bool
	RoomDeleted bool
}

// EventSink receives turn transitions that happen without a requesting
// connection, i.e. timer expiries and cascades out of other calls. The
// transport implements it; the coordinator never talks to sockets.
// Every callback runs with the coordinator lock held and gets value
// snapshots, so implementations may hold them as long as they like.
type EventSink interface {
	// DrawerChoosing: choices go to the drawer's connection only, the
	// rest of the room learns who is choosing.
	DrawerChoosing(room RoomSnapshot, drawer PlayerSnapshot, choices []string)
	// TurnStarted: word goes to the drawer's connection only, the rest
	// of the room gets round/drawer/duration.
	TurnStarted(room RoomSnapshot, drawer PlayerSnapshot, word string)
	// CorrectGuess announces a scored guess room-wide, before any turn
	// advance it triggers, so clients learn who solved it first.
	CorrectGuess(room RoomSnapshot, guesser PlayerSnapshot, guesserAward, drawerAward int)
	// TurnEnded reveals the word to the whole room.
	TurnEnded(room RoomSnapshot, word string)
	// GameEnded carries the final leaderboard, room-wide.
	GameEnded(room RoomSnapshot, standings []Standing)
}

// WordPicker is WordBank's seam so tests can pin the candidate words.
type WordPicker interface {
	PickRandom(category string, count int) []string
}
