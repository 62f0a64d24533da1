package game

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// --- WordPicker ---

type MockWordPicker struct {
	mock.Mock
}

func (m *MockWordPicker) PickRandom(category string, count int) []string {
	args := m.Called(category, count)
	return args.Get(0).([]string)
}

// --- EventSink ---

// recordingSink keeps every coordinator event in order so scenario tests
// can assert the sequence without wiring a full transport.
type sinkEvent struct {
	kind      string
	drawer    string
	guesser   string
	word      string
	award     int
	choices   []string
	players   int // seats in the room snapshot at event time
	standings []Standing
}

type recordingSink struct {
	events []sinkEvent
}

func (s *recordingSink) DrawerChoosing(room RoomSnapshot, drawer PlayerSnapshot, choices []string) {
	s.events = append(s.events, sinkEvent{kind: "choosing", drawer: drawer.Name, choices: choices, players: len(room.Players)})
}

func (s *recordingSink) TurnStarted(room RoomSnapshot, drawer PlayerSnapshot, word string) {
	s.events = append(s.events, sinkEvent{kind: "turn_started", drawer: drawer.Name, word: word, players: len(room.Players)})
}

func (s *recordingSink) CorrectGuess(room RoomSnapshot, guesser PlayerSnapshot, guesserAward, drawerAward int) {
	s.events = append(s.events, sinkEvent{kind: "guess", guesser: guesser.Name, award: guesserAward, players: len(room.Players)})
}

func (s *recordingSink) TurnEnded(room RoomSnapshot, word string) {
	s.events = append(s.events, sinkEvent{kind: "turn_ended", word: word, players: len(room.Players)})
}

func (s *recordingSink) GameEnded(room RoomSnapshot, standings []Standing) {
	s.events = append(s.events, sinkEvent{kind: "game_ended", standings: standings, players: len(room.Players)})
}

func (s *recordingSink) count(kind string) int {
	n := 0
	for _, ev := range s.events {
		if ev.kind == kind {
			n++
		}
	}
	return n
}

// indexOf locates the first event of a kind, for ordering assertions.
func (s *recordingSink) indexOf(kind string) int {
	for i, ev := range s.events {
		if ev.kind == kind {
			return i
		}
	}
	return -1
}

func (s *recordingSink) last() sinkEvent {
	if len(s.events) == 0 {
		return sinkEvent{}
	}
	return s.events[len(s.events)-1]
}

// --- Clock / Scheduler ---

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeTimer struct {
	delay     time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (t *fakeTimer) Cancel() bool {
	if t.cancelled || t.fired {
		return false
	}
	t.cancelled = true
	return true
}

// fire delivers the callback unless the timer was cancelled first.
func (t *fakeTimer) fire() {
	if t.cancelled || t.fired {
		return
	}
	t.fired = true
	t.fn()
}

// forceFire delivers the callback no matter what, simulating a callback
// already in flight when Cancel raced it.
func (t *fakeTimer) forceFire() {
	t.fired = true
	t.fn()
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) Schedule(delay time.Duration, fn func()) Timer {
	t := &fakeTimer{delay: delay, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) last() *fakeTimer {
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// live returns timers that have neither fired nor been cancelled.
func (s *fakeScheduler) live() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.cancelled && !t.fired {
			out = append(out, t)
		}
	}
	return out
}
