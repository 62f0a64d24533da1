package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Coordinator is the turn/round state machine. Every inbound call and
// every timer callback serializes through its mutex, so room state is
// mutated by one event at a time, exactly the reactor discipline the
// game needs. It owns the timer tables: at most one live draw timer per
// room code, at most one live word-choice timer per connection id, and
// arming either slot first cancels whatever it held.
type Coordinator struct {
	mu        sync.Mutex
	directory *Directory
	words     WordPicker
	clock     Clock
	scheduler Scheduler
	sink      EventSink

	drawTimers   map[string]Timer     // room code -> draw-phase timer
	choiceTimers map[string]Timer     // connection id -> word-choice timer
	turnStarted  map[string]time.Time // room code -> draw-phase start
}

func NewCoordinator(directory *Directory, words WordPicker, clock Clock, scheduler Scheduler, sink EventSink) *Coordinator {
	return &Coordinator{
		directory:    directory,
		words:        words,
		clock:        clock,
		scheduler:    scheduler,
		sink:         sink,
		drawTimers:   make(map[string]Timer),
		choiceTimers: make(map[string]Timer),
		turnStarted:  make(map[string]time.Time),
	}
}

func (c *Coordinator) CreateRoom(displayName, connectionID string) (RoomSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.directory.CreateRoom(displayName, connectionID)
	if err != nil {
		return RoomSnapshot{}, err
	}
	return room.Snapshot(), nil
}

func (c *Coordinator) JoinRoom(code, displayName, connectionID string) (RoomSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.directory.JoinRoom(code, displayName, connectionID)
	if err != nil {
		return RoomSnapshot{}, err
	}
	return room.Snapshot(), nil
}

// LeaveRoom covers explicit leaves and disconnects (empty code scans all
// rooms). Beyond membership it has to keep the game sane: stray timers
// for the leaver are cancelled, a vanished room loses its draw timer, a
// game shrunk below two players is force-ended, and a departed drawer's
// turn restarts for their successor.
func (c *Coordinator) LeaveRoom(connectionID, code string) (LeaveResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, removed, wasDrawer, err := c.directory.LeaveRoom(connectionID, code)
	if err != nil {
		return LeaveResult{}, err
	}

	c.cancelChoiceTimer(connectionID)

	res := LeaveResult{
		Player:      removed.snapshot(),
		WasDrawer:   wasDrawer,
		RoomDeleted: room.IsEmpty(),
	}

	switch {
	case res.RoomDeleted:
		c.cancelDrawTimer(room.Code)
		delete(c.turnStarted, room.Code)
		log.Debug().Str("room", room.Code).Msg("room deleted, last player left")

	case room.State != StatePlaying:
		// Lobby and game-over rooms need no turn bookkeeping.

	case len(room.Players) < MinPlayersToStart:
		c.endGame(room)

	case wasDrawer:
		// RemovePlayer already aimed DrawerIndex at the successor, so
		// restart the choice phase in place instead of rotating again,
		// which would skip a player.
		word := room.CurrentWord
		c.clearTurnTimers(room)
		room.turnSeq++
		room.CurrentWord = ""
		room.WordChoices = nil
		room.ResetGuesses()
		if word != "" {
			c.sink.TurnEnded(room.Snapshot(), word)
		}
		c.beginTurnChoice(room)

	default:
		// A non-drawer leaving can be the last holdout: everyone still
		// seated may now have guessed.
		if room.CurrentWord != "" && room.AllGuessed() {
			c.advanceTurn(room)
		}
	}

	res.Room = room.Snapshot()
	return res, nil
}

// StartGame begins a fresh game from the lobby, or re-enters after game
// over for "play again". Scores reset here, not at game over, so the
// final leaderboard survives long enough to be read.
func (c *Coordinator) StartGame(code string, totalRounds, roundTimeSeconds int, category string) (RoomSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.directory.RoomByCode(code)
	if room == nil {
		return RoomSnapshot{}, ErrRoomNotFound
	}
	if room.State == StatePlaying {
		return RoomSnapshot{}, ErrGameInProgress
	}
	if len(room.Players) < MinPlayersToStart {
		return RoomSnapshot{}, ErrNotEnoughPlayers
	}

	room.State = StatePlaying
	room.TotalRounds = totalRounds
	room.RoundDuration = time.Duration(roundTimeSeconds) * time.Second
	room.CurrentRound = 1
	room.Category = category
	room.CurrentWord = ""
	// First player in join order draws first. Deterministic on purpose.
	room.DrawerIndex = 0
	room.ResetGuesses()
	for _, p := range room.Players {
		p.Score = 0
	}
	room.turnSeq++

	log.Info().
		Str("room", room.Code).
		Int("rounds", totalRounds).
		Int("round_time_s", roundTimeSeconds).
		Str("category", category).
		Msg("game started")

	c.beginTurnChoice(room)
	return room.Snapshot(), nil
}

// ChooseWord is the drawer's manual pick. It cancels the pending choice
// timer; if that timer already fired and auto-picked, the word is set
// and this call is a stale no-op.
func (c *Coordinator) ChooseWord(connectionID, code, word string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.directory.RoomByCode(code)
	if room == nil {
		return ErrRoomNotFound
	}
	player := room.FindPlayer(connectionID)
	if player == nil {
		return ErrPlayerNotFound
	}
	if word == "" || room.State != StatePlaying || room.CurrentWord != "" || player != room.CurrentDrawer() {
		return nil
	}
	c.startDrawing(room, word)
	return nil
}

// PostMessage turns a chat line into an appended message, a guess
// verdict, score awards and a broadcast scope.
func (c *Coordinator) PostMessage(connectionID, code, text string) (ChatResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.directory.RoomByCode(code)
	if room == nil {
		return ChatResult{}, ErrRoomNotFound
	}
	player := room.FindPlayer(connectionID)
	if player == nil {
		return ChatResult{}, ErrPlayerNotFound
	}

	msg := room.AddMessage(player, text)
	if room.CurrentWord == "" {
		return ChatResult{}, ErrNoActiveWord
	}

	matches := matchesWord(room.CurrentWord, text)
	isDrawer := player == room.CurrentDrawer()
	alreadyGuessed := player.Guessed

	res := ChatResult{
		Message:   msg,
		Outcome:   GuessOutcome{Author: player, IsCorrect: matches && !isDrawer},
		EchoScope: ScopeRoom,
	}

	// Matching text never reaches the room, whoever typed it: a solver
	// repeating the word, or the drawer typing it, would leak it. A
	// solver's ordinary chatter stays private too.
	if matches || alreadyGuessed {
		res.EchoScope = ScopeSender
	}

	if res.Outcome.IsCorrect && !alreadyGuessed {
		player.Guessed = true
		res.FirstCorrect = true
		res.GuesserAward = GuesserScore(c.clock.Now().Sub(c.turnStarted[room.Code]), room.RoundDuration)
		res.DrawerAward = DrawerAwardPerGuess
		player.Score += res.GuesserAward
		room.CurrentDrawer().Score += res.DrawerAward

		log.Debug().
			Str("room", room.Code).
			Str("player", player.Name).
			Int("award", res.GuesserAward).
			Msg("correct guess")

		// The guess announcement must leave before any frames of the
		// next turn, or clients see the rollover with no explanation.
		c.sink.CorrectGuess(room.Snapshot(), player.snapshot(), res.GuesserAward, res.DrawerAward)

		if room.AllGuessed() {
			c.advanceTurn(room)
			res.TurnAdvanced = true
		}
	}

	res.Room = room.Snapshot()
	return res, nil
}

// GameOver forcibly ends a game, cancelling every room timer. Scores
// are left intact for the leaderboard; StartGame resets them.
func (c *Coordinator) GameOver(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.directory.RoomByCode(code)
	if room == nil {
		return ErrRoomNotFound
	}
	c.endGame(room)
	return nil
}

// RoomByCode hands the transport a membership snapshot to fan out to,
// never the live room.
func (c *Coordinator) RoomByCode(code string) (RoomSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.directory.RoomByCode(code)
	if room == nil {
		return RoomSnapshot{}, false
	}
	return room.Snapshot(), true
}

// beginTurnChoice opens the choosing-word phase for the current drawer:
// three candidates, one choice timer keyed by the drawer's connection,
// auto-pick on expiry. Caller holds the lock.
func (c *Coordinator) beginTurnChoice(room *Room) {
	drawer := room.CurrentDrawer()
	if drawer == nil {
		return
	}
	room.WordChoices = c.words.PickRandom(room.Category, WordChoiceCount)

	code, connID, seq := room.Code, drawer.ConnectionID, room.turnSeq
	c.armChoiceTimer(connID, WordChoiceTimeout, func() {
		c.choiceTimerFired(code, connID, seq)
	})
	c.sink.DrawerChoosing(room.Snapshot(), drawer.snapshot(), room.WordChoices)
}

// startDrawing sets the word, records the turn start for elapsed-time
// scoring and arms the draw timer. Caller holds the lock.
func (c *Coordinator) startDrawing(room *Room, word string) {
	drawer := room.CurrentDrawer()
	c.cancelChoiceTimer(drawer.ConnectionID)
	room.CurrentWord = word
	c.turnStarted[room.Code] = c.clock.Now()

	code, seq := room.Code, room.turnSeq
	c.armDrawTimer(code, room.RoundDuration, func() {
		c.drawTimerFired(code, seq)
	})
	c.sink.TurnStarted(room.Snapshot(), drawer.snapshot(), word)
}

// advanceTurn is the central transition, reached from draw-timer expiry
// and the all-guessed early advance. Caller holds the lock.
func (c *Coordinator) advanceTurn(room *Room) {
	if room.IsEmpty() {
		return
	}

	word := room.CurrentWord
	c.clearTurnTimers(room)
	room.turnSeq++
	if word != "" {
		c.sink.TurnEnded(room.Snapshot(), word)
	}

	room.DrawerIndex = (room.DrawerIndex + 1) % len(room.Players)
	if room.DrawerIndex == 0 {
		room.CurrentRound++
	}
	if room.CurrentRound > room.TotalRounds {
		c.endGame(room)
		return
	}

	room.CurrentWord = ""
	room.WordChoices = nil
	room.ResetGuesses()
	c.beginTurnChoice(room)
}

// endGame moves the room to game over and drops every timer. Caller
// holds the lock.
func (c *Coordinator) endGame(room *Room) {
	c.clearTurnTimers(room)
	room.turnSeq++
	room.State = StateGameOver
	room.CurrentWord = ""
	room.WordChoices = nil

	log.Info().Str("room", room.Code).Msg("game over")
	c.sink.GameEnded(room.Snapshot(), room.Standings())
}

// clearTurnTimers drops the room's draw timer and every member's choice
// timer. Disconnects and races can leave strays, so this sweeps all of
// them rather than just the drawer's.
func (c *Coordinator) clearTurnTimers(room *Room) {
	c.cancelDrawTimer(room.Code)
	delete(c.turnStarted, room.Code)
	for _, p := range room.Players {
		c.cancelChoiceTimer(p.ConnectionID)
	}
}

// drawTimerFired re-enters the coordinator exactly like a network event.
// The seq check drops callbacks that lost the race to a manual advance.
func (c *Coordinator) drawTimerFired(code string, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.directory.RoomByCode(code)
	if room == nil || room.State != StatePlaying || room.turnSeq != seq {
		return
	}
	log.Debug().Str("room", code).Msg("draw timer expired")
	c.advanceTurn(room)
}

// choiceTimerFired auto-selects among the offered candidates when the
// drawer never picked.
func (c *Coordinator) choiceTimerFired(code, connectionID string, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.directory.RoomByCode(code)
	if room == nil || room.State != StatePlaying || room.turnSeq != seq {
		return
	}
	drawer := room.CurrentDrawer()
	if drawer == nil || drawer.ConnectionID != connectionID || room.CurrentWord != "" || len(room.WordChoices) == 0 {
		return
	}
	word := room.WordChoices[rand.IntN(len(room.WordChoices))]
	log.Debug().Str("room", code).Str("word", word).Msg("choice timer expired, word auto-selected")
	c.startDrawing(room, word)
}

// Arming a timer slot is an atomic replace-and-cancel, never a bare
// insert. This is what keeps duplicate advances from racing each other.

func (c *Coordinator) armDrawTimer(code string, d time.Duration, fn func()) {
	if t, ok := c.drawTimers[code]; ok {
		t.Cancel()
	}
	c.drawTimers[code] = c.scheduler.Schedule(d, fn)
}

func (c *Coordinator) cancelDrawTimer(code string) {
	if t, ok := c.drawTimers[code]; ok {
		t.Cancel()
		delete(c.drawTimers, code)
	}
}

func (c *Coordinator) armChoiceTimer(connectionID string, d time.Duration, fn func()) {
	if t, ok := c.choiceTimers[connectionID]; ok {
		t.Cancel()
	}
	c.choiceTimers[connectionID] = c.scheduler.Schedule(d, fn)
}

func (c *Coordinator) cancelChoiceTimer(connectionID string) {
	if t, ok := c.choiceTimers[connectionID]; ok {
		t.Cancel()
		delete(c.choiceTimers, connectionID)
	}
}
