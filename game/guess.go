package game

import (
	"math"
	"strings"
	"time"
)

// matchesWord is the whole of guess correctness: trim surrounding
// whitespace, fold case, exact match. No fuzzy matching. An empty guess
// never matches (an unset word never has guesses evaluated against it at
// all, see Coordinator.PostMessage).
func matchesWord(word, guess string) bool {
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return false
	}
	return strings.EqualFold(word, guess)
}

// GuesserScore is the award for a first correct guess: a linear decay
// from 1000 down over the round, floored at 99. Elapsed wall time is
// rounded up to whole seconds; a guess landing at or past the deadline
// earns the floor.
func GuesserScore(elapsed, roundDuration time.Duration) int {
	if roundDuration <= 0 || elapsed >= roundDuration {
		return MinGuessScore
	}
	secs := math.Ceil(elapsed.Seconds())
	score := int(math.Ceil(MaxGuessScore - secs*(GuessScoreDecay/roundDuration.Seconds())))
	if score < MinGuessScore {
		return MinGuessScore
	}
	if score > MaxGuessScore {
		return MaxGuessScore
	}
	return score
}
