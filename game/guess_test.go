package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchesWord(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc  string
		word  string
		guess string
		want  bool
	}{
		{desc: "exact", word: "apple", guess: "apple", want: true},
		{desc: "case-insensitive", word: "apple", guess: "APPLE", want: true},
		{desc: "surrounding whitespace trimmed", word: "apple", guess: " Apple ", want: true},
		{desc: "no fuzzy matching", word: "apple", guess: "apples", want: false},
		{desc: "inner whitespace matters", word: "apple", guess: "ap ple", want: false},
		{desc: "empty guess never matches", word: "apple", guess: "", want: false},
		{desc: "whitespace-only guess never matches", word: "apple", guess: "   ", want: false},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.want, matchesWord(tC.word, tC.guess))
		})
	}
}

func TestGuesserScore(t *testing.T) {
	t.Parallel()

	round := 60 * time.Second
	testCases := []struct {
		desc    string
		elapsed time.Duration
		want    int
	}{
		{desc: "instant guess scores the max", elapsed: 0, want: 1000},
		{desc: "sub-second rounds up to one", elapsed: 500 * time.Millisecond, want: 985},
		{desc: "mid-round", elapsed: 30 * time.Second, want: 550},
		{desc: "guess at the deadline clamps to the floor", elapsed: 60 * time.Second, want: 99},
		{desc: "past the deadline stays at the floor", elapsed: 90 * time.Second, want: 99},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.want, GuesserScore(tC.elapsed, round))
		})
	}

	assert.Equal(t, MinGuessScore, GuesserScore(time.Second, 0), "degenerate round duration")
	assert.Equal(t, 970, GuesserScore(10*time.Second, 5*time.Minute), "long rounds decay slower")
}
