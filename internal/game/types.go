// internal/game/types.go
//
// Core type definitions for the guess-evaluation engine.
// Defines:
//   - Verdict: per-letter result of a guess (correct/present/absent).
//   - Status:  lifecycle of a session (playing → won | lost).
//   - State:   the explicit, copyable state of one play-through.

package game

import "github.com/robalobadob/docdle/internal/words"

// MaxGuesses is the number of rows a player gets.
const MaxGuesses = 6

// Verdict represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the secret at this position.
//   - "present": letter is in the secret elsewhere (and not yet accounted for).
//   - "absent":  letter is not in the secret, or all its occurrences are used up.
//
// VerdictNone is only produced by keyboard aggregation for unseen letters.
type Verdict string

const (
	VerdictNone    Verdict = ""
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
)

// rank orders verdicts for keyboard aggregation.
func (v Verdict) rank() int {
	switch v {
	case VerdictCorrect:
		return 3
	case VerdictPresent:
		return 2
	case VerdictAbsent:
		return 1
	}
	return 0
}

// Status is the coarse lifecycle state of a session.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Finished reports whether no further guesses will be accepted.
func (s Status) Finished() bool { return s == StatusWon || s == StatusLost }

// State holds one play-through. The zero value is "no game started".
type State struct {
	Category   words.Category   // Category the secret was drawn from.
	Secret     string           // Uppercase A–Z, fixed for the session.
	Hint       string           // Optional hint from the word entry.
	Difficulty words.Difficulty // Difficulty of the word entry.
	Info       string           // Optional supplementary info from the entry.
	Guesses    []string         // Committed guesses, each len(Secret).
	Pending    string           // Guess being typed, at most len(Secret).
	Status     Status           // playing | won | lost ("" before the first game).
}

// clone returns a deep copy so callers cannot alias Guesses.
func (s State) clone() State {
	s.Guesses = append([]string(nil), s.Guesses...)
	return s
}
