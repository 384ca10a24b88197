// internal/game/reducer.go
//
// Pure state transitions for a session.
//
// Reduce(state, command) returns the next state and never mutates its input.
// A command either applies fully or returns the input state with an error;
// silently ignored inputs (bad characters, typing after the game ended)
// return the input state and a nil error.

package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/docdle/internal/words"
)

// Command is an input to Reduce.
type Command interface{ command() }

// NewGame replaces the state with a fresh game for Entry.
type NewGame struct {
	Category words.Category
	Entry    words.Entry
}

// AppendLetter types one letter into the pending guess.
type AppendLetter struct{ Letter rune }

// DeleteLetter removes the last pending letter.
type DeleteLetter struct{}

// SubmitGuess commits the pending guess.
type SubmitGuess struct{}

func (NewGame) command()      {}
func (AppendLetter) command() {}
func (DeleteLetter) command() {}
func (SubmitGuess) command()  {}

// Reduce applies cmd to s.
func Reduce(s State, cmd Command) (State, error) {
	switch c := cmd.(type) {
	case NewGame:
		return newGame(s, c)
	case AppendLetter:
		return appendLetter(s, c.Letter), nil
	case DeleteLetter:
		return deleteLetter(s), nil
	case SubmitGuess:
		return submitGuess(s)
	default:
		return s, fmt.Errorf("game: unknown command %T", cmd)
	}
}

func newGame(s State, c NewGame) (State, error) {
	secret := strings.ToUpper(strings.TrimSpace(c.Entry.Word))
	if !isAlpha(secret) {
		return s, fmt.Errorf("game: entry %q is not alphabetic", c.Entry.Word)
	}
	return State{
		Category:   c.Category,
		Secret:     secret,
		Hint:       c.Entry.Hint,
		Difficulty: c.Entry.Difficulty,
		Info:       c.Entry.Info,
		Guesses:    []string{},
		Status:     StatusPlaying,
	}, nil
}

func appendLetter(s State, r rune) State {
	if s.Status != StatusPlaying || len(s.Pending) >= len(s.Secret) {
		return s
	}
	r = upper(r)
	if r < 'A' || r > 'Z' {
		return s
	}
	s.Pending += string(r)
	return s
}

func deleteLetter(s State) State {
	if s.Status != StatusPlaying || s.Pending == "" {
		return s
	}
	s.Pending = s.Pending[:len(s.Pending)-1]
	return s
}

// submitGuess is the only transition that can end a game. Winning is a
// word-level equality check; per-letter verdicts are never stored.
func submitGuess(s State) (State, error) {
	switch {
	case s.Status == "":
		return s, ErrNoGame
	case s.Status.Finished():
		return s, ErrGameOver
	case len(s.Pending) != len(s.Secret):
		return s, ErrIncompleteGuess
	}

	next := s.clone()
	next.Guesses = append(next.Guesses, s.Pending)
	next.Pending = ""
	switch {
	case s.Pending == s.Secret:
		next.Status = StatusWon
	case len(next.Guesses) >= MaxGuesses:
		next.Status = StatusLost
	}
	return next, nil
}
