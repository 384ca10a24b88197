// internal/game/session.go
//
// Session is the mutable handle the UI layer drives. It owns a State and
// folds every input through Reduce, so the transition logic stays pure.
//
// Notes:
//   - Word selection goes through an injectable PickIndex so tests (and the
//     daily challenge) can force a specific secret.
//   - Sessions are not safe for concurrent use; exactly one input source
//     drives a session at a time (the store serialises access).

package game

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	mrand "math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/docdle/internal/words"
)

// PickIndex returns an index in [0, n).
type PickIndex func(n int) int

// RandomIndex picks uniformly using crypto/rand.
func RandomIndex(n int) int {
	return randomIndex(rand.Reader, n)
}

// randomIndex falls back to math/rand/v2 when src fails, so the pick stays uniform.
func randomIndex(src io.Reader, n int) int {
	nBig, err := rand.Int(src, big.NewInt(int64(n)))
	if err != nil {
		log.Error().Err(err).Int("n", n).Msg("crypto/rand failed, using math/rand")
		return mrand.IntN(n)
	}
	return int(nBig.Int64())
}

// Session is one player's game handle.
type Session struct {
	ID    string
	bank  words.Bank
	pick  PickIndex
	state State
}

// NewSession constructs a session with no game started.
// A nil pick defaults to RandomIndex.
func NewSession(bank words.Bank, pick PickIndex) *Session {
	if pick == nil {
		pick = RandomIndex
	}
	return &Session{ID: uuid.NewString(), bank: bank, pick: pick}
}

// StartNewGame picks an entry from category and resets the session.
func (s *Session) StartNewGame(category words.Category) error {
	return s.StartNewGameWith(category, s.pick)
}

// StartNewGameWith is StartNewGame with a one-off picker.
// Fails with *InvalidCategoryError for unknown or empty categories; the
// previous state is kept on any error.
func (s *Session) StartNewGameWith(category words.Category, pick PickIndex) error {
	entries := s.bank.Entries(category)
	if len(entries) == 0 {
		return &InvalidCategoryError{Category: category}
	}
	i := pick(len(entries))
	if i < 0 || i >= len(entries) {
		return fmt.Errorf("game: picker returned %d for %d entries", i, len(entries))
	}
	return s.apply(NewGame{Category: category, Entry: entries[i]})
}

// AppendLetter types r. Ignored unless playing, r is a single ASCII letter,
// and the pending guess is shorter than the secret.
func (s *Session) AppendLetter(r rune) {
	_ = s.apply(AppendLetter{Letter: r})
}

// DeleteLetter removes the last pending letter. Ignored unless playing.
func (s *Session) DeleteLetter() {
	_ = s.apply(DeleteLetter{})
}

// SubmitGuess commits the pending guess.
// Returns ErrIncompleteGuess (recoverable, e.g. shake the row) when it is too short.
func (s *Session) SubmitGuess() error {
	return s.apply(SubmitGuess{})
}

func (s *Session) apply(cmd Command) error {
	next, err := Reduce(s.state, cmd)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// LetterVerdicts scores committed guess row. Returns nil for rows not yet played.
func (s *Session) LetterVerdicts(row int) []Verdict {
	if row < 0 || row >= len(s.state.Guesses) {
		return nil
	}
	return ScoreGuess(s.state.Secret, s.state.Guesses[row])
}

// KeyboardStatus is the best verdict seen so far for letter.
func (s *Session) KeyboardStatus(letter rune) Verdict {
	return KeyboardStatus(letter, s.state.Guesses, s.state.Secret)
}

// CurrentStatus reports playing/won/lost ("" before the first game).
func (s *Session) CurrentStatus() Status { return s.state.Status }

// State returns a copy of the current state.
func (s *Session) State() State { return s.state.clone() }
