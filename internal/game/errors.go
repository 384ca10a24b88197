package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/docdle/internal/words"
)

var (
	// ErrIncompleteGuess is returned by SubmitGuess before the pending guess
	// reaches the secret's length. The state is left unchanged.
	ErrIncompleteGuess = errors.New("incomplete guess")

	// ErrGameOver is returned when a guess is submitted to a finished game.
	ErrGameOver = errors.New("game finished")

	// ErrNoGame is returned when a guess is submitted before any game started.
	ErrNoGame = errors.New("no game in progress")

	// ErrGameInProgress is returned when exporting a result that is not final yet.
	ErrGameInProgress = errors.New("game still in progress")
)

// InvalidCategoryError reports an unknown category or one with no entries.
type InvalidCategoryError struct {
	Category words.Category
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category %q", string(e.Category))
}
