// internal/words/words.go
//
// Word bank model for the game engine.
//
// Responsibilities:
//   - Define the closed set of body-system categories.
//   - Hold categorised word entries (word, hint, difficulty, extra info).
//   - Supply small lookup helpers (ParseCategory, Entries, Counts).
//
// Word Bank:
//   - Loaded once at startup (see loader.go), immutable afterwards.
//   - Words are normalised to uppercase A–Z at decode time.
//   - A category may legally be empty; the engine refuses to start a game on it.

package words

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Category is a top-level key of the word bank.
type Category string

const (
	Cardiovascular Category = "cardiovascular"
	Respiratory    Category = "respiratory"
	Nervous        Category = "nervous"
	Skeletal       Category = "skeletal"
	Muscular       Category = "muscular"
)

// categories is the closed set, in display order.
var categories = []Category{Cardiovascular, Respiratory, Nervous, Skeletal, Muscular}

// Categories returns every known category in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory maps a raw key to a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.TrimSpace(s))
	return c, lo.Contains(categories, c)
}

// Label is the human-readable name of a category ("bodySystem" → "body System").
func (c Category) Label() string {
	var b strings.Builder
	for _, r := range string(c) {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Difficulty grades a word entry.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Entry is a single vocabulary item.
type Entry struct {
	Word       string     `json:"word" validate:"required,alpha"`
	Hint       string     `json:"hint,omitempty"`
	Difficulty Difficulty `json:"difficulty" validate:"oneof=easy medium hard"`
	Info       string     `json:"supplementaryInfo,omitempty"`
}

// Bank maps each category to its ordered entries.
type Bank map[Category][]Entry

// Entries returns the entries for c (nil if unknown).
func (b Bank) Entries(c Category) []Entry {
	return b[c]
}

// Counts reports the number of entries per category.
func (b Bank) Counts() map[Category]int {
	return lo.MapValues(b, func(es []Entry, _ Category) int { return len(es) })
}

// Size is the total number of entries across categories.
func (b Bank) Size() int {
	return lo.Sum(lo.Values(b.Counts()))
}
