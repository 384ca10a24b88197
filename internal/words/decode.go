package words

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

// ErrInvalidBank marks a word bank that was read but is structurally unusable.
// Loaders do not retry on it.
var ErrInvalidBank = errors.New("words: invalid word bank")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a JSON word bank of the form
//
//	{"cardiovascular": [{"word": "heart", "hint": "...", "difficulty": "easy"}, ...], ...}
//
// Every known category must be present and map to a list, and at least one
// list must be non-empty. Unknown keys are ignored.
func Decode(r io.Reader) (Bank, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidBank)
	}

	bank := make(Bank, len(categories))
	for _, c := range categories {
		msg, ok := raw[string(c)]
		if !ok {
			return nil, fmt.Errorf("%w: missing category %q", ErrInvalidBank, c)
		}
		msg = bytes.TrimSpace(msg)
		if len(msg) == 0 || msg[0] != '[' {
			return nil, fmt.Errorf("%w: category %q is not a list", ErrInvalidBank, c)
		}
		var entries []Entry
		if err := json.Unmarshal(msg, &entries); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", ErrInvalidBank, c, err)
		}
		for i := range entries {
			entries[i].Word = strings.ToUpper(strings.TrimSpace(entries[i].Word))
			if err := validate.Struct(entries[i]); err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidBank, c, i, err)
			}
		}
		bank[c] = entries
	}
	if bank.Size() == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidBank)
	}
	return bank, nil
}
