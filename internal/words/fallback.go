package words

import (
	"bytes"
	_ "embed"
)

// --- embedded default bank (ensures the game runs even if no source is configured) ---

//go:embed default_bank.json
var embeddedBank []byte

// Fallback returns the built-in word bank: five entries per category
// spanning all three difficulties. A fresh copy is decoded on every call
// so callers can never alias each other's slices.
func Fallback() Bank {
	b, err := Decode(bytes.NewReader(embeddedBank))
	if err != nil {
		panic("words: embedded bank is invalid: " + err.Error())
	}
	return b
}
