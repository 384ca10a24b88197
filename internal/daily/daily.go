// internal/daily/daily.go
//
// Daily challenge word selection.
// Every category gets one secret per UTC day, the same for every player:
// HMAC-SHA256(salt, "YYYY-MM-DD|category") reduced modulo the entry count.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/docdle/internal/game"
	"github.com/robalobadob/docdle/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date and category.
func WordIndex(date time.Time, salt string, category words.Category, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date) + "|" + string(category)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Picker adapts WordIndex to the engine's index source.
func Picker(date time.Time, salt string, category words.Category) game.PickIndex {
	return func(n int) int { return WordIndex(date, salt, category, n) }
}
