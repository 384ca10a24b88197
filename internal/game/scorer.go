package game

// ScoreGuess implements the two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non‑correct) secret letters.
//
// Pass 2:
//   - Left to right, for each non‑correct guess letter: if there is a
//     remaining count for that letter, mark present and decrement it;
//     otherwise mark absent.
//
// With a letter occurring k times in the secret and m > k times in the guess,
// exactly k of those positions end up correct or present: correct positions
// first, then the leftmost remaining ones.
//
// Returns nil when the lengths differ.
func ScoreGuess(secret, guess string) []Verdict {
	n := len(secret)
	if len(guess) != n {
		return nil
	}
	res := make([]Verdict, n)

	// Letter frequency for the non‑correct positions (A–Z).
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = VerdictCorrect
		} else if j := idx(secret[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == VerdictCorrect {
			continue
		}
		if j := idx(guess[i]); j >= 0 && counts[j] > 0 {
			res[i] = VerdictPresent
			counts[j]--
		} else {
			res[i] = VerdictAbsent
		}
	}
	return res
}

// KeyboardStatus aggregates the best verdict ever observed for letter across
// the committed guesses: correct > present > absent > none. Once correct is
// seen the letter never downgrades.
func KeyboardStatus(letter rune, guesses []string, secret string) Verdict {
	letter = upper(letter)
	best := VerdictNone
	for _, g := range guesses {
		marks := ScoreGuess(secret, g)
		for i := 0; i < len(marks); i++ {
			if rune(g[i]) != letter {
				continue
			}
			if marks[i] == VerdictCorrect {
				return VerdictCorrect
			}
			if marks[i].rank() > best.rank() {
				best = marks[i]
			}
		}
	}
	return best
}

// idx maps an uppercase ASCII letter to 0..25, or -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}

// upper folds an ASCII lowercase letter to uppercase; other runes are returned as is.
func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// isAlpha reports whether s is non-empty and consists only of A–Z.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if idx(s[i]) < 0 {
			return false
		}
	}
	return true
}
