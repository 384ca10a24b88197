package game

import (
	"strconv"
	"strings"
)

// ShareTitle heads every exported result.
const ShareTitle = "Docdle"

var shareBlocks = map[Verdict]string{
	VerdictCorrect: "🟩",
	VerdictPresent: "🟨",
	VerdictAbsent:  "⬜",
}

// ShareText renders a finished game as
//
//	Docdle <category> <n>/6   (X/6 on a loss)
//
//	🟩🟨⬜⬜⬜
//	...
//
// followed by "Play at: <url>" when url is set.
func ShareText(st State, url string) (string, error) {
	if !st.Status.Finished() {
		return "", ErrGameInProgress
	}
	count := "X"
	if st.Status == StatusWon {
		count = strconv.Itoa(len(st.Guesses))
	}

	var b strings.Builder
	b.WriteString(ShareTitle + " " + st.Category.Label() + " " + count + "/" + strconv.Itoa(MaxGuesses) + "\n\n")
	for _, g := range st.Guesses {
		for _, v := range ScoreGuess(st.Secret, g) {
			b.WriteString(shareBlocks[v])
		}
		b.WriteString("\n")
	}
	if url != "" {
		b.WriteString("\nPlay at: " + url)
	}
	return b.String(), nil
}

// ShareText renders the session's result; see ShareText.
func (s *Session) ShareText(url string) (string, error) {
	return ShareText(s.state, url)
}
