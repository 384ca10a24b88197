package game

import "github.com/robalobadob/docdle/internal/words"

// Row is one committed guess and its verdicts.
type Row struct {
	Guess    string    `json:"guess"`
	Verdicts []Verdict `json:"verdicts"`
}

// Snapshot is the read model handed to clients. Everything derived
// (verdicts, keyboard) is recomputed from the raw state on each call.
type Snapshot struct {
	Category   words.Category     `json:"category"`
	Label      string             `json:"label"`
	Difficulty words.Difficulty   `json:"difficulty"`
	Hint       string             `json:"hint,omitempty"`
	Info       string             `json:"info,omitempty"`
	Length     int                `json:"length"`
	MaxGuesses int                `json:"maxGuesses"`
	Rows       []Row              `json:"rows"`
	Pending    string             `json:"pending"`
	Status     Status             `json:"status"`
	Keyboard   map[string]Verdict `json:"keyboard"`
	Answer     string             `json:"answer,omitempty"` // only once finished
}

// Snapshot builds the read model for the current state.
func (s *Session) Snapshot() Snapshot {
	st := s.state
	snap := Snapshot{
		Category:   st.Category,
		Label:      st.Category.Label(),
		Difficulty: st.Difficulty,
		Hint:       st.Hint,
		Info:       st.Info,
		Length:     len(st.Secret),
		MaxGuesses: MaxGuesses,
		Rows:       make([]Row, 0, len(st.Guesses)),
		Pending:    st.Pending,
		Status:     st.Status,
		Keyboard:   map[string]Verdict{},
	}
	for i, g := range st.Guesses {
		snap.Rows = append(snap.Rows, Row{Guess: g, Verdicts: s.LetterVerdicts(i)})
	}
	for r := 'A'; r <= 'Z'; r++ {
		if v := s.KeyboardStatus(r); v != VerdictNone {
			snap.Keyboard[string(r)] = v
		}
	}
	if st.Status.Finished() {
		snap.Answer = st.Secret
	}
	return snap
}
