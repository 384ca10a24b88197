package game

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"testing/iotest"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/docdle/internal/words"
)

func testBank() words.Bank {
	return words.Bank{
		words.Cardiovascular: {
			{Word: "HEART", Hint: "Muscular organ that pumps blood", Difficulty: words.Easy},
			{Word: "AORTA", Hint: "Largest artery in the body", Difficulty: words.Medium},
		},
		words.Skeletal: {
			{Word: "LEVEL", Difficulty: words.Hard},
		},
		words.Nervous: {},
	}
}

func pickAt(i int) PickIndex { return func(int) int { return i } }

func typeInto(s *Session, w string) {
	for _, r := range w {
		s.AppendLetter(r)
	}
}

func TestSession_StartNewGame(t *testing.T) {
	s := NewSession(testBank(), pickAt(1))
	require.NotEmpty(t, s.ID)
	assert.Equal(t, Status(""), s.CurrentStatus())

	require.NoError(t, s.StartNewGame(words.Cardiovascular))
	st := s.State()
	assert.Equal(t, "AORTA", st.Secret)
	assert.Equal(t, "Largest artery in the body", st.Hint)
	assert.Equal(t, words.Medium, st.Difficulty)
	assert.Equal(t, StatusPlaying, s.CurrentStatus())
}

func TestSession_InvalidCategory(t *testing.T) {
	s := NewSession(testBank(), pickAt(0))
	require.NoError(t, s.StartNewGame(words.Skeletal))
	typeInto(s, "LEV")

	for _, c := range []words.Category{words.Nervous, words.Muscular, "digestive"} {
		err := s.StartNewGame(c)
		var ice *InvalidCategoryError
		require.ErrorAs(t, err, &ice, "category %s", c)
		assert.Equal(t, c, ice.Category)
	}

	st := s.State()
	assert.Equal(t, "LEVEL", st.Secret, "failed start keeps the previous game")
	assert.Equal(t, "LEV", st.Pending)
}

func TestSession_PickerOutOfRange(t *testing.T) {
	s := NewSession(testBank(), pickAt(7))
	assert.Error(t, s.StartNewGame(words.Cardiovascular))
	assert.Equal(t, Status(""), s.CurrentStatus())
}

func TestRandomIndex_ReaderFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	src := iotest.ErrReader(errors.New("entropy exhausted"))
	for i := 0; i < 50; i++ {
		got := randomIndex(src, 5)
		require.GreaterOrEqual(t, got, 0)
		require.Less(t, got, 5)
	}
	assert.Contains(t, buf.String(), "entropy exhausted")
	assert.Contains(t, buf.String(), "crypto/rand failed")
}

func TestRandomIndex_InRange(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		got := RandomIndex(3)
		require.GreaterOrEqual(t, got, 0)
		require.Less(t, got, 3)
		seen[got] = true
	}
	assert.Len(t, seen, 3)
}

func TestSession_Examples(t *testing.T) {
	t.Run("HEART/EARTH all present", func(t *testing.T) {
		s := NewSession(testBank(), pickAt(0))
		require.NoError(t, s.StartNewGame(words.Cardiovascular))
		typeInto(s, "earth")
		require.NoError(t, s.SubmitGuess())
		assert.Equal(t, []Verdict{VerdictPresent, VerdictPresent, VerdictPresent, VerdictPresent, VerdictPresent}, s.LetterVerdicts(0))
		assert.Equal(t, StatusPlaying, s.CurrentStatus())
	})

	t.Run("HEART/HEART wins", func(t *testing.T) {
		s := NewSession(testBank(), pickAt(0))
		require.NoError(t, s.StartNewGame(words.Cardiovascular))
		typeInto(s, "HEART")
		require.NoError(t, s.SubmitGuess())
		assert.Equal(t, []Verdict{VerdictCorrect, VerdictCorrect, VerdictCorrect, VerdictCorrect, VerdictCorrect}, s.LetterVerdicts(0))
		assert.Equal(t, StatusWon, s.CurrentStatus())
	})

	t.Run("LEVEL/ELVES", func(t *testing.T) {
		s := NewSession(testBank(), nil)
		require.NoError(t, s.StartNewGame(words.Skeletal))
		typeInto(s, "ELVES")
		require.NoError(t, s.SubmitGuess())
		assert.Equal(t, []Verdict{VerdictPresent, VerdictPresent, VerdictCorrect, VerdictCorrect, VerdictAbsent}, s.LetterVerdicts(0))
		assert.Nil(t, s.LetterVerdicts(1))
		assert.Nil(t, s.LetterVerdicts(-1))
	})

	t.Run("six wrong guesses lose", func(t *testing.T) {
		s := NewSession(testBank(), pickAt(0))
		require.NoError(t, s.StartNewGame(words.Cardiovascular))
		for i := 0; i < MaxGuesses; i++ {
			typeInto(s, "HATER")
			require.NoError(t, s.SubmitGuess())
		}
		assert.Equal(t, StatusLost, s.CurrentStatus())
		assert.Equal(t, "HEART", s.State().Secret)
		assert.Equal(t, "HEART", s.Snapshot().Answer)

		typeInto(s, "HEART")
		assert.ErrorIs(t, s.SubmitGuess(), ErrGameOver)
		assert.Len(t, s.State().Guesses, MaxGuesses)
	})

	t.Run("restart mid-game", func(t *testing.T) {
		s := NewSession(testBank(), pickAt(0))
		require.NoError(t, s.StartNewGame(words.Cardiovascular))
		typeInto(s, "EARTH")
		require.NoError(t, s.SubmitGuess())
		typeInto(s, "HE")

		require.NoError(t, s.StartNewGameWith(words.Cardiovascular, pickAt(1)))
		st := s.State()
		assert.Empty(t, st.Guesses)
		assert.Empty(t, st.Pending)
		assert.Equal(t, StatusPlaying, st.Status)
		assert.Equal(t, "AORTA", st.Secret)
	})
}

func TestSession_IncompleteSubmit(t *testing.T) {
	s := NewSession(testBank(), pickAt(0))
	require.NoError(t, s.StartNewGame(words.Cardiovascular))
	typeInto(s, "HEA")
	assert.ErrorIs(t, s.SubmitGuess(), ErrIncompleteGuess)
	assert.Equal(t, "HEA", s.State().Pending)
	assert.Empty(t, s.State().Guesses)
}

func TestSession_StateIsACopy(t *testing.T) {
	s := NewSession(testBank(), pickAt(0))
	require.NoError(t, s.StartNewGame(words.Cardiovascular))
	typeInto(s, "EARTH")
	require.NoError(t, s.SubmitGuess())

	st := s.State()
	st.Guesses[0] = "XXXXX"
	assert.Equal(t, "EARTH", s.State().Guesses[0])
}

func TestSession_Snapshot(t *testing.T) {
	s := NewSession(testBank(), pickAt(0))
	require.NoError(t, s.StartNewGame(words.Cardiovascular))
	typeInto(s, "STORM")
	require.NoError(t, s.SubmitGuess())
	typeInto(s, "HE")

	snap := s.Snapshot()
	assert.Equal(t, words.Cardiovascular, snap.Category)
	assert.Equal(t, "cardiovascular", snap.Label)
	assert.Equal(t, 5, snap.Length)
	assert.Equal(t, MaxGuesses, snap.MaxGuesses)
	assert.Equal(t, "HE", snap.Pending)
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "STORM", snap.Rows[0].Guess)
	assert.Equal(t, map[string]Verdict{
		"S": VerdictAbsent,
		"T": VerdictPresent,
		"O": VerdictAbsent,
		"R": VerdictCorrect,
		"M": VerdictAbsent,
	}, snap.Keyboard)
	assert.Empty(t, snap.Answer, "answer hidden while playing")
}

// Random drivers never break the session invariants.
func TestSession_InvariantsUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	keys := []rune("HEARTLVOSZ1 ")
	cats := []words.Category{words.Cardiovascular, words.Skeletal, words.Nervous}

	s := NewSession(testBank(), func(n int) int { return rng.Intn(n) })
	for step := 0; step < 20000; step++ {
		switch op := rng.Intn(20); {
		case op == 0:
			_ = s.StartNewGame(cats[rng.Intn(len(cats))])
		case op < 3:
			s.DeleteLetter()
		case op < 6:
			_ = s.SubmitGuess()
		default:
			s.AppendLetter(keys[rng.Intn(len(keys))])
		}

		st := s.State()
		require.LessOrEqual(t, len(st.Guesses), MaxGuesses)
		require.LessOrEqual(t, len(st.Pending), len(st.Secret))
		for _, g := range st.Guesses {
			require.Len(t, g, len(st.Secret))
		}
		if st.Status.Finished() {
			require.GreaterOrEqual(t, len(st.Guesses), 1)
		}
		won := len(st.Guesses) > 0 && st.Guesses[len(st.Guesses)-1] == st.Secret
		switch {
		case won:
			require.Equal(t, StatusWon, st.Status)
		case len(st.Guesses) == MaxGuesses:
			require.Equal(t, StatusLost, st.Status)
		case st.Status != "":
			require.Equal(t, StatusPlaying, st.Status)
		}
	}
}
