package words

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
  "cardiovascular": [{"word": "heart", "hint": "pump", "difficulty": "easy"}],
  "respiratory": [{"word": "lungs", "difficulty": "easy"}],
  "nervous": [{"word": "brain", "difficulty": "easy"}],
  "skeletal": [{"word": "femur", "difficulty": "easy"}],
  "muscular": [{"word": "bicep", "difficulty": "medium"}]
}`

// flakySource fails the first n opens, then serves doc.
type flakySource struct {
	failures int
	doc      string
	opens    int32
}

func (f *flakySource) Open(ctx context.Context) (io.ReadCloser, error) {
	n := atomic.AddInt32(&f.opens, 1)
	if int(n) <= f.failures {
		return nil, errors.New("connection refused")
	}
	return io.NopCloser(strings.NewReader(f.doc)), nil
}

func (f *flakySource) String() string { return "flaky" }

func TestLoader_RetriesThenSucceeds(t *testing.T) {
	src := &flakySource{failures: 2, doc: validDoc}
	l := Loader{Source: src, Retries: 2, Backoff: time.Millisecond}

	bank, fallback := l.Load(context.Background())
	assert.False(t, fallback)
	assert.Equal(t, "HEART", bank.Entries(Cardiovascular)[0].Word)
	assert.EqualValues(t, 3, src.opens)
}

func TestLoader_FallsBackAfterRetries(t *testing.T) {
	src := &flakySource{failures: 10, doc: validDoc}
	l := Loader{Source: src, Retries: 2, Backoff: time.Millisecond}

	_, err := l.Fetch(context.Background())
	var lerr *BankLoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 3, lerr.Attempts)

	bank, fallback := l.Load(context.Background())
	assert.True(t, fallback)
	assert.Equal(t, Fallback(), bank)
}

func TestLoader_InvalidDocumentIsNotRetried(t *testing.T) {
	src := &flakySource{doc: `{"cardiovascular": []}`}
	l := Loader{Source: src, Retries: 5, Backoff: time.Millisecond}

	_, err := l.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidBank)
	assert.EqualValues(t, 1, src.opens)
}

func TestLoader_EmptyBankFallsBack(t *testing.T) {
	src := &flakySource{doc: `{"cardiovascular": [], "respiratory": [], "nervous": [], "skeletal": [], "muscular": []}`}
	l := Loader{Source: src, Retries: 5, Backoff: time.Millisecond}

	bank, fallback := l.Load(context.Background())
	assert.True(t, fallback)
	assert.Equal(t, Fallback(), bank)
	assert.EqualValues(t, 1, src.opens)
}

func TestLoader_NoSourceUsesFallback(t *testing.T) {
	bank, fallback := Loader{}.Load(context.Background())
	assert.True(t, fallback)
	assert.Equal(t, 25, bank.Size())
}

func TestLoader_CancelledContextFallsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := Loader{Source: &flakySource{failures: 10}, Retries: 3, Backoff: time.Hour}

	bank, fallback := l.Load(ctx)
	assert.True(t, fallback)
	assert.NotEmpty(t, bank)
}

func TestHTTPSource(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(validDoc))
	}))
	defer ts.Close()

	l := Loader{Source: SourceFor("", ts.URL, time.Second), Retries: 2, Backoff: time.Millisecond}
	bank, fallback := l.Load(context.Background())
	assert.False(t, fallback)
	assert.Equal(t, "BRAIN", bank.Entries(Nervous)[0].Word)
	assert.EqualValues(t, 2, hits)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	src := SourceFor(path, "http://ignored.invalid", time.Second)
	require.IsType(t, FileSource{}, src)

	bank, err := Loader{Source: src}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FEMUR", bank.Entries(Skeletal)[0].Word)
}

func TestSourceFor_None(t *testing.T) {
	assert.Nil(t, SourceFor("", "", time.Second))
}
