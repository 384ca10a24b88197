package words

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
)

// BankLoadError reports that a source could not produce a usable bank.
type BankLoadError struct {
	Source   string
	Attempts int
	Err      error
}

func (e *BankLoadError) Error() string {
	return fmt.Sprintf("words: load %s failed after %d attempt(s): %v", e.Source, e.Attempts, e.Err)
}

func (e *BankLoadError) Unwrap() error { return e.Err }

// Loader fetches a bank from Source with bounded exponential backoff.
//
// Retry behaviour:
//   - Unreachable sources are retried Retries times, waiting Backoff, 2*Backoff, ...
//   - Documents that decode but fail validation (ErrInvalidBank) are not retried.
type Loader struct {
	Source  Source
	Retries uint64
	Backoff time.Duration
}

// Fetch returns the bank from Source or a *BankLoadError.
func (l Loader) Fetch(ctx context.Context) (Bank, error) {
	if l.Source == nil {
		return nil, &BankLoadError{Source: "<none>", Err: errors.New("no source configured")}
	}
	base := l.Backoff
	if base <= 0 {
		base = 500 * time.Millisecond
	}

	var (
		bank     Bank
		attempts int
	)
	err := retry.Do(ctx, retry.WithMaxRetries(l.Retries, retry.NewExponential(base)), func(ctx context.Context) error {
		attempts++
		b, err := l.fetchOnce(ctx)
		if err == nil {
			bank = b
			return nil
		}
		log.Warn().Err(err).Str("source", l.Source.String()).Int("attempt", attempts).Msg("word bank fetch failed")
		if errors.Is(err, ErrInvalidBank) {
			return err
		}
		return retry.RetryableError(err)
	})
	if err != nil {
		return nil, &BankLoadError{Source: l.Source.String(), Attempts: attempts, Err: err}
	}
	return bank, nil
}

// Load never fails: it returns the fetched bank, or the built-in one once
// retries are exhausted. The bool is true when the fallback was used.
func (l Loader) Load(ctx context.Context) (Bank, bool) {
	if l.Source == nil {
		log.Info().Msg("no word bank source configured, using built-in bank")
		return Fallback(), true
	}
	bank, err := l.Fetch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("using built-in word bank")
		return Fallback(), true
	}
	log.Info().Str("source", l.Source.String()).Int("entries", bank.Size()).Msg("word bank loaded")
	return bank, false
}

func (l Loader) fetchOnce(ctx context.Context) (Bank, error) {
	rc, err := l.Source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Decode(rc)
}
