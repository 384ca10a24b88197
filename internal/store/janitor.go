package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunJanitor calls Expire every interval until ctx is done. Always returns nil.
func RunJanitor(ctx context.Context, st Store, every time.Duration) error {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			if n := st.Expire(now); n > 0 {
				log.Info().Int("evicted", n).Int("live", st.Len()).Msg("expired idle sessions")
			}
		}
	}
}
