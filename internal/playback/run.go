package playback

import (
	"context"

	"github.com/verte-zerg/phrasedrill/internal/speech"
)

// Run applies completions from done until ctx ends or done is closed. It is
// the engine's only caller while it runs.
func Run(ctx context.Context, e *Engine, done <-chan speech.Done) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-done:
			if !ok {
				return nil
			}
			e.HandleDone(d)
		}
	}
}
