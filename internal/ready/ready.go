// Package ready implements the fixed-interval polling wait for a speech
// platform's voice-inventory readiness signal.
//
// Platforms load voice tables asynchronously; the resolution core must not be
// handed an inventory snapshot before the platform reports it complete. The
// policy here is deliberately dumb — a fixed attempt count with a fixed
// interval between attempts — because the platform gives no progress
// information to back anything smarter.
package ready

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/0x0all/brojko/pkg/provider/enum"
)

// Wait polls e.AwaitReady until it succeeds, up to attempts tries with
// interval between consecutive tries (no delay before the first). It returns
// nil on the first success, ctx.Err() if the context is done while waiting,
// and the last readiness error wrapped once all attempts are exhausted.
func Wait(ctx context.Context, e enum.Enumerator, attempts int, interval time.Duration) error {
	if attempts < 1 {
		return fmt.Errorf("ready: attempts must be >= 1, got %d", attempts)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}

		lastErr = e.AwaitReady(ctx)
		if lastErr == nil {
			return nil
		}
		slog.Debug("platform not ready",
			"attempt", attempt,
			"attempts", attempts,
			"err", lastErr,
		)
	}
	return fmt.Errorf("ready: platform not ready after %d attempts: %w", attempts, lastErr)
}
