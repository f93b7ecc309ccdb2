// Package mock provides a test double for the enum.Enumerator interface.
//
// Use Enumerator to feed controlled voice inventories to consumers and to
// verify readiness polling behaviour.
//
// Example:
//
//	e := &mock.Enumerator{
//	    Voices: []enum.RawVoice{{Language: "en-US", Name: "Alice"}},
//	}
//	voices, _ := e.ListVoices(ctx)
package mock

import (
	"context"
	"sync"

	"github.com/0x0all/brojko/pkg/provider/enum"
)

// Enumerator is a mock implementation of enum.Enumerator. The zero value is
// a ready enumerator with an empty inventory.
type Enumerator struct {
	mu sync.Mutex

	// --- Configurable responses ---

	// Voices is the inventory returned by ListVoices.
	Voices []enum.RawVoice

	// ReadyErrs are returned by successive AwaitReady calls in order; once
	// exhausted, AwaitReady returns nil. Use to simulate a platform that
	// becomes ready after a few polls.
	ReadyErrs []error

	// ListErr, if non-nil, is returned by every ListVoices call.
	ListErr error

	// --- Recorded calls ---

	// AwaitReadyCalls counts AwaitReady invocations.
	AwaitReadyCalls int

	// ListVoicesCalls counts ListVoices invocations.
	ListVoicesCalls int
}

// Compile-time interface assertion.
var _ enum.Enumerator = (*Enumerator)(nil)

// AwaitReady pops the next configured readiness error, or returns nil when
// none remain. Returns ctx.Err() when the context is already done.
func (e *Enumerator) AwaitReady(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.AwaitReadyCalls++
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(e.ReadyErrs) == 0 {
		return nil
	}
	err := e.ReadyErrs[0]
	e.ReadyErrs = e.ReadyErrs[1:]
	return err
}

// ListVoices returns a copy of the configured inventory, or ListErr.
func (e *Enumerator) ListVoices(ctx context.Context) ([]enum.RawVoice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ListVoicesCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.ListErr != nil {
		return nil, e.ListErr
	}
	voices := make([]enum.RawVoice, len(e.Voices))
	copy(voices, e.Voices)
	return voices, nil
}
