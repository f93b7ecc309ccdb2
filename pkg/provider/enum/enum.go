// Package enum defines the Enumerator interface for speech-platform voice
// inventories.
//
// An enumerator wraps whatever facility a speech platform offers for listing
// its installed voices (a REST endpoint, an embedded engine's control socket)
// and presents two operations: an asynchronous readiness signal — platforms
// commonly load their voice tables lazily after startup — and a snapshot of
// the current inventory. The resolution core consumes the snapshot; it never
// talks to a platform directly.
//
// Implementations must be safe for concurrent use.
package enum

import (
	"context"

	"github.com/0x0all/brojko/pkg/voice"
)

// RawVoice is one platform voice record as reported by an enumerator.
// Language and Name are case-sensitive and passed through un-normalised;
// the resolution core indexes voices by exactly these strings.
type RawVoice struct {
	// Language is the voice's BCP-47 language tag as the platform reports it.
	Language string

	// Name is the engine-assigned voice name, unique per language tag on a
	// well-behaved platform.
	Name string

	// Engine identifies the synthesis engine providing this voice.
	Engine string

	// Gender is the platform's voice gender label, if any.
	Gender string

	// Metadata holds platform-specific voice attributes (quality tier,
	// sample rate, etc.). May be nil.
	Metadata map[string]string
}

// Compile-time check: RawVoice feeds straight into a [voice.Catalog].
var _ voice.Record = RawVoice{}

// VoiceLanguage implements [voice.Record].
func (v RawVoice) VoiceLanguage() string { return v.Language }

// VoiceName implements [voice.Record].
func (v RawVoice) VoiceName() string { return v.Name }

// Records converts a RawVoice slice to the [voice.Record] slice a catalog is
// built from.
func Records(voices []RawVoice) []voice.Record {
	out := make([]voice.Record, len(voices))
	for i, v := range voices {
		out[i] = v
	}
	return out
}

// Enumerator is the abstraction over any voice-inventory source.
type Enumerator interface {
	// AwaitReady blocks until the platform reports that its voice inventory
	// is loaded, or returns an error when the platform cannot be reached or
	// ctx is done. It reports a point-in-time signal: a platform may load
	// additional voices later, which callers observe by re-listing.
	AwaitReady(ctx context.Context) error

	// ListVoices returns a snapshot of the currently installed voices.
	// The returned slice is owned by the caller. Returns an error if the
	// platform cannot be reached or ctx is done; an empty inventory is a
	// valid result, not an error.
	ListVoices(ctx context.Context) ([]RawVoice, error)
}
