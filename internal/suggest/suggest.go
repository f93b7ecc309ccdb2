// Package suggest picks a replacement voice for a stale selection.
//
// When a persisted voice selection stops being acceptable — the platform
// dropped the voice, or the resolved group changed after an engine update —
// the closest acceptable voice by name is usually what the user wants back:
// voice packs are frequently re-released under slightly different names
// ("Amy" → "Amy-Neural"). Candidates are ranked by Jaro-Winkler similarity
// against the stale name, case-insensitive, and only offered above a
// similarity threshold; ties keep the earlier candidate, so the result is
// deterministic for a given candidate order.
package suggest

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/0x0all/brojko/pkg/voice"
)

// defaultThreshold is the minimum Jaro-Winkler score for a suggestion.
const defaultThreshold = 0.70

// Option is a functional option for configuring a [Suggester].
type Option func(*Suggester)

// WithThreshold sets the minimum similarity score required for a candidate to
// be suggested. Default: 0.70.
func WithThreshold(threshold float64) Option {
	return func(s *Suggester) {
		s.threshold = threshold
	}
}

// Suggester ranks replacement candidates for stale voice names. It is
// read-only after construction and safe for concurrent use.
type Suggester struct {
	threshold float64
}

// New returns a [Suggester] configured with the supplied options.
func New(opts ...Option) *Suggester {
	s := &Suggester{threshold: defaultThreshold}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Closest returns the candidate whose name is most similar to staleName, and
// whether any candidate scored at or above the threshold. With no candidates,
// or none similar enough, ok is false.
func (s *Suggester) Closest(staleName string, candidates []voice.Identity) (best voice.Identity, ok bool) {
	stale := strings.ToLower(staleName)
	bestScore := 0.0

	for _, cand := range candidates {
		score := matchr.JaroWinkler(stale, strings.ToLower(cand.Name()), false)
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	if bestScore < s.threshold {
		return voice.Identity{}, false
	}
	return best, true
}
