package voice

import (
	"cmp"
	"slices"
)

// Match classifies how a requested language was resolved against a catalog.
type Match int

const (
	// MatchExact means at least one voice carries the requested tag verbatim.
	MatchExact Match = iota

	// MatchFallback means no exact tag matched and the candidates were drawn
	// by primary language subtag.
	MatchFallback

	// MatchNone means neither tier produced a candidate.
	MatchNone
)

// String returns the lower-case name of the match tier, for logs and metrics.
func (m Match) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchFallback:
		return "fallback"
	case MatchNone:
		return "none"
	default:
		return "unknown"
	}
}

// VoicesByLanguage maps each requested language tag to the ordered identities
// of its acceptable voices. Produced by [GroupByLanguage]; per-language order
// is significant (name ascending, then language tag ascending).
type VoicesByLanguage map[string][]Identity

// Resolve returns the acceptable voices for one requested language tag.
//
// Voices registered under exactly tag win outright; the fallback tier is not
// consulted when even a single exact match exists. Otherwise candidates are
// all voices sharing tag's primary subtag. An empty result is normal, not an
// error. The returned slice is sorted by voice name, ties broken by language
// tag, both ordinal ascending — a total order over distinct identities.
func (c *Catalog) Resolve(tag string) ([]Identity, Match) {
	match := MatchExact
	candidates := c.FilterExact(tag)
	if len(candidates) == 0 {
		match = MatchFallback
		candidates = c.FilterPrimary(c.primary(tag))
	}
	if len(candidates) == 0 {
		return nil, MatchNone
	}
	slices.SortFunc(candidates, func(a, b Identity) int {
		return cmp.Or(
			cmp.Compare(a.name, b.name),
			cmp.Compare(a.language, b.language),
		)
	})
	return candidates, match
}

// GroupByLanguage resolves every requested language against the catalog and
// returns the completed mapping. Requested tags are processed in order;
// duplicates are each resolved again, the later result overwriting the
// earlier under the same key.
func GroupByLanguage(c *Catalog, requested []string) VoicesByLanguage {
	out := make(VoicesByLanguage, len(requested))
	for _, tag := range requested {
		voices, _ := c.Resolve(tag)
		out[tag] = voices
	}
	return out
}

// IsAcceptable reports whether id appears in the grouped result for the given
// requested language. A language absent from the mapping yields false, not an
// error. Identities are compared by canonical key.
func (g VoicesByLanguage) IsAcceptable(id Identity, language string) bool {
	voices, ok := g[language]
	if !ok {
		return false
	}
	key := id.Key()
	for _, v := range voices {
		if v.Key() == key {
			return true
		}
	}
	return false
}
