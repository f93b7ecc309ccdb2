// Package voice implements the voice-resolution core of brojko: immutable
// voice identities with a canonical key encoding, an indexed catalog of the
// voices a speech platform reports, and the per-language grouping that decides
// which voices are acceptable for each application language.
//
// Language matching is a two-tier policy over BCP-47 tags: an exact tag match
// wins outright; only when no voice carries the requested tag verbatim does
// the core fall back to voices sharing the requested tag's primary language
// subtag. Script, region, and variant subtags beyond that are deliberately
// not negotiated (this is not an RFC 4647 matcher).
//
// Everything in this package is a value or read-only after construction, so
// all types are safe to share across goroutines without synchronisation.
package voice

import "strings"

// Separator is the reserved character joining the language tag and the voice
// name in a canonical key. It must not occur inside either field.
const Separator = "/"

// Identity is an immutable (language tag, voice name) pair identifying one
// voice in a catalog. Construct via [NewIdentity] or [ParseKey]; the zero
// value is valid but identifies nothing.
//
// Identity is comparable and suitable as a map key. Equality is exact,
// case-sensitive field equality — no tag normalisation is applied.
type Identity struct {
	language string
	name     string
}

// NewIdentity validates language and name and returns the identity.
// Either field containing [Separator] yields a [*ValidationError], since the
// canonical key encoding could not round-trip such a value.
func NewIdentity(language, name string) (Identity, error) {
	if strings.Contains(language, Separator) {
		return Identity{}, &ValidationError{
			Field:  "language",
			Value:  language,
			Reason: "contains reserved separator " + Separator,
		}
	}
	if strings.Contains(name, Separator) {
		return Identity{}, &ValidationError{
			Field:  "name",
			Value:  name,
			Reason: "contains reserved separator " + Separator,
		}
	}
	return Identity{language: language, name: name}, nil
}

// ParseKey decodes a canonical key produced by [Identity.Key]. The key must
// split into exactly two parts on [Separator]; anything else yields a
// [*ValidationError]. For any valid identity, ParseKey(id.Key()) == id.
func ParseKey(key string) (Identity, error) {
	language, name, found := strings.Cut(key, Separator)
	if !found {
		return Identity{}, &ValidationError{
			Field:  "key",
			Value:  key,
			Reason: "missing separator " + Separator,
		}
	}
	if strings.Contains(name, Separator) {
		return Identity{}, &ValidationError{
			Field:  "key",
			Value:  key,
			Reason: "more than one separator " + Separator,
		}
	}
	return Identity{language: language, name: name}, nil
}

// Language returns the BCP-47 language tag, as reported by the platform.
func (id Identity) Language() string { return id.language }

// Name returns the engine-assigned voice name.
func (id Identity) Name() string { return id.name }

// Key returns the canonical string encoding, language + "/" + name. This is
// the only persisted and transmitted representation of a voice identity.
func (id Identity) Key() string {
	return id.language + Separator + id.name
}

// String returns the canonical key. Identities render as keys in logs.
func (id Identity) String() string { return id.Key() }
