// Package langtag wraps the BCP-47 primitives brojko needs from
// golang.org/x/text/language: primary-subtag extraction and a well-formedness
// probe. The voice core treats these as opaque collaborators; nothing else in
// the repository parses language tags directly.
package langtag

import (
	"strings"

	"golang.org/x/text/language"
)

// Primary returns the primary language subtag of a BCP-47 tag, e.g. "en" for
// "en-US" or "zh" for "zh-Hans-CN". Tags are canonicalised the way
// golang.org/x/text/language does, so deprecated codes map to their modern
// equivalents ("iw" reports "he").
//
// Primary is total: a tag x/text refuses to parse falls back to the raw
// substring before the first "-", and the empty tag yields the empty string.
func Primary(tag string) string {
	if t, err := language.Parse(tag); err == nil {
		base, _ := t.Base()
		return base.String()
	}
	primary, _, _ := strings.Cut(tag, "-")
	return primary
}

// WellFormed reports whether x/text can parse tag. Used by config validation
// to warn about suspicious application language tags; the matching core
// itself never requires well-formedness.
func WellFormed(tag string) bool {
	_, err := language.Parse(tag)
	return err == nil
}
