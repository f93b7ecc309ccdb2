package voice

import "fmt"

// ValidationError reports a voice identity field or canonical key that
// violates the encoding rules: a field containing the reserved separator, or
// a key that does not split into exactly two parts.
//
// Match with [errors.As].
type ValidationError struct {
	// Field names the offending input: "language", "name", or "key".
	Field string

	// Value is the rejected input verbatim.
	Value string

	// Reason is a short human-readable explanation.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("voice: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// InvariantError reports a catalog construction failure: a raw voice record
// whose self-reported fields disagree with the key it was indexed under.
// It signals malformed upstream data; no partial catalog is returned.
type InvariantError struct {
	// Language is the language tag the record was indexed under.
	Language string

	// IndexedName is the name key the record was stored under.
	IndexedName string

	// RecordName is the name the stored record reports for itself.
	RecordName string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("voice: catalog entry %s%s%s: record reports name %q",
		e.Language, Separator, e.IndexedName, e.RecordName)
}

// LookupError reports a [Catalog.Get] for an identity that is not indexed.
// Callers that expect absence should guard with [Catalog.Has] instead of
// treating this error as a normal control-flow signal.
type LookupError struct {
	// Identity is the identity that was requested.
	Identity Identity
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("voice: no voice %q in catalog", e.Identity.Key())
}
