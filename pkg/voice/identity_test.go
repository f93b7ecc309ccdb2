package voice

import (
	"errors"
	"testing"
)

func TestNewIdentity_Valid(t *testing.T) {
	id, err := NewIdentity("en-US", "Alice")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	if id.Language() != "en-US" {
		t.Errorf("expected language 'en-US', got %q", id.Language())
	}
	if id.Name() != "Alice" {
		t.Errorf("expected name 'Alice', got %q", id.Name())
	}
	if id.Key() != "en-US/Alice" {
		t.Errorf("expected key 'en-US/Alice', got %q", id.Key())
	}
}

func TestNewIdentity_SeparatorRejected(t *testing.T) {
	tests := []struct {
		name      string
		language  string
		voiceName string
		wantField string
	}{
		{"separator in language", "en/US", "Alice", "language"},
		{"separator in name", "en-US", "Alice/Bob", "name"},
		{"language is only separator", "/", "Alice", "language"},
		{"name is only separator", "en", "/", "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIdentity(tt.language, tt.voiceName)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verr.Field)
			}
		})
	}
}

func TestParseKey_RoundTrip(t *testing.T) {
	tests := []struct {
		language string
		name     string
	}{
		{"en-US", "Alice"},
		{"de", "Markus"},
		{"zh-Hans-CN", "小美"},
		{"", ""}, // empty fields are valid, only the separator is reserved
		{"en", "Name With Spaces"},
	}
	for _, tt := range tests {
		orig, err := NewIdentity(tt.language, tt.name)
		if err != nil {
			t.Fatalf("NewIdentity(%q, %q): %v", tt.language, tt.name, err)
		}
		got, err := ParseKey(orig.Key())
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", orig.Key(), err)
		}
		if got != orig {
			t.Errorf("round trip of %q: got %v, want %v", orig.Key(), got, orig)
		}
	}
}

func TestParseKey_Malformed(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"no separator", "en-US Alice"},
		{"empty key", ""},
		{"two separators", "en-US/Alice/Bob"},
		{"three separators", "a/b/c/d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKey(tt.key)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ParseKey(%q): expected *ValidationError, got %v", tt.key, err)
			}
			if verr.Field != "key" {
				t.Errorf("expected field 'key', got %q", verr.Field)
			}
		})
	}
}

func TestIdentity_EqualityIsCaseSensitive(t *testing.T) {
	a, _ := NewIdentity("en-US", "Alice")
	b, _ := NewIdentity("en-us", "Alice")
	c, _ := NewIdentity("en-US", "alice")
	d, _ := NewIdentity("en-US", "Alice")

	if a == b {
		t.Error("identities differing in language case must not be equal")
	}
	if a == c {
		t.Error("identities differing in name case must not be equal")
	}
	if a != d {
		t.Error("identical identities must be equal")
	}
}

func TestIdentity_UsableAsMapKey(t *testing.T) {
	a, _ := NewIdentity("en-US", "Alice")
	b, _ := NewIdentity("en-US", "Alice")

	seen := map[Identity]int{a: 1}
	if seen[b] != 1 {
		t.Error("equal identities must collide as map keys")
	}
}
