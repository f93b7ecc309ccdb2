package voice

import (
	"errors"
	"testing"
)

// testRecord is a minimal Record for catalog tests.
type testRecord struct {
	language string
	name     string
}

func (r testRecord) VoiceLanguage() string { return r.language }
func (r testRecord) VoiceName() string     { return r.name }

// flakyRecord reports a different name each time it is read, simulating a
// malformed upstream record that changes underneath the index.
type flakyRecord struct {
	language string
	names    []string
	reads    *int
}

func (r flakyRecord) VoiceLanguage() string { return r.language }
func (r flakyRecord) VoiceName() string {
	name := r.names[*r.reads%len(r.names)]
	*r.reads++
	return name
}

func records(recs ...testRecord) []Record {
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out
}

func mustCatalog(t *testing.T, recs ...testRecord) *Catalog {
	t.Helper()
	c, err := NewCatalog(records(recs...))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func mustIdentity(t *testing.T, language, name string) Identity {
	t.Helper()
	id, err := NewIdentity(language, name)
	if err != nil {
		t.Fatalf("NewIdentity(%q, %q): %v", language, name, err)
	}
	return id
}

func TestNewCatalog_RejectsSeparatorInFields(t *testing.T) {
	_, err := NewCatalog(records(testRecord{"en/US", "Alice"}))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestNewCatalog_InvariantViolation(t *testing.T) {
	reads := 0
	_, err := NewCatalog([]Record{flakyRecord{
		language: "en-US",
		names:    []string{"Alice", "NotAlice"},
		reads:    &reads,
	}})
	var ierr *InvariantError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *InvariantError, got %v", err)
	}
	if ierr.IndexedName != "Alice" {
		t.Errorf("expected indexed name 'Alice', got %q", ierr.IndexedName)
	}
	if ierr.RecordName != "NotAlice" {
		t.Errorf("expected record name 'NotAlice', got %q", ierr.RecordName)
	}
}

// tieredRecord carries a field outside the Record interface so that two
// records with the same (language, name) remain distinguishable.
type tieredRecord struct {
	testRecord
	tier string
}

func TestCatalog_LastWriteWins(t *testing.T) {
	c, err := NewCatalog([]Record{
		tieredRecord{testRecord{"en-US", "Alice"}, "low"},
		tieredRecord{testRecord{"en-US", "Alice"}, "high"},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	ids := c.Identities()
	if len(ids) != 1 {
		t.Fatalf("expected exactly one identity, got %d", len(ids))
	}

	rec, err := c.Get(ids[0])
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	tiered, ok := rec.(tieredRecord)
	if !ok {
		t.Fatalf("unexpected record type %T", rec)
	}
	if tiered.tier != "high" {
		t.Errorf("expected the later record to win, got tier %q", tiered.tier)
	}
}

func TestCatalog_IdentitiesInsertionOrder(t *testing.T) {
	c := mustCatalog(t,
		testRecord{"en-US", "Zoe"},
		testRecord{"de-DE", "Markus"},
		testRecord{"en-US", "Alice"},
		testRecord{"fr-FR", "Céline"},
	)

	want := []string{"en-US/Zoe", "en-US/Alice", "de-DE/Markus", "fr-FR/Céline"}
	ids := c.Identities()
	if len(ids) != len(want) {
		t.Fatalf("expected %d identities, got %d", len(want), len(ids))
	}
	for i, id := range ids {
		if id.Key() != want[i] {
			t.Errorf("identity %d: expected %q, got %q", i, want[i], id.Key())
		}
	}
}

func TestCatalog_HasAndGet(t *testing.T) {
	c := mustCatalog(t, testRecord{"en-US", "Alice"})

	present := mustIdentity(t, "en-US", "Alice")
	if !c.Has(present) {
		t.Error("expected Has to report indexed voice")
	}
	if _, err := c.Get(present); err != nil {
		t.Errorf("Get of indexed voice: %v", err)
	}

	tests := []struct {
		name string
		id   Identity
	}{
		{"absent language", mustIdentity(t, "fr-FR", "Alice")},
		{"absent name under present language", mustIdentity(t, "en-US", "Bob")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c.Has(tt.id) {
				t.Error("expected Has to report absence")
			}
			_, err := c.Get(tt.id)
			var lerr *LookupError
			if !errors.As(err, &lerr) {
				t.Fatalf("expected *LookupError, got %v", err)
			}
			if lerr.Identity != tt.id {
				t.Errorf("error identity: expected %v, got %v", tt.id, lerr.Identity)
			}
		})
	}
}

func TestCatalog_FilterExact(t *testing.T) {
	c := mustCatalog(t,
		testRecord{"en-US", "Zoe"},
		testRecord{"en-US", "Alice"},
		testRecord{"en-GB", "Colin"},
	)

	got := c.FilterExact("en-US")
	if len(got) != 2 {
		t.Fatalf("expected 2 voices for en-US, got %d", len(got))
	}
	// Index order, not sorted.
	if got[0].Name() != "Zoe" || got[1].Name() != "Alice" {
		t.Errorf("expected index order [Zoe Alice], got [%s %s]", got[0].Name(), got[1].Name())
	}

	if empty := c.FilterExact("ja-JP"); len(empty) != 0 {
		t.Errorf("expected empty result for absent tag, got %v", empty)
	}
}

func TestCatalog_FilterPrimary(t *testing.T) {
	c := mustCatalog(t,
		testRecord{"en-US", "Zoe"},
		testRecord{"de-DE", "Markus"},
		testRecord{"en-GB", "Colin"},
		testRecord{"en-US", "Alice"},
	)

	got := c.FilterPrimary("en")
	want := []string{"en-US/Zoe", "en-US/Alice", "en-GB/Colin"}
	if len(got) != len(want) {
		t.Fatalf("expected %d voices with primary 'en', got %d", len(want), len(got))
	}
	for i, id := range got {
		if id.Key() != want[i] {
			t.Errorf("voice %d: expected %q, got %q", i, want[i], id.Key())
		}
	}

	if empty := c.FilterPrimary("fr"); len(empty) != 0 {
		t.Errorf("expected empty result for unmatched primary, got %v", empty)
	}
}

func TestCatalog_Len(t *testing.T) {
	c := mustCatalog(t,
		testRecord{"en-US", "Zoe"},
		testRecord{"en-US", "Zoe"}, // duplicate counts once
		testRecord{"de-DE", "Markus"},
	)
	if c.Len() != 2 {
		t.Errorf("expected Len 2, got %d", c.Len())
	}
}
