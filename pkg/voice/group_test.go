package voice

import "testing"

func keys(ids []Identity) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Key()
	}
	return out
}

func assertKeys(t *testing.T, got []Identity, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d voices %v, got %d %v", len(want), want, len(got), keys(got))
	}
	for i, id := range got {
		if id.Key() != want[i] {
			t.Errorf("voice %d: expected %q, got %q", i, want[i], id.Key())
		}
	}
}

func TestResolve_ExactMatchShortCircuitsFallback(t *testing.T) {
	// Bob@en shares the primary subtag but must be excluded: a single exact
	// match suppresses the fallback tier entirely.
	c := mustCatalog(t,
		testRecord{"en-US", "Alice"},
		testRecord{"en", "Bob"},
	)

	got, match := c.Resolve("en-US")
	assertKeys(t, got, "en-US/Alice")
	if match != MatchExact {
		t.Errorf("expected MatchExact, got %v", match)
	}
}

func TestResolve_PrimaryFallback(t *testing.T) {
	c := mustCatalog(t, testRecord{"en-GB", "Colin"})

	got, match := c.Resolve("en-US")
	assertKeys(t, got, "en-GB/Colin")
	if match != MatchFallback {
		t.Errorf("expected MatchFallback, got %v", match)
	}
}

func TestResolve_NoMatchIsEmptyNotError(t *testing.T) {
	c := mustCatalog(t,
		testRecord{"en-US", "Alice"},
		testRecord{"en-GB", "Colin"},
	)

	got, match := c.Resolve("fr-CA")
	if len(got) != 0 {
		t.Fatalf("expected empty candidate set, got %v", keys(got))
	}
	if match != MatchNone {
		t.Errorf("expected MatchNone, got %v", match)
	}
}

func TestResolve_SortsByNameThenLanguage(t *testing.T) {
	c := mustCatalog(t,
		testRecord{"en-US", "Zoe"},
		testRecord{"en-GB", "Amy"},
		testRecord{"en-AU", "Zoe"},
	)

	got, _ := c.Resolve("en-NZ") // fallback gathers all three
	assertKeys(t, got, "en-GB/Amy", "en-AU/Zoe", "en-US/Zoe")
}

func TestGroupByLanguage(t *testing.T) {
	c := mustCatalog(t,
		testRecord{"en-US", "Alice"},
		testRecord{"en-GB", "Colin"},
		testRecord{"de-DE", "Markus"},
	)

	grouped := GroupByLanguage(c, []string{"en-US", "de-AT", "ja-JP"})
	if len(grouped) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(grouped))
	}
	assertKeys(t, grouped["en-US"], "en-US/Alice")
	assertKeys(t, grouped["de-AT"], "de-DE/Markus")
	if len(grouped["ja-JP"]) != 0 {
		t.Errorf("expected empty entry for ja-JP, got %v", keys(grouped["ja-JP"]))
	}
}

func TestGroupByLanguage_DuplicateRequestOverwrites(t *testing.T) {
	c := mustCatalog(t, testRecord{"en-US", "Alice"})

	grouped := GroupByLanguage(c, []string{"en-US", "en-US"})
	if len(grouped) != 1 {
		t.Fatalf("expected 1 entry for duplicated request, got %d", len(grouped))
	}
	assertKeys(t, grouped["en-US"], "en-US/Alice")
}

func TestIsAcceptable(t *testing.T) {
	c := mustCatalog(t,
		testRecord{"en-US", "Alice"},
		testRecord{"en-GB", "Colin"},
	)
	grouped := GroupByLanguage(c, []string{"en-US", "fr-FR"})

	tests := []struct {
		name     string
		id       Identity
		language string
		want     bool
	}{
		{"grouped voice", mustIdentity(t, "en-US", "Alice"), "en-US", true},
		{"voice not in group", mustIdentity(t, "en-GB", "Colin"), "en-US", false},
		{"language not requested", mustIdentity(t, "en-US", "Alice"), "de-DE", false},
		{"requested language with empty group", mustIdentity(t, "en-US", "Alice"), "fr-FR", false},
		{"name mismatch", mustIdentity(t, "en-US", "alice"), "en-US", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grouped.IsAcceptable(tt.id, tt.language); got != tt.want {
				t.Errorf("IsAcceptable(%v, %q) = %v, want %v", tt.id, tt.language, got, tt.want)
			}
		})
	}
}

func TestResolve_CustomPrimaryFunc(t *testing.T) {
	// A primary extractor that buckets everything together makes every voice
	// a fallback candidate for every tag.
	c, err := NewCatalog(
		records(testRecord{"en-US", "Alice"}, testRecord{"de-DE", "Markus"}),
		WithPrimaryFunc(func(string) string { return "any" }),
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	got, match := c.Resolve("ja-JP")
	assertKeys(t, got, "en-US/Alice", "de-DE/Markus")
	if match != MatchFallback {
		t.Errorf("expected MatchFallback, got %v", match)
	}
}
