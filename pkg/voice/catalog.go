package voice

import "github.com/0x0all/brojko/pkg/langtag"

// Record is the minimal view of a platform voice record the catalog indexes.
// Implementations report the BCP-47 language tag and the engine-assigned
// voice name, both case-sensitive and un-normalised.
type Record interface {
	VoiceLanguage() string
	VoiceName() string
}

// PrimaryFunc extracts the primary language subtag from a BCP-47 tag
// (e.g. "en" from "en-US"). It must be total: any input, some output.
type PrimaryFunc func(tag string) string

// Option configures catalog construction.
type Option func(*Catalog)

// WithPrimaryFunc overrides the primary-subtag extractor used by
// [Catalog.FilterPrimary] and [Catalog.Resolve]. The default is
// [langtag.Primary].
func WithPrimaryFunc(fn PrimaryFunc) Option {
	return func(c *Catalog) {
		c.primary = fn
	}
}

// Catalog is an immutable index of available voices keyed by
// (language tag, voice name). Build one per enumeration snapshot with
// [NewCatalog]; a changed platform inventory means a new catalog, never a
// mutated one. All methods are safe for concurrent use.
//
// Iteration order is first-seen insertion order at both levels: language tags
// in the order they first appeared in the input, names within a tag likewise.
// A later record with an already-indexed (language, name) replaces the stored
// record but keeps the original position.
type Catalog struct {
	langs   []string
	index   map[string]*langEntry
	primary PrimaryFunc
}

// langEntry holds the voices registered under one language tag.
type langEntry struct {
	names   []string
	records map[string]Record
}

// NewCatalog indexes records into a new [Catalog].
//
// A record whose language or name contains the key separator cannot be
// addressed and yields a [*ValidationError]. After indexing, every entry is
// re-read and checked against its index key; a record that reports a name
// other than the one it is stored under yields a [*InvariantError]. Either
// failure aborts construction — no partial catalog is returned.
func NewCatalog(records []Record, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		index:   make(map[string]*langEntry),
		primary: langtag.Primary,
	}
	for _, o := range opts {
		o(c)
	}

	for _, rec := range records {
		lang, name := rec.VoiceLanguage(), rec.VoiceName()
		if _, err := NewIdentity(lang, name); err != nil {
			return nil, err
		}
		entry, ok := c.index[lang]
		if !ok {
			entry = &langEntry{records: make(map[string]Record)}
			c.index[lang] = entry
			c.langs = append(c.langs, lang)
		}
		if _, dup := entry.records[name]; !dup {
			entry.names = append(entry.names, name)
		}
		// Last write wins on duplicate (language, name).
		entry.records[name] = rec
	}

	// Records are caller-supplied interface values; verify each still reports
	// the name it was indexed under.
	for _, lang := range c.langs {
		entry := c.index[lang]
		for _, name := range entry.names {
			if got := entry.records[name].VoiceName(); got != name {
				return nil, &InvariantError{
					Language:    lang,
					IndexedName: name,
					RecordName:  got,
				}
			}
		}
	}
	return c, nil
}

// Len returns the number of indexed (language, name) pairs.
func (c *Catalog) Len() int {
	n := 0
	for _, entry := range c.index {
		n += len(entry.names)
	}
	return n
}

// Identities returns every indexed (language, name) pair, grouped by language
// tag in index order with names in index order within each tag.
func (c *Catalog) Identities() []Identity {
	out := make([]Identity, 0, c.Len())
	for _, lang := range c.langs {
		for _, name := range c.index[lang].names {
			out = append(out, Identity{language: lang, name: name})
		}
	}
	return out
}

// Has reports whether id's language tag and name are both indexed.
func (c *Catalog) Has(id Identity) bool {
	entry, ok := c.index[id.language]
	if !ok {
		return false
	}
	_, ok = entry.records[id.name]
	return ok
}

// Get returns the raw voice record indexed under id, or a [*LookupError] if
// either the language tag or the name is absent. Guard with [Catalog.Has]
// when absence is expected.
func (c *Catalog) Get(id Identity) (Record, error) {
	entry, ok := c.index[id.language]
	if !ok {
		return nil, &LookupError{Identity: id}
	}
	rec, ok := entry.records[id.name]
	if !ok {
		return nil, &LookupError{Identity: id}
	}
	return rec, nil
}

// FilterExact returns the identity of every voice registered under exactly
// tag, in index order. An absent tag yields an empty slice, not an error.
func (c *Catalog) FilterExact(tag string) []Identity {
	entry, ok := c.index[tag]
	if !ok {
		return nil
	}
	out := make([]Identity, 0, len(entry.names))
	for _, name := range entry.names {
		out = append(out, Identity{language: tag, name: name})
	}
	return out
}

// FilterPrimary returns the identities of all voices whose language tag has
// the given primary subtag, drawing from every matching tag. Tags are visited
// in index order, names within each tag in index order. No match yields an
// empty slice, not an error.
func (c *Catalog) FilterPrimary(primary string) []Identity {
	var out []Identity
	for _, lang := range c.langs {
		if c.primary(lang) != primary {
			continue
		}
		for _, name := range c.index[lang].names {
			out = append(out, Identity{language: lang, name: name})
		}
	}
	return out
}
