// Package selection persists user voice selections in PostgreSQL.
//
// A selection is one row per profile: the application language it was made
// for and the chosen voice's canonical key. The key — never the split fields —
// is the stored representation, so a row round-trips through the same
// encode/decode path as any other transmitted identity, and a corrupted row
// surfaces the core's validation error instead of silently splitting wrong.
package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0x0all/brojko/pkg/voice"
)

// ErrNotFound is returned by [Store.Load] when no selection exists for the
// requested profile.
var ErrNotFound = errors.New("selection: profile has no stored selection")

// Selection is one persisted voice choice.
type Selection struct {
	// ProfileID identifies whose selection this is.
	ProfileID string

	// Language is the application language the selection was made for.
	Language string

	// Voice is the chosen voice, decoded from the stored canonical key.
	Voice voice.Identity

	// UpdatedAt is when the selection was last written.
	UpdatedAt time.Time
}

// Store is the PostgreSQL-backed selection store. It holds a single
// [pgxpool.Pool]; all methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore establishes a connection pool to the PostgreSQL database at dsn
// and runs the schema migration to ensure the selections table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("selection store: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("selection store: ping: %w", err)
	}

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("selection store: migrate: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Save upserts the selection for profileID, storing id as its canonical key.
func (s *Store) Save(ctx context.Context, profileID, language string, id voice.Identity) error {
	const q = `
		INSERT INTO voice_selections (profile_id, language, voice_key, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (profile_id)
		DO UPDATE SET language = $2, voice_key = $3, updated_at = now()`

	if _, err := s.pool.Exec(ctx, q, profileID, language, id.Key()); err != nil {
		return fmt.Errorf("selection store: save %q: %w", profileID, err)
	}
	return nil
}

// Load returns the stored selection for profileID, decoding the stored
// canonical key. Returns [ErrNotFound] when no row exists; a row whose key no
// longer parses surfaces the decoder's [*voice.ValidationError].
func (s *Store) Load(ctx context.Context, profileID string) (Selection, error) {
	const q = `
		SELECT language, voice_key, updated_at
		FROM   voice_selections
		WHERE  profile_id = $1`

	var (
		sel Selection
		key string
	)
	sel.ProfileID = profileID
	err := s.pool.QueryRow(ctx, q, profileID).Scan(&sel.Language, &key, &sel.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Selection{}, ErrNotFound
	}
	if err != nil {
		return Selection{}, fmt.Errorf("selection store: load %q: %w", profileID, err)
	}

	sel.Voice, err = voice.ParseKey(key)
	if err != nil {
		return Selection{}, fmt.Errorf("selection store: stored key for %q: %w", profileID, err)
	}
	return sel, nil
}

// Delete removes the selection for profileID. Deleting an absent profile is
// not an error.
func (s *Store) Delete(ctx context.Context, profileID string) error {
	const q = `DELETE FROM voice_selections WHERE profile_id = $1`
	if _, err := s.pool.Exec(ctx, q, profileID); err != nil {
		return fmt.Errorf("selection store: delete %q: %w", profileID, err)
	}
	return nil
}

// Ping probes the database connection; used by the readiness endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases all connections held by the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
