package selection

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates the selections table. The voice key is stored as the opaque
// canonical string; the language/name split is a decoder concern.
const schema = `
CREATE TABLE IF NOT EXISTS voice_selections (
	profile_id TEXT PRIMARY KEY,
	language   TEXT        NOT NULL,
	voice_key  TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// migrate ensures the required schema exists. It is idempotent and safe to
// run on every startup.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create voice_selections: %w", err)
	}
	return nil
}
