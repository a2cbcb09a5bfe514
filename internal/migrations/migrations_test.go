package migrations_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"gemsub/internal/migrations"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gemsub.db")
	dbx, err := sqlx.Open("sqlite", fmt.Sprintf("%s?_pragma=foreign_keys(1)", path))
	require.NoError(t, err)
	defer dbx.Close()

	require.NoError(t, migrations.Run(dbx))

	// Re-running with nothing pending is a success.
	require.NoError(t, migrations.Run(dbx))

	var tables []string
	require.NoError(t, dbx.Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name != 'schema_migrations' ORDER BY name;`))
	assert.Equal(t, []string{"feed_entries", "feeds", "subscriptions", "users", "views"}, tables)

	// The dedup key the whole ingestion path leans on.
	var indexed int
	require.NoError(t, dbx.Get(&indexed,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND tbl_name = 'feed_entries';`))
	assert.GreaterOrEqual(t, indexed, 1)
}
