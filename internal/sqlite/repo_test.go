package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"gemsub/internal/gemsub"
	"gemsub/internal/migrations"
	"gemsub/internal/sqlite"
)

// Opens a throwaway database with the full migration chain applied.
//
// The raw handle is returned alongside the repo so tests can poke at rows
// the service surface doesn't expose.
func newTestRepo(t *testing.T) (sqlite.Repo, *sqlx.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gemsub.db")
	dbx, err := sqlx.Open("sqlite", fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path))
	require.NoError(t, err)
	t.Cleanup(func() { dbx.Close() })

	require.NoError(t, migrations.Run(dbx))

	return sqlite.New(dbx), dbx
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustFeed(t *testing.T, repo sqlite.Repo, name, url string) gemsub.Feed {
	t.Helper()

	feed, err := repo.CreateFeed(context.Background(), name, url)
	require.NoError(t, err)

	return feed
}

func mustUser(t *testing.T, repo sqlite.Repo, username string) gemsub.User {
	t.Helper()

	usr, err := repo.CreateUser(context.Background(), username)
	require.NoError(t, err)

	return usr
}

func mustEntry(t *testing.T, repo sqlite.Repo, feedID int64, title string, publishedAt time.Time, url string) gemsub.FeedEntry {
	t.Helper()

	entry, err := repo.RecordEntry(context.Background(), feedID, title, publishedAt, url)
	require.NoError(t, err)

	return entry
}
