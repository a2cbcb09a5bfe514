package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemsub/internal/gemsub"
)

func TestMarkViewed_Idempotent(t *testing.T) {
	repo, dbx := newTestRepo(t)
	ctx := context.Background()

	feed := mustFeed(t, repo, "A", "gemini://a/")
	entry := mustEntry(t, repo, feed.ID, "Post", date(2021, 1, 1), "gemini://a/1")
	usr := mustUser(t, repo, "alice")

	viewed, err := repo.IsViewed(ctx, usr.ID, entry.ID)
	require.NoError(t, err)
	assert.False(t, viewed)

	require.NoError(t, repo.MarkViewed(ctx, usr.ID, entry.ID))
	require.NoError(t, repo.MarkViewed(ctx, usr.ID, entry.ID))

	viewed, err = repo.IsViewed(ctx, usr.ID, entry.ID)
	require.NoError(t, err)
	assert.True(t, viewed)

	var count int
	require.NoError(t, dbx.Get(&count, "SELECT COUNT(*) FROM views;"))
	assert.Equal(t, 1, count)
}

func TestMarkViewed_MissingEndpoint(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	feed := mustFeed(t, repo, "A", "gemini://a/")
	entry := mustEntry(t, repo, feed.ID, "Post", date(2021, 1, 1), "gemini://a/1")
	usr := mustUser(t, repo, "alice")

	assert.ErrorIs(t, repo.MarkViewed(ctx, usr.ID, 42), gemsub.ErrNotFound)
	assert.ErrorIs(t, repo.MarkViewed(ctx, 42, entry.ID), gemsub.ErrNotFound)
}

// The read-model query: only entries of subscribed feeds show up, viewed
// ones are excluded, and the rest come back in publication order.
func TestUnviewedEntries(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	subscribed := mustFeed(t, repo, "A", "gemini://a/")
	other := mustFeed(t, repo, "B", "gemini://b/")
	usr := mustUser(t, repo, "alice")

	require.NoError(t, repo.Subscribe(ctx, usr.ID, subscribed.ID))

	seen := mustEntry(t, repo, subscribed.ID, "Seen", date(2021, 1, 1), "gemini://a/1")
	newer := mustEntry(t, repo, subscribed.ID, "Newer", date(2021, 3, 1), "gemini://a/3")
	older := mustEntry(t, repo, subscribed.ID, "Older", date(2021, 2, 1), "gemini://a/2")
	mustEntry(t, repo, other.ID, "Elsewhere", date(2021, 1, 1), "gemini://b/1")

	require.NoError(t, repo.MarkViewed(ctx, usr.ID, seen.ID))

	entries, err := repo.UnviewedEntries(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []gemsub.FeedEntry{older, newer}, entries)
}

func TestUnviewedEntries_NoSubscriptions(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	feed := mustFeed(t, repo, "A", "gemini://a/")
	mustEntry(t, repo, feed.ID, "Post", date(2021, 1, 1), "gemini://a/1")
	usr := mustUser(t, repo, "alice")

	entries, err := repo.UnviewedEntries(ctx, usr.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Once a viewed entry is deleted out from under the user, its view row is
// gone with it: IsViewed reports false and the entry itself is not found.
func TestViewGoneWithEntry(t *testing.T) {
	repo, dbx := newTestRepo(t)
	ctx := context.Background()

	feed := mustFeed(t, repo, "A", "gemini://a/")
	entry := mustEntry(t, repo, feed.ID, "Post", date(2021, 1, 1), "gemini://a/1")
	usr := mustUser(t, repo, "alice")

	require.NoError(t, repo.MarkViewed(ctx, usr.ID, entry.ID))

	// Entries only ever disappear by cascade, so reach under the service
	// surface to delete the row directly.
	_, err := dbx.ExecContext(ctx, "DELETE FROM feed_entries WHERE id = ?;", entry.ID)
	require.NoError(t, err)

	viewed, err := repo.IsViewed(ctx, usr.ID, entry.ID)
	require.NoError(t, err)
	assert.False(t, viewed)

	_, err = repo.Entry(ctx, entry.ID)
	assert.ErrorIs(t, err, gemsub.ErrNotFound)
}
