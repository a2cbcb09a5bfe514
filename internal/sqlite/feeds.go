package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gemsub/internal/gemsub"
)

func (r Repo) CreateFeed(ctx context.Context, name string, url string) (gemsub.Feed, error) {
	const q = `INSERT INTO feeds (name, url) VALUES (?, ?);`

	res, err := r.db.ExecContext(ctx, q, name, url)
	if isUniqueViolation(err) {
		return gemsub.Feed{}, fmt.Errorf("feed already exists: %w", gemsub.ErrConflict)
	}
	if err != nil {
		return gemsub.Feed{}, fmt.Errorf("error inserting feed: %s", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return gemsub.Feed{}, fmt.Errorf("error getting inserted feed id: %s", err)
	}

	return r.Feed(ctx, id)
}

func (r Repo) Feed(ctx context.Context, id int64) (gemsub.Feed, error) {
	const q = `SELECT * FROM feeds WHERE id = ?;`

	var feed gemsub.Feed
	err := r.db.GetContext(ctx, &feed, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return gemsub.Feed{}, gemsub.ErrNotFound
	}
	if err != nil {
		return gemsub.Feed{}, fmt.Errorf("error fetching feed: %s", err)
	}

	return feed, nil
}

func (r Repo) FeedByURL(ctx context.Context, url string) (gemsub.Feed, error) {
	const q = `SELECT * FROM feeds WHERE url = ?;`

	var feed gemsub.Feed
	err := r.db.GetContext(ctx, &feed, q, url)
	if errors.Is(err, sql.ErrNoRows) {
		return gemsub.Feed{}, gemsub.ErrNotFound
	}
	if err != nil {
		return gemsub.Feed{}, fmt.Errorf("error fetching feed: %s", err)
	}

	return feed, nil
}

// AllFeeds retrieves _all_ feeds, used by the poller to know what to fetch.
func (r Repo) AllFeeds(ctx context.Context) ([]gemsub.Feed, error) {
	const q = `SELECT * FROM feeds;`

	var feeds []gemsub.Feed
	if err := r.db.SelectContext(ctx, &feeds, q); err != nil {
		return nil, fmt.Errorf("error selecting all feeds: %s", err)
	}

	return feeds, nil
}

// DeleteFeed removes the feed; the engine cascades to its entries, any
// subscriptions to it, and views of its entries.
func (r Repo) DeleteFeed(ctx context.Context, id int64) error {
	const q = `DELETE FROM feeds WHERE id = ?;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("error deleting feed: %s", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting affected rows: %s", err)
	}
	if affected == 0 {
		return gemsub.ErrNotFound
	}

	return nil
}
