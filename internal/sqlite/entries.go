package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"gemsub/internal/gemsub"
)

// RecordEntry inserts an observed entry. The duplicate check rides the
// UNIQUE(feed_id, published_at, url) constraint in a single insert, so
// concurrent pollers can never race a second row in.
func (r Repo) RecordEntry(ctx context.Context, feedID int64, title string, publishedAt time.Time, url string) (gemsub.FeedEntry, error) {
	const q = `INSERT INTO feed_entries (feed_id, title, published_at, url)
	VALUES (?, ?, ?, ?);`

	res, err := r.db.ExecContext(ctx, q, feedID, title, publishedAt, url)
	if isUniqueViolation(err) {
		return gemsub.FeedEntry{}, fmt.Errorf("entry (%d, %s, %q): %w", feedID, publishedAt.Format(time.RFC3339), url, gemsub.ErrDuplicateEntry)
	}
	if isForeignKeyViolation(err) {
		return gemsub.FeedEntry{}, fmt.Errorf("no feed with id %d: %w", feedID, gemsub.ErrNotFound)
	}
	if err != nil {
		return gemsub.FeedEntry{}, fmt.Errorf("error inserting entry: %s", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return gemsub.FeedEntry{}, fmt.Errorf("error getting inserted entry id: %s", err)
	}

	return r.Entry(ctx, id)
}

func (r Repo) Entry(ctx context.Context, id int64) (gemsub.FeedEntry, error) {
	const q = `SELECT * FROM feed_entries WHERE id = ?;`

	var entry gemsub.FeedEntry
	err := r.db.GetContext(ctx, &entry, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return gemsub.FeedEntry{}, gemsub.ErrNotFound
	}
	if err != nil {
		return gemsub.FeedEntry{}, fmt.Errorf("error fetching entry: %s", err)
	}

	return entry, nil
}

// FeedEntries lists a feed's entries in publication order, optionally
// filtered to those published after args.Since.
func (r Repo) FeedEntries(ctx context.Context, feedID int64, args gemsub.EntriesArgs) ([]gemsub.FeedEntry, error) {
	q := sq.Select("id", "feed_id", "title", "published_at", "url").
		From("feed_entries").
		Where(sq.Eq{"feed_id": feedID}).
		OrderBy("published_at ASC", "id ASC")
	if !args.Since.IsZero() {
		q = q.Where(sq.Gt{"published_at": args.Since})
	}
	if args.Limit > 0 {
		q = q.Limit(args.Limit)
	}

	query, qArgs, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %s", err)
	}

	var entries []gemsub.FeedEntry
	if err := r.db.SelectContext(ctx, &entries, query, qArgs...); err != nil {
		return nil, fmt.Errorf("error selecting entries: %s", err)
	}

	return entries, nil
}
