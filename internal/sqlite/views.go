package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"gemsub/internal/gemsub"
)

// MarkViewed records that the user has read the entry. Marking twice is a
// no-op thanks to the composite primary key on views.
func (r Repo) MarkViewed(ctx context.Context, userID int64, entryID int64) error {
	const q = `INSERT OR IGNORE INTO views (user_id, feed_entry_id) VALUES (?, ?);`

	_, err := r.db.ExecContext(ctx, q, userID, entryID)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("user %d or entry %d: %w", userID, entryID, gemsub.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("error inserting view: %s", err)
	}

	return nil
}

func (r Repo) IsViewed(ctx context.Context, userID int64, entryID int64) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM views WHERE user_id = ? AND feed_entry_id = ?
	);`

	var viewed bool
	if err := r.db.GetContext(ctx, &viewed, q, userID, entryID); err != nil {
		return false, fmt.Errorf("error checking view: %s", err)
	}

	return viewed, nil
}

// UnviewedEntries is the read-model query: entries of feeds the user is
// subscribed to, minus anything already in views for that user.
func (r Repo) UnviewedEntries(ctx context.Context, userID int64) ([]gemsub.FeedEntry, error) {
	query, qArgs, err := sq.Select("fe.id", "fe.feed_id", "fe.title", "fe.published_at", "fe.url").
		From("feed_entries fe").
		InnerJoin("subscriptions subs ON subs.feed_id = fe.feed_id").
		Where(sq.Eq{"subs.user_id": userID}).
		Where("fe.id NOT IN (SELECT feed_entry_id FROM views WHERE user_id = ?)", userID).
		OrderBy("fe.published_at ASC", "fe.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %s", err)
	}

	var entries []gemsub.FeedEntry
	if err := r.db.SelectContext(ctx, &entries, query, qArgs...); err != nil {
		return nil, fmt.Errorf("error selecting unviewed entries: %s", err)
	}

	return entries, nil
}
