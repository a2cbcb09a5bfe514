package sqlite

import (
	"context"
	"fmt"

	"gemsub/internal/gemsub"
)

// Subscribe adds the (user, feed) pair. Subscribing twice is a no-op thanks
// to the composite primary key on subscriptions.
func (r Repo) Subscribe(ctx context.Context, userID int64, feedID int64) error {
	const q = `INSERT OR IGNORE INTO subscriptions (user_id, feed_id) VALUES (?, ?);`

	_, err := r.db.ExecContext(ctx, q, userID, feedID)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("user %d or feed %d: %w", userID, feedID, gemsub.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("error creating subscription: %s", err)
	}

	return nil
}

func (r Repo) Unsubscribe(ctx context.Context, userID int64, feedID int64) error {
	const q = `DELETE FROM subscriptions WHERE user_id = ? AND feed_id = ?;`

	if _, err := r.db.ExecContext(ctx, q, userID, feedID); err != nil {
		return fmt.Errorf("error deleting subscription: %s", err)
	}

	return nil
}

func (r Repo) SubscribedFeeds(ctx context.Context, userID int64) ([]gemsub.Feed, error) {
	const q = `
	SELECT
		feeds.id, feeds.name, feeds.url
	FROM
		feeds
		INNER JOIN subscriptions subs ON subs.feed_id = feeds.id
		WHERE subs.user_id = ?;
	`

	var feeds []gemsub.Feed
	if err := r.db.SelectContext(ctx, &feeds, q, userID); err != nil {
		return nil, fmt.Errorf("error selecting subscribed feeds: %s", err)
	}

	return feeds, nil
}
