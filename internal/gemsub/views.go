package gemsub

import "context"

type (
	// Subscription is a user's declared interest in a feed. It never
	// outlives either endpoint.
	Subscription struct {
		UserID int64 `db:"user_id"`
		FeedID int64 `db:"feed_id"`
	}

	// View records that a user has read a specific feed entry.
	View struct {
		UserID      int64 `db:"user_id"`
		FeedEntryID int64 `db:"feed_entry_id"`
	}

	SubscriptionService interface {
		// Subscribe is idempotent: subscribing twice leaves a single row.
		// Returns ErrNotFound when the user or feed does not exist.
		Subscribe(ctx context.Context, userID int64, feedID int64) error
		Unsubscribe(ctx context.Context, userID int64, feedID int64) error
		SubscribedFeeds(ctx context.Context, userID int64) ([]Feed, error)
	}

	ViewService interface {
		// MarkViewed is idempotent. Returns ErrNotFound when the user or
		// entry does not exist.
		MarkViewed(ctx context.Context, userID int64, entryID int64) error
		IsViewed(ctx context.Context, userID int64, entryID int64) (bool, error)
		// UnviewedEntries returns entries of the user's subscribed feeds
		// that the user has not viewed, in publication order.
		UnviewedEntries(ctx context.Context, userID int64) ([]FeedEntry, error)
	}
)
