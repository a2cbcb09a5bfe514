package gemsub

import (
	"context"
	"time"
)

type (
	// Feed represents a remote gemfeed source polled for new entries.
	Feed struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
		URL  string `db:"url"`
	}

	// FeedEntry is one item published by a Feed, deduplicated by
	// (feed_id, published_at, url).
	FeedEntry struct {
		ID          int64     `db:"id"`
		FeedID      int64     `db:"feed_id"`
		Title       string    `db:"title"`
		PublishedAt time.Time `db:"published_at"`
		URL         string    `db:"url"`
	}

	// Holds the optional filters for listing a feed's entries.
	EntriesArgs struct {
		// Only entries published strictly after Since are returned.
		Since time.Time
		Limit uint64
	}

	FeedService interface {
		// CreateFeed registers a new source. Returns ErrConflict if the URL
		// is already registered.
		CreateFeed(ctx context.Context, name string, url string) (Feed, error)
		Feed(ctx context.Context, id int64) (Feed, error)
		FeedByURL(ctx context.Context, url string) (Feed, error)
		AllFeeds(ctx context.Context) ([]Feed, error)
		// DeleteFeed removes the feed along with its entries, any
		// subscriptions to it, and views of its entries.
		DeleteFeed(ctx context.Context, id int64) error

		// RecordEntry inserts an observed entry unless the same
		// (feed, published_at, url) tuple already exists, in which case it
		// is a no-op returning ErrDuplicateEntry.
		RecordEntry(ctx context.Context, feedID int64, title string, publishedAt time.Time, url string) (FeedEntry, error)
		Entry(ctx context.Context, id int64) (FeedEntry, error)
		// FeedEntries lists a feed's entries in publication order.
		FeedEntries(ctx context.Context, feedID int64, args EntriesArgs) ([]FeedEntry, error)
	}
)
