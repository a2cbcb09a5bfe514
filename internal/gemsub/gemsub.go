// Package gemsub holds the domain model for the aggregator's persistence
// core: feeds, the entries observed on them, users, and the association
// records (subscriptions, views) tying users to both.
//
// The poller and any presentation layer live outside this module; they only
// see the service interfaces defined here.
package gemsub

import "errors"

var (
	// ErrConflict signals a uniqueness violation, e.g. creating a feed with
	// a URL that is already registered.
	ErrConflict = errors.New("resource already exists")

	// ErrNotFound signals that a referenced feed, entry, or user does not
	// exist (possibly anymore).
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateEntry is returned by RecordEntry when the
	// (feed, published_at, url) tuple has already been recorded. Re-fetching
	// unchanged feed content is the steady state for the poller, so callers
	// usually treat this as benign.
	ErrDuplicateEntry = errors.New("entry already recorded")
)
