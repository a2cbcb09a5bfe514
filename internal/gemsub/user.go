package gemsub

import "context"

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
}

type UserService interface {
	// CreateUser registers a username. Returns ErrConflict if taken.
	CreateUser(ctx context.Context, username string) (User, error)
	User(ctx context.Context, id int64) (User, error)
	UserByName(ctx context.Context, username string) (User, error)
	// EnsureUser fetches the user by name, creating it first if needed.
	EnsureUser(ctx context.Context, username string) (User, error)
	// DeleteUser removes the user along with their subscriptions and views.
	DeleteUser(ctx context.Context, id int64) error
}
