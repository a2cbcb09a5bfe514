package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gemsub/internal/gemsub"
)

func (r Repo) CreateUser(ctx context.Context, username string) (gemsub.User, error) {
	const q = `INSERT INTO users (username) VALUES (?);`

	res, err := r.db.ExecContext(ctx, q, username)
	if isUniqueViolation(err) {
		return gemsub.User{}, fmt.Errorf("username %q taken: %w", username, gemsub.ErrConflict)
	}
	if err != nil {
		return gemsub.User{}, fmt.Errorf("error inserting user: %s", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return gemsub.User{}, fmt.Errorf("error getting inserted user id: %s", err)
	}

	return r.User(ctx, id)
}

func (r Repo) User(ctx context.Context, id int64) (gemsub.User, error) {
	const q = `SELECT * FROM users WHERE id = ?;`

	var usr gemsub.User
	err := r.db.GetContext(ctx, &usr, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return gemsub.User{}, gemsub.ErrNotFound
	}
	if err != nil {
		return gemsub.User{}, fmt.Errorf("error fetching user: %s", err)
	}

	return usr, nil
}

func (r Repo) UserByName(ctx context.Context, username string) (gemsub.User, error) {
	const q = `SELECT * FROM users WHERE username = ?;`

	var usr gemsub.User
	err := r.db.GetContext(ctx, &usr, q, username)
	if errors.Is(err, sql.ErrNoRows) {
		return gemsub.User{}, gemsub.ErrNotFound
	}
	if err != nil {
		return gemsub.User{}, fmt.Errorf("error fetching user: %s", err)
	}

	return usr, nil
}

// EnsureUser fetches the user by name, creating it first if needed. This is
// what lets a client select a user that has never connected before.
func (r Repo) EnsureUser(ctx context.Context, username string) (gemsub.User, error) {
	const q = `INSERT OR IGNORE INTO users (username) VALUES (?);`

	if _, err := r.db.ExecContext(ctx, q, username); err != nil {
		return gemsub.User{}, fmt.Errorf("error ensuring user: %s", err)
	}

	return r.UserByName(ctx, username)
}

// DeleteUser removes the user; the engine cascades to their subscriptions
// and views.
func (r Repo) DeleteUser(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = ?;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %s", err)
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
