// Dbtool manages a local gemsub database for manual testing.
//
// It knows three commands: migrate (bring the schema up to date), seed
// (migrate, then load the manual-testing fixture), and reset (delete the
// database files and re-migrate). All of them are safe to re-run.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-envconfig"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"

	"gemsub/internal/gemsub"
	"gemsub/internal/migrations"
	gemsqlite "gemsub/internal/sqlite"
	"gemsub/logger"
)

type config struct {
	Database string `env:"DATABASE, required"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Parse the config
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("error parsing config: %s", err)
	}

	// Determine which logger format to use
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if cfg.LoggerFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(logger.NewContextHandler(handler)))

	command := "migrate"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if err := run(ctx, cfg, command); err != nil {
		slog.Error("error running", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, command string) error {
	switch command {
	case "migrate", "seed", "reset":
	default:
		return fmt.Errorf("unknown command %q (want migrate, seed, or reset)", command)
	}

	ctx = logger.Ctx(ctx, slog.String("command", command), slog.String("database", cfg.Database))

	if command == "reset" {
		if err := removeDatabase(cfg.Database); err != nil {
			return fmt.Errorf("error removing database: %s", err)
		}
	}

	dbx, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbx.Close()

	// Migrate, always
	if err := migrations.Run(dbx); err != nil {
		return fmt.Errorf("error migrating: %s", err)
	}

	if command != "seed" {
		return nil
	}

	return seed(ctx, gemsqlite.New(dbx))
}

func openDatabase(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	dbx, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %s", err)
	}

	// Another process may still hold the file lock during manual testing;
	// back off until it lets go.
	if err := retry.Fibonacci(ctx, 500*time.Millisecond, func(ctx context.Context) error {
		if err := dbx.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}

		return nil
	}); err != nil {
		dbx.Close()
		return nil, fmt.Errorf("error pinging database: %s", err)
	}

	return dbx, nil
}

// Deletes the database file and its WAL sidecars.
func removeDatabase(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// Loads the fixture used for poking at the database by hand: two feeds, two
// users, and the first user subscribed to the second feed.
func seed(ctx context.Context, repo gemsqlite.Repo) error {
	feedA, err := ensureFeed(ctx, repo, "Capsule A", "gemini://a/")
	if err != nil {
		return err
	}
	feedB, err := ensureFeed(ctx, repo, "Capsule B", "gemini://b/")
	if err != nil {
		return err
	}

	alice, err := repo.EnsureUser(ctx, "alice")
	if err != nil {
		return fmt.Errorf("error seeding user: %s", err)
	}
	if _, err := repo.EnsureUser(ctx, "bob"); err != nil {
		return fmt.Errorf("error seeding user: %s", err)
	}

	if err := repo.Subscribe(ctx, alice.ID, feedB.ID); err != nil {
		return fmt.Errorf("error seeding subscription: %s", err)
	}

	slog.InfoContext(ctx, "seeded fixture", "feeds", []int64{feedA.ID, feedB.ID}, "subscriber", alice.ID)

	return nil
}

func ensureFeed(ctx context.Context, repo gemsqlite.Repo, name string, url string) (gemsub.Feed, error) {
	feed, err := repo.CreateFeed(ctx, name, url)
	if errors.Is(err, gemsub.ErrConflict) {
		return repo.FeedByURL(ctx, url)
	}
	if err != nil {
		return gemsub.Feed{}, fmt.Errorf("error seeding feed: %s", err)
	}

	return feed, nil
}
