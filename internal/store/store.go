package store

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrUnavailable       = errors.New("storage unavailable")
)

// Store is the persistence contract for users, blogs, and notifications.
// Reads on a missing id return a nil record and a nil error; callers decide
// what absence means. Create methods allocate the next integer id and stamp
// creation time on the passed record.
type Store interface {
	UserByID(ctx context.Context, id int) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error

	Blogs(ctx context.Context) ([]Blog, error)
	BlogByID(ctx context.Context, id int) (*Blog, error)
	BlogsByUserID(ctx context.Context, userID int) ([]Blog, error)
	CreateBlog(ctx context.Context, blog *Blog) error

	Notifications(ctx context.Context) ([]Notification, error)
	NotificationsByUserID(ctx context.Context, userID int) ([]Notification, error)
	CreateNotification(ctx context.Context, notification *Notification) error
	MarkNotificationRead(ctx context.Context, id int) (*Notification, error)

	// Variant reports which backend is active, for the healthcheck.
	Variant() string
}

const (
	connectTimeout      = 10 * time.Second
	finalConnectTimeout = 15 * time.Second
)

// Open connects to the durable backend, retrying twice with a longer final
// timeout, and degrades to the in-memory store when every attempt fails. The
// returned store is selected once and shared for the process lifetime; a
// backend that becomes reachable later is not picked up.
func Open(uri string, logger *slog.Logger) Store {
	return open(uri, logger, []time.Duration{connectTimeout, connectTimeout, finalConnectTimeout})
}

func open(uri string, logger *slog.Logger, timeouts []time.Duration) Store {
	for i, timeout := range timeouts {
		logger.Info("connecting to mongodb",
			slog.Int("attempt", i+1),
			slog.Int("attempts", len(timeouts)),
			slog.Duration("timeout", timeout))

		s, err := newMongoStore(uri, timeout)
		if err == nil {
			logger.Info("connected to mongodb", slog.String("database", s.db.Name()))
			return s
		}

		logger.Error("mongodb connection failed", slog.Int("attempt", i+1), slog.String("error", err.Error()))
	}

	logger.Warn("all mongodb connection attempts failed, degrading to in-memory storage")
	return NewMemoryStore()
}

// databaseName extracts the database from a mongodb:// connection string,
// defaulting to "blogspace" when the URI carries no path.
func databaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "blogspace"
	}

	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "blogspace"
	}

	return name
}
