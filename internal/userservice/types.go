package userservice

import (
	"time"

	"github.com/hikarukin/blogspace/internal/common"
	"github.com/hikarukin/blogspace/internal/store"
)

const DefaultSessionTTL = 24 * time.Hour

type UserService struct {
	s store.Store
}

func NewUserService(s store.Store) *UserService {
	return &UserService{s: s}
}

// Session is the server-side record behind a session cookie. Only the
// digest of the id is kept as the cache key; the plain id lives in the
// client's cookie.
type Session struct {
	ID     string
	UserID int
	Expiry time.Time
}

// SessionManager keeps sessions in an expiring in-memory cache, pruned
// periodically. Sessions are rebuilt from nothing on restart.
type SessionManager struct {
	cache *common.Cache
	ttl   time.Duration
}
