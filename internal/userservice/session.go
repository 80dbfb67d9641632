package userservice

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"time"

	"github.com/hikarukin/blogspace/internal/common"
)

func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionManager{
		cache: common.NewCache(ttl, time.Hour),
		ttl:   ttl,
	}
}

func hashSessionID(id string) string {
	digest := sha256.Sum256([]byte(id))
	return hex.EncodeToString(digest[:])
}

func newSessionID() (string, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes), nil
}

// Create opens a session for the user and returns it; the caller puts the
// plain id in a cookie.
func (m *SessionManager) Create(userID int) (*Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	session := Session{
		ID:     id,
		UserID: userID,
		Expiry: time.Now().Add(m.ttl),
	}

	m.cache.Set(common.CacheKeySession(hashSessionID(id)), session, m.ttl)

	return &session, nil
}

// Get resolves a cookie value to a live session.
func (m *SessionManager) Get(id string) (*Session, bool) {
	value, ok := m.cache.Get(common.CacheKeySession(hashSessionID(id)))
	if !ok {
		return nil, false
	}

	session, ok := value.(Session)
	if !ok || time.Now().After(session.Expiry) {
		return nil, false
	}

	return &session, true
}

func (m *SessionManager) Destroy(id string) {
	m.cache.Delete(common.CacheKeySession(hashSessionID(id)))
}
