package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is the volatile variant, used when the durable backend is
// unreachable at startup. Records live in keyed maps and do not survive a
// restart. The mutex makes the max-id allocation atomic here, which the
// durable variant does not guarantee.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[int]User
	blogs         map[int]Blog
	notifications map[int]Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[int]User),
		blogs:         make(map[int]Blog),
		notifications: make(map[int]Notification),
	}
}

func (s *MemoryStore) Variant() string {
	return "memory"
}

func nextMapID[T any](m map[int]T) int {
	max := 0
	for id := range m {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (s *MemoryStore) UserByID(_ context.Context, id int) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryStore) UserByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return ErrDuplicateUsername
		}
	}

	user.ID = nextMapID(s.users)
	s.users[user.ID] = *user

	return nil
}

func (s *MemoryStore) Blogs(_ context.Context) ([]Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blogs := make([]Blog, 0, len(s.blogs))
	for _, b := range s.blogs {
		blogs = append(blogs, b)
	}
	sortNewestFirst(blogs, func(b Blog) (time.Time, int) { return b.CreatedAt, b.ID })

	return blogs, nil
}

func (s *MemoryStore) BlogByID(_ context.Context, id int) (*Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blogs[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *MemoryStore) BlogsByUserID(_ context.Context, userID int) ([]Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blogs []Blog
	for _, b := range s.blogs {
		if b.UserID == userID {
			blogs = append(blogs, b)
		}
	}
	sortNewestFirst(blogs, func(b Blog) (time.Time, int) { return b.CreatedAt, b.ID })

	return blogs, nil
}

func (s *MemoryStore) CreateBlog(_ context.Context, blog *Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blog.ID = nextMapID(s.blogs)
	blog.CreatedAt = time.Now().UTC()
	s.blogs[blog.ID] = *blog

	return nil
}

func (s *MemoryStore) Notifications(_ context.Context) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		notifications = append(notifications, n)
	}
	sortNewestFirst(notifications, func(n Notification) (time.Time, int) { return n.CreatedAt, n.ID })

	return notifications, nil
}

func (s *MemoryStore) NotificationsByUserID(_ context.Context, userID int) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var notifications []Notification
	for _, n := range s.notifications {
		if n.UserID != nil && *n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	sortNewestFirst(notifications, func(n Notification) (time.Time, int) { return n.CreatedAt, n.ID })

	return notifications, nil
}

func (s *MemoryStore) CreateNotification(_ context.Context, notification *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification.ID = nextMapID(s.notifications)
	notification.Read = false
	notification.CreatedAt = time.Now().UTC()
	s.notifications[notification.ID] = *notification

	return nil
}

func (s *MemoryStore) MarkNotificationRead(_ context.Context, id int) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, nil
	}

	n.Read = true
	s.notifications[id] = n

	return &n, nil
}

// sortNewestFirst orders by creation time descending, breaking ties on id so
// records created within the same clock tick still come back newest first.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, int)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi > idj
		}
		return ti.After(tj)
	})
}
