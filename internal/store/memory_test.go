package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreIDAllocation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 5
	for i := 1; i <= n; i++ {
		blog := &Blog{Title: fmt.Sprintf("Post %d", i), Content: "body", UserID: 1}
		err := s.CreateBlog(ctx, blog)
		require.NoError(t, err)
		assert.Equal(t, i, blog.ID)
	}

	blogs, err := s.Blogs(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, n)

	// newest first, created-at non-decreasing in creation order
	for i := 0; i < len(blogs)-1; i++ {
		assert.False(t, blogs[i].CreatedAt.Before(blogs[i+1].CreatedAt))
		assert.Greater(t, blogs[i].ID, blogs[i+1].ID)
	}
}

func TestMemoryStoreCreateUser(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	alice := &User{Username: "alice", Password: "hash"}
	err := s.CreateUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, alice.ID)

	bob := &User{Username: "bob", Password: "hash"}
	err = s.CreateUser(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 2, bob.ID)

	dup := &User{Username: "alice", Password: "hash"}
	err = s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	got, err := s.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)
}

func TestMemoryStoreMissingReads(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user, err := s.UserByID(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, user)

	blog, err := s.BlogByID(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, blog)

	notification, err := s.MarkNotificationRead(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, notification)

	blogs, err := s.BlogsByUserID(ctx, 42)
	assert.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestMemoryStoreBlogsByUserID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		userID := 1
		if i%2 == 0 {
			userID = 2
		}
		err := s.CreateBlog(ctx, &Blog{Title: "t", Content: "c", UserID: userID})
		require.NoError(t, err)
	}

	blogs, err := s.BlogsByUserID(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, blogs, 3)
	for _, b := range blogs {
		assert.Equal(t, 2, b.UserID)
	}
}

func TestMemoryStoreNotificationDefaults(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	blogID, userID := 1, 2
	n := &Notification{Message: "hello", BlogID: &blogID, UserID: &userID, Read: true}
	err := s.CreateNotification(ctx, n)
	require.NoError(t, err)

	assert.Equal(t, 1, n.ID)
	assert.False(t, n.Read, "read must start false regardless of input")
	assert.False(t, n.CreatedAt.IsZero())

	forUser, err := s.NotificationsByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, forUser, 1)
	assert.Equal(t, n.ID, forUser[0].ID)
}

func TestMemoryStoreMarkNotificationReadIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.CreateNotification(ctx, &Notification{Message: "hello"})
	require.NoError(t, err)

	first, err := s.MarkNotificationRead(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Read)

	second, err := s.MarkNotificationRead(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.True(t, second.Read)
}
