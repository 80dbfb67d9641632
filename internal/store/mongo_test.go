package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMongoStore(t *testing.T) *MongoStore {
	uri := TestMongo(t)

	s, err := newMongoStore(uri, 30*time.Second)
	require.NoError(t, err)

	return s
}

func TestMongoStoreUsers(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()

	alice := &User{Username: "alice", Password: "hash"}
	err := s.CreateUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, alice.ID)

	bob := &User{Username: "bob", Password: "hash"}
	err = s.CreateUser(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 2, bob.ID)

	err = s.CreateUser(ctx, &User{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	got, err := s.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	missing, err := s.UserByID(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMongoStoreBlogs(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()

	const n = 4
	for i := 1; i <= n; i++ {
		blog := &Blog{Title: fmt.Sprintf("Post %d", i), Content: "body", UserID: i % 2}
		err := s.CreateBlog(ctx, blog)
		require.NoError(t, err)
		assert.Equal(t, i, blog.ID)
	}

	blogs, err := s.Blogs(ctx)
	require.NoError(t, err)
	require.Len(t, blogs, n)
	for i := 0; i < len(blogs)-1; i++ {
		assert.False(t, blogs[i].CreatedAt.Before(blogs[i+1].CreatedAt))
	}

	byUser, err := s.BlogsByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
	for _, b := range byUser {
		assert.Equal(t, 1, b.UserID)
	}

	missing, err := s.BlogByID(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMongoStoreNotifications(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()

	blogID, userID := 1, 2
	n := &Notification{Message: "alice published a new blog post \"Hi\"", BlogID: &blogID, UserID: &userID}
	err := s.CreateNotification(ctx, n)
	require.NoError(t, err)
	assert.Equal(t, 1, n.ID)
	assert.False(t, n.Read)

	forUser, err := s.NotificationsByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, forUser, 1)

	first, err := s.MarkNotificationRead(ctx, n.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.Read)

	second, err := s.MarkNotificationRead(ctx, n.ID)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.True(t, second.Read)

	missing, err := s.MarkNotificationRead(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
