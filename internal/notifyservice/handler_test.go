package notifyservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hikarukin/blogspace/internal/store"
)

// recordingBroadcaster captures broadcast payloads instead of fanning them
// out to sockets.
type recordingBroadcaster struct {
	payloads []any
}

func (b *recordingBroadcaster) Broadcast(v any) error {
	b.payloads = append(b.payloads, v)
	return nil
}

// failingStore makes notification inserts fail while delegating everything
// else.
type failingStore struct {
	store.Store
}

func (s *failingStore) CreateNotification(_ context.Context, _ *store.Notification) error {
	return store.ErrUnavailable
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBlogPublished(t *testing.T) {
	s := store.NewMemoryStore()
	b := &recordingBroadcaster{}
	svc := NewNotificationService(s, b, testLogger())
	ctx := context.Background()

	user := &store.User{ID: 1, Username: "alice"}
	blog := &store.Blog{Title: "Hello World!", Content: "First post body", UserID: user.ID}
	require.NoError(t, s.CreateBlog(ctx, blog))

	n, err := svc.BlogPublished(ctx, user, blog)
	require.NoError(t, err)

	assert.Equal(t, `alice published a new blog post "Hello World!"`, n.Message)
	require.NotNil(t, n.BlogID)
	assert.Equal(t, blog.ID, *n.BlogID)
	require.NotNil(t, n.UserID)
	assert.Equal(t, user.ID, *n.UserID)
	assert.False(t, n.Read)

	// persisted exactly once
	persisted, err := svc.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, n.ID, persisted[0].ID)

	// broadcast exactly once, after the persist
	require.Len(t, b.payloads, 1)
	envelope, ok := b.payloads[0].(Envelope)
	require.True(t, ok)
	assert.Equal(t, EventNewBlog, envelope.Type)

	data, ok := envelope.Data.(newBlogData)
	require.True(t, ok)
	assert.Equal(t, blog.ID, data.Blog.ID)
	assert.Equal(t, actor{ID: 1, Username: "alice"}, data.User)
}

func TestBlogPublishedPersistFailure(t *testing.T) {
	b := &recordingBroadcaster{}
	svc := NewNotificationService(&failingStore{store.NewMemoryStore()}, b, testLogger())
	ctx := context.Background()

	user := &store.User{ID: 1, Username: "alice"}
	blog := &store.Blog{ID: 1, Title: "Hello", Content: "body", UserID: 1}

	_, err := svc.BlogPublished(ctx, user, blog)
	assert.True(t, errors.Is(err, store.ErrUnavailable))
	assert.Empty(t, b.payloads, "no broadcast may happen when the persist fails")
}

func TestMarkRead(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewNotificationService(s, &recordingBroadcaster{}, testLogger())
	ctx := context.Background()

	require.NoError(t, s.CreateNotification(ctx, &store.Notification{Message: "hello"}))

	n, err := svc.MarkRead(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.True(t, n.Read)

	again, err := svc.MarkRead(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.True(t, again.Read)

	missing, err := svc.MarkRead(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
