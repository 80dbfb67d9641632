package notifyservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hikarukin/blogspace/internal/store"
)

// BlogPublished persists a notification for a freshly created blog and then
// broadcasts it to all connected clients. The broadcast happens strictly
// after the persist succeeds; a persist failure propagates so the caller can
// fail the blog creation as a whole. Delivery itself is best effort and
// never fails the call.
func (s *NotificationService) BlogPublished(ctx context.Context, user *store.User, blog *store.Blog) (*store.Notification, error) {
	n := store.Notification{
		Message: fmt.Sprintf("%s published a new blog post %q", user.Username, blog.Title),
		BlogID:  &blog.ID,
		UserID:  &user.ID,
	}

	if err := s.s.CreateNotification(ctx, &n); err != nil {
		return nil, err
	}

	envelope := Envelope{
		Type: EventNewBlog,
		Data: newBlogData{
			Notification: &n,
			Blog:         blog,
			User:         actor{ID: user.ID, Username: user.Username},
		},
	}

	if err := s.b.Broadcast(envelope); err != nil {
		s.logger.Error("could not broadcast notification", slog.Int("notification_id", n.ID), slog.String("error", err.Error()))
	}

	return &n, nil
}

func (s *NotificationService) Notifications(ctx context.Context) ([]store.Notification, error) {
	return s.s.Notifications(ctx)
}

func (s *NotificationService) NotificationsForUser(ctx context.Context, userID int) ([]store.Notification, error) {
	return s.s.NotificationsByUserID(ctx, userID)
}

// MarkRead flips the read flag; marking an already-read notification is a
// no-op that returns the record again. A nil notification means unknown id.
func (s *NotificationService) MarkRead(ctx context.Context, id int) (*store.Notification, error) {
	return s.s.MarkNotificationRead(ctx, id)
}
