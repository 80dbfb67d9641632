package notifyservice

import (
	"log/slog"

	"github.com/hikarukin/blogspace/internal/store"
)

const EventNewBlog = "NEW_BLOG"

// Envelope is the tagged message format pushed over the live channel.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type newBlogData struct {
	Notification *store.Notification `json:"notification"`
	Blog         *store.Blog         `json:"blog"`
	User         actor               `json:"user"`
}

// actor is the trimmed user shape embedded in broadcast payloads.
type actor struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Broadcaster pushes a payload to every live client connection,
// fire-and-forget. The Hub implements it.
type Broadcaster interface {
	Broadcast(v any) error
}

type NotificationService struct {
	s      store.Store
	b      Broadcaster
	logger *slog.Logger
}

func NewNotificationService(s store.Store, b Broadcaster, logger *slog.Logger) *NotificationService {
	return &NotificationService{s: s, b: b, logger: logger}
}
