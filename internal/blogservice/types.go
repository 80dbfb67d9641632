package blogservice

import (
	"github.com/hikarukin/blogspace/internal/notifyservice"
	"github.com/hikarukin/blogspace/internal/store"
)

type BlogService struct {
	s        store.Store
	notifier *notifyservice.NotificationService
}

type CreateBlogRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Tags    *string `json:"tags"`
	UserID  int     `json:"user_id"`
}

// BlogWithAuthor is the list/detail shape: the blog record plus the trimmed
// author looked up through the blog's weak user reference. User is nil when
// the referenced user no longer resolves.
type BlogWithAuthor struct {
	store.Blog
	User *Author `json:"user"`
}

type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
