package blogservice

import (
	"context"
	"errors"

	"github.com/hikarukin/blogspace/internal/common"
	"github.com/hikarukin/blogspace/internal/notifyservice"
	"github.com/hikarukin/blogspace/internal/store"
)

var (
	ErrUnknownAuthor = errors.New("user_id does not exist")
)

func NewBlogService(s store.Store, notifier *notifyservice.NotificationService) *BlogService {
	return &BlogService{s: s, notifier: notifier}
}

// CreateBlog publishes a post and dispatches its notification. The blog
// insert and the notification insert form one logical unit from the caller's
// perspective: if the notification cannot be persisted, the whole creation
// fails rather than leaving a post nobody was told about.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*store.Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.s.UserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownAuthor
	}

	blog := store.Blog{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		UserID:  req.UserID,
	}

	if err := s.s.CreateBlog(ctx, &blog); err != nil {
		return nil, err
	}

	if _, err := s.notifier.BlogPublished(ctx, user, &blog); err != nil {
		return nil, err
	}

	return &blog, nil
}

// Blogs returns all posts, newest first, each with its author embedded.
func (s *BlogService) Blogs(ctx context.Context) ([]BlogWithAuthor, error) {
	blogs, err := s.s.Blogs(ctx)
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, blogs)
}

// BlogByID returns one post with its author, or nil when the id is unknown.
func (s *BlogService) BlogByID(ctx context.Context, id int) (*BlogWithAuthor, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.s.BlogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, nil
	}

	withAuthor, err := s.withAuthors(ctx, []store.Blog{*blog})
	if err != nil {
		return nil, err
	}

	return &withAuthor[0], nil
}

// BlogsByUserID returns the raw posts of one author, newest first.
func (s *BlogService) BlogsByUserID(ctx context.Context, userID int) ([]store.Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.s.BlogsByUserID(ctx, userID)
}

// withAuthors resolves each blog's user reference, looking every distinct
// author up once.
func (s *BlogService) withAuthors(ctx context.Context, blogs []store.Blog) ([]BlogWithAuthor, error) {
	authors := make(map[int]*Author)

	result := make([]BlogWithAuthor, 0, len(blogs))
	for _, blog := range blogs {
		author, ok := authors[blog.UserID]
		if !ok {
			user, err := s.s.UserByID(ctx, blog.UserID)
			if err != nil {
				return nil, err
			}
			if user != nil {
				author = &Author{ID: user.ID, Username: user.Username}
			}
			authors[blog.UserID] = author
		}

		result = append(result, BlogWithAuthor{Blog: blog, User: author})
	}

	return result, nil
}
