package store

import "time"

// User is created at registration and never modified afterwards. Password
// holds the bcrypt hash; it never leaves the API.
type User struct {
	ID       int    `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
	Password string `json:"-" bson:"password"`
}

// Blog is immutable once published. Tags is a free-form comma-separated
// string and may be absent.
type Blog struct {
	ID        int       `json:"id" bson:"id"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Tags      *string   `json:"tags" bson:"tags,omitempty"`
	UserID    int       `json:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Notification references the blog and the acting user weakly: the ids are
// kept for lookup but carry no ownership semantics. Read only ever flips
// false -> true.
type Notification struct {
	ID        int       `json:"id" bson:"id"`
	Message   string    `json:"message" bson:"message"`
	BlogID    *int      `json:"blogId" bson:"blogId,omitempty"`
	UserID    *int      `json:"userId" bson:"userId,omitempty"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
