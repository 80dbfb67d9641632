package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is the durable variant. Every read decodes into a plain struct,
// so callers never hold live document handles, and list queries return the
// newest records first.
type MongoStore struct {
	db            *mongo.Database
	users         *mongo.Collection
	blogs         *mongo.Collection
	notifications *mongo.Collection
}

func newMongoStore(uri string, timeout time.Duration) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("could not connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not ping mongodb: %w", err)
	}

	db := client.Database(databaseName(uri))

	s := &MongoStore{
		db:            db,
		users:         db.Collection("users"),
		blogs:         db.Collection("blogs"),
		notifications: db.Collection("notifications"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not create indexes: %w", err)
	}

	return s, nil
}

// ensureIndexes enforces id uniqueness per collection. The max-id allocator
// is read-then-write, so concurrent creations can collide; the unique index
// is what fails the second writer.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	idIndex := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique}

	for _, coll := range []*mongo.Collection{s.users, s.blogs, s.notifications} {
		if _, err := coll.Indexes().CreateOne(ctx, idIndex); err != nil {
			return err
		}
	}

	usernameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := s.users.Indexes().CreateOne(ctx, usernameIndex)
	return err
}

func (s *MongoStore) Variant() string {
	return "mongodb"
}

// nextID computes max(existing id)+1, or 1 for an empty collection. Invoked
// once per creation; uniqueness beyond that is the index's job.
func (s *MongoStore) nextID(ctx context.Context, coll *mongo.Collection) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var doc struct {
		ID int `bson:"id"`
	}

	err := coll.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return 1, nil
	case err != nil:
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return doc.ID + 1, nil
}

func (s *MongoStore) UserByID(ctx context.Context, id int) (*User, error) {
	var u User
	err := s.users.FindOne(ctx, bson.M{"id": id}).Decode(&u)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &u, nil
}

func (s *MongoStore) UserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &u, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *User) error {
	id, err := s.nextID(ctx, s.users)
	if err != nil {
		return err
	}
	user.ID = id

	_, err = s.users.InsertOne(ctx, user)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), "username"):
			return ErrDuplicateUsername
		case mongo.IsDuplicateKeyError(err):
			return ErrDuplicateID
		default:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	return nil
}

func (s *MongoStore) Blogs(ctx context.Context) ([]Blog, error) {
	return s.findBlogs(ctx, bson.D{})
}

func (s *MongoStore) BlogByID(ctx context.Context, id int) (*Blog, error) {
	var b Blog
	err := s.blogs.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &b, nil
}

func (s *MongoStore) BlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	return s.findBlogs(ctx, bson.M{"userId": userID})
}

func (s *MongoStore) findBlogs(ctx context.Context, filter any) ([]Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.blogs.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var blogs []Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return blogs, nil
}

func (s *MongoStore) CreateBlog(ctx context.Context, blog *Blog) error {
	id, err := s.nextID(ctx, s.blogs)
	if err != nil {
		return err
	}
	blog.ID = id
	blog.CreatedAt = time.Now().UTC()

	_, err = s.blogs.InsertOne(ctx, blog)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return ErrDuplicateID
		default:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	return nil
}

func (s *MongoStore) Notifications(ctx context.Context) ([]Notification, error) {
	return s.findNotifications(ctx, bson.D{})
}

func (s *MongoStore) NotificationsByUserID(ctx context.Context, userID int) ([]Notification, error) {
	return s.findNotifications(ctx, bson.M{"userId": userID})
}

func (s *MongoStore) findNotifications(ctx context.Context, filter any) ([]Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.notifications.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var notifications []Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return notifications, nil
}

func (s *MongoStore) CreateNotification(ctx context.Context, notification *Notification) error {
	id, err := s.nextID(ctx, s.notifications)
	if err != nil {
		return err
	}
	notification.ID = id
	notification.Read = false
	notification.CreatedAt = time.Now().UTC()

	_, err = s.notifications.InsertOne(ctx, notification)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return ErrDuplicateID
		default:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	return nil
}

func (s *MongoStore) MarkNotificationRead(ctx context.Context, id int) (*Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n Notification
	err := s.notifications.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"read": true}},
		opts,
	).Decode(&n)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &n, nil
}
