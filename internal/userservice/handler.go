package userservice

import (
	"context"
	"fmt"

	"github.com/hikarukin/blogspace/internal/common"
	"github.com/hikarukin/blogspace/internal/store"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid username or password")
)

// RegisterUser creates a new user account with a hashed password.
func (s *UserService) RegisterUser(ctx context.Context, username, password string) (*store.User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	u := store.User{
		Username: username,
		Password: hash,
	}

	if err := s.s.CreateUser(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser verifies the credentials and returns the user. A missing user
// and a wrong password both surface as ErrAuthenticationFailure so the
// response does not reveal which usernames exist.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*store.User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.s.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAuthenticationFailure
	}

	ok, err := comparePassword(user.Password, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}

// UserByID looks up a user; a nil user with nil error means unknown id.
func (s *UserService) UserByID(ctx context.Context, id int) (*store.User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.s.UserByID(ctx, id)
}
