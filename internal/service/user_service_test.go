package service

import (
	"context"
	"testing"

	"spa-backend/internal/model"
	"spa-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLifecycle(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	created, err := users.CreateUser(ctx, CreateUserRequest{
		Username: "reception1",
		Email:    "reception@lotus.example",
		Password: "s3cret-pass",
		Role:     model.RoleReceptionist,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleReceptionist, created.Role)

	// Duplicate email is rejected.
	_, err = users.CreateUser(ctx, CreateUserRequest{
		Username: "reception2",
		Email:    "reception@lotus.example",
		Password: "other-pass",
		Role:     model.RoleReceptionist,
	})
	require.Error(t, err)

	// Passwords are stored hashed.
	var stored model.User
	require.NoError(t, db.First(&stored, "email = ?", "reception@lotus.example").Error)
	assert.NotEqual(t, "s3cret-pass", stored.Password)

	tokens, user, err := users.Login(ctx, LoginRequest{Email: "reception@lotus.example", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, created.ID, user.ID)

	_, _, err = users.Login(ctx, LoginRequest{Email: "reception@lotus.example", Password: "wrong"})
	require.Error(t, err)

	// Refresh rotates the token: the old one is single-use.
	rotated, err := users.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	_, err = users.Refresh(ctx, tokens.RefreshToken)
	require.Error(t, err)

	require.NoError(t, users.Logout(ctx, rotated.RefreshToken))
	_, err = users.Refresh(ctx, rotated.RefreshToken)
	require.Error(t, err)
}
