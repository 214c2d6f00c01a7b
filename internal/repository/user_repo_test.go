package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studypulse/studypulse-api/internal/models"
)

func setupUserDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	repo := NewUserRepository(setupUserDB(t))
	ctx := context.Background()

	user := models.User{Name: "Alex Johnson", Email: "alex@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, &user))
	require.NotZero(t, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "alex@example.com", byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "alex@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryGoogleID(t *testing.T) {
	repo := NewUserRepository(setupUserDB(t))
	ctx := context.Background()

	user := models.User{Name: "Alex Johnson", Email: "alex@example.com", GoogleID: "google-sub-1"}
	require.NoError(t, repo.Create(ctx, &user))

	found, err := repo.GetByGoogleID(ctx, "google-sub-1")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = repo.GetByGoogleID(ctx, "google-sub-2")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryUpdate(t *testing.T) {
	repo := NewUserRepository(setupUserDB(t))
	ctx := context.Background()

	user := models.User{Name: "Alex Johnson", Email: "alex@example.com"}
	require.NoError(t, repo.Create(ctx, &user))

	user.AvatarURL = "https://cdn.example.com/avatars/alex.png"
	require.NoError(t, repo.Update(ctx, &user))

	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/avatars/alex.png", updated.AvatarURL)
}
