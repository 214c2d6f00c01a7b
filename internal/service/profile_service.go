package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/repository"
)

var (
	// ErrUserNotFound indicates no account exists for the id.
	ErrUserNotFound = errors.New("user not found")
	// ErrAvatarNotImage indicates the uploaded file is not an image.
	ErrAvatarNotImage = errors.New("avatar must be an image")
)

const maxAvatarBytes = 5 << 20

// AvatarUploader stores an avatar image and returns its public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ProfileService exposes profile page use cases.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (dto.UserResponse, error)
	Update(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.UserResponse, error)
	UploadAvatar(ctx context.Context, userID uint, name string, reader io.Reader) (dto.UserResponse, error)
}

type profileService struct {
	users     repository.UserRepository
	uploader  AvatarUploader
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewProfileService builds the profile service. uploader may be nil when no
// image storage is configured; avatar uploads then fail cleanly.
func NewProfileService(users repository.UserRepository, uploader AvatarUploader, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	return &profileService{
		users:     users,
		uploader:  uploader,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) Get(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

func (s *profileService) Update(ctx context.Context, userID uint, payload dto.ProfileUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if payload.Name != nil {
		user.Name = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Name))
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// UploadAvatar sniffs the payload content type before storing; only images
// are accepted regardless of the supplied file name.
func (s *profileService) UploadAvatar(ctx context.Context, userID uint, name string, reader io.Reader) (dto.UserResponse, error) {
	if s.uploader == nil {
		return dto.UserResponse{}, fmt.Errorf("avatar storage not configured")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxAvatarBytes))
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("read avatar: %w", err)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return dto.UserResponse{}, ErrAvatarNotImage
	}

	url, err := s.uploader.Upload(ctx, name, bytes.NewReader(data))
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("upload avatar: %w", err)
	}

	user.AvatarURL = url
	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", userID).Msg("avatar updated")

	return toUserResponse(user), nil
}

func toUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}
