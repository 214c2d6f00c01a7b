package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gv "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studypulse/studypulse-api/internal/dto"
	"github.com/studypulse/studypulse-api/internal/models"
	"github.com/studypulse/studypulse-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken indicates an account already exists for the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrGoogleTokenInvalid indicates the Google ID token failed verification.
	ErrGoogleTokenInvalid = errors.New("google id token invalid")
)

const revokedKeyPrefix = "studypulse:revoked:"

// GoogleVerifier validates a Google ID token and extracts its identity claims.
type GoogleVerifier interface {
	Verify(idToken string) (GoogleIdentity, error)
}

// GoogleIdentity is the subset of Google claims the auth flow needs.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

// AuthService owns the session lifecycle: account creation, credential and
// Google sign-in, token issue, and revocation.
type AuthService interface {
	SignUp(ctx context.Context, payload dto.SignUpRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error)
	LoginWithGoogle(ctx context.Context, payload dto.GoogleLoginRequest) (dto.AuthResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

type authService struct {
	users     repository.UserRepository
	redis     *redis.Client
	verifier  GoogleVerifier
	validator *validator.Validate
	secret    string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds the auth service. verifier may be nil when Google
// sign-in is not configured.
func NewAuthService(users repository.UserRepository, redisClient *redis.Client, verifier GoogleVerifier, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		redis:     redisClient,
		verifier:  verifier,
		validator: validate,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, payload dto.SignUpRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	email := normalizeEmail(payload.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("account created")

	return s.issueSession(user)
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(payload.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if user.PasswordHash == "" {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// LoginWithGoogle verifies the ID token and signs the matching account in,
// creating one on first sight of the Google subject.
func (s *authService) LoginWithGoogle(ctx context.Context, payload dto.GoogleLoginRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	if s.verifier == nil {
		return dto.AuthResponse{}, ErrGoogleTokenInvalid
	}

	identity, err := s.verifier.Verify(payload.IDToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("google token verification failed")
		return dto.AuthResponse{}, ErrGoogleTokenInvalid
	}

	user, err := s.users.GetByGoogleID(ctx, identity.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Name:     identity.Name,
			Email:    normalizeEmail(identity.Email),
			GoogleID: identity.Subject,
		}
		if err := s.users.Create(ctx, &user); err != nil {
			return dto.AuthResponse{}, err
		}
		s.logger.Info().Uint("user_id", user.ID).Msg("account created via google sign-in")
	} else if err != nil {
		return dto.AuthResponse{}, err
	}

	return s.issueSession(user)
}

// Logout denylists the token id until its natural expiry. Logging out twice
// is a no-op.
func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.redis == nil || tokenID == "" {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	return s.redis.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

func (s *authService) IsRevoked(ctx context.Context, tokenID string) bool {
	if s.redis == nil || tokenID == "" {
		return false
	}

	exists, err := s.redis.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to check token revocation")
		return false
	}

	return exists > 0
}

func (s *authService) issueSession(user models.User) (dto.AuthResponse, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("sign session token: %w", err)
	}

	return dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
		},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// googleVerifier validates tokens against Google's public keys.
type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier builds a verifier bound to the OAuth client id.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(idToken string) (GoogleIdentity, error) {
	verifier := gv.Verifier{}
	if err := verifier.VerifyIDToken(idToken, []string{v.clientID}); err != nil {
		return GoogleIdentity{}, err
	}

	claims, err := gv.Decode(idToken)
	if err != nil {
		return GoogleIdentity{}, err
	}

	return GoogleIdentity{
		Subject: claims.Sub,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
