package services

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-tracker/internal/logger"
	"github.com/sbilibin2017/todo-tracker/internal/models"
	"github.com/sbilibin2017/todo-tracker/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8
	// MaxPasswordLength is the longest input bcrypt accepts.
	MaxPasswordLength = 72
	// MaxUsernameLength matches the users.username column.
	MaxUsernameLength = 50
)

// dummyHash is compared against when the email is unknown so both login failures cost a bcrypt round.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, username string) (string, error)
}

// CacheInvalidator drops cached aggregate values.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// AuthService handles registration, login and per-user statistics.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    JWTGenerator
	cache  CacheInvalidator
}

// NewAuthService creates a new AuthService instance. cache may be nil.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator, cache CacheInvalidator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
		cache:  cache,
	}
}

// Register creates a user and returns a token for it together with the stored username.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateRegistration(username, email, password); err != nil {
		logger.Log.Infow("registration rejected", "username", username, "reason", err.Error())
		return "", "", err
	}

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil && existing != nil:
		logger.Log.Infow("user already exists", "username", username, "email", email)
		return "", "", ErrUserAlreadyExists
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		logger.Log.Errorw("failed to check user exists", "err", err)
		return "", "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return "", "", err
	}

	user := &models.UserDB{
		UserID:       uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := svc.writer.Save(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			logger.Log.Infow("user created concurrently", "username", username, "email", email)
			return "", "", ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return "", "", err
	}

	if svc.cache != nil {
		if err := svc.cache.Invalidate(ctx, repositories.UsersCountKey); err != nil {
			logger.Log.Warnw("failed to invalidate users count", "err", err)
		}
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", "", err
	}

	logger.Log.Infow("user registered", "userID", user.UserID, "username", user.Username)
	return token, user.Username, nil
}

// Login authenticates a user by email and password and returns a fresh token and the username.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", newValidationError("email", "Email and password required")
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			logger.Log.Infow("login for unknown email", "email", email)
			return "", "", ErrInvalidCredentials
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "userID", user.UserID)
		return "", "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", "", err
	}

	return token, user.Username, nil
}

// GetStats returns the caller's username, email and task counters.
func (svc *AuthService) GetStats(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	stats, err := svc.reader.GetStats(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user stats", "userID", userID, "err", err)
		return nil, err
	}
	return stats, nil
}

func validateRegistration(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return newValidationError("", "All fields are required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return newValidationError("username", "Username must be at most 50 characters")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return newValidationError("password", "Password must be at least 8 characters")
	}
	if len(password) > MaxPasswordLength {
		return newValidationError("password", "Password must be at most 72 bytes")
	}
	if !isEmail(email) {
		return newValidationError("email", "Invalid email address")
	}
	return nil
}

// isEmail accepts a bare addr-spec with a dotted domain, e.g. "a@b.co".
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
