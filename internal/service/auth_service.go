package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transit_dashboard/internal/models"
	"transit_dashboard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultSessionTTL = 24 * time.Hour

// Domain errors for auth flows.
var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
)

// SessionConfig controls session token signing.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// AuthService handles registration, login and session tokens.
// Passwords are stored and compared as plain text (demo only).
type AuthService struct {
	users   repository.Users
	session SessionConfig
	now     func() time.Time
}

func NewAuthService(users repository.Users, session SessionConfig) *AuthService {
	if session.TTL <= 0 {
		session.TTL = defaultSessionTTL
	}
	return &AuthService{users: users, session: session, now: time.Now}
}

// SignUp creates the user. No password rules are applied.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	id, err := s.users.Create(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	return id, nil
}

// SignIn returns ErrInvalidCredentials for an unknown user and for a wrong
// password alike.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (models.Identity, error) {
	u, err := s.users.GetByCredentials(ctx, username, password)
	if err != nil {
		return models.Identity{}, err
	}
	if u == nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	return models.Identity{UserID: u.ID, Username: u.Username}, nil
}

// CurrentUser loads the user behind a session. (nil, nil) if it no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context, userID int) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Claims is the session token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// IssueSession signs a session token for the identity.
func (s *AuthService) IssueSession(id models.Identity) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(id.UserID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.session.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   id.UserID,
		Username: id.Username,
	})
	signed, err := token.SignedString([]byte(s.session.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// ParseSession validates a session token and returns its identity.
func (s *AuthService) ParseSession(raw string) (models.Identity, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.session.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return models.Identity{}, ErrInvalidSession
	}
	return models.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
