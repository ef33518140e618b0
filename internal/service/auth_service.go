package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"skillpath/internal/auth"
	apperrors "skillpath/internal/errors"
	"skillpath/internal/model"
	"skillpath/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and session resolution.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string, userID uint) (*model.User, error)
}

type authService struct {
	store      repository.Store
	jwtService *auth.JWTService
	sessions   auth.SessionStore
	// registerMu closes the check-then-create window in Register.
	registerMu sync.Mutex
}

// NewAuthService creates a new authentication service.
func NewAuthService(store repository.Store, jwtService *auth.JWTService, sessions auth.SessionStore) AuthService {
	return &authService{
		store:      store,
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	existing, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &model.User{
		Username: username,
		Password: string(hashedPassword),
	})
	if err != nil {
		// A case-insensitive collation can still reject a name the exact lookup missed.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and opens a session, returning its signed token.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	sessionID, token, err := s.jwtService.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}
	if err := s.sessions.Save(ctx, sessionID, user.ID, s.jwtService.TTL()); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}
	return token, user, nil
}

// Logout revokes a session.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// CurrentUser resolves the user behind a session. It fails with ErrUnauthorized when
// the session is gone, belongs to someone else, or its user no longer exists.
func (s *authService) CurrentUser(ctx context.Context, sessionID string, userID uint) (*model.User, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil || sess.UserID != userID {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
