package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"skillpath/internal/auth"
	"skillpath/internal/cache"
	apperrors "skillpath/internal/errors"
	"skillpath/internal/model"
	"skillpath/internal/repository"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockStore, *model.User)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "secret",
			setupMock: func(m *MockStore, created *model.User) {
				m.On("GetUserByUsername", mock.Anything, "alice").Return(nil, nil)
				m.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						*created = *args.Get(1).(*model.User)
						created.ID = 1
					}).
					Return(created, nil)
			},
		},
		{
			name:     "user already exists",
			username: "bob",
			password: "secret",
			setupMock: func(m *MockStore, _ *model.User) {
				m.On("GetUserByUsername", mock.Anything, "bob").Return(&model.User{ID: 3, Username: "bob"}, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:     "username taken under a case-insensitive collation",
			username: "alice",
			password: "secret",
			setupMock: func(m *MockStore, _ *model.User) {
				m.On("GetUserByUsername", mock.Anything, "alice").Return(nil, nil)
				m.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(nil, repository.ErrDuplicateUsername)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockStore)
			created := &model.User{}
			tt.setupMock(mockStore, created)

			svc := NewAuthService(mockStore, auth.NewJWTService("test-secret", time.Hour), new(MockSessionStore))
			user, err := svc.Register(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, uint(1), user.ID)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEqual(t, tt.password, user.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(tt.password)))
			}

			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	mockStore := new(MockStore)
	mockStore.On("GetUserByUsername", mock.Anything, "alice").Return(nil, errors.New("connection reset"))

	svc := NewAuthService(mockStore, auth.NewJWTService("test-secret", time.Hour), new(MockSessionStore))
	_, err := svc.Register(context.Background(), "alice", "secret")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "check user existence")
}

func TestAuthService_Register_ConcurrentDuplicates(t *testing.T) {
	store := repository.NewMemStorage()
	svc := NewAuthService(store, auth.NewJWTService("test-secret", time.Hour), auth.NewMemorySessionStore())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Register(context.Background(), "alice", "secret"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("secret"), bcryptCost)
	require.NoError(t, err)
	alice := &model.User{ID: 1, Username: "alice", Password: string(hashedPassword)}

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockStore, *MockSessionStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "secret",
			setupMock: func(m *MockStore, s *MockSessionStore) {
				m.On("GetUserByUsername", mock.Anything, "alice").Return(alice, nil)
				s.On("Save", mock.Anything, mock.AnythingOfType("string"), uint(1), time.Hour).Return(nil)
			},
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(m *MockStore, s *MockSessionStore) {
				m.On("GetUserByUsername", mock.Anything, "alice").Return(alice, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "secret",
			setupMock: func(m *MockStore, s *MockSessionStore) {
				m.On("GetUserByUsername", mock.Anything, "nobody").Return(nil, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockStore)
			mockSessions := new(MockSessionStore)
			tt.setupMock(mockStore, mockSessions)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			svc := NewAuthService(mockStore, jwtService, mockSessions)

			token, user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)

				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
			}

			mockStore.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice"}

	tests := []struct {
		name          string
		setupMock     func(*MockStore, *MockSessionStore)
		expectedError error
	}{
		{
			name: "active session",
			setupMock: func(m *MockStore, s *MockSessionStore) {
				s.On("Get", mock.Anything, "sid").Return(&auth.Session{UserID: 1}, nil)
				m.On("GetUser", mock.Anything, uint(1)).Return(alice, nil)
			},
		},
		{
			name: "revoked session",
			setupMock: func(m *MockStore, s *MockSessionStore) {
				s.On("Get", mock.Anything, "sid").Return(nil, nil)
			},
			expectedError: apperrors.ErrUnauthorized,
		},
		{
			name: "session of another user",
			setupMock: func(m *MockStore, s *MockSessionStore) {
				s.On("Get", mock.Anything, "sid").Return(&auth.Session{UserID: 2}, nil)
			},
			expectedError: apperrors.ErrUnauthorized,
		},
		{
			name: "user vanished",
			setupMock: func(m *MockStore, s *MockSessionStore) {
				s.On("Get", mock.Anything, "sid").Return(&auth.Session{UserID: 1}, nil)
				m.On("GetUser", mock.Anything, uint(1)).Return(nil, nil)
			},
			expectedError: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockStore)
			mockSessions := new(MockSessionStore)
			tt.setupMock(mockStore, mockSessions)

			svc := NewAuthService(mockStore, auth.NewJWTService("test-secret", time.Hour), mockSessions)
			user, err := svc.CurrentUser(context.Background(), "sid", 1)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, alice, user)
			}

			mockStore.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	sessions := auth.NewMemorySessionStore()
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	svc := NewAuthService(repository.NewMemStorage(), jwtService, sessions)

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	token, user, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	_, err = svc.CurrentUser(ctx, claims.ID, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims.ID))
	_, err = svc.CurrentUser(ctx, claims.ID, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, 0, sessions.Len())
}

func TestAuthService_Register_ManyDistinctUsernames(t *testing.T) {
	store := repository.NewMemStorage()
	svc := NewAuthService(store, auth.NewJWTService("test-secret", time.Hour), auth.NewMemorySessionStore())

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Register(context.Background(), fmt.Sprintf("user-%d", i), "secret")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	seen := make(map[uint]bool, n)
	for i := 0; i < n; i++ {
		u, err := store.GetUserByUsername(context.Background(), fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.False(t, seen[u.ID], "user ids are unique")
		seen[u.ID] = true
	}
}

func TestAuthService_Login_SessionStoreUnreachable(t *testing.T) {
	redis := cache.New("127.0.0.1:1", "", 0)
	defer redis.Close()

	store := repository.NewMemStorage()
	svc := NewAuthService(store, auth.NewJWTService("test-secret", time.Hour), auth.NewRedisSessionStore(redis))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "alice", "secret")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "store session")
	assert.Empty(t, token)
	assert.Nil(t, user)
}
