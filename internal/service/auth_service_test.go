package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/asdes/report-service/internal/auth"
	"github.com/asdes/report-service/internal/config"
	"github.com/asdes/report-service/internal/domain"
	"github.com/asdes/report-service/internal/repository"
	apperrors "github.com/asdes/report-service/pkg/util"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]repository.UserWithReportCount, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]repository.UserWithReportCount), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

// memoryTokenStore keeps denylisted token IDs in a map, standing in for Redis.
type memoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{revoked: map[string]struct{}{}}
}

func (s *memoryTokenStore) Denylist(_ context.Context, tokenID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = struct{}{}
	return nil
}

func (s *memoryTokenStore) IsDenylisted(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates a resident and issues a token", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "dewi@asdes.com").Return(nil, pgx.ErrNoRows)
		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = "u-new"
		}).Return(nil)

		svc := NewAuthService(testConfig(), users, newMemoryTokenStore())
		user, token, exp, err := svc.Register(context.Background(), "Dewi Lestari", "dewi@asdes.com", "08456789012", "rahasia123")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleWarga, user.Role)
		assert.NotEmpty(t, token)
		assert.True(t, exp.After(time.Now()))
		assert.NoError(t, auth.ComparePassword(user.PasswordHash, "rahasia123"))
		users.AssertExpectations(t)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "budi@asdes.com").Return(&domain.User{ID: "u1", Email: "budi@asdes.com"}, nil)

		svc := NewAuthService(testConfig(), users, newMemoryTokenStore())
		_, _, _, err := svc.Register(context.Background(), "Budi", "budi@asdes.com", "", "rahasia123")

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("rahasia123", bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: "u1", Email: "budi@asdes.com", PasswordHash: hash, Role: domain.RoleWarga}

	t.Run("valid credentials return a parseable token", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "budi@asdes.com").Return(stored, nil)

		svc := NewAuthService(testConfig(), users, newMemoryTokenStore())
		user, token, _, err := svc.Login(context.Background(), "budi@asdes.com", "rahasia123")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, domain.RoleWarga, claims.Role)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "budi@asdes.com").Return(stored, nil)

		svc := NewAuthService(testConfig(), users, newMemoryTokenStore())
		_, _, _, err := svc.Login(context.Background(), "budi@asdes.com", "salah")

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("unknown email gets the same message as a wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "nobody@asdes.com").Return(nil, pgx.ErrNoRows)

		svc := NewAuthService(testConfig(), users, newMemoryTokenStore())
		_, _, _, err := svc.Login(context.Background(), "nobody@asdes.com", "rahasia123")

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "Email atau kata sandi salah.", domainErr.Message)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("denylists the token ID", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByEmail", mock.Anything, "budi@asdes.com").Return(nil, pgx.ErrNoRows)
		users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		store := newMemoryTokenStore()
		svc := NewAuthService(testConfig(), users, store)
		_, token, _, err := svc.Register(context.Background(), "Budi", "budi@asdes.com", "", "rahasia123")
		require.NoError(t, err)

		require.NoError(t, svc.Logout(context.Background(), token))

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		revoked, err := store.IsDenylisted(context.Background(), claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		svc := NewAuthService(testConfig(), new(MockUserRepository), newMemoryTokenStore())
		err := svc.Logout(context.Background(), "not-a-jwt")

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})
}
