package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-shopfront/internal/app/models"
)

type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAuth), args.Error(1)
}

func (m *MockAuthRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthRepo) CreateUser(ctx context.Context, email, hashedPassword string) (string, error) {
	args := m.Called(ctx, email, hashedPassword)
	return args.String(0), args.Error(1)
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestLoginSuccess(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := NewAuthService(repo, zap.NewNop())

	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(&models.UserAuth{
		ID:        "u1",
		Email:     "alice@example.com",
		Password:  hashFor(t, "correct horse"),
		CreatedAt: time.Now(),
	}, nil)

	user, err := svc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	repo.AssertExpectations(t)
}

func TestLoginTrimsEmail(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := NewAuthService(repo, zap.NewNop())

	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(&models.UserAuth{
		ID:       "u1",
		Email:    "alice@example.com",
		Password: hashFor(t, "correct horse"),
	}, nil)

	_, err := svc.Login(context.Background(), "  alice@example.com  ", "correct horse")
	assert.NoError(t, err)
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	// Unknown email and wrong password must produce the same error so the
	// login form cannot be used to enumerate accounts.
	repo := new(MockAuthRepo)
	svc := NewAuthService(repo, zap.NewNop())

	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, models.ErrNotFound)
	repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(&models.UserAuth{
		ID:       "u1",
		Email:    "alice@example.com",
		Password: hashFor(t, "correct horse"),
	}, nil)

	_, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, wrongErr := svc.Login(context.Background(), "alice@example.com", "wrong password")

	assert.ErrorIs(t, unknownErr, models.ErrUnauthenticated)
	assert.ErrorIs(t, wrongErr, models.ErrUnauthenticated)
}

func TestRegisterReportsEveryFailedRule(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := NewAuthService(repo, zap.NewNop())

	// Invalid email, short password, mismatched confirmation: three issues
	// in one pass. The uniqueness check is skipped for an invalid email.
	userID, issues, err := svc.Register(context.Background(), "not-an-email", "short", "different")
	require.NoError(t, err)
	assert.Empty(t, userID)
	require.Len(t, issues, 3)
	assert.Contains(t, issues[0], "valid email")
	assert.Contains(t, issues[1], "at least 8 characters")
	assert.Contains(t, issues[2], "do not match")
	repo.AssertNotCalled(t, "EmailExists")
	repo.AssertNotCalled(t, "CreateUser")
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := NewAuthService(repo, zap.NewNop())

	repo.On("EmailExists", mock.Anything, "alice@example.com").Return(true, nil)

	_, issues, err := svc.Register(context.Background(), "alice@example.com", "long enough password", "long enough password")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "already exists")
	repo.AssertNotCalled(t, "CreateUser")
}

func TestRegisterSuccessStoresHash(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := NewAuthService(repo, zap.NewNop())

	repo.On("EmailExists", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("CreateUser", mock.Anything, "alice@example.com", mock.MatchedBy(func(hashed string) bool {
		// The stored value must be a hash that verifies the original
		// password, never the password itself.
		return hashed != "long enough password" &&
			bcrypt.CompareHashAndPassword([]byte(hashed), []byte("long enough password")) == nil
	})).Return("u-new", nil)

	userID, issues, err := svc.Register(context.Background(), "alice@example.com", "long enough password", "long enough password")
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, "u-new", userID)
	repo.AssertExpectations(t)
}

func TestRegisterInsertRaceReportedAsTakenEmail(t *testing.T) {
	repo := new(MockAuthRepo)
	svc := NewAuthService(repo, zap.NewNop())

	repo.On("EmailExists", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("CreateUser", mock.Anything, "alice@example.com", mock.Anything).
		Return("", models.ErrConflict)

	_, issues, err := svc.Register(context.Background(), "alice@example.com", "long enough password", "long enough password")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "already exists")
}
