package auth_test

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/mock"

	auth "github.com/cobaltlabs/go-auth"
)

// MockUserStore implements auth.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUserStore) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *MockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, name, email, passwordHash string) (*auth.User, error) {
	args := m.Called(ctx, name, email, passwordHash)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

// MockLogger implements auth.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {}
func (m *MockLogger) Info(format string, args ...any)  {}
func (m *MockLogger) Error(format string, args ...any) {}

// TestIdentity is a plain auth.Identity value for tests
type TestIdentity struct {
	id        int64
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

func (t TestIdentity) ID() int64            { return t.id }
func (t TestIdentity) Name() string         { return t.name }
func (t TestIdentity) Email() string        { return t.email }
func (t TestIdentity) CreatedAt() time.Time { return t.createdAt }
func (t TestIdentity) UpdatedAt() time.Time { return t.updatedAt }

// testConfig implements auth.Config
type testConfig struct {
	signingKey string
	tokenTTL   time.Duration
	issuer     string
	audience   []string
}

func newTestConfig() testConfig {
	return testConfig{
		signingKey: "test-signing-key",
		tokenTTL:   time.Hour,
		issuer:     "test-issuer",
	}
}

func (c testConfig) GetSigningKey() string      { return c.signingKey }
func (c testConfig) GetTokenTTL() time.Duration { return c.tokenTTL }
func (c testConfig) GetIssuer() string          { return c.issuer }
func (c testConfig) GetAudience() []string      { return c.audience }

func notFoundErr() error {
	return goerrors.New("user not found", goerrors.CategoryNotFound)
}
