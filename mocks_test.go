package rentals_test

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"

	"github.com/ouestloc/rentals"
)

// MockIdentity implements rentals.Identity
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Role() string {
	args := m.Called()
	return args.String(0)
}

// MockLogger implements rentals.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// testIdentity is a plain value identity for tests that do not need call
// assertions
type testIdentity struct {
	id    string
	name  string
	email string
	role  string
}

func (t testIdentity) ID() string    { return t.id }
func (t testIdentity) Name() string  { return t.name }
func (t testIdentity) Email() string { return t.email }
func (t testIdentity) Role() string  { return t.role }

// MockUserStore implements rentals.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*rentals.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*rentals.User)
	return user, args.Error(1)
}

// MockIdentityProvider implements rentals.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (rentals.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(rentals.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (rentals.Identity, error) {
	args := m.Called(ctx, identifier)
	identity, _ := args.Get(0).(rentals.Identity)
	return identity, args.Error(1)
}

// MockAuthenticator implements rentals.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) (string, error) {
	args := m.Called(ctx, identifier, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) IdentityFromToken(ctx context.Context, token string) (rentals.Identity, error) {
	args := m.Called(ctx, token)
	identity, _ := args.Get(0).(rentals.Identity)
	return identity, args.Error(1)
}

// MockUsers overrides the store methods the flows under test touch; the
// embedded interface panics on anything else, which is what we want.
type MockUsers struct {
	rentals.Users
	mock.Mock
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*rentals.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*rentals.User)
	return user, args.Error(1)
}

func (m *MockUsers) EmailTakenTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	args := m.Called(ctx, tx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) RegisterTx(ctx context.Context, tx bun.IDB, user *rentals.User) (*rentals.User, error) {
	args := m.Called(ctx, tx, user)
	created, _ := args.Get(0).(*rentals.User)
	return created, args.Error(1)
}

// MockRentals overrides the listing methods under test
type MockRentals struct {
	rentals.Rentals
	mock.Mock
}

func (m *MockRentals) ListAll(ctx context.Context) ([]*rentals.Rental, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]*rentals.Rental)
	return records, args.Error(1)
}

func (m *MockRentals) GetByUUID(ctx context.Context, id uuid.UUID) (*rentals.Rental, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*rentals.Rental)
	return record, args.Error(1)
}

func (m *MockRentals) CreateForOwner(ctx context.Context, ownerID uuid.UUID, rental *rentals.Rental) (*rentals.Rental, error) {
	args := m.Called(ctx, ownerID, rental)
	record, _ := args.Get(0).(*rentals.Rental)
	return record, args.Error(1)
}

func (m *MockRentals) ApplyUpdate(ctx context.Context, id uuid.UUID, patch *rentals.Rental) (*rentals.Rental, error) {
	args := m.Called(ctx, id, patch)
	record, _ := args.Get(0).(*rentals.Rental)
	return record, args.Error(1)
}

// MockMessages overrides the contact message methods under test
type MockMessages struct {
	rentals.Messages
	mock.Mock
}

func (m *MockMessages) Send(ctx context.Context, msg *rentals.Message) (*rentals.Message, error) {
	args := m.Called(ctx, msg)
	created, _ := args.Get(0).(*rentals.Message)
	return created, args.Error(1)
}

// MockRepositoryManager hands out the mock repositories and runs transaction
// bodies against a zero-value bun.Tx, which is enough because the repos
// themselves are mocked.
type MockRepositoryManager struct {
	users    *MockUsers
	rentals  *MockRentals
	messages *MockMessages
}

func NewMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{
		users:    &MockUsers{},
		rentals:  &MockRentals{},
		messages: &MockMessages{},
	}
}

func (m *MockRepositoryManager) Validate() error { return nil }

func (m *MockRepositoryManager) MustValidate() {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Users() rentals.Users       { return m.users }
func (m *MockRepositoryManager) Rentals() rentals.Rentals   { return m.rentals }
func (m *MockRepositoryManager) Messages() rentals.Messages { return m.messages }
