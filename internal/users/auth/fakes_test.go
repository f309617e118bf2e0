// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
	"github.com/htilssu/demarthology-api/internal/users/account"
	"github.com/htilssu/demarthology-api/internal/users/auth"
)

// # Repository Mocks

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*account.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// Save echoes its argument unless the expectation returns an explicit user.
func (m *mockUserRepo) Save(ctx context.Context, user *account.User) (*account.User, error) {
	args := m.Called(ctx, user)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if saved, ok := args.Get(0).(*account.User); ok {
		return saved, nil
	}
	return user, nil
}

type mockRoleRepo struct {
	mock.Mock
}

func (m *mockRoleRepo) FindByName(ctx context.Context, name string) (*account.RoleRecord, error) {
	args := m.Called(ctx, name)
	role, _ := args.Get(0).(*account.RoleRecord)
	return role, args.Error(1)
}

func (m *mockRoleRepo) Create(ctx context.Context, role *account.RoleRecord) error {
	return m.Called(ctx, role).Error(0)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email, resetToken string, extra map[string]string) (bool, error) {
	args := m.Called(ctx, email, resetToken, extra)
	return args.Bool(0), args.Error(1)
}

type sessionFunc func(*http.Request) (sec.Claims, error)

func (f sessionFunc) Session(r *http.Request) (sec.Claims, error) { return f(r) }

// # Fixtures

const (
	testEmail    = "a@b.com"
	testPassword = "P@ssw0rd1"
)

type testClock struct{ current time.Time }

func (c *testClock) Now() time.Time              { return c.current }
func (c *testClock) Advance(delta time.Duration) { c.current = c.current.Add(delta) }

func newClock() *testClock {
	return &testClock{current: time.Now().UTC().Truncate(time.Second)}
}

func newCodec(t *testing.T, clock *testClock) *sec.TokenCodec {
	t.Helper()
	codec, err := sec.NewTokenCodec(sec.TokenConfig{
		Secret:    "auth-test-secret",
		Algorithm: "HS256",
		AccessTTL: 30 * time.Minute,
		ResetTTL:  15 * time.Minute,
	}, sec.WithClock(clock.Now))
	require.NoError(t, err)
	return codec
}

func storedUser(t *testing.T, role sec.Role) *account.User {
	t.Helper()
	hash, err := sec.HashPassword(testPassword)
	require.NoError(t, err)
	return &account.User{
		ID:           "0192f5a4-0000-7000-8000-000000000001",
		Email:        testEmail,
		PasswordHash: hash,
		FirstName:    "An",
		LastName:     "Nguyen",
		DateOfBirth:  time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC),
		Role:         role,
		IsActive:     true,
	}
}

type fixture struct {
	users  *mockUserRepo
	roles  *mockRoleRepo
	sender *mockSender
	clock  *testClock
	codec  *sec.TokenCodec
	svc    *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:  &mockUserRepo{},
		roles:  &mockRoleRepo{},
		sender: &mockSender{},
		clock:  newClock(),
	}
	f.codec = newCodec(t, f.clock)
	f.svc = auth.NewService(f.users, f.roles, f.codec, f.sender)
	return f
}

func requireAppError(t *testing.T, err error) *apperr.AppError {
	t.Helper()
	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError), "expected *apperr.AppError, got %T: %v", err, err)
	return appError
}

func fieldsOf(appError *apperr.AppError) []string {
	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	return fields
}
