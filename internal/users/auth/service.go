// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package auth implements the identity core of the forum: credential login,
registration, password recovery and per-request identity resolution.

Architecture:

  - Service: Orchestrates the use cases (Login, Register, ForgotPassword,
    ResetPassword, Logout, Me).
  - Session: Extracts and verifies the bearer token of a request.
  - Resolver: Hydrates the account behind a verified session.
  - Repository: Abstracted interfaces over the users and roles tables.

Tokens are stateless signed JWTs. Logout therefore changes no server state;
clients discard the token.
*/
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/htilssu/demarthology-api/internal/platform/apperr"
	"github.com/htilssu/demarthology-api/internal/platform/constants"
	"github.com/htilssu/demarthology-api/internal/platform/ctxutil"
	"github.com/htilssu/demarthology-api/internal/platform/notify"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
	"github.com/htilssu/demarthology-api/internal/platform/validate"
	"github.com/htilssu/demarthology-api/internal/users/account"
	"github.com/htilssu/demarthology-api/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer is the slice of [*sec.TokenCodec] consumed by the use cases.
type TokenIssuer interface {
	IssueAccessToken(claims sec.Claims) (string, error)
	IssueResetToken(email string) (string, error)
	DecodeResetToken(token string) (string, error)
}

// defaultRoleDescription labels the role row created on first registration.
const defaultRoleDescription = "Default user role"

// dummyHash is compared against when a login names no account, so both
// failure paths pay for one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	hash, err := sec.HashPassword("timing-equalizer-0")
	if err != nil {
		return ""
	}
	return hash
})

// Service implements the authentication use cases.
type Service struct {
	userRepository UserRepository
	roleRepository RoleRepository
	tokens         TokenIssuer
	sender         notify.Sender
	now            func() time.Time
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	roleRepo RoleRepository,
	tokens TokenIssuer,
	sender notify.Sender,
) *Service {
	return &Service{
		userRepository: userRepo,
		roleRepository: roleRepo,
		tokens:         tokens,
		sender:         sender,
		now:            time.Now,
	}
}

// AuthResult is returned by Login and Register.
type AuthResult struct {
	User        *account.User
	AccessToken string
}

// # Authentication Flow

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login verifies credentials and issues an access token.

Description: An unknown email, an inactive account and a wrong password all
fail with the same Unauthorized message.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *AuthResult: The account and a signed access token
  - error: Validation, Unauthorized or Internal
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(ctx, account.NormalizeEmail(input.Email))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	if user == nil || !user.IsActive {
		sec.CheckPasswordHash(input.Password, dummyHash())
		return nil, apperr.Unauthorized(constants.MsgInvalidCredentials)
	}

	matched, err := sec.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "auth_stored_hash_malformed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}
	if !matched {
		return nil, apperr.Unauthorized(constants.MsgInvalidCredentials)
	}

	return service.authenticated(user)
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	DateOfBirth     string
}

/*
Register validates, hashes and persists a new account, then logs it in.

Description: The account receives the default role, whose catalogue row is
created on first use.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *AuthResult: The created account and a signed access token
  - error: Validation, Conflict (email taken) or Internal
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	dateOfBirth, err := service.validateRegistration(input)
	if err != nil {
		return nil, err
	}

	email := account.NormalizeEmail(input.Email)

	exists, err := service.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict("Email is already registered")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	role, err := service.defaultRole(ctx)
	if err != nil {
		return nil, err
	}

	user, err := service.userRepository.Save(ctx, &account.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		DateOfBirth:  dateOfBirth,
		Role:         role.Name,
		IsActive:     true,
	})
	if err != nil {
		var appError *apperr.AppError
		if errors.As(err, &appError) {
			return nil, appError
		}
		return nil, apperr.Internal(err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "auth_user_registered", slog.String("user_id", user.ID))

	return service.authenticated(user)
}

func (service *Service) validateRegistration(input RegisterInput) (time.Time, error) {
	dateOfBirth, parseErr := time.Parse(DateLayout, strings.TrimSpace(input.DateOfBirth))

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, EmailMaxLen).
		Email(FieldEmail, strings.TrimSpace(input.Email)).
		Password(FieldPassword, input.Password).
		Custom(FieldConfirmPassword, input.ConfirmPassword != input.Password, "Passwords do not match").
		Required(FieldFirstName, input.FirstName).
		MaxLen(FieldFirstName, input.FirstName, NameMaxLen).
		Required(FieldLastName, input.LastName).
		MaxLen(FieldLastName, input.LastName, NameMaxLen).
		Custom(FieldDateOfBirth, parseErr != nil, "Must be a date in YYYY-MM-DD format").
		Custom(FieldDateOfBirth, parseErr == nil && !dateOfBirth.Before(service.now()), "Must be in the past")

	return dateOfBirth, validator.Err()
}

// defaultRole returns the default role row, creating it when missing.
// A concurrent registration may win the insert; the row is then re-read.
func (service *Service) defaultRole(ctx context.Context) (*account.RoleRecord, error) {
	role, err := service.roleRepository.FindByName(ctx, sec.DefaultRole.String())
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	role = &account.RoleRecord{
		ID:          uuid.New(),
		Name:        sec.DefaultRole,
		Description: defaultRoleDescription,
		IsActive:    true,
	}
	if err := service.roleRepository.Create(ctx, role); err != nil {
		var appError *apperr.AppError
		if !errors.As(err, &appError) || appError.Code != apperr.CodeConflict {
			return nil, apperr.Internal(err)
		}

		role, err = service.roleRepository.FindByName(ctx, sec.DefaultRole.String())
		if err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return role, nil
}

// # Password Recovery

/*
ForgotPassword issues a reset token and hands it to the notification sender.

Description: The outcome is identical whether or not the email belongs to an
active account. Sender failures are logged and swallowed.

Returns:
  - error: Validation or Internal only
*/
func (service *Service) ForgotPassword(ctx context.Context, email string) error {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, strings.TrimSpace(email))
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByEmail(ctx, account.NormalizeEmail(email))
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return apperr.Internal(err)
	case !user.IsActive:
		return nil
	}

	resetToken, err := service.tokens.IssueResetToken(user.Email)
	if err != nil {
		return apperr.Internal(err)
	}

	logger := ctxutil.GetLogger(ctx)
	sent, err := service.sender.Send(ctx, user.Email, resetToken, map[string]string{
		notify.ExtraSubject: ResetSubject,
	})
	if err != nil || !sent {
		logger.WarnContext(ctx, "auth_reset_notification_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return nil
	}

	logger.InfoContext(ctx, "auth_reset_notification_sent", slog.String("user_id", user.ID))
	return nil
}

// ResetPasswordInput carries a reset token and the replacement password.
type ResetPasswordInput struct {
	Token              string
	NewPassword        string
	ConfirmNewPassword string
}

/*
ResetPassword replaces the password of the account named by a reset token.

Returns:
  - error: Validation, Invalid (bad, expired or mistyped token),
    NotFound (account gone) or Internal
*/
func (service *Service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, input.Token).
		Password(FieldNewPassword, input.NewPassword).
		Custom(FieldConfirmNewPassword, input.ConfirmNewPassword != input.NewPassword, "Passwords do not match")
	if err := validator.Err(); err != nil {
		return err
	}

	email, err := service.tokens.DecodeResetToken(input.Token)
	if err != nil {
		return resetTokenError(err)
	}

	user, err := service.userRepository.FindByEmail(ctx, account.NormalizeEmail(email))
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("User")
	case err != nil:
		return apperr.Internal(err)
	case !user.IsActive:
		return apperr.NotFound("User")
	}

	hashedPassword, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	user.PasswordHash = hashedPassword
	if _, err := service.userRepository.Save(ctx, user); err != nil {
		return apperr.Internal(err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "auth_password_reset", slog.String("user_id", user.ID))
	return nil
}

func resetTokenError(err error) error {
	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		return apperr.Invalid("Reset token has expired").WithCause(err)
	case errors.Is(err, sec.ErrInvalidTokenType):
		return apperr.Invalid("Invalid token type").WithCause(err)
	default:
		return apperr.Invalid("Invalid reset token").WithCause(err)
	}
}

// # Session Lifecycle

// Logout acknowledges the end of a session. The token stays valid until it
// expires; clients are expected to discard it.
func (service *Service) Logout(ctx context.Context, user *account.User) error {
	if user == nil {
		return apperr.Unauthorized("Authentication required")
	}
	ctxutil.GetLogger(ctx).InfoContext(ctx, "auth_user_logged_out", slog.String("user_id", user.ID))
	return nil
}

// Me returns the profile of the authenticated user.
func (service *Service) Me(_ context.Context, user *account.User) (*account.User, error) {
	if user == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return user, nil
}

// authenticated issues the access token for a verified account.
func (service *Service) authenticated(user *account.User) (*AuthResult, error) {
	accessToken, err := service.tokens.IssueAccessToken(sec.Claims{
		sec.ClaimEmail:   user.Email,
		sec.ClaimUserID:  user.ID,
		sec.ClaimSubject: user.ID,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &AuthResult{User: user, AccessToken: accessToken}, nil
}
