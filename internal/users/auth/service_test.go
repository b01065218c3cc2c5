// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/mail"
	"github.com/kervanlab/kervan/internal/platform/sec"
)

// fakeUserRepository is an in-memory [UserRepository].
type fakeUserRepository struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (repo *fakeUserRepository) Create(_ context.Context, user *User) error {
	repo.byEmail[user.Email] = user
	repo.byID[user.ID] = user
	return nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	user, found := repo.byEmail[email]
	if !found {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	user, found := repo.byID[id]
	if !found {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, found := repo.byID[userID]
	if !found {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

// fakeResetRepository is an in-memory [ResetTokenRepository].
type fakeResetRepository struct {
	tokens map[string]string
}

func newFakeResetRepository() *fakeResetRepository {
	return &fakeResetRepository{tokens: make(map[string]string)}
}

func (repo *fakeResetRepository) Save(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	repo.tokens[tokenHash] = userID
	return nil
}

func (repo *fakeResetRepository) Consume(_ context.Context, tokenHash string) (string, error) {
	userID, found := repo.tokens[tokenHash]
	if !found {
		return "", apperr.NotFound("Reset token")
	}
	delete(repo.tokens, tokenHash)
	return userID, nil
}

// recordingMailer captures outbound messages.
type recordingMailer struct {
	sent []mail.Message
}

func (mailer *recordingMailer) Send(_ context.Context, message mail.Message) error {
	mailer.sent = append(mailer.sent, message)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepository, *fakeResetRepository, *recordingMailer) {
	t.Helper()
	users := newFakeUserRepository()
	resets := newFakeResetRepository()
	mailer := &recordingMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(users, resets, mailer, logger), users, resets, mailer
}

func registerUser(t *testing.T, service *Service, email, password string) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		FullName: "Ayşe Yılmaz",
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestRegister_DefaultsToCustomerRole(t *testing.T) {
	service, _, _, _ := newTestService(t)

	user := registerUser(t, service, "ayse@example.com", "correct-horse")

	assert.Equal(t, UserRoleCustomer, user.Role)
	assert.NotEmpty(t, user.ID)
	// The stored value must be a hash, never the raw password.
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse", user.PasswordHash))
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	service, _, _, _ := newTestService(t)
	registerUser(t, service, "ayse@example.com", "correct-horse")

	_, err := service.Register(context.Background(), RegisterInput{
		FullName: "Someone Else",
		Email:    "ayse@example.com",
		Password: "other-password",
	})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

func TestLogin_Succeeds(t *testing.T) {
	service, _, _, _ := newTestService(t)
	created := registerUser(t, service, "ayse@example.com", "correct-horse")

	user, err := service.Login(context.Background(), LoginInput{
		Email:    "ayse@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	service, _, _, _ := newTestService(t)
	registerUser(t, service, "ayse@example.com", "correct-horse")

	_, unknownErr := service.Login(context.Background(), LoginInput{
		Email: "nobody@example.com", Password: "whatever",
	})
	_, wrongErr := service.Login(context.Background(), LoginInput{
		Email: "ayse@example.com", Password: "wrong",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, "UNAUTHORIZED", apperr.As(unknownErr).Code)
}

func TestAdminLogin_RejectsCustomerWithSameError(t *testing.T) {
	service, users, _, _ := newTestService(t)
	registerUser(t, service, "ayse@example.com", "correct-horse")

	_, err := service.AdminLogin(context.Background(), LoginInput{
		Email: "ayse@example.com", Password: "correct-horse",
	})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)

	// Promote and retry.
	users.byEmail["ayse@example.com"].Role = UserRoleAdmin
	admin, err := service.AdminLogin(context.Background(), LoginInput{
		Email: "ayse@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestChangePassword_RequiresCurrentPassword(t *testing.T) {
	service, _, _, _ := newTestService(t)
	user := registerUser(t, service, "ayse@example.com", "correct-horse")

	err := service.ChangePassword(context.Background(), user.ID, "wrong", "new-password-1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	require.NoError(t, service.ChangePassword(context.Background(), user.ID, "correct-horse", "new-password-1"))

	_, err = service.Login(context.Background(), LoginInput{
		Email: "ayse@example.com", Password: "new-password-1",
	})
	assert.NoError(t, err)
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	service, _, resets, mailer := newTestService(t)

	err := service.RequestPasswordReset(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
	assert.Empty(t, resets.tokens)
}

func TestPasswordResetFlow_TokenIsSingleUse(t *testing.T) {
	service, _, _, mailer := newTestService(t)
	registerUser(t, service, "ayse@example.com", "correct-horse")

	require.NoError(t, service.RequestPasswordReset(context.Background(), "ayse@example.com"))
	require.Len(t, mailer.sent, 1)

	// Extract the raw token from the mail body (it is the only hex run).
	body := mailer.sent[0].Body
	var token string
	for _, word := range splitWords(body) {
		if len(word) == ResetTokenLength*2 {
			token = word
		}
	}
	require.NotEmpty(t, token, "mail body should carry the reset token")

	require.NoError(t, service.ResetPassword(context.Background(), token, "brand-new-pass"))

	_, err := service.Login(context.Background(), LoginInput{
		Email: "ayse@example.com", Password: "brand-new-pass",
	})
	require.NoError(t, err)

	// Replaying the consumed token must fail.
	err = service.ResetPassword(context.Background(), token, "another-pass")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func splitWords(s string) []string {
	var words []string
	current := ""
	for _, r := range s {
		if r == ' ' || r == '(' || r == ')' || r == ':' || r == '\n' {
			if current != "" {
				words = append(words, current)
				current = ""
			}
			continue
		}
		current += string(r)
	}
	if current != "" {
		words = append(words, current)
	}
	return words
}
