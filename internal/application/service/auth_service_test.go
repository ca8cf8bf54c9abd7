package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func activeUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := entity.NewUser("tari@example.com", "Tari", string(hash), entity.RoleEmployee, "Sales")
	require.NoError(t, err)
	user.Status = entity.UserStatusActive
	return user
}

func newAuthService(userRepo *mockUserRepo, audit *recordingAudit) AuthService {
	return NewAuthService(userRepo, audit, testSecret, time.Hour, &mockLogger{})
}

func TestAuthService_Register(t *testing.T) {
	var created *entity.User
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *entity.User) error {
			created = user
			return nil
		},
	}
	audit := &recordingAudit{}
	svc := newAuthService(repo, audit)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:      "Rudo@Example.com",
		Name:       "Rudo",
		Password:   "correct horse battery",
		Role:       entity.RoleEmployee,
		Department: "Finance",
	})
	require.NoError(t, err)
	require.Equal(t, entity.UserStatusPending, user.Status)
	require.Equal(t, "rudo@example.com", user.Email)
	require.NotEqual(t, "correct horse battery", created.PasswordHash)
	require.Equal(t, []string{entity.AuditUserRegistered}, audit.actions)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newAuthService(&mockUserRepo{}, &recordingAudit{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@b.com", Name: "A", Password: "short", Role: entity.RoleEmployee,
	})
	require.ErrorIs(t, err, errs.ErrValidation)

	taken := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return activeUser(t, "whatever0"), nil
		},
	}
	svc = newAuthService(taken, &recordingAudit{})
	_, err = svc.Register(context.Background(), RegisterInput{
		Email: "tari@example.com", Name: "Tari", Password: "longenough", Role: entity.RoleEmployee,
	})
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestAuthService_LoginIssuesParseableToken(t *testing.T) {
	user := activeUser(t, "opensesame1")
	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return user, nil
		},
	}
	audit := &recordingAudit{}
	svc := newAuthService(repo, audit)

	got, token, err := svc.Login(context.Background(), user.Email, "opensesame1")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, []string{entity.AuditLoginSuccess}, audit.actions)

	principal, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID, principal.ID)
	require.Equal(t, user.Role, principal.Role)
	require.Equal(t, user.Department, principal.Department)
}

func TestAuthService_LoginFailures(t *testing.T) {
	user := activeUser(t, "opensesame1")
	pendingUser := activeUser(t, "opensesame1")
	pendingUser.Status = entity.UserStatusPending

	tests := []struct {
		name     string
		stored   *entity.User
		password string
	}{
		{"unknown email", nil, "opensesame1"},
		{"wrong password", user, "wrong"},
		{"account not active", pendingUser, "opensesame1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{
				getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
					return tt.stored, nil
				},
			}
			audit := &recordingAudit{}
			svc := newAuthService(repo, audit)

			_, _, err := svc.Login(context.Background(), "tari@example.com", tt.password)
			// Every failure mode yields the same opaque error.
			require.ErrorIs(t, err, errs.ErrUnauthenticated)
			require.Equal(t, []string{entity.AuditLoginFailed}, audit.actions)
		})
	}
}

func TestAuthService_ParseTokenRejectsTampering(t *testing.T) {
	user := activeUser(t, "opensesame1")
	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return user, nil
		},
	}
	svc := newAuthService(repo, &recordingAudit{})

	_, token, err := svc.Login(context.Background(), user.Email, "opensesame1")
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret-another-secret-32")
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = ParseToken("not-a-token", testSecret)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestAuthService_UserReview(t *testing.T) {
	pending := activeUser(t, "opensesame1")
	pending.Status = entity.UserStatusPending
	repo := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return pending, nil
		},
	}
	audit := &recordingAudit{}
	svc := newAuthService(repo, audit)
	ctx := context.Background()

	_, err := svc.ApproveUser(ctx, hr, pending.ID)
	require.ErrorIs(t, err, errs.ErrForbidden)

	user, err := svc.ApproveUser(ctx, admin, pending.ID)
	require.NoError(t, err)
	require.Equal(t, entity.UserStatusActive, user.Status)
	require.Equal(t, []string{entity.AuditUserApproved}, audit.actions)

	// Already decided accounts cannot be re-reviewed.
	_, err = svc.RejectUser(ctx, admin, pending.ID)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}
