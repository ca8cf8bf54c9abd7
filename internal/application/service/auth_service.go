package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
	"github.com/tinashem/employee-portal/internal/domain/policy"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email      string
	Name       string
	Password   string
	Role       entity.Role
	Department string
}

// AuthService manages accounts and sessions: registration, admin approval of
// pending accounts, and login. Every sensitive action lands in the audit
// ledger, including failed logins.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Me(ctx context.Context, p *entity.Principal) (*entity.User, error)

	ListPendingUsers(ctx context.Context, p *entity.Principal) ([]*entity.User, error)
	ApproveUser(ctx context.Context, p *entity.Principal, userID string) (*entity.User, error)
	RejectUser(ctx context.Context, p *entity.Principal, userID string) (*entity.User, error)
}

// Claims is the JWT payload carrying the principal.
type Claims struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	jwt.RegisteredClaims
}

type authServiceImpl struct {
	userRepo  port.UserRepository
	audit     AuditService
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo port.UserRepository,
	audit AuditService,
	jwtSecret string,
	tokenTTL time.Duration,
	logger Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		audit:     audit,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a PENDING account awaiting admin approval.
func (s *authServiceImpl) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", errs.ErrValidation)
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, storeErr("look up email", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email is already registered", errs.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := entity.NewUser(input.Email, input.Name, string(hash), input.Role, input.Department)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storeErr("create user", err)
	}

	_ = s.audit.Record(ctx, user.ID, entity.AuditUserRegistered, entity.EntityTypeUser, user.ID,
		map[string]string{"email": user.Email, "role": user.Role.String()}, userAgentFrom(ctx))

	s.logger.Info("User registered", "id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies credentials for an ACTIVE account and issues a signed
// session token. Both outcomes are audited.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", storeErr("look up user", err)
	}

	if user == nil || user.Status != entity.UserStatusActive ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		actorID := ""
		if user != nil {
			actorID = user.ID
		}
		_ = s.audit.Record(ctx, actorID, entity.AuditLoginFailed, entity.EntityTypeUser, actorID,
			map[string]string{"email": email}, userAgentFrom(ctx))
		// One error for every failure mode; callers learn nothing about
		// which part of the credential was wrong.
		return nil, "", fmt.Errorf("%w: invalid credentials", errs.ErrUnauthenticated)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	_ = s.audit.Record(ctx, user.ID, entity.AuditLoginSuccess, entity.EntityTypeUser, user.ID, nil, userAgentFrom(ctx))

	s.logger.Info("User logged in", "id", user.ID)
	return user, token, nil
}

// Me resolves the principal back to its full account record.
func (s *authServiceImpl) Me(ctx context.Context, p *entity.Principal) (*entity.User, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, storeErr("load user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", errs.ErrNotFound, p.ID)
	}
	return user, nil
}

// ListPendingUsers returns accounts awaiting approval. Admin only.
func (s *authServiceImpl) ListPendingUsers(ctx context.Context, p *entity.Principal) ([]*entity.User, error) {
	if err := policy.RequireRole(p, entity.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListByStatus(ctx, entity.UserStatusPending)
	if err != nil {
		return nil, storeErr("list pending users", err)
	}
	return users, nil
}

// ApproveUser activates a pending account. Admin only.
func (s *authServiceImpl) ApproveUser(ctx context.Context, p *entity.Principal, userID string) (*entity.User, error) {
	return s.reviewUser(ctx, p, userID, entity.UserStatusActive, entity.AuditUserApproved)
}

// RejectUser declines a pending account. Admin only.
func (s *authServiceImpl) RejectUser(ctx context.Context, p *entity.Principal, userID string) (*entity.User, error) {
	return s.reviewUser(ctx, p, userID, entity.UserStatusRejected, entity.AuditUserRejected)
}

func (s *authServiceImpl) reviewUser(ctx context.Context, p *entity.Principal, userID, to, auditAction string) (*entity.User, error) {
	if err := policy.RequireRole(p, entity.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr("load user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", errs.ErrNotFound, userID)
	}
	if user.Status != entity.UserStatusPending {
		return nil, fmt.Errorf("%w: user is not pending approval", errs.ErrInvalidTransition)
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, entity.UserStatusPending, to); err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			return nil, err
		}
		return nil, storeErr("update user status", err)
	}
	user.Status = to
	user.UpdatedAt = time.Now()

	_ = s.audit.Record(ctx, p.ID, auditAction, entity.EntityTypeUser, userID,
		map[string]string{"email": user.Email}, userAgentFrom(ctx))

	s.logger.Info("User reviewed", "id", userID, "status", to, "by", p.ID)
	return user, nil
}

func (s *authServiceImpl) issueToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:       user.Name,
		Role:       user.Role.String(),
		Department: user.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ParseToken validates a session token and rebuilds the principal. Used by
// the HTTP auth middleware.
func ParseToken(tokenString, jwtSecret string) (*entity.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errs.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, errs.ErrUnauthenticated
	}

	return &entity.Principal{
		ID:         claims.Subject,
		Name:       claims.Name,
		Role:       entity.Role(claims.Role),
		Department: claims.Department,
	}, nil
}
