package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/s50889/ordesite2-sub001/pkg/auth"
	"github.com/s50889/ordesite2-sub001/pkg/auth/session"
	"github.com/s50889/ordesite2-sub001/pkg/config"
	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/security"
)

// SignupInput is the self-service registration payload. Every signup lands
// as a customer; staff roles are assigned out of band.
type SignupInput struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=128"`
	Name        *string `json:"name" validate:"omitempty,max=100"`
	CompanyName *string `json:"companyName" validate:"omitempty,max=200"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful signup or login.
type Session struct {
	User         *models.UserProfile
	AccessToken  string
	RefreshToken string
	AccessID     string
}

type userStore interface {
	Create(ctx context.Context, user *models.UserProfile) (*models.UserProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionIssuer interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service implements signup, login and logout for the portal.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Logout(ctx context.Context, accessID string) error
	Me(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
}

type service struct {
	users    userStore
	sessions sessionIssuer
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	now      func() time.Time
}

func NewService(users userStore, sessions sessionIssuer, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) Service {
	return &service{
		users:    users,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
		now:      time.Now,
	}
}

func (s *service) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup email")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, &models.UserProfile{
		Email:        input.Email,
		PasswordHash: hash,
		Role:         enums.RoleCustomer,
		Name:         input.Name,
		CompanyName:  input.CompanyName,
		Phone:        input.Phone,
		IsActive:     true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return s.openSession(ctx, user)
}

// Login deliberately reports one message for unknown email, wrong password
// and disabled account, so the endpoint cannot be used to probe addresses.
func (s *service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup email")
	}
	if user == nil || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "invalid email or password")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "invalid email or password")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	return s.openSession(ctx, user)
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if accessID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "user identity missing")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return user, nil
}

func (s *service) openSession(ctx context.Context, user *models.UserProfile) (*Session, error) {
	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open session")
	}

	return &Session{
		User:         user,
		AccessToken:  token,
		RefreshToken: refresh,
		AccessID:     accessID,
	}, nil
}
