package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/s50889/ordesite2-sub001/pkg/auth"
	"github.com/s50889/ordesite2-sub001/pkg/config"
	"github.com/s50889/ordesite2-sub001/pkg/db/models"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	pkgerrors "github.com/s50889/ordesite2-sub001/pkg/errors"
	"github.com/s50889/ordesite2-sub001/pkg/security"
)

type stubUserStore struct {
	byEmail    map[string]*models.UserProfile
	lastLogins map[uuid.UUID]time.Time
}

func newStubUserStore(users ...*models.UserProfile) *stubUserStore {
	s := &stubUserStore{
		byEmail:    map[string]*models.UserProfile{},
		lastLogins: map[uuid.UUID]time.Time{},
	}
	for _, user := range users {
		s.byEmail[user.Email] = user
	}
	return s
}

func (s *stubUserStore) Create(ctx context.Context, user *models.UserProfile) (*models.UserProfile, error) {
	user.ID = uuid.New()
	s.byEmail[user.Email] = user
	return user, nil
}

func (s *stubUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	return s.byEmail[email], nil
}

func (s *stubUserStore) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogins[id] = at
	return nil
}

type stubSessions struct {
	generated []string
	revoked   []string
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-key-of-decent-length",
		Issuer:            "ordesite",
		ExpirationMinutes: 15,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("want %s, got %v", code, err)
	}
}

func TestSignupCreatesCustomerAndSession(t *testing.T) {
	users := newStubUserStore()
	sessions := &stubSessions{}
	svc := NewService(users, sessions, testJWTConfig(), testPasswordConfig())

	got, err := svc.Signup(context.Background(), SignupInput{
		Email:    "buyer@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if got.User.Role != enums.RoleCustomer {
		t.Fatalf("role = %s, want customer", got.User.Role)
	}
	if got.AccessToken == "" || got.RefreshToken == "" || got.AccessID == "" {
		t.Fatalf("incomplete session: %+v", got)
	}
	if len(sessions.generated) != 1 || sessions.generated[0] != got.AccessID {
		t.Fatalf("session generated for %v, want %s", sessions.generated, got.AccessID)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), got.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != got.User.ID || claims.ID != got.AccessID {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	existing := &models.UserProfile{ID: uuid.New(), Email: "buyer@example.com", IsActive: true}
	svc := NewService(newStubUserStore(existing), &stubSessions{}, testJWTConfig(), testPasswordConfig())

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "buyer@example.com",
		Password: "whatever-password",
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestLoginVerifiesPasswordAndRecordsLogin(t *testing.T) {
	user := &models.UserProfile{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		PasswordHash: mustHash(t, "correct horse battery"),
		Role:         enums.RoleCustomer,
		IsActive:     true,
	}
	users := newStubUserStore(user)
	svc := NewService(users, &stubSessions{}, testJWTConfig(), testPasswordConfig())

	got, err := svc.Login(context.Background(), LoginInput{
		Email:    "buyer@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.User.ID != user.ID {
		t.Fatalf("logged in as %s", got.User.ID)
	}
	if _, ok := users.lastLogins[user.ID]; !ok {
		t.Fatalf("last login not recorded")
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	active := &models.UserProfile{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		PasswordHash: mustHash(t, "correct horse battery"),
		IsActive:     true,
	}
	disabled := &models.UserProfile{
		ID:           uuid.New(),
		Email:        "gone@example.com",
		PasswordHash: mustHash(t, "correct horse battery"),
		IsActive:     false,
	}
	svc := NewService(newStubUserStore(active, disabled), &stubSessions{}, testJWTConfig(), testPasswordConfig())
	ctx := context.Background()

	cases := []LoginInput{
		{Email: "nobody@example.com", Password: "correct horse battery"},
		{Email: "buyer@example.com", Password: "wrong"},
		{Email: "gone@example.com", Password: "correct horse battery"},
	}
	for _, input := range cases {
		_, err := svc.Login(ctx, input)
		assertCode(t, err, pkgerrors.CodeUnauthenticated)
		if pkgerrors.As(err).Message() != "invalid email or password" {
			t.Fatalf("message for %s = %q", input.Email, pkgerrors.As(err).Message())
		}
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessions{}
	svc := NewService(newStubUserStore(), sessions, testJWTConfig(), testPasswordConfig())

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("revoked = %v", sessions.revoked)
	}

	// anonymous logout is a no-op, not an error
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("anonymous logout: %v", err)
	}
	if len(sessions.revoked) != 1 {
		t.Fatalf("revoked = %v", sessions.revoked)
	}
}
