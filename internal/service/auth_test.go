package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
	"github.com/langchou/autocheck/pkg/token"
)

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return apperrors.WithFields(apperrors.CodeInvalid, "user already exists",
				map[string]string{"username": "A user with that username already exists."})
		}
		if u.Email == user.Email {
			return apperrors.WithFields(apperrors.CodeInvalid, "user already exists",
				map[string]string{"email": "A user with that email already exists."})
		}
	}
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	clone := *u
	return &clone, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
}

type fakeBlacklist struct {
	revoked map[string]bool
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: map[string]bool{}}
}

func (b *fakeBlacklist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	b.revoked[jti] = true
	return nil
}

func (b *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return b.revoked[jti], nil
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeBlacklist) {
	users := newFakeUserStore()
	blacklist := newFakeBlacklist()
	issuer := token.NewIssuer("test-secret", time.Hour, 7*24*time.Hour)
	return NewAuthService(zap.NewNop(), users, issuer, blacklist), users, blacklist
}

func TestSignupHashesPasswordAndIssuesTokens(t *testing.T) {
	svc, users, _ := newTestAuthService()

	user, pair, err := svc.Signup(context.Background(), SignupInput{
		Username:       "john",
		Email:          "john@mail.com",
		Password:       "StrongPass123",
		RepeatPassword: "StrongPass123",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if pair == nil || pair.Access == "" || pair.Refresh == "" {
		t.Fatal("signup must issue a token pair")
	}

	stored := users.users[user.ID]
	if stored.PasswordHash == "StrongPass123" {
		t.Fatal("password must never be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("StrongPass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// 注册后可以直接用同一密码登录
	if _, err := svc.Signin(context.Background(), "john", "StrongPass123"); err != nil {
		t.Fatalf("signin after signup: %v", err)
	}
}

func TestSignupRejectsPasswordMismatch(t *testing.T) {
	svc, users, _ := newTestAuthService()

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Username:       "john",
		Email:          "john@mail.com",
		Password:       "StrongPass123",
		RepeatPassword: "DifferentPass123",
	})
	if !apperrors.IsCode(err, apperrors.CodeInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(users.users) != 0 {
		t.Fatal("no user row may be created on validation failure")
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Username:       "john",
		Email:          "john@mail.com",
		Password:       "12345678",
		RepeatPassword: "12345678",
	})
	if !apperrors.IsCode(err, apperrors.CodeInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService()

	in := SignupInput{
		Username:       "john",
		Email:          "john@mail.com",
		Password:       "StrongPass123",
		RepeatPassword: "StrongPass123",
	}
	if _, _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	in.Email = "other@mail.com"
	_, _, err := svc.Signup(context.Background(), in)
	if !apperrors.IsCode(err, apperrors.CodeInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Fields["username"] == "" {
		t.Fatalf("expected a field-level username message, got %v", err)
	}
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, _, err := svc.Signup(context.Background(), SignupInput{
		Username:       "john",
		Email:          "john@mail.com",
		Password:       "StrongPass123",
		RepeatPassword: "StrongPass123",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := svc.Signin(context.Background(), "john", "WrongPass123"); !apperrors.IsCode(err, apperrors.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated for wrong password, got %v", err)
	}
	if _, err := svc.Signin(context.Background(), "ghost", "StrongPass123"); !apperrors.IsCode(err, apperrors.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated for unknown user, got %v", err)
	}
}

func TestRefreshAndLogout(t *testing.T) {
	svc, _, blacklist := newTestAuthService()

	_, pair, err := svc.Signup(context.Background(), SignupInput{
		Username:       "john",
		Email:          "john@mail.com",
		Password:       "StrongPass123",
		RepeatPassword: "StrongPass123",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access == "" {
		t.Fatal("refresh must return a new access token")
	}

	// 注销后刷新必须失败
	svc.Logout(context.Background(), pair.Refresh)
	if len(blacklist.revoked) != 1 {
		t.Fatalf("expected one blacklisted jti, got %d", len(blacklist.revoked))
	}
	if _, err := svc.Refresh(context.Background(), pair.Refresh); !apperrors.IsCode(err, apperrors.CodeUnauthenticated) {
		t.Fatalf("expected revoked refresh token to be rejected, got %v", err)
	}
}

func TestLogoutSwallowsInvalidToken(t *testing.T) {
	svc, _, blacklist := newTestAuthService()

	// 不应 panic，也不应写入黑名单
	svc.Logout(context.Background(), "not-a-token")
	if len(blacklist.revoked) != 0 {
		t.Fatalf("invalid token must not be blacklisted, got %d entries", len(blacklist.revoked))
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, pair, err := svc.Signup(context.Background(), SignupInput{
		Username:       "john",
		Email:          "john@mail.com",
		Password:       "StrongPass123",
		RepeatPassword: "StrongPass123",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.Access); !apperrors.IsCode(err, apperrors.CodeUnauthenticated) {
		t.Fatalf("access token must not be usable for refresh, got %v", err)
	}
}
