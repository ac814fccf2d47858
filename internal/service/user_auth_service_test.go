package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kahve-next/internal/config"
	"github.com/kahve-next/internal/models"
	"github.com/kahve-next/internal/repository"
	"github.com/kahve-next/internal/session"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakeUserRepo struct {
	byID map[string]*models.UserProfile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*models.UserProfile)}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.UserProfile, error) {
	for _, user := range r.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.UserProfile, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.UserProfile) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	r.byID[user.ID.Hex()] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.UserProfile) error {
	clone := *user
	r.byID[user.ID.Hex()] = &clone
	return nil
}

func (r *fakeUserRepo) EnsureIndexes(_ context.Context) error { return nil }

func newAuthTestConfig() *config.Config {
	return &config.Config{
		UserJWT: config.JWTConfig{
			SecretKey:             "unit-test-secret-key-0123456789abcdef",
			ExpireHours:           1,
			RememberMeExpireHours: 24,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserAuthService(newAuthTestConfig(), repo, session.NewManager())
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, " Ayse@Example.com ", "Sifre1234", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "ayse@example.com" {
		t.Fatalf("email want ayse@example.com got %s", user.Email)
	}
	if user.DisplayName != "ayse" {
		t.Fatalf("display name should fall back to email local part, got %s", user.DisplayName)
	}
	if token == "" {
		t.Fatalf("register should issue a token")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.OwnerID() {
		t.Fatalf("claims user id want %s got %s", user.OwnerID(), claims.UserID)
	}

	logged, _, _, err := svc.Login(ctx, "ayse@example.com", "Sifre1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("login should record last_login_at")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserAuthService(newAuthTestConfig(), repo, session.NewManager())
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "mehmet@example.com", "Sifre1234", "Mehmet"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, _, err := svc.Register(ctx, "MEHMET@example.com", "Sifre1234", "")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserAuthService(newAuthTestConfig(), repo, session.NewManager())

	_, _, _, err := svc.Register(context.Background(), "zeynep@example.com", "kisa", "")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password want ErrWeakPassword got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserAuthService(newAuthTestConfig(), repo, session.NewManager())
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "ali@example.com", "Sifre1234", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, _, _, err := svc.Login(ctx, "ali@example.com", "YanlisSifre1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserAuthService(newAuthTestConfig(), repo, session.NewManager())
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "deniz@example.com", "Sifre1234", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	user.Status = "disabled"
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	_, _, _, err = svc.Login(ctx, "deniz@example.com", "Sifre1234")
	if !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("disabled user want ErrUserDisabled got %v", err)
	}
}

func TestLogoutInvalidatesTokenVersionAndDropsSession(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := session.NewManager()
	svc := NewUserAuthService(newAuthTestConfig(), repo, sessions)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "ozan@example.com", "Sifre1234", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	ownerID := user.OwnerID()
	sessions.Get(ownerID).Replace(nil, nil)

	if err := svc.Logout(ctx, ownerID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	after, err := repo.GetByID(ctx, ownerID)
	if err != nil {
		t.Fatalf("get after logout failed: %v", err)
	}
	if after.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", user.TokenVersion+1, after.TokenVersion)
	}
}
