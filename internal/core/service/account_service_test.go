package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/evolfitness/booking-system/internal/core/domain"
	"github.com/evolfitness/booking-system/internal/core/ports"
)

type stubAccountRepo struct {
	users map[string]*domain.User // keyed by id
	seq   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return cloneUser(created), nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAccountRepo) ResolveUsernames(_ context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			names[id] = u.Username
		}
	}
	return names, nil
}

func (r *stubAccountRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubAccountRepo) FindRecent(_ context.Context, limit int) ([]*domain.User, error) {
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func TestAccountService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour, zerolog.Nop())

	id, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:  "ana",
		FirstName: "Ana",
		LastName:  "Perez",
		Password:  "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected non-empty id")
	}

	stored := repo.users[id]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.IsAdmin {
		t.Fatalf("new accounts must not be admin")
	}
	if stored.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", stored.Role)
	}
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "", Password: "x"}); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "ana", Password: ""}); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials for empty password, got %v", err)
	}
	// A whitespace-only username is treated as empty.
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "   ", Password: "x"}); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials for blank username, got %v", err)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pass"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "otra"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carla", Password: "s3cret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carla", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carla" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["rol"] != domain.RoleUser {
		t.Fatalf("expected role %s, got %v", domain.RoleUser, claims["rol"])
	}
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour, zerolog.Nop())

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "dani", Password: "buena"})
	if _, _, err := svc.Login(context.Background(), "dani", "mala"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_UnknownUser(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour, zerolog.Nop())

	// Unknown usernames map to the same error as a wrong password so the
	// response does not reveal which part failed.
	if _, _, err := svc.Login(context.Background(), "fantasma", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Overview(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour, zerolog.Nop())

	for i := 0; i < 7; i++ {
		if _, err := svc.Register(context.Background(), ports.RegisterInput{
			Username: fmt.Sprintf("user%d", i),
			Password: "pass",
		}); err != nil {
			t.Fatalf("register %d failed: %v", i, err)
		}
	}

	count, recent, err := svc.Overview(context.Background(), 5)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected count 7, got %d", count)
	}
	if len(recent) != 5 {
		t.Fatalf("expected 5 recent users, got %d", len(recent))
	}
}
