package service

import (
	"errors"
	"testing"

	"heater_control/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// authRepoStub is an in-memory repository.Authorization.
type authRepoStub struct {
	users  map[string]*models.User
	nextID int
}

func newAuthRepoStub() *authRepoStub {
	return &authRepoStub{users: map[string]*models.User{}, nextID: 1}
}

func (r *authRepoStub) Create(username, hash string) (int, error) {
	id := r.nextID
	r.nextID++
	r.users[username] = &models.User{ID: id, Username: username, PasswordHash: hash}
	return id, nil
}

func (r *authRepoStub) GetByUsername(username string) (*models.User, error) {
	return r.users[username], nil
}

func TestAuthService_SignUpAndTokenRoundtrip(t *testing.T) {
	repo := newAuthRepoStub()
	svc := NewAuthService(repo, "test-signing-key")

	id, err := svc.SignUp("operator", "hunter2")
	if err != nil {
		t.Fatalf("SignUp(): %v", err)
	}
	if id != 1 {
		t.Fatalf("SignUp() id = %d, want 1", id)
	}
	// stored hash must verify, and must not be the raw password
	u := repo.users["operator"]
	if u.PasswordHash == "hunter2" {
		t.Fatalf("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	token, err := svc.GenerateToken("operator", "hunter2")
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}
	gotID, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken(): %v", err)
	}
	if gotID != 1 {
		t.Fatalf("ParseToken() id = %d, want 1", gotID)
	}
}

func TestAuthService_SignUpRejectsEmptyPassword(t *testing.T) {
	svc := NewAuthService(newAuthRepoStub(), "k")
	if _, err := svc.SignUp("operator", "   "); err == nil {
		t.Fatalf("expected error for blank password")
	}
}

func TestAuthService_GenerateTokenFailures(t *testing.T) {
	repo := newAuthRepoStub()
	svc := NewAuthService(repo, "k")
	if _, err := svc.SignUp("operator", "hunter2"); err != nil {
		t.Fatalf("SignUp(): %v", err)
	}

	if _, err := svc.GenerateToken("ghost", "hunter2"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user err = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.GenerateToken("operator", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong password err = %v, want ErrInvalidPassword", err)
	}
}

func TestAuthService_ParseTokenRejectsForeignKey(t *testing.T) {
	issuer := NewAuthService(newAuthRepoStub(), "key-a")
	verifier := NewAuthService(newAuthRepoStub(), "key-b")

	if _, err := issuer.SignUp("operator", "hunter2"); err != nil {
		t.Fatalf("SignUp(): %v", err)
	}
	token, err := issuer.GenerateToken("operator", "hunter2")
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatalf("token signed with another key must not parse")
	}
}
