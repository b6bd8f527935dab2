package services

import (
	"context"
	"testing"
	"time"

	"creatorhub/internal/apperrors"
	"creatorhub/internal/models"
)

func newUserFixture() (*UserService, *fakeUserStore) {
	users := newFakeUserStore()
	svc := NewUserService(users, "test-secret", time.Hour)
	return svc, users
}

func TestRegister(t *testing.T) {
	svc, _ := newUserFixture()

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
		Role:     models.RoleCreator,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("registered user should have an id")
	}
	if token == "" {
		t.Fatalf("registration should return a token")
	}
	if user.Password == "hunter22" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserFixture()

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"short username", RegisterInput{Username: "al", Email: "a@b.com", Password: "hunter22", Role: "creator"}},
		{"whitespace username", RegisterInput{Username: "  a  ", Email: "a@b.com", Password: "hunter22", Role: "creator"}},
		{"short password", RegisterInput{Username: "alice", Email: "a@b.com", Password: "pw", Role: "creator"}},
		{"bad role", RegisterInput{Username: "alice", Email: "a@b.com", Password: "hunter22", Role: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Register(context.Background(), tt.in); !apperrors.Is(err, apperrors.KindValidation) {
				t.Fatalf("got %v, want validation error", err)
			}
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newUserFixture()

	in := RegisterInput{Username: "alice", Email: "alice@example.com", Password: "hunter22", Role: "creator"}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	dup := in
	dup.Username = "alice2"
	if _, _, err := svc.Register(context.Background(), dup); !apperrors.Is(err, apperrors.KindConflict) {
		t.Fatalf("got %v, want conflict on duplicate email", err)
	}

	dup = in
	dup.Email = "other@example.com"
	if _, _, err := svc.Register(context.Background(), dup); !apperrors.Is(err, apperrors.KindConflict) {
		t.Fatalf("got %v, want conflict on duplicate username", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newUserFixture()

	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
		Role:     "subscriber",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, token, err := svc.Login(context.Background(), "alice@example.com", "hunter22"); err != nil || token == "" {
		t.Fatalf("Login: %v token=%q", err, token)
	}

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !apperrors.Is(err, apperrors.KindUnauthorized) {
		t.Fatalf("got %v, want unauthorized on wrong password", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "hunter22"); !apperrors.Is(err, apperrors.KindUnauthorized) {
		t.Fatalf("got %v, want unauthorized on unknown email", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, users := newUserFixture()

	alice := users.add(models.User{Username: "alice", Email: "alice@example.com", Role: "creator"})
	users.add(models.User{Username: "bob", Email: "bob@example.com", Role: "creator"})

	bio := "painting daily"
	updated, err := svc.UpdateProfile(context.Background(), alice.ID, UpdateProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Bio != bio {
		t.Fatalf("got bio %q, want %q", updated.Bio, bio)
	}
	if updated.Username != "alice" {
		t.Fatalf("absent fields must stay untouched")
	}

	taken := "bob"
	if _, err := svc.UpdateProfile(context.Background(), alice.ID, UpdateProfileInput{Username: &taken}); !apperrors.Is(err, apperrors.KindConflict) {
		t.Fatalf("got %v, want conflict on taken username", err)
	}
}

func TestConnectWallet(t *testing.T) {
	svc, users := newUserFixture()
	alice := users.add(models.User{Username: "alice", Email: "alice@example.com", Role: "creator"})

	const addr = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	user, err := svc.ConnectWallet(context.Background(), alice.ID, addr)
	if err != nil {
		t.Fatalf("ConnectWallet: %v", err)
	}
	if user.WalletAddress != addr {
		t.Fatalf("got wallet %q, want %q", user.WalletAddress, addr)
	}

	if _, err := svc.ConnectWallet(context.Background(), alice.ID, "not-an-address"); !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("got %v, want validation error", err)
	}

	// Rebinding to a different address is allowed.
	const other = "0x00000000219ab540356cBB839Cbe05303d7705Fa"
	user, err = svc.ConnectWallet(context.Background(), alice.ID, other)
	if err != nil {
		t.Fatalf("rebind: %v", err)
	}
	if user.WalletAddress != other {
		t.Fatalf("got wallet %q, want %q", user.WalletAddress, other)
	}
}
