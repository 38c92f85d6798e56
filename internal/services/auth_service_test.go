package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"resortshare/internal/repos"
	"resortshare/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestRegisterAndLogin(t *testing.T) {
	svc := &services.AuthService{Users: repos.NewUserRepo(memdb(t))}

	u, err := svc.Register("newowner", "owner@example.test", "S3cure!pass", "New", "Owner")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != "USER" {
		t.Fatalf("registrations are always USER, got %q", u.Role)
	}
	if strings.Contains(u.Hash, "S3cure!pass") {
		t.Fatal("password stored in plaintext")
	}

	// Login by email, then by username.
	if _, err := svc.Login("sid-a", "owner@example.test", "S3cure!pass"); err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if _, err := svc.Login("sid-b", "newowner", "S3cure!pass"); err != nil {
		t.Fatalf("login by username: %v", err)
	}

	got, err := svc.CurrentUser("sid-a")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID {
		t.Fatalf("session resolves to wrong user: %+v", got)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := &services.AuthService{Users: repos.NewUserRepo(memdb(t))}

	if _, err := svc.Register("admin2", "admin@resortshare.test", "S3cure!pass", "A", "B"); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Register("admin", "fresh@example.test", "S3cure!pass", "A", "B"); !errors.Is(err, services.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := &services.AuthService{Users: repos.NewUserRepo(memdb(t))}

	if _, err := svc.Login("sid", "admin@resortshare.test", "wrongpass!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, err := svc.Login("sid", "ghost@example.test", "whatever1!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds for unknown identifier, got %v", err)
	}
}

func TestLogoutUnbindsSession(t *testing.T) {
	svc := &services.AuthService{Users: repos.NewUserRepo(memdb(t))}

	if _, err := svc.Login("sid-1", "admin@resortshare.test", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CurrentUser("sid-1"); err == nil {
		t.Fatal("logged-out session must not resolve to a user")
	}
}
