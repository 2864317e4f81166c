package services

import (
	"context"
	"testing"
	"time"

	userrepo "github.com/yungbote/metalqc-backend/internal/data/repos/user"
	"github.com/yungbote/metalqc-backend/internal/data/repos/testutil"
	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
)

func newAuthForTest(t *testing.T, ttl time.Duration) (AuthService, userrepo.UserRepo, *testDeps) {
	t.Helper()
	deps := newTestDeps(t)
	repo := userrepo.NewUserRepo(deps.tx, deps.log)
	svc := NewAuthService(deps.tx, deps.log, repo, "unit-test-secret", ttl)
	return svc, repo, deps
}

func TestAuthTokenRoundTrip(t *testing.T) {
	svc, _, deps := newAuthForTest(t, 30*time.Minute)
	ctx := context.Background()

	role := testutil.SeedRole(t, deps.tx, "operator", domain.Permissions{CanRead: true, CanWrite: true})
	testutil.SeedUser(t, deps.tx, "alice", "s3cret", &role.ID)

	token, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %q", claims.Subject)
	}
	if claims.Role != "operator" {
		t.Fatalf("expected role operator, got %q", claims.Role)
	}

	user, err := svc.ResolveUser(ctx, claims)
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected alice, got %q", user.Username)
	}
	if user.LastLoginAt == nil {
		t.Fatal("expected last_login stamped by Login")
	}
}

func TestAuthWrongPassword(t *testing.T) {
	svc, _, deps := newAuthForTest(t, 30*time.Minute)

	testutil.SeedUser(t, deps.tx, "bob", "rightpw", nil)

	_, err := svc.Login(context.Background(), "bob", "wrongpw")
	assertStatus(t, err, 401)

	_, err = svc.Login(context.Background(), "nobody", "whatever")
	assertStatus(t, err, 401)
}

func TestAuthInactiveUser(t *testing.T) {
	svc, _, deps := newAuthForTest(t, 30*time.Minute)
	ctx := context.Background()

	u := testutil.SeedUser(t, deps.tx, "carol", "pw", nil)
	if err := deps.tx.Model(&domain.User{}).Where("id = ?", u.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := svc.Login(ctx, "carol", "pw")
	assertStatus(t, err, 401)
}

func TestAuthExpiredToken(t *testing.T) {
	svc, _, deps := newAuthForTest(t, -1*time.Minute)

	testutil.SeedUser(t, deps.tx, "dave", "pw", nil)
	token, err := svc.Login(context.Background(), "dave", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = svc.VerifyToken(token)
	assertStatus(t, err, 401)
}

func TestAuthTamperedToken(t *testing.T) {
	svc, _, deps := newAuthForTest(t, 30*time.Minute)

	testutil.SeedUser(t, deps.tx, "erin", "pw", nil)
	token, err := svc.Login(context.Background(), "erin", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.VerifyToken(tampered)
	assertStatus(t, err, 401)

	_, err = svc.VerifyToken("not.a.token")
	assertStatus(t, err, 401)
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	if got := apierr.From(err).Status; got != want {
		t.Fatalf("expected status %d, got %d (%v)", want, got, err)
	}
}
