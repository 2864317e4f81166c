package services

import (
	"context"
	"testing"

	"github.com/yungbote/metalqc-backend/internal/data/repos/testutil"
	"github.com/yungbote/metalqc-backend/internal/domain"
)

func TestUserServiceCreateAndDuplicates(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	created, err := deps.users.Create(ctx, CreateUserInput{
		Username: "henry",
		Email:    "Henry@Example.com",
		Password: "pw123456",
		FullName: "Henry Ford",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Email != "henry@example.com" {
		t.Fatalf("expected lowercased email, got %q", created.Email)
	}
	if !created.IsActive {
		t.Fatal("expected new user to be active")
	}
	if created.PasswordHash == "pw123456" {
		t.Fatal("password stored in the clear")
	}

	_, err = deps.users.Create(ctx, CreateUserInput{
		Username: "henry",
		Email:    "other@example.com",
		Password: "pw123456",
	})
	assertStatus(t, err, 400)

	_, err = deps.users.Create(ctx, CreateUserInput{
		Username: "henry2",
		Email:    "henry@example.com",
		Password: "pw123456",
	})
	assertStatus(t, err, 400)
}

func TestUserServiceCreateUnknownRole(t *testing.T) {
	deps := newTestDeps(t)

	missing := uint(424242)
	_, err := deps.users.Create(context.Background(), CreateUserInput{
		Username: "iris",
		Email:    "iris@example.com",
		Password: "pw123456",
		RoleID:   &missing,
	})
	assertStatus(t, err, 400)
}

func TestUserServicePartialUpdate(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	seeded := testutil.SeedUser(t, deps.tx, "jack", "pw", nil)

	newName := "Jack Sparrow"
	updated, err := deps.users.Update(ctx, seeded.ID, UpdateUserInput{FullName: &newName})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FullName != newName {
		t.Fatalf("expected full name updated, got %q", updated.FullName)
	}
	// Untouched fields survive.
	if updated.Email != seeded.Email {
		t.Fatalf("email changed unexpectedly: %q -> %q", seeded.Email, updated.Email)
	}
	if updated.Username != "jack" {
		t.Fatalf("username changed unexpectedly: %q", updated.Username)
	}
}

func TestUserServiceUpdatePassword(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	seeded := testutil.SeedUser(t, deps.tx, "kate", "oldpw", nil)

	newPw := "newpw9876"
	if _, err := deps.users.Update(ctx, seeded.ID, UpdateUserInput{Password: &newPw}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := deps.users.Get(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PasswordHash == seeded.PasswordHash {
		t.Fatal("expected password hash to change")
	}
}

func TestUserServiceUpdateMissing(t *testing.T) {
	deps := newTestDeps(t)

	name := "x"
	_, err := deps.users.Update(context.Background(), 999999, UpdateUserInput{FullName: &name})
	assertStatus(t, err, 404)
}

func TestUserServiceDelete(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	seeded := testutil.SeedUser(t, deps.tx, "liam", "pw", nil)
	if err := deps.users.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := deps.users.Get(ctx, seeded.ID)
	assertStatus(t, err, 404)

	err = deps.users.Delete(ctx, seeded.ID)
	assertStatus(t, err, 404)
}

func TestRoleServiceDeleteClearsUsers(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	role := testutil.SeedRole(t, deps.tx, "temp_role", domain.Permissions{CanRead: true})
	u := testutil.SeedUser(t, deps.tx, "mona", "pw", &role.ID)

	if err := deps.roles.Delete(ctx, role.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := deps.users.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get user: %v", err)
	}
	if got.RoleID != nil {
		t.Fatalf("expected role reference cleared, got %v", *got.RoleID)
	}
	if !got.IsActive {
		t.Fatal("role delete must not deactivate users")
	}

	_, err = deps.roles.Get(ctx, role.ID)
	assertStatus(t, err, 404)
}

func TestRoleServiceDuplicateName(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	if _, err := deps.roles.Create(ctx, CreateRoleInput{Name: "shift_lead"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := deps.roles.Create(ctx, CreateRoleInput{Name: "shift_lead"})
	assertStatus(t, err, 400)
}

func TestRoleServiceDefaultPermissions(t *testing.T) {
	deps := newTestDeps(t)

	role, err := deps.roles.Create(context.Background(), CreateRoleInput{Name: "viewer"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !role.Permissions.CanRead {
		t.Fatal("expected read granted by default")
	}
	if role.Permissions.CanWrite || role.Permissions.CanDelete || role.Permissions.CanAdmin {
		t.Fatalf("expected only read by default, got %+v", role.Permissions)
	}
}
