package user

import (
	"context"
	"testing"

	"github.com/yungbote/metalqc-backend/internal/data/repos/testutil"
	"github.com/yungbote/metalqc-backend/internal/domain"
)

func TestUserRepoCreateAndGetByUsername(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewUserRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	role := testutil.SeedRole(t, tx, "operator", domain.Permissions{CanRead: true, CanWrite: true})
	seeded := testutil.SeedUser(t, tx, "alice", "s3cret", &role.ID)

	got, err := repo.GetByUsername(ctx, nil, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got == nil {
		t.Fatal("expected user, got nil")
	}
	if got.ID != seeded.ID {
		t.Fatalf("expected id %d, got %d", seeded.ID, got.ID)
	}
	if got.Role == nil || got.Role.Name != "operator" {
		t.Fatalf("expected preloaded role operator, got %+v", got.Role)
	}
}

func TestUserRepoGetByUsernameMissing(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewUserRepo(tx, testutil.Logger(t))

	got, err := repo.GetByUsername(context.Background(), nil, "nobody")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing user, got %+v", got)
	}
}

func TestUserRepoExistenceChecks(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewUserRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedUser(t, tx, "bob", "pw", nil)

	taken, err := repo.UsernameExists(ctx, nil, "bob")
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !taken {
		t.Fatal("expected username bob to exist")
	}
	taken, err = repo.EmailExists(ctx, nil, "bob@example.com")
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !taken {
		t.Fatal("expected email to exist")
	}
	taken, err = repo.UsernameExists(ctx, nil, "carol")
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if taken {
		t.Fatal("did not expect username carol to exist")
	}
}

func TestUserRepoUpdateLastLogin(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewUserRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	seeded := testutil.SeedUser(t, tx, "dave", "pw", nil)
	if seeded.LastLoginAt != nil {
		t.Fatal("expected nil last_login on fresh user")
	}

	if err := repo.UpdateLastLogin(ctx, nil, seeded.ID); err != nil {
		t.Fatalf("UpdateLastLogin: %v", err)
	}
	got, err := repo.GetByID(ctx, nil, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.LastLoginAt == nil {
		t.Fatal("expected last_login to be stamped")
	}
}

func TestUserRepoClearRole(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewUserRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	role := testutil.SeedRole(t, tx, "inspector", domain.Permissions{CanRead: true})
	u1 := testutil.SeedUser(t, tx, "erin", "pw", &role.ID)
	u2 := testutil.SeedUser(t, tx, "frank", "pw", &role.ID)

	if err := repo.ClearRole(ctx, nil, role.ID); err != nil {
		t.Fatalf("ClearRole: %v", err)
	}
	for _, id := range []uint{u1.ID, u2.ID} {
		got, err := repo.GetByID(ctx, nil, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.RoleID != nil {
			t.Fatalf("expected role_id cleared for user %d, got %v", id, *got.RoleID)
		}
	}
}

func TestUserRepoDelete(t *testing.T) {
	tx := testutil.Tx(t, testutil.DB(t))
	repo := NewUserRepo(tx, testutil.Logger(t))
	ctx := context.Background()

	seeded := testutil.SeedUser(t, tx, "grace", "pw", nil)

	deleted, err := repo.Delete(ctx, nil, seeded.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report a removed row")
	}
	deleted, err = repo.Delete(ctx, nil, seeded.ID)
	if err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if deleted {
		t.Fatal("expected second delete to be a no-op")
	}
}
