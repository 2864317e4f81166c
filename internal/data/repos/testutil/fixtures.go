package testutil

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
)

// HashPassword uses the minimum bcrypt cost; test fixtures do not need
// production work factors.
func HashPassword(tb testing.TB, password string) string {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func SeedRole(tb testing.TB, tx *gorm.DB, name string, perms domain.Permissions) *domain.Role {
	tb.Helper()
	role := &domain.Role{
		Name:        name,
		Description: "seeded for test",
		Permissions: perms,
	}
	if err := tx.Create(role).Error; err != nil {
		tb.Fatalf("seed role %q: %v", name, err)
	}
	return role
}

func SeedUser(tb testing.TB, tx *gorm.DB, username, password string, roleID *uint) *domain.User {
	tb.Helper()
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test " + username,
		PasswordHash: HashPassword(tb, password),
		RoleID:       roleID,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		tb.Fatalf("seed user %q: %v", username, err)
	}
	return user
}

func SeedProductType(tb testing.TB, tx *gorm.DB, code string) *domain.ProductType {
	tb.Helper()
	pt := &domain.ProductType{
		TypeCode:      code,
		TypeName:      "Hot-rolled sheet " + code,
		Standard:      "GOST 19903-2015",
		MaterialGrade: "S235JR",
	}
	if err := tx.Create(pt).Error; err != nil {
		tb.Fatalf("seed product type %q: %v", code, err)
	}
	return pt
}

func SeedBatch(tb testing.TB, tx *gorm.DB, number string, productTypeID uint) *domain.ProductionBatch {
	tb.Helper()
	b := &domain.ProductionBatch{
		BatchNumber:    number,
		ProductTypeID:  productTypeID,
		ProductionDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:         domain.BatchStatusInProduction,
	}
	if err := tx.Create(b).Error; err != nil {
		tb.Fatalf("seed batch %q: %v", number, err)
	}
	return b
}
