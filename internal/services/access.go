package services

import (
	"github.com/yungbote/metalqc-backend/internal/domain"
)

// Access policy: each action is declared once here instead of being
// re-derived inside every handler. All checks are pure functions of the
// user's current role.

// RoleQualityManager may edit the product-type and defect-type catalogs
// without holding the admin permission.
const RoleQualityManager = "quality_manager"

func CanManageUsers(u *domain.User) bool { return u.HasAdmin() }

// CanViewUser allows reading your own profile; anyone else's needs admin.
func CanViewUser(u *domain.User, targetID uint) bool {
	return (u != nil && u.ID == targetID) || u.HasAdmin()
}

func CanModifyUser(u *domain.User, targetID uint) bool {
	return (u != nil && u.ID == targetID) || u.HasAdmin()
}

func CanDeleteUsers(u *domain.User) bool { return u.HasAdmin() }

func CanManageRoles(u *domain.User) bool { return u.HasAdmin() }

func CanEditProductTypes(u *domain.User) bool {
	return u.HasAdmin() || u.RoleName() == RoleQualityManager
}

func CanDeleteProductTypes(u *domain.User) bool { return u.HasAdmin() }

func CanEditDefectTypes(u *domain.User) bool {
	return u.HasAdmin() || u.RoleName() == RoleQualityManager
}

func CanDeleteDefectTypes(u *domain.User) bool { return u.HasAdmin() }

func CanEditInspectionPoints(u *domain.User) bool {
	return u.HasAdmin() || u.RoleName() == RoleQualityManager
}

func CanDeleteInspectionPoints(u *domain.User) bool { return u.HasAdmin() }

func CanWriteBatches(u *domain.User) bool { return u.HasWrite() || u.HasAdmin() }

func CanDeleteBatches(u *domain.User) bool { return u.HasDelete() }

func CanWriteInspections(u *domain.User) bool { return u.HasWrite() || u.HasAdmin() }

func CanDeleteInspections(u *domain.User) bool { return u.HasDelete() }
