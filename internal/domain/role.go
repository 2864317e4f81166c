package domain

import (
	"time"
)

// Permissions is the fixed capability set attached to a role. Typed
// accessors on User are the only way checks read these flags, so a
// misspelled permission is a compile error rather than a silent deny.
type Permissions struct {
	CanRead   bool `gorm:"not null;default:true;column:can_read" json:"read"`
	CanWrite  bool `gorm:"not null;default:false;column:can_write" json:"write"`
	CanDelete bool `gorm:"not null;default:false;column:can_delete" json:"delete"`
	CanAdmin  bool `gorm:"not null;default:false;column:can_admin" json:"admin"`
}

type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"uniqueIndex;size:50;not null;column:role_name" json:"role_name"`
	Description string      `gorm:"type:text" json:"description"`
	Permissions Permissions `gorm:"embedded" json:"permissions"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

// DefaultPermissions matches the role creation default: read-only.
func DefaultPermissions() Permissions {
	return Permissions{CanRead: true}
}
