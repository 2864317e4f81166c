package domain

import (
	"time"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName     string     `gorm:"size:200" json:"full_name"`
	PasswordHash string     `gorm:"size:255;not null;column:hashed_password" json:"-"`
	RoleID       *uint      `gorm:"index" json:"role_id"`
	Role         *Role      `gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login" json:"last_login"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// HasRead and friends treat a missing role as no grants at all.
func (u *User) HasRead() bool {
	return u != nil && u.Role != nil && u.Role.Permissions.CanRead
}

func (u *User) HasWrite() bool {
	return u != nil && u.Role != nil && u.Role.Permissions.CanWrite
}

func (u *User) HasDelete() bool {
	return u != nil && u.Role != nil && u.Role.Permissions.CanDelete
}

func (u *User) HasAdmin() bool {
	return u != nil && u.Role != nil && u.Role.Permissions.CanAdmin
}

func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}
