package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.User, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error
	UpdateLastLogin(ctx context.Context, tx *gorm.DB, id uint) error
	ClearRole(ctx context.Context, tx *gorm.DB, roleID uint) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ur.db
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *domain.User) (*domain.User, error) {
	if err := ur.conn(tx).WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.User, error) {
	var result domain.User
	err := ur.conn(tx).WithContext(ctx).
		Preload("Role").
		First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.User, error) {
	var result domain.User
	err := ur.conn(tx).WithContext(ctx).
		Preload("Role").
		First(&result, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	var count int64
	if err := ur.conn(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	if err := ur.conn(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.User, error) {
	var results []*domain.User
	if err := ur.conn(tx).WithContext(ctx).
		Preload("Role").
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error {
	return ur.conn(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (ur *userRepo) UpdateLastLogin(ctx context.Context, tx *gorm.DB, id uint) error {
	return ur.conn(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// ClearRole nulls the role reference on every user of the role. Role
// deletion must never cascade into user rows.
func (ur *userRepo) ClearRole(ctx context.Context, tx *gorm.DB, roleID uint) error {
	return ur.conn(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("role_id = ?", roleID).
		Update("role_id", nil).Error
}

func (ur *userRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := ur.conn(tx).WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
