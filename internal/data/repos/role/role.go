package role

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type RoleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, role *domain.Role) (*domain.Role, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Role, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*domain.Role, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.Role, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type roleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	repoLog := baseLog.With("repo", "RoleRepo")
	return &roleRepo{db: db, log: repoLog}
}

func (rr *roleRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *roleRepo) Create(ctx context.Context, tx *gorm.DB, role *domain.Role) (*domain.Role, error) {
	if err := rr.conn(tx).WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (rr *roleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Role, error) {
	var result domain.Role
	err := rr.conn(tx).WithContext(ctx).First(&result, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *roleRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*domain.Role, error) {
	var result domain.Role
	err := rr.conn(tx).WithContext(ctx).First(&result, "role_name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *roleRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	var count int64
	if err := rr.conn(tx).WithContext(ctx).
		Model(&domain.Role{}).
		Where("role_name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (rr *roleRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*domain.Role, error) {
	var results []*domain.Role
	if err := rr.conn(tx).WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *roleRepo) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error {
	return rr.conn(tx).WithContext(ctx).
		Model(&domain.Role{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (rr *roleRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := rr.conn(tx).WithContext(ctx).Delete(&domain.Role{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
