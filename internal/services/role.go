package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	rolerepo "github.com/yungbote/metalqc-backend/internal/data/repos/role"
	userrepo "github.com/yungbote/metalqc-backend/internal/data/repos/user"
	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type CreateRoleInput struct {
	Name        string              `json:"role_name" binding:"required"`
	Description string              `json:"description"`
	Permissions *domain.Permissions `json:"permissions"`
}

type UpdateRoleInput struct {
	Name        *string             `json:"role_name"`
	Description *string             `json:"description"`
	Permissions *domain.Permissions `json:"permissions"`
}

type RoleService interface {
	Create(ctx context.Context, input CreateRoleInput) (*domain.Role, error)
	Get(ctx context.Context, id uint) (*domain.Role, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Role, error)
	Update(ctx context.Context, id uint, input UpdateRoleInput) (*domain.Role, error)
	Delete(ctx context.Context, id uint) error
}

type roleService struct {
	db       *gorm.DB
	log      *logger.Logger
	roleRepo rolerepo.RoleRepo
	userRepo userrepo.UserRepo
}

func NewRoleService(db *gorm.DB, baseLog *logger.Logger, roleRepo rolerepo.RoleRepo, userRepo userrepo.UserRepo) RoleService {
	serviceLog := baseLog.With("service", "RoleService")
	return &roleService{db: db, log: serviceLog, roleRepo: roleRepo, userRepo: userRepo}
}

func (rs *roleService) Create(ctx context.Context, input CreateRoleInput) (*domain.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierr.Validation("role_name is required")
	}

	perms := domain.DefaultPermissions()
	if input.Permissions != nil {
		perms = *input.Permissions
	}
	role := &domain.Role{
		Name:        name,
		Description: input.Description,
		Permissions: perms,
	}

	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := rs.roleRepo.NameExists(ctx, tx, name)
		if err != nil {
			return err
		}
		if taken {
			return apierr.Conflict("role name already exists")
		}
		_, err = rs.roleRepo.Create(ctx, tx, role)
		return err
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (rs *roleService) Get(ctx context.Context, id uint) (*domain.Role, error) {
	role, err := rs.roleRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apierr.NotFound("role not found")
	}
	return role, nil
}

func (rs *roleService) List(ctx context.Context, skip, limit int) ([]*domain.Role, error) {
	return rs.roleRepo.List(ctx, nil, skip, limit)
}

func (rs *roleService) Update(ctx context.Context, id uint, input UpdateRoleInput) (*domain.Role, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["role_name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Permissions != nil {
		updates["can_read"] = input.Permissions.CanRead
		updates["can_write"] = input.Permissions.CanWrite
		updates["can_delete"] = input.Permissions.CanDelete
		updates["can_admin"] = input.Permissions.CanAdmin
	}

	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := rs.roleRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("role not found")
		}
		if name, ok := updates["role_name"].(string); ok && name != existing.Name {
			taken, err := rs.roleRepo.NameExists(ctx, tx, name)
			if err != nil {
				return err
			}
			if taken {
				return apierr.Conflict("role name already exists")
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return rs.roleRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		return nil, err
	}
	return rs.Get(ctx, id)
}

// Delete removes the role and clears the reference on its users; it never
// cascades into user rows.
func (rs *roleService) Delete(ctx context.Context, id uint) error {
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.userRepo.ClearRole(ctx, tx, id); err != nil {
			return err
		}
		deleted, err := rs.roleRepo.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apierr.NotFound("role not found")
		}
		return nil
	})
}
