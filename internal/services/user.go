package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	rolerepo "github.com/yungbote/metalqc-backend/internal/data/repos/role"
	userrepo "github.com/yungbote/metalqc-backend/internal/data/repos/user"
	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	RoleID   *uint  `json:"role_id"`
	IsActive *bool  `json:"is_active"`
}

// UpdateUserInput patches only the supplied fields. Username is immutable.
type UpdateUserInput struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	RoleID   *uint   `json:"role_id"`
	IsActive *bool   `json:"is_active"`
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo userrepo.UserRepo
	roleRepo rolerepo.RoleRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo userrepo.UserRepo, roleRepo rolerepo.RoleRepo) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, roleRepo: roleRepo}
}

func (us *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if username == "" || email == "" || input.Password == "" {
		return nil, apierr.Validation("username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		RoleID:       input.RoleID,
		IsActive:     true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := us.userRepo.UsernameExists(ctx, tx, username)
		if err != nil {
			return err
		}
		if taken {
			return apierr.Conflict("username already registered")
		}
		taken, err = us.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return err
		}
		if taken {
			return apierr.Conflict("email already registered")
		}
		if input.RoleID != nil {
			role, err := us.roleRepo.GetByID(ctx, tx, *input.RoleID)
			if err != nil {
				return err
			}
			if role == nil {
				return apierr.Validation("role %d does not exist", *input.RoleID)
			}
		}
		_, err = us.userRepo.Create(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return us.Get(ctx, user.ID)
}

func (us *userService) Get(ctx context.Context, id uint) (*domain.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user not found")
	}
	return user, nil
}

func (us *userService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	return us.userRepo.List(ctx, nil, skip, limit)
}

func (us *userService) Update(ctx context.Context, id uint, input UpdateUserInput) (*domain.User, error) {
	updates := map[string]any{}
	if input.Email != nil {
		updates["email"] = strings.TrimSpace(strings.ToLower(*input.Email))
	}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["hashed_password"] = string(hash)
	}
	if input.RoleID != nil {
		updates["role_id"] = *input.RoleID
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := us.userRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apierr.NotFound("user not found")
		}
		if email, ok := updates["email"].(string); ok && email != existing.Email {
			taken, err := us.userRepo.EmailExists(ctx, tx, email)
			if err != nil {
				return err
			}
			if taken {
				return apierr.Conflict("email already registered")
			}
		}
		if input.RoleID != nil {
			role, err := us.roleRepo.GetByID(ctx, tx, *input.RoleID)
			if err != nil {
				return err
			}
			if role == nil {
				return apierr.Validation("role %d does not exist", *input.RoleID)
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return us.userRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		return nil, err
	}
	return us.Get(ctx, id)
}

func (us *userService) Delete(ctx context.Context, id uint) error {
	deleted, err := us.userRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apierr.NotFound("user not found")
	}
	return nil
}
