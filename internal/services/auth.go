package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/yungbote/metalqc-backend/internal/data/repos/user"
	"github.com/yungbote/metalqc-backend/internal/domain"
	"github.com/yungbote/metalqc-backend/internal/platform/apierr"
	"github.com/yungbote/metalqc-backend/internal/platform/logger"
)

// Claims is the verified content of a bearer token. Subject carries the
// username; expired or tampered tokens never produce Claims.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Authenticate checks username+password against the credential store.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// Login authenticates, stamps last_login and issues an access token.
	Login(ctx context.Context, username, password string) (string, error)
	IssueToken(user *domain.User) (string, error)
	VerifyToken(tokenString string) (*Claims, error)
	// ResolveUser loads the current user (with role) named by the claims.
	ResolveUser(ctx context.Context, claims *Claims) (*domain.User, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     userrepo.UserRepo
	jwtSecretKey []byte
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo userrepo.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		accessTTL:    accessTTL,
	}
}

func (as *authService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.Unauthenticated("incorrect username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apierr.Unauthenticated("incorrect username or password")
	}
	if !user.IsActive {
		return nil, apierr.Unauthenticated("inactive user")
	}
	return user, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := as.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if err := as.userRepo.UpdateLastLogin(ctx, nil, user.ID); err != nil {
		as.log.Warn("failed to stamp last_login", "user_id", user.ID, "error", err)
	}
	return as.IssueToken(user)
}

func (as *authService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.RoleName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.jwtSecretKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (as *authService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierr.Unauthenticated("unexpected signing method %v", t.Header["alg"])
		}
		return as.jwtSecretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, apierr.Unauthenticated("could not validate credentials")
	}
	if claims.Subject == "" {
		return nil, apierr.Unauthenticated("could not validate credentials")
	}
	return claims, nil
}

func (as *authService) ResolveUser(ctx context.Context, claims *Claims) (*domain.User, error) {
	user, err := as.userRepo.GetByUsername(ctx, nil, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.Unauthenticated("could not validate credentials")
	}
	if !user.IsActive {
		return nil, apierr.Unauthenticated("inactive user")
	}
	return user, nil
}
