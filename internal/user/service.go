// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"habitalink_backend/internal/common"
	"habitalink_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service defines user and credential operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, cfg: cfg, logger: logger.Named("UserService")}
}

// Register creates a new account with a bcrypt password hash. Emails are
// normalized to lower case so login lookups always match.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		AccountType:  normalizeAccountType(req.AccountType),
		Role:         common.RoleUser,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}
	s.logger.Info("User registered",
		zap.String("userID", newUser.ID.String()),
		zap.String("accountType", newUser.AccountType))
	return newUser, nil
}

// Login verifies credentials and issues a signed session token. The
// last-login timestamp is touched best effort.
func (s *ServiceImplementation) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return nil, "", common.ErrUnauthorized.WithDetails("Invalid email or password.")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", common.ErrUnauthorized.WithDetails("Invalid email or password.")
	}

	token, err := s.generateToken(u)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	if err := s.repo.TouchLastLogin(ctx, u.ID, now); err != nil {
		s.logger.Warn("Failed to record last login", zap.String("userID", u.ID.String()), zap.Error(err))
	} else {
		u.LastLoginAt = &now
	}

	return u, token, nil
}

// GetByID fetches a user by identifier.
func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) generateToken(u *User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": u.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", errors.New("failed to sign session token")
	}
	return signed, nil
}

// normalizeAccountType maps free-form input to one of the two known account
// types, defaulting to Particular for anything unrecognized.
func normalizeAccountType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "profesional", "professional":
		return AccountProfessional
	default:
		return AccountParticular
	}
}
