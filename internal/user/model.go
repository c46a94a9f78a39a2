// File: internal/user/model.go
package user

import (
	"time"

	"habitalink_backend/internal/common"

	"github.com/google/uuid"
)

// Account types a user can register with.
const (
	AccountParticular   = "Particular"
	AccountProfessional = "Profesional"
)

// User represents the user model in the database.
type User struct {
	common.BaseModel
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	FirstName    string     `gorm:"type:varchar(100)"`
	LastName     string     `gorm:"type:varchar(100)"`
	Phone        string     `gorm:"type:varchar(30)"`
	AccountType  string     `gorm:"type:varchar(50);not null;default:'Particular'"`
	Role         string     `gorm:"type:varchar(50);not null;default:'user'"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Sanitize removes sensitive information like the password hash.
func (u *User) Sanitize() {
	u.PasswordHash = ""
}

// --- DTOs for API requests/responses ---

// RegisterRequest defines the structure for registering a new user.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"` // bcrypt max is 72 bytes
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	Phone       string `json:"phone,omitempty" binding:"omitempty,max=30"`
	AccountType string `json:"account_type,omitempty"`
}

// LoginRequest defines the structure for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	AccountType string     `json:"account_type"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse bundles the authenticated user with a session token.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		AccountType: u.AccountType,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
