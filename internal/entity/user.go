package entity

import "time"

const (
	UserRoleAdmin      = "admin"
	UserRoleStoreOwner = "store_owner"
	UserRoleNormalUser = "normal_user"
)

// DbUser represents a persisted user account. Emails are stored lowercased so
// the unique index enforces case-insensitive uniqueness.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Address      string    `gorm:"column:address;type:varchar(500)" json:"address"`
	Role         string    `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// UserSummary is a lightweight user description returned to clients.
type UserSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserQuery supports listing users with filters and pagination.
type UserQuery struct {
	BaseParams
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Address string `json:"address" form:"address"`
	Role    string `json:"role" form:"role"`
}

type AuthRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address"`
}

type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    UserSummary `json:"user"`
}

type UserCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"required"`
}

type UserListResponse struct {
	Success bool          `json:"success"`
	Total   int64         `json:"total"`
	Count   int           `json:"count"`
	Page    int           `json:"page"`
	PerPage int           `json:"perPage"`
	Users   []UserSummary `json:"users"`
}

// UserDetail is the admin view of a single user. Store is present only for
// store owners and carries the store's rating aggregate.
type UserDetail struct {
	UserSummary
	Store *OwnedStore `json:"store,omitempty"`
}

type OwnedStore struct {
	StoreSummary
	Stats RatingStats `json:"stats"`
}
