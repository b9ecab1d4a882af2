package models

import "time"

// Role gates which routes a user may call.
type Role string

const (
	RoleOwner       Role = "owner"
	RoleCafeManager Role = "cafe_manager"
	RoleCashier     Role = "cashier"
)

// User is a staff member who records sales.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      Role      `gorm:"size:20;not null;default:'cashier'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsOwner() bool   { return u.Role == RoleOwner }
func (u *User) IsManager() bool { return u.Role == RoleCafeManager }
func (u *User) IsCashier() bool { return u.Role == RoleCashier }

// HasManagerAccess reports whether the user may manage catalog, purchases
// and expenses.
func (u *User) HasManagerAccess() bool {
	return HasManagerAccess(u.Role)
}

// HasManagerAccess is true for owners and cafe managers.
func HasManagerAccess(r Role) bool {
	return r == RoleOwner || r == RoleCafeManager
}

// LoginRequest is the payload of POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
