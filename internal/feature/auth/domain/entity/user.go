// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Roles stored in the tipo column.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered customer or administrator.
// Columns keep the Portuguese names of the usuarios table.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"column:nome;size:255;not null"`

	// Email is the login key and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt digest, never the raw secret.
	Password string `gorm:"column:senha;size:255;not null"`

	Neighborhood string `gorm:"column:bairro;size:255"`
	Street       string `gorm:"column:rua;size:255"`
	Reference    string `gorm:"column:referencia;size:255"`

	// Role is RoleAdmin or RoleUser.
	Role string `gorm:"column:tipo;size:10;not null;default:'user'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName maps User to the usuarios table.
func (User) TableName() string {
	return "usuarios"
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
