package models

import "github.com/google/uuid"

type User struct {
	Base
	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organization_id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `json:"-"` // empty for federated-only accounts
	GoogleID       string    `gorm:"index" json:"-"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Role           string    `gorm:"default:'owner'" json:"role"` // owner, admin, member

	// Relationships
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
