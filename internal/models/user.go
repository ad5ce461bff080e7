package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a staff account that can call the API. Users authenticate with
// a bearer token and carry a space separated list of permissions, e.g.
// "members:manage statements:manage".
type User struct {
	DefaultModel
	Church   Church    `json:"-"`
	ChurchID uuid.UUID `gorm:"index"`

	Name  string
	Email string

	// Token is the session token presented in the Authorization header.
	Token string `gorm:"uniqueIndex" json:"-"`

	// Permissions is a space separated permission list. "*:*" grants
	// everything.
	Permissions string
}

var ErrTokenNotUnique = errors.New("the session token is already in use")

// BeforeSave trims whitespace from all strings.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Token = strings.TrimSpace(u.Token)
	u.Permissions = strings.TrimSpace(u.Permissions)

	return nil
}
