package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRole string

const (
	RolePhotographer AccountRole = "photographer"
	RoleAdmin        AccountRole = "admin"
)

func (r AccountRole) Valid() bool {
	return r == RolePhotographer || r == RoleAdmin
}

type Account struct {
	ID        string      `json:"id" gorm:"primaryKey;size:36"`
	Username  string      `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Password  string      `json:"-" gorm:"not null"`
	IsActive  bool        `json:"isActive" gorm:"not null"`
	Role      AccountRole `json:"role" gorm:"size:32;not null"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Role == "" {
		a.Role = RolePhotographer
	}
	return nil
}
