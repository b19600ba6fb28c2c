package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleManager  UserRole = "manager"  // full access to everything
	RoleTrainer  UserRole = "trainer"  // scoped to assigned trainings
	RoleEmployee UserRole = "employee" // scoped to enrolled trainings
)

// Valid reports whether r is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleManager, RoleTrainer, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName    string    `gorm:"size:150;not null" json:"full_name"`
	Email       string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	Role        UserRole  `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	PhoneNumber string    `gorm:"size:15" json:"phone_number"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Permission group derived from Role, resynced on every role change
	Groups []Group `gorm:"many2many:user_groups;" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
