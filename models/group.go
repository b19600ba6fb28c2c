package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is the permission group a user belongs to. Membership is derived
// from the user's role and rewritten whenever the role changes.
type Group struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
