package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Training struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Slug         string    `gorm:"size:220" json:"slug"`
	Description  string    `gorm:"type:text" json:"description"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	DurationDays int       `json:"duration_days"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE;" json:"-"`

	// At most one trainer; cleared when the trainer account is deleted
	AssignedTrainerID *uuid.UUID `gorm:"type:uuid" json:"assigned_trainer_id"`
	AssignedTrainer   *User      `gorm:"foreignKey:AssignedTrainerID;constraint:OnDelete:SET NULL;" json:"assigned_trainer,omitempty"`

	Employees []User `gorm:"many2many:training_employees;" json:"employees,omitempty"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Modules  []TrainingModule `gorm:"constraint:OnDelete:CASCADE;" json:"modules,omitempty"`
	Contents []Content        `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

func (t *Training) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TrainingModule struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TrainingID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_training_module_order" json:"training_id"`
	Training    *Training `gorm:"foreignKey:TrainingID;constraint:OnDelete:CASCADE;" json:"-"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	// Position within the training, unique per training
	Order         int     `gorm:"column:display_order;not null;default:0;uniqueIndex:idx_training_module_order" json:"order"`
	DurationHours float64 `json:"duration_hours"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *TrainingModule) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
