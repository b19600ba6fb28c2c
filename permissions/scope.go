package permissions

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/binaryash/redbud/models"
)

// Collection-level scoping. Each function narrows a query to the rows the
// actor may see, equivalent to filtering every row through the object
// predicates but evaluated as a single lookup.

func ScopeTrainings(db *gorm.DB, role models.UserRole, userID uuid.UUID) *gorm.DB {
	query := db.Model(&models.Training{})
	switch role {
	case models.RoleManager:
		return query
	case models.RoleTrainer:
		return query.Where("assigned_trainer_id = ?", userID)
	default:
		return query.Where(
			"id IN (SELECT training_id FROM training_employees WHERE user_id = ?)", userID)
	}
}

func ScopeModules(db *gorm.DB, role models.UserRole, userID uuid.UUID) *gorm.DB {
	query := db.Model(&models.TrainingModule{})
	switch role {
	case models.RoleManager:
		return query
	case models.RoleTrainer:
		return query.Where(
			"training_id IN (SELECT id FROM trainings WHERE assigned_trainer_id = ?)", userID)
	default:
		return query.Where(
			"training_id IN (SELECT training_id FROM training_employees WHERE user_id = ?)", userID)
	}
}

// ScopeContent narrows content to the actor's visible set. Employees
// additionally only see active content.
func ScopeContent(db *gorm.DB, role models.UserRole, userID uuid.UUID) *gorm.DB {
	query := db.Model(&models.Content{})
	switch role {
	case models.RoleManager:
		return query
	case models.RoleTrainer:
		return query.Where(
			"training_id IN (SELECT id FROM trainings WHERE assigned_trainer_id = ?)", userID)
	default:
		return query.Where(
			"training_id IN (SELECT training_id FROM training_employees WHERE user_id = ?)", userID).
			Where("is_active = ?", true)
	}
}

// ScopeUsers narrows the user list: managers see everyone, trainers see
// themselves plus employees enrolled in their trainings, employees see
// only themselves.
func ScopeUsers(db *gorm.DB, role models.UserRole, userID uuid.UUID) *gorm.DB {
	query := db.Model(&models.User{})
	switch role {
	case models.RoleManager:
		return query
	case models.RoleTrainer:
		return query.Where(
			"id = ? OR id IN (SELECT user_id FROM training_employees WHERE training_id IN (SELECT id FROM trainings WHERE assigned_trainer_id = ?))",
			userID, userID)
	default:
		return query.Where("id = ?", userID)
	}
}
