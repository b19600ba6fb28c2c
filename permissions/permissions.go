// Package permissions holds the role-based access predicates. Every check
// follows the same three-tier shape: managers get full access, trainers get
// access to trainings they are assigned to, employees get read access to
// trainings they are enrolled in.
package permissions

import (
	"github.com/google/uuid"

	"github.com/binaryash/redbud/models"
)

// Decision is an explicit allow/deny with a human-readable reason.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// IsEnrolled reports whether userID is in the training's employee set.
// The training must have its Employees association loaded.
func IsEnrolled(training *models.Training, userID uuid.UUID) bool {
	for _, e := range training.Employees {
		if e.ID == userID {
			return true
		}
	}
	return false
}

func isAssignedTrainer(training *models.Training, userID uuid.UUID) bool {
	return training.AssignedTrainerID != nil && *training.AssignedTrainerID == userID
}

// CanReadContent decides read access to content belonging to training.
func CanReadContent(role models.UserRole, userID uuid.UUID, training *models.Training) Decision {
	switch role {
	case models.RoleManager:
		return allow()
	case models.RoleTrainer:
		if isAssignedTrainer(training, userID) {
			return allow()
		}
		return deny("you can only view content for your assigned trainings")
	default:
		if IsEnrolled(training, userID) {
			return allow()
		}
		return deny("you can only view content for trainings you are enrolled in")
	}
}

// CanWriteContent decides create/update/delete access to content belonging
// to training. Employees can never write content.
func CanWriteContent(role models.UserRole, userID uuid.UUID, training *models.Training) Decision {
	switch role {
	case models.RoleManager:
		return allow()
	case models.RoleTrainer:
		if isAssignedTrainer(training, userID) {
			return allow()
		}
		return deny("you can only manage content for your assigned trainings")
	default:
		return deny("only managers or trainers can manage content")
	}
}

// CanAccessTraining decides access to a training or its modules.
// Write access is limited to the manager and the assigned trainer.
func CanAccessTraining(role models.UserRole, userID uuid.UUID, training *models.Training, write bool) Decision {
	switch role {
	case models.RoleManager:
		return allow()
	case models.RoleTrainer:
		if isAssignedTrainer(training, userID) {
			return allow()
		}
		return deny("you can only access your assigned trainings")
	default:
		if write {
			return deny("only managers or trainers can perform this action")
		}
		if IsEnrolled(training, userID) {
			return allow()
		}
		return deny("you can only access trainings you are enrolled in")
	}
}
