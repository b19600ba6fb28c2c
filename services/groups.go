package services

import (
	"gorm.io/gorm"

	"github.com/binaryash/redbud/models"
)

func groupNameForRole(role models.UserRole) string {
	switch role {
	case models.RoleManager:
		return "Manager"
	case models.RoleTrainer:
		return "Trainer"
	default:
		return "Employee"
	}
}

// SyncRoleGroup rewrites the user's permission-group membership so it is
// exactly the one group matching the current role. Called on every create
// and every role change.
func SyncRoleGroup(db *gorm.DB, user *models.User) error {
	if err := db.Model(user).Association("Groups").Clear(); err != nil {
		return err
	}

	name := groupNameForRole(user.Role)
	var group models.Group
	if err := db.Where("name = ?", name).FirstOrCreate(&group, models.Group{Name: name}).Error; err != nil {
		return err
	}

	return db.Model(user).Association("Groups").Append(&group)
}
