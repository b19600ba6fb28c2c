package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/binaryash/redbud/models"
	"github.com/binaryash/redbud/permissions"
	"github.com/binaryash/redbud/services"
)

// GetUsers lists users visible to the actor: managers see everyone,
// trainers see themselves plus employees of their trainings, employees
// see only themselves.
func GetUsers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var users []models.User
	if err := permissions.ScopeUsers(db, role, uid).Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetMe returns the authenticated user.
func GetMe(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, _, ok := actor(c)
	if !ok {
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", uid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUsersByRole filters users by role. Manager only (enforced in routes).
func GetUsersByRole(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.User{})
	if roleParam := c.Query("role"); roleParam != "" {
		if !models.UserRole(roleParam).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be one of manager, trainer, employee"})
			return
		}
		query = query.Where("role = ?", roleParam)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type CreateUserInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"full_name" binding:"required"`
	Role        string `json:"role" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

// CreateUser creates a user with an explicit role. Manager only.
func CreateUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.UserRole(input.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be one of manager, trainer, employee"})
		return
	}

	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is already in use"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	user := models.User{
		FullName:    input.FullName,
		Email:       input.Email,
		Password:    string(hashed),
		Role:        role,
		PhoneNumber: input.PhoneNumber,
	}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	if err := services.SyncRoleGroup(db, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not assign role group"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUserDetail fetches a user within the actor's visible scope.
func GetUserDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var user models.User
	if err := permissions.ScopeUsers(db, role, uid).Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateUserInput struct {
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	FullName    *string `json:"full_name"`
	Role        *string `json:"role"`
	PhoneNumber *string `json:"phone_number"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateUser applies a partial update. Manager only. A role change
// resynchronizes the permission-group membership.
func UpdateUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var user models.User
	if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roleChanged := false
	if input.Role != nil {
		role := models.UserRole(*input.Role)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be one of manager, trainer, employee"})
			return
		}
		roleChanged = role != user.Role
		user.Role = role
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}
		user.Password = string(hashed)
	}

	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
		return
	}

	if roleChanged {
		if err := services.SyncRoleGroup(db, &user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resync role group"})
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user. Manager only. Trainings assigned to the user
// keep existing with the trainer reference cleared; enrollment and group
// rows are removed.
func DeleteUser(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var user models.User
	if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := db.Model(&models.Training{}).
		Where("assigned_trainer_id = ?", user.ID).
		Update("assigned_trainer_id", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not unassign trainer"})
		return
	}
	if err := db.Model(&user).Association("Groups").Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear groups"})
		return
	}
	if err := db.Exec("DELETE FROM training_employees WHERE user_id = ?", user.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear enrollments"})
		return
	}

	if err := db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
