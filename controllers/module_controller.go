package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/binaryash/redbud/models"
	"github.com/binaryash/redbud/permissions"
)

type CreateModuleInput struct {
	TrainingID    string  `json:"training_id" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	Order         int     `json:"order"`
	DurationHours float64 `json:"duration_hours"`
}

// GetModules lists modules visible to the actor.
func GetModules(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var modules []models.TrainingModule
	if err := permissions.ScopeModules(db, role, uid).
		Order("training_id, display_order").Find(&modules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list modules"})
		return
	}
	c.JSON(http.StatusOK, modules)
}

// GetModulesByTraining lists the actor's visible modules of one training.
func GetModulesByTraining(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	trainingID := c.Query("training_id")
	if trainingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "training_id parameter is required"})
		return
	}

	var modules []models.TrainingModule
	if err := permissions.ScopeModules(db, role, uid).
		Where("training_id = ?", trainingID).
		Order("display_order").Find(&modules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list modules"})
		return
	}
	c.JSON(http.StatusOK, modules)
}

// GetModuleDetail fetches one module within the actor's scope.
func GetModuleDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var module models.TrainingModule
	if err := permissions.ScopeModules(db, role, uid).
		Where("id = ?", c.Param("id")).First(&module).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
		return
	}
	c.JSON(http.StatusOK, module)
}

// CreateModule adds a module to a training. Manager or the training's
// assigned trainer; the (training, order) pair must be unique.
func CreateModule(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var input CreateModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.DurationHours < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration_hours must be non-negative"})
		return
	}

	var training models.Training
	if err := db.First(&training, "id = ?", input.TrainingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return
	}

	if role == models.RoleTrainer {
		if training.AssignedTrainerID == nil || *training.AssignedTrainerID != uid {
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only add modules to your assigned trainings"})
			return
		}
	}

	var count int64
	db.Model(&models.TrainingModule{}).
		Where("training_id = ? AND display_order = ?", training.ID, input.Order).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a module with this order already exists in this training"})
		return
	}

	module := models.TrainingModule{
		TrainingID:    training.ID,
		Title:         input.Title,
		Description:   input.Description,
		Order:         input.Order,
		DurationHours: input.DurationHours,
		CreatedByID:   uid,
	}
	if err := db.Create(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create module"})
		return
	}
	c.JSON(http.StatusCreated, module)
}

type UpdateModuleInput struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Order         *int     `json:"order"`
	DurationHours *float64 `json:"duration_hours"`
}

// UpdateModule applies a partial update. Manager or assigned trainer.
func UpdateModule(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var module models.TrainingModule
	if err := db.First(&module, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
		return
	}

	var training models.Training
	if err := db.First(&training, "id = ?", module.TrainingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return
	}
	if d := permissions.CanAccessTraining(role, uid, &training, true); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	var input UpdateModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Order != nil && *input.Order != module.Order {
		var count int64
		db.Model(&models.TrainingModule{}).
			Where("training_id = ? AND display_order = ? AND id <> ?", module.TrainingID, *input.Order, module.ID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a module with this order already exists in this training"})
			return
		}
		module.Order = *input.Order
	}
	if input.Title != nil {
		module.Title = *input.Title
	}
	if input.Description != nil {
		module.Description = *input.Description
	}
	if input.DurationHours != nil {
		if *input.DurationHours < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration_hours must be non-negative"})
			return
		}
		module.DurationHours = *input.DurationHours
	}

	if err := db.Save(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update module"})
		return
	}
	c.JSON(http.StatusOK, module)
}

// DeleteModule removes a module. Manager or assigned trainer.
func DeleteModule(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var module models.TrainingModule
	if err := db.First(&module, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
		return
	}

	var training models.Training
	if err := db.First(&training, "id = ?", module.TrainingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return
	}
	if d := permissions.CanAccessTraining(role, uid, &training, true); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	if err := db.Delete(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete module"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "module deleted"})
}
