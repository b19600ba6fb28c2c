package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/binaryash/redbud/models"
	"github.com/binaryash/redbud/permissions"
	"github.com/binaryash/redbud/ws"
)

const dateLayout = "2006-01-02"

type CreateTrainingInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required"`
}

// GetTrainings lists trainings visible to the actor, paginated, with an
// optional name search.
func GetTrainings(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	query := permissions.ScopeTrainings(db, role, uid)
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	page, limit, offset := pagination(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count trainings"})
		return
	}

	var trainings []models.Training
	if err := query.Preload("AssignedTrainer").
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&trainings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list trainings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  trainings,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetTrainingDetail fetches one training within the actor's scope,
// including modules, employees and the assigned trainer.
func GetTrainingDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var training models.Training
	if err := permissions.ScopeTrainings(db, role, uid).
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Preload("Employees").
		Preload("AssignedTrainer").
		Where("id = ?", c.Param("id")).First(&training).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return
	}
	c.JSON(http.StatusOK, training)
}

// CreateTraining creates a training. Manager only; the creator is recorded
// from the token, never from the body.
func CreateTraining(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, _, ok := actor(c)
	if !ok {
		return
	}

	var input CreateTrainingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	training := models.Training{
		Name:         input.Name,
		Slug:         slug.Make(input.Name),
		Description:  input.Description,
		StartDate:    startDate,
		EndDate:      endDate,
		DurationDays: input.DurationDays,
		CreatedByID:  uid,
		IsActive:     true,
	}
	if err := db.Create(&training).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create training"})
		return
	}

	ws.BroadcastTrainingListChanged()
	c.JSON(http.StatusCreated, training)
}

type UpdateTrainingInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	DurationDays *int    `json:"duration_days"`
	IsActive     *bool   `json:"is_active"`
}

// UpdateTraining applies a partial update. Allowed for the manager and the
// assigned trainer.
func UpdateTraining(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var training models.Training
	if err := db.First(&training, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return
	}

	if d := permissions.CanAccessTraining(role, uid, &training, true); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return
	}

	var input UpdateTrainingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		training.Name = *input.Name
		training.Slug = slug.Make(*input.Name)
	}
	if input.Description != nil {
		training.Description = *input.Description
	}
	if input.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *input.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		training.StartDate = startDate
	}
	if input.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *input.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		training.EndDate = endDate
	}
	if input.DurationDays != nil {
		training.DurationDays = *input.DurationDays
	}
	if input.IsActive != nil {
		training.IsActive = *input.IsActive
	}

	if err := db.Save(&training).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update training"})
		return
	}

	ws.BroadcastTrainingListChanged()
	c.JSON(http.StatusOK, training)
}

// DeleteTraining removes a training and everything it owns. Manager only.
func DeleteTraining(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var training models.Training
	if err := db.First(&training, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return
	}

	// Cascade to owned rows explicitly so behavior does not depend on
	// database-level constraints
	if err := db.Where("training_id = ?", training.ID).Delete(&models.Content{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete training content"})
		return
	}
	if err := db.Where("training_id = ?", training.ID).Delete(&models.TrainingModule{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete training modules"})
		return
	}
	if err := db.Exec("DELETE FROM training_employees WHERE training_id = ?", training.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear enrollments"})
		return
	}
	if err := db.Delete(&training).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete training"})
		return
	}

	ws.BroadcastTrainingListChanged()
	c.JSON(http.StatusOK, gin.H{"message": "training deleted"})
}

type AssignEmployeesInput struct {
	EmployeeIDs []string `json:"employee_ids" binding:"required"`
}

// AssignEmployees replaces the training's employee set. Manager only.
// IDs that do not belong to employees are ignored.
func AssignEmployees(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var training models.Training
	if err := db.First(&training, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return
	}

	var input AssignEmployeesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ids := make([]uuid.UUID, 0, len(input.EmployeeIDs))
	for _, raw := range input.EmployeeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id: " + raw})
			return
		}
		ids = append(ids, id)
	}

	var employees []models.User
	if err := db.Where("id IN ? AND role = ?", ids, models.RoleEmployee).Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up employees"})
		return
	}

	if err := db.Model(&training).Association("Employees").Replace(employees); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not assign employees"})
		return
	}

	db.Preload("Employees").First(&training, "id = ?", training.ID)
	c.JSON(http.StatusOK, training)
}

type AssignTrainerInput struct {
	TrainerID string `json:"trainer_id" binding:"required"`
}

// AssignTrainer sets the training's one trainer. Manager only.
func AssignTrainer(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var training models.Training
	if err := db.First(&training, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return
	}

	var input AssignTrainerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var trainer models.User
	if err := db.Where("id = ? AND role = ?", input.TrainerID, models.RoleTrainer).First(&trainer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trainer not found"})
		return
	}

	training.AssignedTrainerID = &trainer.ID
	if err := db.Save(&training).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not assign trainer"})
		return
	}

	db.Preload("AssignedTrainer").First(&training, "id = ?", training.ID)
	c.JSON(http.StatusOK, training)
}
