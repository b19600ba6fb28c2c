package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/binaryash/redbud/models"
	"github.com/binaryash/redbud/permissions"
	"github.com/binaryash/redbud/services"
	"github.com/binaryash/redbud/utils"
	"github.com/binaryash/redbud/ws"
)

const maxUploadSize = 20 * 1024 * 1024

type CreateContentInput struct {
	TrainingID  string `form:"training_id" json:"training_id" binding:"required"`
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	ContentType string `form:"content_type" json:"content_type" binding:"required"`
	URL         string `form:"url" json:"url"`
	TextContent string `form:"text_content" json:"text_content"`
	Order       int    `form:"order" json:"order"`
}

// GetContents lists content visible to the actor, with optional
// training_id / content_type filters and pagination.
func GetContents(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	query := permissions.ScopeContent(db, role, uid)
	if trainingID := c.Query("training_id"); trainingID != "" {
		query = query.Where("training_id = ?", trainingID)
	}
	if contentType := c.Query("content_type"); contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}

	page, limit, offset := pagination(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count content"})
		return
	}

	var contents []models.Content
	if err := query.Order("training_id, display_order").
		Limit(limit).Offset(offset).Find(&contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  contents,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetContentByTraining lists the actor's visible content of one training.
func GetContentByTraining(c *gin.Context) {
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

	var contents []models.Content
	if err := permissions.ScopeContent(db, role, uid).
		Where("training_id = ?", trainingID).
		Order("display_order").Find(&contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list content"})
		return
	}
	c.JSON(http.StatusOK, contents)
}

// GetContentByType lists the actor's visible content of one variant.
func GetContentByType(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	contentType := c.Query("content_type")
	if contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_type parameter is required"})
		return
	}
	if !models.ContentType(contentType).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_type must be one of pdf, video, youtube, link, text"})
		return
	}

	var contents []models.Content
	if err := permissions.ScopeContent(db, role, uid).
		Where("content_type = ?", contentType).
		Order("training_id, display_order").Find(&contents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list content"})
		return
	}
	c.JSON(http.StatusOK, contents)
}

// GetContentDetail fetches one content item within the actor's scope.
// Out-of-scope or inactive (for employees) items are a plain 404.
func GetContentDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var content models.Content
	if err := permissions.ScopeContent(db, role, uid).
		Where("id = ?", c.Param("id")).First(&content).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}
	c.JSON(http.StatusOK, content)
}

// CreateContent creates a content item. Manager or the training's assigned
// trainer. pdf/video variants take a multipart file upload; youtube/link
// take a url; text takes text_content.
func CreateContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	var input CreateContentInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := models.ContentType(input.ContentType)
	if !contentType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_type must be one of pdf, video, youtube, link, text"})
		return
	}

	var training models.Training
	if err := db.First(&training, "id = ?", input.TrainingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return
	}

	if d := permissions.CanWriteContent(role, uid, &training); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only add content to your assigned trainings"})
		return
	}

	contentID := uuid.New()
	content := models.Content{
		ID:          contentID,
		TrainingID:  training.ID,
		Title:       input.Title,
		Description: input.Description,
		ContentType: contentType,
		URL:         input.URL,
		TextContent: input.TextContent,
		Order:       input.Order,
		IsActive:    true,
		CreatedByID: uid,
	}

	if contentType == models.ContentTypePDF || contentType == models.ContentTypeVideo {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is required for " + input.ContentType + " content type"})
			return
		}
		if file.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds 20MB"})
			return
		}

		publicURL, err := utils.UploadFileToSupabase(file, contentID.String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "file upload failed", "details": err.Error()})
			return
		}
		content.FilePath = publicURL
		content.FileName = file.Filename
		content.FileSize = file.Size
	}

	if err := content.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := db.Create(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create content"})
		return
	}

	ws.BroadcastContentListChanged()
	c.JSON(http.StatusCreated, content)
}

type UpdateContentInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	TextContent *string `json:"text_content"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateContent applies a partial update. Manager or assigned trainer.
// The content type and file reference are immutable after creation.
func UpdateContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	content, ok := contentForWrite(c, db, uid, role)
	if !ok {
		return
	}

	var input UpdateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		content.Title = *input.Title
	}
	if input.Description != nil {
		content.Description = *input.Description
	}
	if input.URL != nil {
		content.URL = *input.URL
	}
	if input.TextContent != nil {
		content.TextContent = *input.TextContent
	}
	if input.Order != nil {
		content.Order = *input.Order
	}
	if input.IsActive != nil {
		content.IsActive = *input.IsActive
	}

	if err := content.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := db.Save(content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update content"})
		return
	}

	ws.BroadcastContentListChanged()
	c.JSON(http.StatusOK, content)
}

// DeleteContent removes a content item. Manager or assigned trainer.
func DeleteContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	content, ok := contentForWrite(c, db, uid, role)
	if !ok {
		return
	}

	if err := db.Delete(content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete content"})
		return
	}

	ws.BroadcastContentListChanged()
	c.JSON(http.StatusOK, gin.H{"message": "content deleted"})
}

// ToggleContentActive flips the is_active flag. Manager or assigned trainer.
func ToggleContentActive(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	uid, role, ok := actor(c)
	if !ok {
		return
	}

	content, ok := contentForWrite(c, db, uid, role)
	if !ok {
		return
	}

	content.IsActive = !content.IsActive
	if err := db.Model(content).Update("is_active", content.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not toggle content"})
		return
	}

	ws.BroadcastContentListChanged()
	c.JSON(http.StatusOK, content)
}

// contentForWrite loads a content item with its training and applies the
// write predicate. Managers see everything, so a missing row is always 404;
// a visible row the actor cannot write is 403.
func contentForWrite(c *gin.Context, db *gorm.DB, uid uuid.UUID, role models.UserRole) (*models.Content, bool) {
	var content models.Content
	if err := db.First(&content, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return nil, false
	}

	var training models.Training
	if err := db.First(&training, "id = ?", content.TrainingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "training not found"})
		return nil, false
	}

	if d := permissions.CanWriteContent(role, uid, &training); !d.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": d.Reason})
		return nil, false
	}
	return &content, true
}

type SummarizeInput struct {
	MaxLength json.Number `json:"max_length"`
}

// SummarizeContent generates an AI summary for text or PDF content.
// Available to every authenticated user regardless of role or assignment.
func SummarizeContent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	summarizer := c.MustGet("summarizer").(services.Summarizer)

	// No role scoping here: summarize is open to all authenticated users
	var content models.Content
	if err := db.First(&content, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return
	}

	if content.ContentType != models.ContentTypeText && content.ContentType != models.ContentTypePDF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Summarization is only supported for text and PDF content"})
		return
	}

	var input SummarizeInput
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	maxLength := 0
	if input.MaxLength != "" {
		n, err := strconv.Atoi(input.MaxLength.String())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_length must be a valid integer"})
			return
		}
		if n < 50 || n > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_length must be between 50 and 1000"})
			return
		}
		maxLength = n
	}

	var text string
	switch content.ContentType {
	case models.ContentTypeText:
		if strings.TrimSpace(content.TextContent) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No text content available to summarize"})
			return
		}
		text = content.TextContent
	case models.ContentTypePDF:
		if content.FilePath == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file available to summarize"})
			return
		}
		data, err := services.DownloadFile(content.FilePath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary: " + err.Error()})
			return
		}
		text, err = services.ExtractTextFromPDF(data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary: " + err.Error()})
			return
		}
		if text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No text could be extracted from the PDF"})
			return
		}
	}

	summary, err := summarizer.SummarizeText(c.Request.Context(), text, maxLength)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary: " + err.Error()})
		return
	}

	response := gin.H{
		"summary":      summary,
		"content_id":   content.ID,
		"content_type": content.ContentType,
	}
	if maxLength > 0 {
		response["max_length"] = maxLength
	}
	c.JSON(http.StatusOK, response)
}
