package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/binaryash/redbud/models"
)

// actor reads the authenticated user's id and role from the context.
// Writes a 400 response and returns false when the id is malformed.
func actor(c *gin.Context) (uuid.UUID, models.UserRole, bool) {
	uid, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return uuid.Nil, "", false
	}
	return uid, models.UserRole(c.GetString("role")), true
}

// pagination reads page/limit query params with the usual defaults.
func pagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}
