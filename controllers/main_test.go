package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/binaryash/redbud/config"
	"github.com/binaryash/redbud/models"
	"github.com/binaryash/redbud/routes"
	"github.com/binaryash/redbud/utils"
)

// stubSummarizer records the last call and returns a canned result.
type stubSummarizer struct {
	summary  string
	err      error
	lastText string
	lastMax  int
}

func (s *stubSummarizer) SummarizeText(_ context.Context, text string, maxWords int) (string, error) {
	s.lastText = text
	s.lastMax = maxWords
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

type testEnv struct {
	router     *gin.Engine
	db         *gorm.DB
	summarizer *stubSummarizer
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	// AuthMiddleware checks account status through the package-level handle
	config.DB = db

	summarizer := &stubSummarizer{summary: "This is a summary."}
	router := routes.SetupRouter(gin.New(), db, summarizer)

	return &testEnv{router: router, db: db, summarizer: summarizer}
}

func createUser(t *testing.T, db *gorm.DB, role models.UserRole, email string) (models.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FullName: "Test " + string(role),
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID.String(), string(role))
	require.NoError(t, err)
	return user, token
}

func createTraining(t *testing.T, db *gorm.DB, createdBy uuid.UUID) models.Training {
	t.Helper()
	training := models.Training{
		Name:         "Test Training",
		Description:  "A training used in tests",
		DurationDays: 1,
		CreatedByID:  createdBy,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&training).Error)
	return training
}

func assignTrainer(t *testing.T, db *gorm.DB, training *models.Training, trainerID uuid.UUID) {
	t.Helper()
	training.AssignedTrainerID = &trainerID
	require.NoError(t, db.Save(training).Error)
}

func enroll(t *testing.T, db *gorm.DB, training *models.Training, employee models.User) {
	t.Helper()
	require.NoError(t, db.Model(training).Association("Employees").Append(&employee))
}

func createTextContent(t *testing.T, db *gorm.DB, trainingID, createdBy uuid.UUID, text string) models.Content {
	t.Helper()
	content := models.Content{
		TrainingID:  trainingID,
		Title:       "Test Content",
		ContentType: models.ContentTypeText,
		TextContent: text,
		IsActive:    true,
		CreatedByID: createdBy,
	}
	require.NoError(t, db.Create(&content).Error)
	return content
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, env *testEnv, email string) (string, error) {
	t.Helper()
	w := doRequest(t, env.router, "POST", "/api/auth/login", "", map[string]interface{}{
		"email": email, "password": "password123",
	})
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", w.Code, w.Body.String())
	}
	return decodeBody(t, w)["token"].(string), nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
