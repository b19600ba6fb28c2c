package controllers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binaryash/redbud/models"
)

func TestSummarizeTextContent(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	training := createTraining(t, env.db, manager.ID)
	content := createTextContent(t, env.db, training.ID, manager.ID, "This is a sample text content for testing.")

	w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/summarize", token,
		map[string]interface{}{"max_length": 100})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "This is a summary.", body["summary"])
	assert.Equal(t, content.ID.String(), body["content_id"])
	assert.Equal(t, "text", body["content_type"])
	assert.Equal(t, float64(100), body["max_length"])

	// The stored text goes to the summarizer verbatim with the bound
	assert.Equal(t, "This is a sample text content for testing.", env.summarizer.lastText)
	assert.Equal(t, 100, env.summarizer.lastMax)
}

func TestSummarizeWithoutMaxLength(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	training := createTraining(t, env.db, manager.ID)
	content := createTextContent(t, env.db, training.ID, manager.ID, "hello world")

	w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/summarize", token, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Contains(t, body, "summary")
	assert.NotContains(t, body, "max_length")
	assert.Equal(t, 0, env.summarizer.lastMax)
}

func TestSummarizeUnsupportedContentTypes(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	training := createTraining(t, env.db, manager.ID)

	for _, contentType := range []models.ContentType{models.ContentTypeVideo, models.ContentTypeYouTube, models.ContentTypeLink} {
		content := models.Content{
			TrainingID:  training.ID,
			Title:       "Unsupported " + string(contentType),
			ContentType: contentType,
			FilePath:    "https://example.com/file.mp4",
			URL:         "https://example.com",
			IsActive:    true,
			CreatedByID: manager.ID,
		}
		require.NoError(t, env.db.Create(&content).Error)

		w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/summarize", token, nil)

		require.Equal(t, http.StatusBadRequest, w.Code, string(contentType))
		body := decodeBody(t, w)
		assert.Contains(t, body["error"], "only supported for text and PDF")
	}
}

func TestSummarizeMaxLengthValidation(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	training := createTraining(t, env.db, manager.ID)
	content := createTextContent(t, env.db, training.ID, manager.ID, "hello world")

	cases := []struct {
		name      string
		maxLength interface{}
	}{
		{"below lower bound", 49},
		{"above upper bound", 1001},
		{"zero", 0},
		{"negative", -5},
		{"not an integer", "abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/summarize", token,
				map[string]interface{}{"max_length": tc.maxLength})
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	// Both bounds are inclusive
	for _, valid := range []int{50, 1000} {
		w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/summarize", token,
			map[string]interface{}{"max_length": valid})
		assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("max_length=%d", valid))
	}
}

func TestSummarizeEmptyText(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	training := createTraining(t, env.db, manager.ID)
	content := createTextContent(t, env.db, training.ID, manager.ID, "placeholder")
	require.NoError(t, env.db.Model(&content).Update("text_content", "   ").Error)

	w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/summarize", token, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "No text content available")
}

func TestSummarizePDFWithoutFile(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	training := createTraining(t, env.db, manager.ID)

	content := models.Content{
		TrainingID:  training.ID,
		Title:       "PDF without file",
		ContentType: models.ContentTypePDF,
		FilePath:    "https://example.com/file.pdf",
		IsActive:    true,
		CreatedByID: manager.ID,
	}
	require.NoError(t, env.db.Create(&content).Error)
	require.NoError(t, env.db.Model(&content).Update("file_path", "").Error)

	w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/summarize", token, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "No PDF file available")
}

func TestSummarizeServiceFailure(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	training := createTraining(t, env.db, manager.ID)
	content := createTextContent(t, env.db, training.ID, manager.ID, "hello world")

	env.summarizer.err = errors.New("quota exceeded")

	w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/summarize", token, nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "quota exceeded")
}

func TestSummarizeNotFound(t *testing.T) {
	env := setupEnv(t)
	_, token := createUser(t, env.db, models.RoleManager, "manager@test.com")

	w := doRequest(t, env.router, "POST", "/api/content/6a7b1c7e-0000-0000-0000-000000000000/summarize", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Summarize bypasses role scoping: an unassigned trainer and an unenrolled
// employee can both summarize any content.
func TestSummarizeBypassesRoleScoping(t *testing.T) {
	env := setupEnv(t)
	manager, _ := createUser(t, env.db, models.RoleManager, "manager@test.com")
	_, trainerToken := createUser(t, env.db, models.RoleTrainer, "trainer@test.com")
	_, employeeToken := createUser(t, env.db, models.RoleEmployee, "employee@test.com")
	training := createTraining(t, env.db, manager.ID)
	content := createTextContent(t, env.db, training.ID, manager.ID, "hello world")

	for _, token := range []string{trainerToken, employeeToken} {
		w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/summarize", token, nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func TestSummarizeRequiresAuth(t *testing.T) {
	env := setupEnv(t)
	w := doRequest(t, env.router, "POST", "/api/content/some-id/summarize", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateContentValidation(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	training := createTraining(t, env.db, manager.ID)

	cases := []struct {
		name    string
		payload map[string]interface{}
		wantErr string
	}{
		{
			name: "text without text_content",
			payload: map[string]interface{}{
				"training_id": training.ID.String(), "title": "t", "content_type": "text",
			},
			wantErr: "Text content is required",
		},
		{
			name: "link without url",
			payload: map[string]interface{}{
				"training_id": training.ID.String(), "title": "t", "content_type": "link",
			},
			wantErr: "URL is required",
		},
		{
			name: "youtube without url",
			payload: map[string]interface{}{
				"training_id": training.ID.String(), "title": "t", "content_type": "youtube",
			},
			wantErr: "URL is required",
		},
		{
			name: "pdf without file",
			payload: map[string]interface{}{
				"training_id": training.ID.String(), "title": "t", "content_type": "pdf",
			},
			wantErr: "File is required",
		},
		{
			name: "unknown content type",
			payload: map[string]interface{}{
				"training_id": training.ID.String(), "title": "t", "content_type": "audio",
			},
			wantErr: "content_type must be one of",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, env.router, "POST", "/api/content", token, tc.payload)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			body := decodeBody(t, w)
			assert.Contains(t, body["error"], tc.wantErr)
		})
	}
}

func TestTrainerContentWriteScoping(t *testing.T) {
	env := setupEnv(t)
	manager, _ := createUser(t, env.db, models.RoleManager, "manager@test.com")
	trainer, trainerToken := createUser(t, env.db, models.RoleTrainer, "trainer@test.com")

	assigned := createTraining(t, env.db, manager.ID)
	assignTrainer(t, env.db, &assigned, trainer.ID)
	other := createTraining(t, env.db, manager.ID)

	// Creating in the assigned training works
	w := doRequest(t, env.router, "POST", "/api/content", trainerToken, map[string]interface{}{
		"training_id": assigned.ID.String(), "title": "mine",
		"content_type": "text", "text_content": "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Creating in another training is forbidden and nothing is saved
	w = doRequest(t, env.router, "POST", "/api/content", trainerToken, map[string]interface{}{
		"training_id": other.ID.String(), "title": "not mine",
		"content_type": "text", "text_content": "hello",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	env.db.Model(&models.Content{}).Where("training_id = ?", other.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Updating and deleting content of another training is forbidden too
	foreign := createTextContent(t, env.db, other.ID, manager.ID, "foreign")
	w = doRequest(t, env.router, "PUT", "/api/content/"+foreign.ID.String(), trainerToken,
		map[string]interface{}{"title": "hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, env.router, "DELETE", "/api/content/"+foreign.ID.String(), trainerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEmployeeCannotWriteContent(t *testing.T) {
	env := setupEnv(t)
	manager, _ := createUser(t, env.db, models.RoleManager, "manager@test.com")
	_, employeeToken := createUser(t, env.db, models.RoleEmployee, "employee@test.com")
	training := createTraining(t, env.db, manager.ID)

	w := doRequest(t, env.router, "POST", "/api/content", employeeToken, map[string]interface{}{
		"training_id": training.ID.String(), "title": "t",
		"content_type": "text", "text_content": "hello",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEmployeeContentVisibility(t *testing.T) {
	env := setupEnv(t)
	manager, _ := createUser(t, env.db, models.RoleManager, "manager@test.com")
	employee, employeeToken := createUser(t, env.db, models.RoleEmployee, "employee@test.com")

	enrolled := createTraining(t, env.db, manager.ID)
	enroll(t, env.db, &enrolled, employee)
	other := createTraining(t, env.db, manager.ID)

	visible := createTextContent(t, env.db, enrolled.ID, manager.ID, "visible")
	inactive := createTextContent(t, env.db, enrolled.ID, manager.ID, "inactive")
	require.NoError(t, env.db.Model(&inactive).Update("is_active", false).Error)
	foreign := createTextContent(t, env.db, other.ID, manager.ID, "foreign")

	w := doRequest(t, env.router, "GET", "/api/content", employeeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, visible.ID.String(), data[0].(map[string]interface{})["id"])

	// Direct fetch of invisible items is a plain 404
	for _, id := range []string{inactive.ID.String(), foreign.ID.String()} {
		w := doRequest(t, env.router, "GET", "/api/content/"+id, employeeToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, id)
	}

	w = doRequest(t, env.router, "GET", "/api/content/"+visible.ID.String(), employeeToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestToggleContentActive(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	training := createTraining(t, env.db, manager.ID)
	content := createTextContent(t, env.db, training.ID, manager.ID, "hello")

	w := doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/toggle_active", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Content
	require.NoError(t, env.db.First(&reloaded, "id = ?", content.ID).Error)
	assert.False(t, reloaded.IsActive)

	w = doRequest(t, env.router, "POST", "/api/content/"+content.ID.String()+"/toggle_active", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, env.db.First(&reloaded, "id = ?", content.ID).Error)
	assert.True(t, reloaded.IsActive)
}

func TestContentByTrainingAndByType(t *testing.T) {
	env := setupEnv(t)
	manager, token := createUser(t, env.db, models.RoleManager, "manager@test.com")
	t1 := createTraining(t, env.db, manager.ID)
	t2 := createTraining(t, env.db, manager.ID)
	createTextContent(t, env.db, t1.ID, manager.ID, "one")
	createTextContent(t, env.db, t2.ID, manager.ID, "two")

	w := doRequest(t, env.router, "GET", "/api/content/by_training?training_id="+t1.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "one")
	assert.NotContains(t, w.Body.String(), "two")

	w = doRequest(t, env.router, "GET", "/api/content/by_type?content_type=text", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, env.router, "GET", "/api/content/by_type?content_type=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, env.router, "GET", "/api/content/by_training", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Full scenario: manager creates a training, assigns a trainer, the trainer
// adds text content, an enrolled employee summarizes it.
func TestSummarizeScenario(t *testing.T) {
	env := setupEnv(t)
	_, managerToken := createUser(t, env.db, models.RoleManager, "manager@test.com")
	trainer, _ := createUser(t, env.db, models.RoleTrainer, "trainer@test.com")
	employee, employeeToken := createUser(t, env.db, models.RoleEmployee, "employee@test.com")

	w := doRequest(t, env.router, "POST", "/api/trainings", managerToken, map[string]interface{}{
		"name": "Onboarding", "description": "intro",
		"start_date": "2026-01-01", "end_date": "2026-01-05", "duration_days": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	trainingID := decodeBody(t, w)["id"].(string)

	w = doRequest(t, env.router, "POST", "/api/trainings/"+trainingID+"/assign_trainer", managerToken,
		map[string]interface{}{"trainer_id": trainer.ID.String()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, env.router, "POST", "/api/trainings/"+trainingID+"/assign_employees", managerToken,
		map[string]interface{}{"employee_ids": []string{employee.ID.String()}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	trainerToken, err := loginToken(t, env, "trainer@test.com")
	require.NoError(t, err)
	w = doRequest(t, env.router, "POST", "/api/content", trainerToken, map[string]interface{}{
		"training_id": trainingID, "title": "C1",
		"content_type": "text", "text_content": "hello world",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	contentID := decodeBody(t, w)["id"].(string)

	w = doRequest(t, env.router, "POST", "/api/content/"+contentID+"/summarize", employeeToken,
		map[string]interface{}{"max_length": 100})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "This is a summary.", body["summary"])
	assert.Equal(t, contentID, body["content_id"])
	assert.Equal(t, "text", body["content_type"])
	assert.Equal(t, float64(100), body["max_length"])
}
