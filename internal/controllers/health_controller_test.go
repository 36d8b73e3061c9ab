package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdd/internal/models"
	"sdd/internal/services"
	"sdd/internal/testutil"
)

func TestHealthController_Health(t *testing.T) {
	store := &testutil.MockStore{}
	service := services.NewDiaryService(store, &testutil.MockAnalysisClient{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	controller := NewHealthController(service)

	analyzed := models.NewDiaryRecord("", "done", time.Now())
	analyzed.Emotion = models.EmotionHappy
	analyzed.Summary = "s"
	require.NoError(t, store.Create(analyzed))
	require.NoError(t, store.Create(models.NewDiaryRecord("", "pending", time.Now().AddDate(0, 0, -1))))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	controller.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Records)
	assert.Equal(t, 1, resp.Analyzed)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealthController_Health_MethodNotAllowed(t *testing.T) {
	service := services.NewDiaryService(&testutil.MockStore{}, &testutil.MockAnalysisClient{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	controller := NewHealthController(service)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	controller.Health(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m5s", formatDuration(5*time.Second))
	assert.Equal(t, "1h1m1s", formatDuration(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "25h0m0s", formatDuration(25*time.Hour))
}
