package internal

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdd/internal/controllers"
	"sdd/internal/services"
	"sdd/internal/structures"
	"sdd/internal/testutil"
)

func newRoutedMux(t *testing.T) (*http.ServeMux, services.DiaryServiceInterface) {
	t.Helper()
	service := services.NewDiaryService(&testutil.MockStore{}, &testutil.MockAnalysisClient{}, &testutil.MockLogger{}, testutil.NewMockMetrics())
	controller := controllers.NewApiController(&testutil.MockLogger{}, service, testutil.NewMockCache())

	router := InitRoutes(controller, &structures.Config{})
	mux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		mux.Handle(route.Url, route.Handler)
	}
	return mux, service
}

func TestInitRoutes_RegistersAllEndpoints(t *testing.T) {
	mux, service := newRoutedMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/diary",
		strings.NewReader(`{"content":"an entry","date":"2025-03-14"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	service.WaitForAnalysis()

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/list", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statistics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInitRoutes_MethodMismatch(t *testing.T) {
	mux, _ := newRoutedMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/diary", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/list", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestInitRoutes_UnknownPath(t *testing.T) {
	mux, _ := newRoutedMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
