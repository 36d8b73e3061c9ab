package controllers

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"sdd/internal/diary"
	"sdd/internal/providers"
	"sdd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.DiaryServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.DiaryServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

type diaryPayload struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) CreateDiary(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload diaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	date, err := parseDate(payload.Date, time.Now())
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	record, err := ac.service.CreateDiary(r.Context(), payload.Title, payload.Content, date)
	if err != nil {
		ac.writeServiceError(w, err)
		return
	}

	ac.cache.Clear()
	writeJSON(w, http.StatusCreated, record)
}

func (ac *ApiController) UpdateDiary(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload diaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.ID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	date, err := parseDate(payload.Date, time.Now())
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	record, err := ac.service.UpdateDiary(r.Context(), payload.ID, payload.Title, payload.Content, date)
	if err != nil {
		ac.writeServiceError(w, err)
		return
	}

	ac.cache.Clear()
	writeJSON(w, http.StatusOK, record)
}

func (ac *ApiController) DeleteDiary(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.service.DeleteDiary(id); err != nil {
		ac.writeServiceError(w, err)
		return
	}

	ac.cache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) ListDiaries(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "list", func() (any, error) {
		return ac.service.ListDiaries()
	})
}

func (ac *ApiController) GetStatistics(w http.ResponseWriter, r *http.Request) {
	from, err := parseDate(r.URL.Query().Get("from"), time.Time{})
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"), time.Now())
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("to") != "" && to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 {
		// A date-only upper bound means "through that whole day".
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	key := "stats:" + from.Format(time.RFC3339) + ":" + to.Format(time.RFC3339)
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return ac.service.EmotionStatistics(from, to)
	})
}

func (ac *ApiController) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyContent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrDuplicateDate):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, diary.ErrRecordNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		ac.logger.Errorf(providers.TypeApp, "Request failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	gson, err := json.Marshal(value)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// parseDate accepts RFC3339 timestamps and plain dates; empty means fallback.
func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}
