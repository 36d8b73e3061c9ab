package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"sdd/internal/diary"
	"sdd/internal/models"
	"sdd/internal/providers"
)

// DiaryServiceInterface sequences the store and the analysis client into
// the user-facing diary flows.
type DiaryServiceInterface interface {
	CreateDiary(ctx context.Context, title, content string, date time.Time) (*models.DiaryRecord, error)
	UpdateDiary(ctx context.Context, id, title, content string, date time.Time) (*models.DiaryRecord, error)
	DeleteDiary(id string) error
	ListDiaries() ([]*models.DiaryRecord, error)
	EmotionStatistics(from, to time.Time) (*models.EmotionStatistics, error)
	WaitForAnalysis()
}

type DiaryService struct {
	store    diary.StoreInterface
	analyzer AnalysisClientInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	wg       sync.WaitGroup
}

func NewDiaryService(store diary.StoreInterface, analyzer AnalysisClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) DiaryServiceInterface {
	return &DiaryService{
		store:    store,
		analyzer: analyzer,
		logger:   logger,
		metrics:  metrics,
	}
}

// CreateDiary persists a draft record synchronously, then fires the
// analysis task. The returned record is the draft; the analysis result
// lands in the store later, or never.
func (s *DiaryService) CreateDiary(ctx context.Context, title, content string, date time.Time) (*models.DiaryRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if err := s.checkDuplicateDate(date, ""); err != nil {
		return nil, err
	}

	record := models.NewDiaryRecord(title, content, date)
	if err := s.store.Create(record); err != nil {
		return nil, err
	}

	s.scheduleAnalysis(record)
	return record, nil
}

// UpdateDiary rewrites the record with the user-supplied fields, dropping
// it back to draft, then re-runs the analysis on the new content.
func (s *DiaryService) UpdateDiary(ctx context.Context, id, title, content string, date time.Time) (*models.DiaryRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if err := s.checkDuplicateDate(date, id); err != nil {
		return nil, err
	}

	record := &models.DiaryRecord{
		ID:      id,
		Title:   title,
		Content: content,
		Date:    date,
	}
	if err := s.store.Update(record); err != nil {
		return nil, err
	}

	s.scheduleAnalysis(record)
	return record, nil
}

func (s *DiaryService) DeleteDiary(id string) error {
	return s.store.Delete(id)
}

func (s *DiaryService) ListDiaries() ([]*models.DiaryRecord, error) {
	records, err := s.store.List()
	if err != nil {
		return nil, err
	}
	s.metrics.SetRecordsTotal(len(records))
	return records, nil
}

// EmotionStatistics recomputes the per-label counts over [from, to] from
// the full record set. Unanalyzed records count toward no label.
func (s *DiaryService) EmotionStatistics(from, to time.Time) (*models.EmotionStatistics, error) {
	records, err := s.ListDiaries()
	if err != nil {
		return nil, err
	}
	return models.NewEmotionStatistics(records, from, to), nil
}

// WaitForAnalysis blocks until every scheduled analysis task has finished.
// The background merge is fire-and-forget in production; tests use this to
// observe it deterministically.
func (s *DiaryService) WaitForAnalysis() {
	s.wg.Wait()
}

// checkDuplicateDate rejects a second record on the same calendar day.
// excludeID skips the record being edited.
func (s *DiaryService) checkDuplicateDate(date time.Time, excludeID string) error {
	records, err := s.store.List()
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.ID != excludeID && models.SameDay(r.Date, date) {
			return ErrDuplicateDate
		}
	}
	return nil
}

// scheduleAnalysis runs the analysis in a detached task and merges the
// result back into the store. Every failure on this path is logged and
// dropped: the record simply stays a draft.
func (s *DiaryService) scheduleAnalysis(record *models.DiaryRecord) {
	snapshot := *record
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		start := time.Now()
		result, err := s.analyzer.Analyze(context.Background(), snapshot.Content)
		s.metrics.ObserveAnalysisDuration(time.Since(start))
		if err != nil {
			s.metrics.IncAnalysisTotal("failure")
			s.logger.Errorf(providers.TypeAnalysis, "Analysis of record %s failed: %s", snapshot.ID, err)
			return
		}

		updated := snapshot
		updated.Emotion = result.Emotion
		updated.Summary = result.Summary
		if updated.Title == "" && result.Title != "" {
			updated.Title = result.Title
		}

		// The record may have been deleted meanwhile; Update on a
		// missing id is a no-op, so the merge just evaporates.
		if err := s.store.Update(&updated); err != nil {
			s.metrics.IncAnalysisTotal("failure")
			s.logger.Errorf(providers.TypeAnalysis, "Merging analysis of record %s failed: %s", snapshot.ID, err)
			return
		}

		s.metrics.IncAnalysisTotal("success")
		s.logger.Infof(providers.TypeAnalysis, "Record %s analyzed: emotion=%s", snapshot.ID, result.Emotion)
	}()
}
