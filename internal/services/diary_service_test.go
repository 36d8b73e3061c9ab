package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdd/internal/models"
	"sdd/internal/testutil"
)

type serviceFixture struct {
	service  DiaryServiceInterface
	store    *testutil.MockStore
	analyzer *testutil.MockAnalysisClient
	logger   *testutil.MockLogger
	metrics  *testutil.MockMetrics
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		store:    &testutil.MockStore{},
		analyzer: &testutil.MockAnalysisClient{},
		logger:   &testutil.MockLogger{},
		metrics:  testutil.NewMockMetrics(),
	}
	f.service = NewDiaryService(f.store, f.analyzer, f.logger, f.metrics)
	return f
}

func TestDiaryService_CreateDiary_ReturnsDraft(t *testing.T) {
	f := newServiceFixture()
	date := time.Date(2025, 3, 14, 21, 0, 0, 0, time.Local)

	record, err := f.service.CreateDiary(context.Background(), "a title", "content", date)
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Empty(t, record.Emotion)
	assert.Empty(t, record.Summary)
	assert.False(t, record.Analyzed())
}

func TestDiaryService_CreateDiary_EmptyContent(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.CreateDiary(context.Background(), "t", "   \n\t ", time.Now())
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Zero(t, f.analyzer.CallCount())
}

func TestDiaryService_CreateDiary_DuplicateDate(t *testing.T) {
	f := newServiceFixture()
	day := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

	_, err := f.service.CreateDiary(context.Background(), "", "morning entry", day)
	require.NoError(t, err)

	// Same calendar day, different hour.
	_, err = f.service.CreateDiary(context.Background(), "", "evening entry", day.Add(10*time.Hour))
	assert.ErrorIs(t, err, ErrDuplicateDate)
}

func TestDiaryService_CreateDiary_MergesAnalysis(t *testing.T) {
	f := newServiceFixture()
	f.analyzer.Result = &models.AnalysisResult{Emotion: models.EmotionJoy, Summary: "celebrated a lot"}

	record, err := f.service.CreateDiary(context.Background(), "my title", "we celebrated", time.Now())
	require.NoError(t, err)

	f.service.WaitForAnalysis()

	stored := f.store.Get(record.ID)
	require.NotNil(t, stored)
	assert.Equal(t, models.EmotionJoy, stored.Emotion)
	assert.Equal(t, "celebrated a lot", stored.Summary)
	assert.Equal(t, "my title", stored.Title)
	assert.True(t, stored.Analyzed())
	assert.Equal(t, 1, f.metrics.AnalysisCount("success"))
}

func TestDiaryService_CreateDiary_TitleBackfill(t *testing.T) {
	f := newServiceFixture()
	f.analyzer.Result = &models.AnalysisResult{Emotion: models.EmotionHopeful, Summary: "s", Title: "Suggested"}

	record, err := f.service.CreateDiary(context.Background(), "", "content", time.Now())
	require.NoError(t, err)
	f.service.WaitForAnalysis()

	assert.Equal(t, "Suggested", f.store.Get(record.ID).Title)
}

func TestDiaryService_CreateDiary_TitleNotOverwritten(t *testing.T) {
	f := newServiceFixture()
	f.analyzer.Result = &models.AnalysisResult{Emotion: models.EmotionHopeful, Summary: "s", Title: "Suggested"}

	record, err := f.service.CreateDiary(context.Background(), "Mine", "content", time.Now())
	require.NoError(t, err)
	f.service.WaitForAnalysis()

	assert.Equal(t, "Mine", f.store.Get(record.ID).Title)
}

func TestDiaryService_CreateDiary_AnalysisFailureKeepsDraft(t *testing.T) {
	f := newServiceFixture()
	f.analyzer.Err = &NetworkError{Err: errors.New("connection reset")}

	record, err := f.service.CreateDiary(context.Background(), "", "content", time.Now())
	require.NoError(t, err)
	f.service.WaitForAnalysis()

	stored := f.store.Get(record.ID)
	require.NotNil(t, stored)
	assert.False(t, stored.Analyzed())
	assert.Equal(t, 1, f.metrics.AnalysisCount("failure"))
	assert.Equal(t, 1, f.logger.Count("error"))
}

func TestDiaryService_CreateDiary_DeletedWhilePending(t *testing.T) {
	f := newServiceFixture()

	record, err := f.service.CreateDiary(context.Background(), "", "content", time.Now())
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteDiary(record.ID))
	f.service.WaitForAnalysis()

	// The merge lands on a missing id and evaporates.
	assert.Nil(t, f.store.Get(record.ID))
	records, err := f.service.ListDiaries()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDiaryService_UpdateDiary_ResetsToDraft(t *testing.T) {
	f := newServiceFixture()
	f.analyzer.Result = &models.AnalysisResult{Emotion: models.EmotionHappy, Summary: "first"}

	record, err := f.service.CreateDiary(context.Background(), "t", "first version", time.Now())
	require.NoError(t, err)
	f.service.WaitForAnalysis()
	require.True(t, f.store.Get(record.ID).Analyzed())

	f.analyzer.Result = &models.AnalysisResult{Emotion: models.EmotionSad, Summary: "second"}
	updated, err := f.service.UpdateDiary(context.Background(), record.ID, "t", "second version", record.Date)
	require.NoError(t, err)

	// The synchronous return is a draft again.
	assert.Empty(t, updated.Emotion)
	assert.Empty(t, updated.Summary)

	f.service.WaitForAnalysis()
	stored := f.store.Get(record.ID)
	assert.Equal(t, models.EmotionSad, stored.Emotion)
	assert.Equal(t, "second", stored.Summary)
	assert.Equal(t, "second version", stored.Content)
	assert.Equal(t, 2, f.analyzer.CallCount())
}

func TestDiaryService_UpdateDiary_OwnDateIsNotDuplicate(t *testing.T) {
	f := newServiceFixture()
	day := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

	record, err := f.service.CreateDiary(context.Background(), "", "entry", day)
	require.NoError(t, err)

	_, err = f.service.UpdateDiary(context.Background(), record.ID, "", "edited", day.Add(2*time.Hour))
	assert.NoError(t, err)
}

func TestDiaryService_UpdateDiary_CollidesWithOtherRecord(t *testing.T) {
	f := newServiceFixture()
	day := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

	_, err := f.service.CreateDiary(context.Background(), "", "first", day)
	require.NoError(t, err)
	second, err := f.service.CreateDiary(context.Background(), "", "second", day.AddDate(0, 0, 1))
	require.NoError(t, err)

	_, err = f.service.UpdateDiary(context.Background(), second.ID, "", "moved", day)
	assert.ErrorIs(t, err, ErrDuplicateDate)
}

func TestDiaryService_UpdateDiary_EmptyContent(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.UpdateDiary(context.Background(), "some-id", "", "", time.Now())
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestDiaryService_ListDiaries_ReportsRecordCount(t *testing.T) {
	f := newServiceFixture()
	_, err := f.service.CreateDiary(context.Background(), "", "a", time.Now())
	require.NoError(t, err)
	_, err = f.service.CreateDiary(context.Background(), "", "b", time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)

	records, err := f.service.ListDiaries()
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 2, f.metrics.RecordsTotal)
}

func TestDiaryService_EmotionStatistics(t *testing.T) {
	f := newServiceFixture()
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	f.analyzer.Result = &models.AnalysisResult{Emotion: models.EmotionPeaceful, Summary: "s"}

	for i := 0; i < 3; i++ {
		_, err := f.service.CreateDiary(context.Background(), "", "entry", day.AddDate(0, 0, i))
		require.NoError(t, err)
	}
	f.service.WaitForAnalysis()

	stats, err := f.service.EmotionStatistics(day.AddDate(0, 0, -1), day.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Counts[models.EmotionPeaceful])
	assert.Equal(t, models.EmotionPeaceful, stats.MostFrequent)
}

func TestDiaryService_StoreFailurePropagates(t *testing.T) {
	f := newServiceFixture()
	boom := errors.New("disk on fire")
	f.store.FailAll = boom

	_, err := f.service.CreateDiary(context.Background(), "", "content", time.Now())
	assert.ErrorIs(t, err, boom)

	_, err = f.service.ListDiaries()
	assert.ErrorIs(t, err, boom)
}
