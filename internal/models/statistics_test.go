package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordWithEmotion(emotion string, date time.Time) *DiaryRecord {
	r := NewDiaryRecord("", "content", date)
	r.Emotion = emotion
	if emotion != "" {
		r.Summary = "s"
	}
	return r
}

func TestNewEmotionStatistics_Counts(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	records := []*DiaryRecord{
		recordWithEmotion(EmotionHappy, day),
		recordWithEmotion(EmotionHappy, day.AddDate(0, 0, 1)),
		recordWithEmotion(EmotionSad, day.AddDate(0, 0, 2)),
	}

	stats := NewEmotionStatistics(records, day.AddDate(0, 0, -1), day.AddDate(0, 0, 3))

	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Counts[EmotionHappy])
	assert.Equal(t, 1, stats.Counts[EmotionSad])
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, EmotionHappy, stats.MostFrequent)
}

func TestNewEmotionStatistics_SkipsUnanalyzed(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	records := []*DiaryRecord{
		recordWithEmotion("", day),
		recordWithEmotion(EmotionAnxious, day.AddDate(0, 0, 1)),
	}

	stats := NewEmotionStatistics(records, day.AddDate(0, 0, -1), day.AddDate(0, 0, 2))

	assert.Equal(t, 1, stats.Total)
	assert.NotContains(t, stats.Counts, "")
	assert.Equal(t, EmotionAnxious, stats.MostFrequent)
}

func TestNewEmotionStatistics_RangeFilter(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	records := []*DiaryRecord{
		recordWithEmotion(EmotionHappy, day.AddDate(0, 0, -5)),
		recordWithEmotion(EmotionSad, day),
	}

	stats := NewEmotionStatistics(records, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))

	assert.Equal(t, 1, stats.Total)
	assert.Zero(t, stats.Counts[EmotionHappy])
	assert.Equal(t, EmotionSad, stats.MostFrequent)
}

func TestNewEmotionStatistics_TieBreaksOnVocabularyOrder(t *testing.T) {
	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	records := []*DiaryRecord{
		recordWithEmotion(EmotionSad, day),
		recordWithEmotion(EmotionHappy, day.AddDate(0, 0, 1)),
	}

	stats := NewEmotionStatistics(records, day.AddDate(0, 0, -1), day.AddDate(0, 0, 2))

	// happy precedes sad in the vocabulary
	assert.Equal(t, EmotionHappy, stats.MostFrequent)
}

func TestNewEmotionStatistics_Empty(t *testing.T) {
	stats := NewEmotionStatistics(nil, time.Time{}, time.Now())

	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.MostFrequent)
	assert.Empty(t, stats.Counts)
}
