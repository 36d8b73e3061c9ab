package models

import "time"

// EmotionStatistics is the per-label occurrence count over a date range.
// It is derived from the record set on demand and never persisted.
type EmotionStatistics struct {
	Counts       map[string]int `json:"counts"`
	MostFrequent string         `json:"mostFrequent"`
	Total        int            `json:"total"`
}

// NewEmotionStatistics aggregates the records that fall inside [from, to]
// (inclusive). Records without an emotion label are skipped.
func NewEmotionStatistics(records []*DiaryRecord, from, to time.Time) *EmotionStatistics {
	stats := &EmotionStatistics{Counts: make(map[string]int)}

	for _, r := range records {
		if r.Emotion == "" {
			continue
		}
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		stats.Counts[r.Emotion]++
		stats.Total++
	}

	// Deterministic arg-max: ties resolve to the label listed first in
	// the vocabulary, unknown labels come last.
	best := 0
	for _, label := range EmotionLabels {
		if c := stats.Counts[label]; c > best {
			best = c
			stats.MostFrequent = label
		}
	}
	for label, c := range stats.Counts {
		if c > best {
			best = c
			stats.MostFrequent = label
		}
	}

	return stats
}
