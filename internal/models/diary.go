package models

import (
	"time"

	"github.com/google/uuid"
)

// Emotion labels the analysis backend is allowed to return. A record
// carries an empty label until its analysis has completed.
const (
	EmotionHappy    = "happy"
	EmotionJoy      = "joy"
	EmotionPeaceful = "peaceful"
	EmotionSad      = "sad"
	EmotionAngry    = "angry"
	EmotionAnxious  = "anxious"
	EmotionHopeful  = "hopeful"
)

// EmotionLabels is the fixed vocabulary, in display order.
var EmotionLabels = []string{
	EmotionHappy,
	EmotionJoy,
	EmotionPeaceful,
	EmotionSad,
	EmotionAngry,
	EmotionAnxious,
	EmotionHopeful,
}

// IsValidEmotion reports whether label belongs to the fixed vocabulary.
func IsValidEmotion(label string) bool {
	for _, l := range EmotionLabels {
		if l == label {
			return true
		}
	}
	return false
}

// DiaryRecord is a single journal entry. Emotion and Summary stay empty
// until the background analysis merges its result into the record.
type DiaryRecord struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Emotion string    `json:"emotion"`
	Summary string    `json:"summary"`
	Date    time.Time `json:"date"`
}

// NewDiaryRecord creates a draft record with a fresh id.
func NewDiaryRecord(title, content string, date time.Time) *DiaryRecord {
	return &DiaryRecord{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Date:    date,
	}
}

// Analyzed reports whether the record has left the draft state.
func (r *DiaryRecord) Analyzed() bool {
	return r.Emotion != "" && r.Summary != ""
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
