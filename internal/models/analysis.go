package models

// AnalysisResult is the decoded payload the analysis backend returns for
// one diary entry. It is merged into a DiaryRecord and then discarded.
type AnalysisResult struct {
	Emotion string `json:"emotion"`
	Summary string `json:"summary"`
	Title   string `json:"title,omitempty"`
}
