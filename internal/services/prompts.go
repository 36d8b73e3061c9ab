package services

// Defaults for the analysis prompt. Both can be overridden from the
// analysis section of the config file.
const (
	defaultSystemPrompt = `You are the analysis backend of a personal diary application.
Classify the emotion of the diary entry as exactly one of: happy, joy, peaceful, sad, angry, anxious, hopeful.
Write a one-sentence summary and a short title, both in the same language as the entry.
Respond with a single JSON object and nothing else: {"emotion": "...", "summary": "...", "title": "..."}`

	defaultPromptTemplate = "Diary entry:\n\n%s"
)
