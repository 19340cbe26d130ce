package domain

import "time"

// UserInfo identifies the authenticated quiz taker.
type UserInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Question is a multi-select question. Immutable once loaded from storage.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Selections    []string `json:"selections"`
	CorrectAnswer []int    `json:"correctAnswer"` // 0-based indices into Selections
	Commentary    string   `json:"commentary"`
}

// GroupInfo is the catalog metadata of a question group.
type GroupInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PassLine    int      `json:"passLine"` // 0-100
	TotalCount  int      `json:"totalQuestionsCount"`
	Tags        []string `json:"tags,omitempty"`
}

// QuestionGroup bundles group metadata with its ordered questions.
type QuestionGroup struct {
	Info      GroupInfo  `json:"info"`
	Questions []Question `json:"questions"`
}

// AnswerSnapshot is the frozen answer state of a single question:
// the question plus the user's normalized (sorted, deduplicated) selection.
type AnswerSnapshot struct {
	Question Question `json:"question"`
	Answer   []int    `json:"answer"`
}

// Snapshot is a point-in-time read of a whole quiz session, used for
// grading and for the persisted history record.
type Snapshot struct {
	GroupID string           `json:"groupId"`
	Items   []AnswerSnapshot `json:"items"`
}

// Verdict is the outcome of grading one snapshot. Computed once per
// submission and never recomputed.
type Verdict struct {
	CorrectCount int     `json:"correctCount"`
	TotalCount   int     `json:"totalCount"`
	ScorePercent float64 `json:"scorePercent"`
	Passed       bool    `json:"passed"`
}

// QuestionResult carries the per-question reveal data shown after submit.
type QuestionResult struct {
	QuestionID    string `json:"questionId"`
	Correct       bool   `json:"correct"`
	CorrectAnswer []int  `json:"correctAnswer"` // 1-based, for display
	Commentary    string `json:"commentary,omitempty"`
}

// HistoryRecord is the persisted copy of a completed submission.
type HistoryRecord struct {
	GroupID     string           `json:"groupId"`
	Snapshot    []AnswerSnapshot `json:"snapshot"`
	SubmittedAt time.Time        `json:"submittedAt"`
}
