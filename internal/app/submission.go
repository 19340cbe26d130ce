package app

import (
	"context"
	"time"

	"quizdesk-service/internal/domain"
)

// HistoryRecorder persists completed submissions for later review.
type HistoryRecorder interface {
	AppendHistory(ctx context.Context, userID string, record domain.HistoryRecord) error
	ListHistory(ctx context.Context, userID string) ([]domain.HistoryRecord, error)
}

// SubmissionResult is what one successful submit yields: the verdict plus a
// separate indicator for the history write. A failed history write does not
// block grading, but the caller must be able to tell it happened.
type SubmissionResult struct {
	Verdict    domain.Verdict
	Results    []domain.QuestionResult
	HistoryErr error
}

// SubmissionController drives the at-most-once submission lifecycle of one
// quiz model: lock the model, persist the history record, grade, retain the
// verdict for post-submit reads.
type SubmissionController struct {
	model   *QuizModel
	history HistoryRecorder
	userID  string
	now     func() time.Time

	submitted bool
	verdict   domain.Verdict
	results   map[string]domain.QuestionResult
}

// NewSubmissionController binds a controller to one model and the user whose
// history records it writes.
func NewSubmissionController(model *QuizModel, history HistoryRecorder, userID string) *SubmissionController {
	return newSubmissionControllerWithClock(model, history, userID, time.Now)
}

func newSubmissionControllerWithClock(model *QuizModel, history HistoryRecorder, userID string, now func() time.Time) *SubmissionController {
	return &SubmissionController{
		model:   model,
		history: history,
		userID:  userID,
		now:     now,
	}
}

// Submit performs the one allowed submission. A second call fails with
// ErrAlreadySubmitted and leaves the first verdict untouched.
func (c *SubmissionController) Submit(ctx context.Context) (SubmissionResult, error) {
	if c.submitted {
		return SubmissionResult{}, domain.ErrAlreadySubmitted
	}
	c.submitted = true
	c.model.lock()

	snapshot := c.model.Snapshot()

	var historyErr error
	if c.history != nil {
		historyErr = c.history.AppendHistory(ctx, c.userID, domain.HistoryRecord{
			GroupID:     c.model.GroupID(),
			Snapshot:    snapshot,
			SubmittedAt: c.now(),
		})
	}

	verdict, results := Grade(snapshot, c.model.PassLine())
	c.verdict = verdict
	c.results = make(map[string]domain.QuestionResult, len(results))
	for _, r := range results {
		c.results[r.QuestionID] = r
	}

	return SubmissionResult{Verdict: verdict, Results: results, HistoryErr: historyErr}, nil
}

// Submitted reports whether the one allowed submission has happened.
func (c *SubmissionController) Submitted() bool {
	return c.submitted
}

// Verdict returns the retained verdict. Valid only after Submit.
func (c *SubmissionController) Verdict() (domain.Verdict, bool) {
	return c.verdict, c.submitted
}

// IsCorrect reports whether the given question was answered correctly.
func (c *SubmissionController) IsCorrect(questionID string) (bool, error) {
	if !c.submitted {
		return false, domain.ErrNotSubmitted
	}
	r, ok := c.results[questionID]
	if !ok {
		return false, domain.ErrUnknownQuestion
	}
	return r.Correct, nil
}

// CorrectAnswerDisplay returns the correct choices of a question in the
// 1-based form shown to users.
func (c *SubmissionController) CorrectAnswerDisplay(questionID string) ([]int, error) {
	if !c.submitted {
		return nil, domain.ErrNotSubmitted
	}
	r, ok := c.results[questionID]
	if !ok {
		return nil, domain.ErrUnknownQuestion
	}
	return r.CorrectAnswer, nil
}
