package app

import (
	"quizdesk-service/internal/domain"
)

// SubmissionState governs whether a quiz model still accepts answer toggles.
type SubmissionState int

const (
	// Open accepts toggles; the quiz has not been submitted.
	Open SubmissionState = iota
	// Locked is entered exactly once, on submit, and is never left.
	Locked
)

// QuizModel is the in-memory answer state of one quiz-taking session: the
// ordered questions of a group plus one AnswerSet per question. A model is
// owned by a single session and is never shared across connections, so it
// carries no lock; the transport serializes events onto it.
type QuizModel struct {
	groupID   string
	passLine  int
	questions []domain.Question
	answers   map[string]*AnswerSet
	state     SubmissionState
}

// NewQuizModel builds a model from a loaded group, with one empty AnswerSet
// per question.
func NewQuizModel(group domain.QuestionGroup) *QuizModel {
	answers := make(map[string]*AnswerSet, len(group.Questions))
	for _, q := range group.Questions {
		answers[q.ID] = NewAnswerSet(len(q.Selections))
	}
	return &QuizModel{
		groupID:   group.Info.ID,
		passLine:  group.Info.PassLine,
		questions: group.Questions,
		answers:   answers,
		state:     Open,
	}
}

// GroupID returns the owning question group's ID.
func (m *QuizModel) GroupID() string { return m.groupID }

// PassLine returns the group's pass threshold in percent.
func (m *QuizModel) PassLine() int { return m.passLine }

// Questions returns the ordered questions.
func (m *QuizModel) Questions() []domain.Question { return m.questions }

// State reports whether the model is still accepting toggles.
func (m *QuizModel) State() SubmissionState { return m.state }

// ToggleAnswer routes a checkbox event to the AnswerSet of questionID.
// Toggles arriving after the model is locked are ignored.
func (m *QuizModel) ToggleAnswer(questionID string, choiceIndex int, selected bool) error {
	if m.state == Locked {
		return nil
	}
	set, ok := m.answers[questionID]
	if !ok {
		return domain.ErrUnknownQuestion
	}
	return set.Toggle(choiceIndex, selected)
}

// Snapshot returns the questions in order, each paired with its normalized
// answer. It reads but never mutates the model.
func (m *QuizModel) Snapshot() []domain.AnswerSnapshot {
	items := make([]domain.AnswerSnapshot, 0, len(m.questions))
	for _, q := range m.questions {
		items = append(items, domain.AnswerSnapshot{
			Question: q,
			Answer:   m.answers[q.ID].Normalized(),
		})
	}
	return items
}

// lock freezes the model. Open -> Locked happens exactly once and never
// reverts; locking a locked model is a no-op.
func (m *QuizModel) lock() {
	m.state = Locked
}
