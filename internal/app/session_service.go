package app

import (
	"context"
	"strconv"
	"time"

	"quizdesk-service/internal/domain"
)

// GroupRepository loads question-group content (from cache/backing store).
type GroupRepository interface {
	GetGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error)
	ListGroups(ctx context.Context) ([]domain.GroupInfo, error)
}

// SessionStore abstracts how active quiz sessions are tracked (in-memory,
// Redis-marked, etc).
type SessionStore interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// Authenticator resolves the current user from a bearer token. Consulted
// once per session, before the quiz model is built.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (domain.UserInfo, error)
}

// Session is one user's quiz-taking attempt: the model holding answer state
// plus the controller that owns the submission lifecycle.
type Session struct {
	ID         string
	UserID     string
	Model      *QuizModel
	Controller *SubmissionController
}

// SessionService contains the quiz-taking use cases.
type SessionService struct {
	groups   GroupRepository
	history  HistoryRecorder
	auth     Authenticator
	sessions SessionStore
	now      func() time.Time
}

func NewSessionService(groups GroupRepository, history HistoryRecorder, auth Authenticator, sessions SessionStore) *SessionService {
	return &SessionService{
		groups:   groups,
		history:  history,
		auth:     auth,
		sessions: sessions,
		now:      time.Now,
	}
}

// Start authenticates the caller, loads the group with its questions, and
// registers a fresh session with empty answer state. Load failures abort the
// session: no partial quiz is ever handed out.
func (s *SessionService) Start(ctx context.Context, token, groupID string) (*Session, domain.QuestionGroup, error) {
	user, err := s.auth.CurrentUser(ctx, token)
	if err != nil {
		return nil, domain.QuestionGroup{}, err
	}

	group, err := s.groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, domain.QuestionGroup{}, err
	}

	model := NewQuizModel(group)
	session := &Session{
		ID:         sessionID(user.ID, groupID, s.now()),
		UserID:     user.ID,
		Model:      model,
		Controller: NewSubmissionController(model, s.history, user.ID),
	}
	s.sessions.Put(session)
	return session, group, nil
}

// Toggle routes one checkbox event into the session's model.
func (s *SessionService) Toggle(_ context.Context, sessionID, questionID string, choiceIndex int, selected bool) ([]int, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if err := session.Model.ToggleAnswer(questionID, choiceIndex, selected); err != nil {
		return nil, err
	}
	for _, item := range session.Model.Snapshot() {
		if item.Question.ID == questionID {
			return item.Answer, nil
		}
	}
	return nil, domain.ErrUnknownQuestion
}

// Submit runs the at-most-once submission of a session.
func (s *SessionService) Submit(ctx context.Context, sessionID string) (SubmissionResult, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return SubmissionResult{}, domain.ErrSessionNotFound
	}
	return session.Controller.Submit(ctx)
}

// End discards a session (navigation away). The verdict, if any, lives on in
// the history record.
func (s *SessionService) End(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

// Groups returns the question-group catalog for an authenticated user.
func (s *SessionService) Groups(ctx context.Context, token string) ([]domain.GroupInfo, error) {
	if _, err := s.auth.CurrentUser(ctx, token); err != nil {
		return nil, err
	}
	return s.groups.ListGroups(ctx)
}

// History returns the caller's past submissions for review.
func (s *SessionService) History(ctx context.Context, token string) ([]domain.HistoryRecord, error) {
	user, err := s.auth.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.history.ListHistory(ctx, user.ID)
}

// sessionID derives a unique per-attempt id; uniqueness within one process
// is enough since sessions die with the connection.
func sessionID(userID, groupID string, now time.Time) string {
	return userID + ":" + groupID + ":" + strconv.FormatInt(now.UnixNano(), 36)
}
