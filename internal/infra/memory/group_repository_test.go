package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizdesk-service/internal/domain"
)

func TestGroupRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		GroupLoader: NewStaticGroupLoader(map[string]domain.QuestionGroup{
			"group-1": sampleGroup(),
		}),
	}
	repo := NewGroupRepository(loader, time.Minute)

	if _, err := repo.GetGroup(context.Background(), "group-1"); err != nil {
		t.Fatalf("get group: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetGroup(context.Background(), "group-1"); err != nil {
		t.Fatalf("get group 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestGroupRepositoryNotFound(t *testing.T) {
	repo := NewGroupRepository(NewStaticGroupLoader(nil), time.Minute)

	_, err := repo.GetGroup(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

type countingLoader struct {
	GroupLoader
	calls int
}

func (l *countingLoader) LoadGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error) {
	l.calls++
	return l.GroupLoader.LoadGroup(ctx, groupID)
}

func sampleGroup() domain.QuestionGroup {
	return domain.QuestionGroup{
		Info: domain.GroupInfo{ID: "group-1", Name: "Basics", PassLine: 75, TotalCount: 1},
		Questions: []domain.Question{
			{
				ID:            "q1",
				Prompt:        "Pick the even numbers",
				Selections:    []string{"1", "2", "3", "4"},
				CorrectAnswer: []int{1, 3},
			},
		},
	}
}
