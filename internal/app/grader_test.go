package app

import (
	"reflect"
	"testing"

	"quizdesk-service/internal/domain"
)

func snapshotItem(id string, correct, answer []int) domain.AnswerSnapshot {
	return domain.AnswerSnapshot{
		Question: domain.Question{
			ID:            id,
			Selections:    []string{"a", "b", "c", "d"},
			CorrectAnswer: correct,
		},
		Answer: answer,
	}
}

func TestGradeSetEquality(t *testing.T) {
	// User toggled 2 on, 0 on, 2 off, 2 on: normalized answer is [0 2].
	model := NewQuizModel(domain.QuestionGroup{
		Info: domain.GroupInfo{ID: "g", PassLine: 100},
		Questions: []domain.Question{
			{ID: "q1", Selections: []string{"a", "b", "c"}, CorrectAnswer: []int{0, 2}},
		},
	})
	for _, step := range []struct {
		idx      int
		selected bool
	}{{2, true}, {0, true}, {2, false}, {2, true}} {
		if err := model.ToggleAnswer("q1", step.idx, step.selected); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	verdict, results := Grade(model.Snapshot(), 100)
	if !results[0].Correct {
		t.Fatalf("expected q1 correct, answer %v", model.Snapshot()[0].Answer)
	}
	if !verdict.Passed || verdict.ScorePercent != 100 {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
}

func TestGradeEmptyAnswerEmptyCorrect(t *testing.T) {
	verdict, results := Grade([]domain.AnswerSnapshot{
		snapshotItem("q1", []int{}, []int{}),
	}, 100)
	if !results[0].Correct {
		t.Fatalf("empty submitted vs empty correct should be correct")
	}
	if !verdict.Passed {
		t.Fatalf("expected pass, got %+v", verdict)
	}

	_, results = Grade([]domain.AnswerSnapshot{
		snapshotItem("q1", []int{}, []int{1}),
	}, 100)
	if results[0].Correct {
		t.Fatalf("any selection against empty correct answer must be incorrect")
	}
}

func TestGradePassBoundaryInclusive(t *testing.T) {
	// 4 questions, 3 correct: exactly the 75% pass line.
	snapshot := []domain.AnswerSnapshot{
		snapshotItem("q1", []int{0}, []int{0}),
		snapshotItem("q2", []int{1, 2}, []int{1, 2}),
		snapshotItem("q3", []int{3}, []int{3}),
		snapshotItem("q4", []int{0}, []int{1}),
	}
	verdict, _ := Grade(snapshot, 75)
	if verdict.CorrectCount != 3 || verdict.TotalCount != 4 {
		t.Fatalf("unexpected counts: %+v", verdict)
	}
	if verdict.ScorePercent != 75.0 {
		t.Fatalf("expected 75.0, got %v", verdict.ScorePercent)
	}
	if !verdict.Passed {
		t.Fatalf("exact pass line must pass")
	}
}

func TestGradeBelowPassLine(t *testing.T) {
	snapshot := []domain.AnswerSnapshot{
		snapshotItem("q1", []int{0}, []int{0}),
		snapshotItem("q2", []int{1}, []int{1}),
		snapshotItem("q3", []int{2}, []int{0}),
		snapshotItem("q4", []int{3}, nil),
	}
	verdict, _ := Grade(snapshot, 75)
	if verdict.ScorePercent != 50.0 {
		t.Fatalf("expected 50.0, got %v", verdict.ScorePercent)
	}
	if verdict.Passed {
		t.Fatalf("50%% must not pass a 75%% line")
	}
}

func TestGradeDeterministic(t *testing.T) {
	snapshot := []domain.AnswerSnapshot{
		snapshotItem("q1", []int{0, 2}, []int{0, 2}),
		snapshotItem("q2", []int{1}, []int{2}),
		snapshotItem("q3", []int{}, []int{}),
	}
	first, firstResults := Grade(snapshot, 66)
	for i := 0; i < 10; i++ {
		verdict, results := Grade(snapshot, 66)
		if verdict != first {
			t.Fatalf("verdict drifted on run %d: %+v vs %+v", i, verdict, first)
		}
		if !reflect.DeepEqual(results, firstResults) {
			t.Fatalf("results drifted on run %d", i)
		}
	}
}

func TestGradeRevealIsOneBased(t *testing.T) {
	_, results := Grade([]domain.AnswerSnapshot{
		snapshotItem("q1", []int{2, 0, 2}, []int{0, 2}),
	}, 0)
	if !reflect.DeepEqual(results[0].CorrectAnswer, []int{1, 3}) {
		t.Fatalf("expected display [1 3], got %v", results[0].CorrectAnswer)
	}
}

func TestGradeEmptySnapshot(t *testing.T) {
	verdict, _ := Grade(nil, 0)
	if verdict.ScorePercent != 0 || !verdict.Passed {
		t.Fatalf("empty snapshot with pass line 0: %+v", verdict)
	}
}
