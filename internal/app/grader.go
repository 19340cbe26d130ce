package app

import (
	"sort"

	"quizdesk-service/internal/domain"
)

// Grade compares a snapshot against each question's correct answer under set
// equality and derives the aggregate verdict. Pure function: no I/O, no
// mutation, and the same snapshot and passLine always produce the same
// verdict.
//
// A question counts as correct iff the normalized submitted answer equals the
// normalized correct answer; an empty submission is correct only when the
// correct answer is also empty.
func Grade(snapshot []domain.AnswerSnapshot, passLine int) (domain.Verdict, []domain.QuestionResult) {
	results := make([]domain.QuestionResult, 0, len(snapshot))
	correctCount := 0
	for _, item := range snapshot {
		correct := setsEqual(item.Answer, normalize(item.Question.CorrectAnswer))
		if correct {
			correctCount++
		}
		results = append(results, domain.QuestionResult{
			QuestionID:    item.Question.ID,
			Correct:       correct,
			CorrectAnswer: displayIndices(item.Question.CorrectAnswer),
			Commentary:    item.Question.Commentary,
		})
	}

	total := len(snapshot)
	score := 0.0
	if total > 0 {
		score = float64(correctCount) / float64(total) * 100
	}
	verdict := domain.Verdict{
		CorrectCount: correctCount,
		TotalCount:   total,
		ScorePercent: score,
		// Inclusive boundary: hitting the pass line exactly passes.
		Passed: score >= float64(passLine),
	}
	return verdict, results
}

// normalize returns a sorted, deduplicated copy of indices.
func normalize(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func setsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// displayIndices converts 0-based answer indices into the 1-based form shown
// to users, sorted ascending.
func displayIndices(indices []int) []int {
	normalized := normalize(indices)
	out := make([]int, len(normalized))
	for i, idx := range normalized {
		out[i] = idx + 1
	}
	return out
}
