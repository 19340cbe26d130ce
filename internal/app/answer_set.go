package app

import (
	"sort"

	"quizdesk-service/internal/domain"
)

// AnswerSet holds the choice indices currently selected for one question.
// True set semantics: toggling an index on twice equals once, toggling an
// absent index off is a no-op.
type AnswerSet struct {
	choices map[int]struct{}
	size    int // len(question.Selections), fixes the valid index range
}

// NewAnswerSet returns an empty set for a question with size selections.
func NewAnswerSet(size int) *AnswerSet {
	return &AnswerSet{choices: make(map[int]struct{}), size: size}
}

// Toggle inserts choiceIndex when selected is true and removes it otherwise.
func (a *AnswerSet) Toggle(choiceIndex int, selected bool) error {
	if choiceIndex < 0 || choiceIndex >= a.size {
		return domain.ErrInvalidIndex
	}
	if selected {
		a.choices[choiceIndex] = struct{}{}
	} else {
		delete(a.choices, choiceIndex)
	}
	return nil
}

// Normalized returns the members sorted ascending. The map representation
// cannot hold duplicates, so dedup falls out of the type.
func (a *AnswerSet) Normalized() []int {
	out := make([]int, 0, len(a.choices))
	for idx := range a.choices {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Len reports how many choices are currently selected.
func (a *AnswerSet) Len() int {
	return len(a.choices)
}
