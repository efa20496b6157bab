// Package scoring grades a finished attempt. It is a pure computation over
// the attempt's answer slots and the question bank's correctness flags; it
// performs no I/O and holds no state.
package scoring

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Slot is the scoring view of one answer record: which question it belongs
// to and which option index the user selected, if any.
type Slot struct {
	QuestionID     uuid.UUID
	SelectedOption *int
}

// Result is the outcome of grading an attempt.
type Result struct {
	// Correct holds the per-slot correctness flags, index-aligned with the
	// input slots.
	Correct    []bool
	Score      int
	Percentage int
	IsPassed   bool
}

// Grade scores an attempt. answerKey maps question id to per-option
// correctness flags as recorded in the question bank at submission time.
//
// A slot is correct only when it has a selection, its question still exists
// in the key, the selected index is within range, and the option at that
// index is flagged correct. Unselected slots and slots whose question has
// been deleted from the bank count as incorrect rather than failing the
// submission.
//
// Percentage is score/total scaled to 100 and rounded half away from zero
// (math.Round), matching the platform's documented rounding scheme. The
// pass threshold is inclusive: percentage == passingScore passes.
func Grade(slots []Slot, answerKey map[uuid.UUID][]bool, passingScore int) Result {
	res := Result{Correct: make([]bool, len(slots))}

	for i, slot := range slots {
		if slot.SelectedOption == nil {
			continue
		}
		flags, ok := answerKey[slot.QuestionID]
		if !ok {
			continue // question deleted since the attempt started
		}
		idx := *slot.SelectedOption
		if idx < 0 || idx >= len(flags) {
			continue
		}
		if flags[idx] {
			res.Correct[i] = true
			res.Score++
		}
	}

	total := len(slots)
	if total > 0 {
		res.Percentage = int(math.Round(float64(res.Score) / float64(total) * 100))
	}
	res.IsPassed = res.Percentage >= passingScore

	return res
}

// ElapsedMinutes returns the attempt duration for reporting, truncated to
// whole minutes.
func ElapsedMinutes(startedAt, completedAt time.Time) int {
	d := completedAt.Sub(startedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}
