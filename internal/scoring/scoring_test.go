package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func intPtr(n int) *int { return &n }

// fourQuestions builds a four-question answer key where option index 1 is
// the correct choice for every question.
func fourQuestions() ([]uuid.UUID, map[uuid.UUID][]bool) {
	ids := make([]uuid.UUID, 4)
	key := make(map[uuid.UUID][]bool, 4)
	for i := range ids {
		ids[i] = uuid.New()
		key[ids[i]] = []bool{false, true, false, false}
	}
	return ids, key
}

func TestGrade_PassBoundaryInclusive(t *testing.T) {
	ids, key := fourQuestions()

	// 2 of 4 correct at passing score 50 → exactly on the boundary.
	slots := []Slot{
		{QuestionID: ids[0], SelectedOption: intPtr(1)},
		{QuestionID: ids[1], SelectedOption: intPtr(1)},
		{QuestionID: ids[2], SelectedOption: intPtr(0)},
		{QuestionID: ids[3], SelectedOption: nil},
	}

	res := Grade(slots, key, 50)

	if res.Score != 2 {
		t.Errorf("Score = %d, want 2", res.Score)
	}
	if res.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", res.Percentage)
	}
	if !res.IsPassed {
		t.Error("IsPassed = false, want true (threshold is inclusive)")
	}
	want := []bool{true, true, false, false}
	for i, c := range res.Correct {
		if c != want[i] {
			t.Errorf("Correct[%d] = %v, want %v", i, c, want[i])
		}
	}
}

func TestGrade_BelowThresholdFails(t *testing.T) {
	ids, key := fourQuestions()

	slots := []Slot{
		{QuestionID: ids[0], SelectedOption: intPtr(1)},
		{QuestionID: ids[1], SelectedOption: intPtr(0)},
		{QuestionID: ids[2], SelectedOption: intPtr(2)},
		{QuestionID: ids[3], SelectedOption: intPtr(3)},
	}

	res := Grade(slots, key, 50)

	if res.Score != 1 || res.Percentage != 25 {
		t.Errorf("got score=%d percentage=%d, want 1/25", res.Score, res.Percentage)
	}
	if res.IsPassed {
		t.Error("IsPassed = true, want false")
	}
}

func TestGrade_SingleQuestion(t *testing.T) {
	qID := uuid.New()
	key := map[uuid.UUID][]bool{qID: {false, true, false, false}}

	tests := []struct {
		name       string
		selected   *int
		score      int
		percentage int
		passed     bool
	}{
		{"correct option", intPtr(1), 1, 100, true},
		{"wrong option", intPtr(0), 0, 0, false},
		{"no selection", nil, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Grade([]Slot{{QuestionID: qID, SelectedOption: tc.selected}}, key, 50)
			if res.Score != tc.score || res.Percentage != tc.percentage || res.IsPassed != tc.passed {
				t.Errorf("got score=%d percentage=%d passed=%v, want %d/%d/%v",
					res.Score, res.Percentage, res.IsPassed, tc.score, tc.percentage, tc.passed)
			}
		})
	}
}

func TestGrade_DeletedQuestionIsIncorrect(t *testing.T) {
	ids, key := fourQuestions()
	delete(key, ids[0]) // question removed from the bank mid-attempt

	slots := []Slot{
		{QuestionID: ids[0], SelectedOption: intPtr(1)},
		{QuestionID: ids[1], SelectedOption: intPtr(1)},
		{QuestionID: ids[2], SelectedOption: intPtr(1)},
		{QuestionID: ids[3], SelectedOption: intPtr(1)},
	}

	res := Grade(slots, key, 50)

	if res.Correct[0] {
		t.Error("slot for deleted question scored correct, want incorrect")
	}
	if res.Score != 3 || res.Percentage != 75 {
		t.Errorf("got score=%d percentage=%d, want 3/75", res.Score, res.Percentage)
	}
}

func TestGrade_OutOfRangeIndexIsIncorrect(t *testing.T) {
	qID := uuid.New()
	key := map[uuid.UUID][]bool{qID: {true, false}}

	for _, idx := range []int{-1, 2, 99} {
		res := Grade([]Slot{{QuestionID: qID, SelectedOption: intPtr(idx)}}, key, 50)
		if res.Score != 0 {
			t.Errorf("index %d: Score = %d, want 0", idx, res.Score)
		}
	}
}

func TestGrade_RoundingHalfUp(t *testing.T) {
	// 1 of 3 → 33.33 rounds to 33; 2 of 3 → 66.67 rounds to 67;
	// 1 of 8 → 12.5 rounds half away from zero to 13.
	tests := []struct {
		correct int
		total   int
		want    int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{0, 3, 0},
		{3, 3, 100},
	}

	for _, tc := range tests {
		key := make(map[uuid.UUID][]bool, tc.total)
		slots := make([]Slot, tc.total)
		for i := 0; i < tc.total; i++ {
			id := uuid.New()
			key[id] = []bool{true, false}
			slots[i] = Slot{QuestionID: id}
			if i < tc.correct {
				slots[i].SelectedOption = intPtr(0)
			}
		}

		res := Grade(slots, key, 50)
		if res.Percentage != tc.want {
			t.Errorf("%d/%d: Percentage = %d, want %d", tc.correct, tc.total, res.Percentage, tc.want)
		}
	}
}

func TestGrade_NoSlots(t *testing.T) {
	res := Grade(nil, map[uuid.UUID][]bool{}, 50)
	if res.Score != 0 || res.Percentage != 0 {
		t.Errorf("got score=%d percentage=%d, want 0/0", res.Score, res.Percentage)
	}
}

func TestElapsedMinutes_Truncates(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{59 * time.Second, 0},
		{60 * time.Second, 1},
		{9*time.Minute + 59*time.Second, 9},
		{10 * time.Minute, 10},
		{-1 * time.Minute, 0},
	}

	for _, tc := range tests {
		if got := ElapsedMinutes(start, start.Add(tc.elapsed)); got != tc.want {
			t.Errorf("ElapsedMinutes(+%v) = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}
