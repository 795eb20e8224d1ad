package quiz

import "math"

// Phase is the runner's authoritative state for scoring purposes.
type Phase int

const (
	// PhaseAnswering collects answers; submission has not succeeded yet.
	PhaseAnswering Phase = iota

	// PhaseSubmitted means a complete attempt has been submitted.
	PhaseSubmitted
)

// Runner is the state machine over a fixed question set: answer
// collection, submit validation, scoring, and reset. Editing mode is a
// display concern selected externally, but entering it invalidates any
// completed attempt. No operation on the runner can fail; an incomplete
// submit is a reported condition, not an error.
type Runner struct {
	set     *Set
	answers map[int]string
	invalid map[int]bool
	phase   Phase
	editing bool
}

// NewRunner starts an assessment attempt over the given set with no
// recorded answers.
func NewRunner(set *Set) *Runner {
	return &Runner{
		set:     set,
		answers: make(map[int]string),
		invalid: make(map[int]bool),
	}
}

// Phase returns the current phase.
func (r *Runner) Phase() Phase {
	return r.phase
}

// Editing reports whether the set is in edit mode.
func (r *Runner) Editing() bool {
	return r.editing
}

// Answer returns the recorded answer for a question and whether one exists.
func (r *Runner) Answer(id int) (string, bool) {
	v, ok := r.answers[id]
	return v, ok
}

// Invalid reports whether the question is flagged from a failed submit.
func (r *Runner) Invalid(id int) bool {
	return r.invalid[id]
}

// Select records the respondent's choice for a question and clears its
// validation flag. Ignored after submission or while editing.
func (r *Runner) Select(id int, value string) {
	if r.phase == PhaseSubmitted || r.editing {
		return
	}
	r.answers[id] = value
	delete(r.invalid, id)
}

// Submit validates that every question has an answer. When some are
// missing it returns their ids in set order, flags them, and stays in
// PhaseAnswering; the caller focuses the first one. When all are answered
// it transitions to PhaseSubmitted and returns nil.
func (r *Runner) Submit() []int {
	var missing []int
	for _, q := range r.set.Questions() {
		if _, ok := r.answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}

	if len(missing) > 0 {
		for _, id := range missing {
			r.invalid[id] = true
		}
		return missing
	}

	r.phase = PhaseSubmitted
	return nil
}

// Reset clears all answers and validation flags and returns to answering.
func (r *Runner) Reset() {
	r.answers = make(map[int]string)
	r.invalid = make(map[int]bool)
	r.phase = PhaseAnswering
}

// Score returns the percentage of questions answered correctly, rounded
// to the nearest integer. Correctness is value equality between the
// recorded answer and the question's correct answer. Meaningful once
// PhaseSubmitted.
func (r *Runner) Score() int {
	questions := r.set.Questions()
	if len(questions) == 0 {
		return 0
	}

	correct := 0
	for _, q := range questions {
		if r.answers[q.ID] == q.CorrectAnswer {
			correct++
		}
	}
	return int(math.Round(float64(correct) / float64(len(questions)) * 100))
}

// BeginEditing switches to edit mode. Editing invalidates any completed
// attempt: submitted status, answers, and validation flags are cleared.
func (r *Runner) BeginEditing() {
	r.editing = true
	r.phase = PhaseAnswering
	r.answers = make(map[int]string)
	r.invalid = make(map[int]bool)
}

// FinishEditing leaves edit mode and returns to answering.
func (r *Runner) FinishEditing() {
	r.editing = false
}
