package quizgen

import "fmt"

// Difficulty is the tier assigned to a finished question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Question is a generated multiple-choice question.
type Question struct {
	// ID is unique within a question set and never reused after deletion.
	ID int `json:"id"`

	// Prompt is the question text shown to the respondent.
	Prompt string `json:"question"`

	// Options holds exactly 4 distinct choices in display order.
	Options []string `json:"options"`

	// CorrectAnswer equals one of Options by value. Correctness is bound
	// to the option text, not its position.
	CorrectAnswer string `json:"correctAnswer"`

	// Explanation is a short rationale referencing the source text.
	// May be empty.
	Explanation string `json:"explanation"`

	// Difficulty is the tier this question was written for.
	Difficulty Difficulty `json:"difficulty"`
}

// Params are the generation parameters for one pipeline run. Immutable
// once the run starts.
type Params struct {
	// Topic focuses extraction. Empty means a general overview.
	Topic string

	// Difficulty is the requested level, 1 (easiest) to 10 (hardest).
	Difficulty int

	// Count is the number of questions to produce, 1 to 20.
	Count int
}

// Validate checks parameter ranges before a run starts.
func (p Params) Validate() error {
	if p.Difficulty < 1 || p.Difficulty > 10 {
		return fmt.Errorf("difficulty must be between 1 and 10, got %d", p.Difficulty)
	}
	if p.Count < 1 || p.Count > 20 {
		return fmt.Errorf("question count must be between 1 and 20, got %d", p.Count)
	}
	return nil
}
