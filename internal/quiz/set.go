// Package quiz holds the post-generation lifecycle of a question set:
// human-in-the-loop editing, answering, validation, and scoring.
package quiz

import "github.com/abhisek/quizwizard/internal/quizgen"

// Template values for questions created through Add.
var templateOptions = []string{"Option 1", "Option 2", "Option 3", "Option 4"}

const templatePrompt = "New Question"

// Set is a mutable, ordered question collection. A Set is owned by one
// interactive session and replaced wholesale on each successful generation.
// All operations are total: an absent id is a no-op, never an error.
type Set struct {
	questions []quizgen.Question
	nextID    int
}

// NewSet builds a Set around generated questions. The id arena starts past
// the highest existing id, so ids are never reused within a session even
// after deletions.
func NewSet(questions []quizgen.Question) *Set {
	qs := make([]quizgen.Question, len(questions))
	copy(qs, questions)

	next := 1
	for _, q := range qs {
		if q.ID >= next {
			next = q.ID + 1
		}
	}

	return &Set{questions: qs, nextID: next}
}

// Questions returns the questions in order. The slice is a copy; mutate
// through the Set's operations.
func (s *Set) Questions() []quizgen.Question {
	out := make([]quizgen.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Len returns the number of questions.
func (s *Set) Len() int {
	return len(s.questions)
}

// Get returns the question with the given id, or nil if absent.
func (s *Set) Get(id int) *quizgen.Question {
	if i := s.index(id); i >= 0 {
		q := s.questions[i]
		return &q
	}
	return nil
}

// UpdatePrompt replaces the question text.
func (s *Set) UpdatePrompt(id int, prompt string) {
	if i := s.index(id); i >= 0 {
		s.questions[i].Prompt = prompt
	}
}

// UpdateExplanation replaces the explanation.
func (s *Set) UpdateExplanation(id int, explanation string) {
	if i := s.index(id); i >= 0 {
		s.questions[i].Explanation = explanation
	}
}

// UpdateDifficulty replaces the difficulty tier.
func (s *Set) UpdateDifficulty(id int, d quizgen.Difficulty) {
	if i := s.index(id); i >= 0 {
		s.questions[i].Difficulty = d
	}
}

// UpdateOption replaces options[index]. If the old value at that index was
// the correct answer, the correct answer follows the edit: correctness is
// bound to the option's value, not its position, so editing the correct
// option never silently detaches the is-correct flag from it.
func (s *Set) UpdateOption(id, index int, newValue string) {
	i := s.index(id)
	if i < 0 || index < 0 || index >= len(s.questions[i].Options) {
		return
	}

	q := &s.questions[i]
	old := q.Options[index]
	q.Options[index] = newValue
	if q.CorrectAnswer == old {
		q.CorrectAnswer = newValue
	}
}

// SetCorrectAnswer marks the given option value as correct. The value is
// not checked for membership in the question's options; a value outside
// them makes the question unanswerable-correctly until edited again.
// Duplicate option text is likewise not rejected anywhere in the editor,
// a known limitation of value-bound correctness.
func (s *Set) SetCorrectAnswer(id int, optionValue string) {
	if i := s.index(id); i >= 0 {
		s.questions[i].CorrectAnswer = optionValue
	}
}

// Delete removes the question. Remaining ids are not renumbered.
func (s *Set) Delete(id int) {
	if i := s.index(id); i >= 0 {
		s.questions = append(s.questions[:i], s.questions[i+1:]...)
	}
}

// Add appends a template question with the next arena id and returns it.
func (s *Set) Add() quizgen.Question {
	q := quizgen.Question{
		ID:            s.nextID,
		Prompt:        templatePrompt,
		Options:       append([]string(nil), templateOptions...),
		CorrectAnswer: templateOptions[0],
		Difficulty:    quizgen.DifficultyMedium,
	}
	s.nextID++
	s.questions = append(s.questions, q)
	return q
}

func (s *Set) index(id int) int {
	for i, q := range s.questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}
