package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizwizard/internal/quizgen"
)

func sampleQuestions() []quizgen.Question {
	return []quizgen.Question{
		{
			ID:            1,
			Prompt:        "What is the capital of France?",
			Options:       []string{"Paris", "Lyon", "Nice", "Lille"},
			CorrectAnswer: "Paris",
			Explanation:   "Stated in the opening paragraph.",
			Difficulty:    quizgen.DifficultyEasy,
		},
		{
			ID:            2,
			Prompt:        "Which river crosses Paris?",
			Options:       []string{"Loire", "Seine", "Rhone", "Garonne"},
			CorrectAnswer: "Seine",
			Difficulty:    quizgen.DifficultyMedium,
		},
	}
}

func TestSet_UpdateOptionCorrectAnswerFollowsEdit(t *testing.T) {
	s := NewSet(sampleQuestions())

	// Editing the currently correct option rebinds correctness to the new
	// value.
	s.UpdateOption(1, 0, "Paris (capital)")

	q := s.Get(1)
	require.NotNil(t, q)
	assert.Equal(t, "Paris (capital)", q.Options[0])
	assert.Equal(t, "Paris (capital)", q.CorrectAnswer)
}

func TestSet_UpdateOptionDistractorLeavesCorrectAnswer(t *testing.T) {
	s := NewSet(sampleQuestions())

	s.UpdateOption(1, 1, "Marseille")

	q := s.Get(1)
	require.NotNil(t, q)
	assert.Equal(t, "Marseille", q.Options[1])
	assert.Equal(t, "Paris", q.CorrectAnswer)
}

func TestSet_UpdateOptionOutOfRangeIsNoOp(t *testing.T) {
	s := NewSet(sampleQuestions())

	s.UpdateOption(1, 4, "x")
	s.UpdateOption(1, -1, "x")
	s.UpdateOption(99, 0, "x")

	q := s.Get(1)
	require.NotNil(t, q)
	assert.Equal(t, []string{"Paris", "Lyon", "Nice", "Lille"}, q.Options)
}

func TestSet_AddUsesArenaID(t *testing.T) {
	s := NewSet([]quizgen.Question{
		{ID: 1, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		{ID: 3, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
		{ID: 5, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
	})

	added := s.Add()
	assert.Equal(t, 6, added.ID)
	assert.Equal(t, "New Question", added.Prompt)
	assert.Equal(t, []string{"Option 1", "Option 2", "Option 3", "Option 4"}, added.Options)
	assert.Equal(t, "Option 1", added.CorrectAnswer)
	assert.Empty(t, added.Explanation)
	assert.Equal(t, quizgen.DifficultyMedium, added.Difficulty)
}

func TestSet_AddOnEmptySetStartsAtOne(t *testing.T) {
	s := NewSet(nil)
	added := s.Add()
	assert.Equal(t, 1, added.ID)
	assert.Equal(t, 1, s.Len())
}

func TestSet_IDsNeverReusedAfterDelete(t *testing.T) {
	s := NewSet(sampleQuestions())

	s.Delete(2)
	require.Equal(t, 1, s.Len())

	added := s.Add()
	assert.Equal(t, 3, added.ID, "deleted ids must not be reissued")

	// Remaining questions keep their original ids.
	assert.NotNil(t, s.Get(1))
	assert.Nil(t, s.Get(2))
}

func TestSet_DeleteAbsentIsNoOp(t *testing.T) {
	s := NewSet(sampleQuestions())
	s.Delete(42)
	assert.Equal(t, 2, s.Len())
}

func TestSet_SetCorrectAnswerIsUnchecked(t *testing.T) {
	s := NewSet(sampleQuestions())

	s.SetCorrectAnswer(1, "Lyon")
	assert.Equal(t, "Lyon", s.Get(1).CorrectAnswer)

	// A value outside the options is accepted as-is.
	s.SetCorrectAnswer(1, "Bordeaux")
	assert.Equal(t, "Bordeaux", s.Get(1).CorrectAnswer)
}

func TestSet_FieldUpdates(t *testing.T) {
	s := NewSet(sampleQuestions())

	s.UpdatePrompt(2, "Which river flows through Paris?")
	s.UpdateExplanation(2, "See the geography section.")
	s.UpdateDifficulty(2, quizgen.DifficultyHard)

	q := s.Get(2)
	require.NotNil(t, q)
	assert.Equal(t, "Which river flows through Paris?", q.Prompt)
	assert.Equal(t, "See the geography section.", q.Explanation)
	assert.Equal(t, quizgen.DifficultyHard, q.Difficulty)
}

func TestSet_QuestionsReturnsCopy(t *testing.T) {
	s := NewSet(sampleQuestions())

	qs := s.Questions()
	qs[0].Prompt = "mutated"

	assert.Equal(t, "What is the capital of France?", s.Get(1).Prompt)
}
