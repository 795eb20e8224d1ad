package export

import (
	"strings"
	"testing"

	"github.com/abhisek/quizwizard/internal/quizgen"
)

func exportQuestions() []quizgen.Question {
	return []quizgen.Question{
		{
			ID:            1,
			Prompt:        "What is the capital of France?",
			Options:       []string{"Paris", "Lyon", "Nice", "Lille"},
			CorrectAnswer: "Paris",
			Explanation:   "Stated in the opening paragraph.",
			Difficulty:    quizgen.DifficultyEasy,
		},
	}
}

func TestAppsScript_RendersFormScript(t *testing.T) {
	script, err := AppsScript(exportQuestions(), Options{
		Topic:      "Geography",
		Difficulty: 4,
		SourceName: "atlas.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"function createQuizWizardQuiz()",
		`"QuizWizard: Geography"`,
		"Difficulty Level: 4/10",
		"Source: atlas.pdf",
		"form.setIsQuiz(true)",
		`"text": "What is the capital of France?"`,
		`"correct": "Paris"`,
		"item.setPoints(1)",
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("expected script to contain %q", want)
		}
	}
}

func TestAppsScript_Deterministic(t *testing.T) {
	opts := Options{Topic: "Geography", Difficulty: 4, SourceName: "atlas.pdf"}

	first, err := AppsScript(exportQuestions(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := AppsScript(exportQuestions(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected identical output for identical input")
	}
}

func TestAppsScript_DefaultsForEmptyMetadata(t *testing.T) {
	script, err := AppsScript(exportQuestions(), Options{Difficulty: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(script, `"QuizWizard: Generated Quiz"`) {
		t.Fatal("expected the generated-quiz title fallback")
	}
	if !strings.Contains(script, "Source: Uploaded Document") {
		t.Fatal("expected the uploaded-document source fallback")
	}
}

func TestAppsScript_EscapesQuotesInMetadata(t *testing.T) {
	script, err := AppsScript(exportQuestions(), Options{
		Topic:      `"Quoted" topic`,
		Difficulty: 5,
		SourceName: "notes\nwith newline.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(script, `\"Quoted\" topic`) {
		t.Fatal("expected double quotes escaped in the title")
	}
	if strings.Contains(script, "notes\nwith") {
		t.Fatal("expected newlines escaped in the source name")
	}
}

func TestAppsScript_EmptySetStillRenders(t *testing.T) {
	script, err := AppsScript(nil, Options{Difficulty: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(script, "var questions = []") {
		t.Fatal("expected an empty questions array")
	}
}
