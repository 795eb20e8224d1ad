package quizgen

import "github.com/abhisek/quizwizard/internal/llm"

// QuestionSetSchema defines the JSON schema for the Formatter stage.
// Only this final stage is schema-constrained; the earlier stages produce
// free text that stays in the session context unchecked.
var QuestionSetSchema = &llm.Schema{
	Name:        "question-set",
	Description: "The final verified set of multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "Sequential question number starting at 1",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 answer options",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "Must match one of the options exactly",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief explanation referencing the source text",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"Easy", "Medium", "Hard"},
						},
					},
					"required": []any{"id", "question", "options", "correctAnswer", "explanation", "difficulty"},
				},
			},
		},
		"required": []any{"questions"},
	},
}
