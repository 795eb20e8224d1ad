package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/quizwizard/internal/ingest"
	"github.com/abhisek/quizwizard/internal/llm"
)

// GenerationError is the single coarse-grained failure for a pipeline run.
// Whatever stage fails, the whole run fails with one error wrapping the
// cause, and no partial question set is ever returned.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed at the %s stage: %v (the document may be too large or complex for the agent pipeline)", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Pipeline drives the four-stage agent workflow over a single session.
type Pipeline struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Pipeline with the given provider and config.
func New(provider llm.Provider, cfg Config) *Pipeline {
	return &Pipeline{provider: provider, cfg: cfg}
}

// questionSetOutput is the raw Formatter-stage payload.
type questionSetOutput struct {
	Questions []Question `json:"questions"`
}

// Generate transforms a source document into a validated question set.
//
// It opens a fresh session seeded with the document, then runs the four
// stages strictly in order: Reader extracts facts, Teacher drafts
// questions, Critic verifies them against the source, Formatter renders
// the final schema-constrained payload. The first three stages are plain
// text and are never parsed; each stage's output becomes context for the
// next regardless of quality. Only the final payload's shape is checked.
func (p *Pipeline) Generate(ctx context.Context, doc *ingest.Document, params Params) ([]Question, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)
	log := p.cfg.Logger.With().Str("document", doc.Name).Int("count", params.Count).Logger()

	// A fresh session per run: context never bleeds between attempts.
	session := llm.Open(p.provider, llm.SessionOptions{
		System: systemDirective,
		Seed: []llm.Message{
			{
				Role:    llm.RoleUser,
				Content: seedUserText,
				Attachments: []llm.Attachment{
					{MIMEType: doc.MIMEType, Data: doc.Data},
				},
			},
			{Role: llm.RoleAssistant, Content: seedModelText},
		},
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	})

	stages := []struct {
		name   string
		prompt string
	}{
		{"reader", readerPrompt(params)},
		{"teacher", teacherPrompt(params)},
		{"critic", criticPrompt(params)},
	}
	for _, stage := range stages {
		log.Info().Str("stage", stage.name).Msg("running agent stage")
		if _, err := session.Send(ctx, stage.prompt); err != nil {
			return nil, &GenerationError{Stage: stage.name, Err: err}
		}
	}

	log.Info().Str("stage", "formatter").Msg("running agent stage")
	raw, err := session.SendSchema(ctx, formatterPrompt(params), QuestionSetSchema)
	if err != nil {
		return nil, &GenerationError{Stage: "formatter", Err: err}
	}

	var out questionSetOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &GenerationError{Stage: "formatter", Err: fmt.Errorf("parse question set: %w", err)}
	}

	log.Info().Int("questions", len(out.Questions)).Msg("generation complete")
	return out.Questions, nil
}
