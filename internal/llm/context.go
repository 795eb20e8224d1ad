package llm

import "context"

// Purpose labels recorded with each event in the request log. Every call
// path through this package tags its context with one of these.
const (
	PurposeQuizGen = "quiz-gen"
	PurposeChat    = "chat"
	PurposeImage   = "image-gen"
)

type purposeKey struct{}

// WithPurpose tags ctx with the purpose label for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose label on ctx. Calls made outside the
// quiz-gen, chat, and image paths are logged as "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}
