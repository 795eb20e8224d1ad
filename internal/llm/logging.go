package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abhisek/quizwizard/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.record(ctx, data)
	return resp, err
}

// GenerateStream wraps the inner stream and records the event once the
// stream terminates, with whatever text was delivered before the end.
func (l *LoggingProvider) GenerateStream(ctx context.Context, req Request) (*Stream, error) {
	start := time.Now()

	inner, err := l.inner.GenerateStream(ctx, req)
	if err != nil {
		l.record(ctx, store.LLMRequestEventData{
			Provider:     l.inner.ModelID(),
			Model:        l.inner.ModelID(),
			Purpose:      PurposeFrom(ctx),
			LatencyMs:    time.Since(start).Milliseconds(),
			Success:      false,
			RequestBody:  serializeRequest(req),
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	out := newStream()
	go func() {
		defer inner.Close()
		var buf strings.Builder
		var streamErr error
		for {
			frag, err := inner.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				streamErr = err
				break
			}
			buf.WriteString(frag)
			if !out.push(frag) {
				break
			}
		}

		data := store.LLMRequestEventData{
			Provider:     l.inner.ModelID(),
			Model:        l.inner.ModelID(),
			Purpose:      PurposeFrom(ctx),
			LatencyMs:    time.Since(start).Milliseconds(),
			Success:      streamErr == nil,
			RequestBody:  serializeRequest(req),
			ResponseBody: buf.String(),
		}
		if streamErr != nil {
			data.ErrorMessage = streamErr.Error()
		}
		l.record(ctx, data)

		out.finish(streamErr)
	}()

	return out, nil
}

// GenerateImage records the event with the image bytes elided.
func (l *LoggingProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	ip, ok := l.inner.(ImageProvider)
	if !ok {
		return nil, &ErrImageUnsupported{Provider: l.inner.ModelID()}
	}

	start := time.Now()
	resp, err := ip.GenerateImage(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: fmt.Sprintf("[image %s]\n%s\n", req.Size, req.Prompt),
	}
	if resp != nil {
		data.Model = resp.Model
		data.ResponseBody = fmt.Sprintf("<image %s, %d bytes>", resp.MIMEType, len(resp.Data))
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.record(ctx, data)
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// record appends the event, warning instead of failing when logging breaks.
func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	if err := l.eventRepo.AppendLLMRequest(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", err)
	}
}

// serializeRequest builds a readable representation of the LLM request.
// Attachment bytes are elided; only their MIME type and size are kept.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		for _, a := range m.Attachments {
			fmt.Fprintf(&b, "<attachment %s, %d bytes>\n", a.MIMEType, len(a.Data))
		}
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
