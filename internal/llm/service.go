package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ailife/internal/debug"
	"ailife/internal/observability"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// Service talks to the OpenRouter chat-completions API.
type Service struct {
	client *openai.Client
	apiKey string
	debug  *debug.Logger
	tracer trace.Tracer
}

func NewService(apiKey string, debugLogger *debug.Logger) *Service {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(openRouterBaseURL),
	)
	return &Service{
		client: &client,
		apiKey: apiKey,
		debug:  debugLogger,
		tracer: otel.Tracer("llm-service"),
	}
}

// ChatRequest is a single system+user exchange. Temperature comes from the
// play mode: 0.9 for free-form lives, 0.7 otherwise.
type ChatRequest struct {
	Model       string
	System      string
	User        string
	Temperature float64
}

// Complete issues one blocking chat completion and returns the first
// choice's raw content, which the extractor then digs the JSON out of.
func (s *Service) Complete(ctx context.Context, req ChatRequest) (string, error) {
	ctx, span := s.tracer.Start(ctx, "llm.complete",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(observability.GenAIAttributes("openrouter", req.Model, req.Temperature)...),
	)
	defer span.End()

	start := time.Now()
	s.debug.Printf("LLM completion - model: %s, temp: %.1f, system prompt length: %d",
		req.Model, req.Temperature, len(req.System))

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		span.RecordError(err)
		s.debug.Printf("LLM completion error: %v", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no completion choices returned")
		span.RecordError(err)
		return "", err
	}

	content := resp.Choices[0].Message.Content
	span.SetAttributes(
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.CompletionTokens),
		attribute.Int64("response_time_ms", time.Since(start).Milliseconds()),
	)
	s.debug.Printf("LLM completion response length: %d, tokens: %d/%d, duration: %v",
		len(content), resp.Usage.PromptTokens, resp.Usage.CompletionTokens, time.Since(start))

	return content, nil
}

// CompleteStream opens a streaming completion. Deltas arrive as SSE chunks;
// ReadStreamChunks reassembles them in order.
func (s *Service) CompleteStream(ctx context.Context, req ChatRequest) *ssestream.Stream[openai.ChatCompletionChunk] {
	s.debug.Printf("LLM stream - model: %s, prompt length: %d", req.Model, len(req.User))
	return s.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
	})
}

// VerifyKey checks the credential against OpenRouter's key endpoint. The
// openai-go SDK has no binding for this route, so it is a plain GET.
func (s *Service) VerifyKey(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openRouterBaseURL+"/auth/key", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(s.apiKey))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("key verification failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("invalid API key (status %d)", resp.StatusCode)
	}
	return nil
}
