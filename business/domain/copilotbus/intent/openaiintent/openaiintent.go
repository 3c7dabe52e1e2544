// Package openaiintent implements the copilot recognizer on top of an
// OpenAI compatible chat completions API.
package openaiintent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jcpaschoal/wertvoll-dispo/business/domain/copilotbus"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/otel"
	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4-turbo-preview"

// ErrEmptyResponse is returned when the service answers without a choice.
var ErrEmptyResponse = errors.New("intent service returned no choices")

// Config holds the settings for the recognizer.
type Config struct {
	Log              *logger.Logger
	APIKey           string
	BaseURL          string
	Model            string
	HTTPClient       *http.Client
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Recognizer asks the chat completions API to choose a tool.
type Recognizer struct {
	log    *logger.Logger
	client *openai.Client
	model  string
	cb     *gobreaker.CircuitBreaker
}

// New constructs a recognizer. After FailureThreshold consecutive failures
// the breaker fails calls immediately for OpenTimeout. Calls abandoned by
// their caller do not count as failures.
func New(cfg Config) *Recognizer {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	// HTTPClient is an interface in the openai config; a nil *http.Client
	// must not be stored in it.
	oc.HTTPClient = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	openTimeout := cfg.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	log := cfg.Log

	st := gobreaker.Settings{
		Name:    "intent-service",
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn(context.Background(), "openaiintent: breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Recognizer{
		log:    log,
		client: openai.NewClientWithConfig(oc),
		model:  model,
		cb:     gobreaker.NewCircuitBreaker(st),
	}
}

// Recognize implements copilotbus.Recognizer.
func (r *Recognizer) Recognize(ctx context.Context, req copilotbus.IntentRequest) (copilotbus.Decision, error) {
	ctx, span := otel.AddSpan(ctx, "business.copilotbus.openaiintent.recognize", attribute.String("model", r.model))
	defer span.End()

	creq := toChatRequest(r.model, req)

	v, err := r.cb.Execute(func() (any, error) {
		return r.client.CreateChatCompletion(ctx, creq)
	})
	if err != nil {
		return copilotbus.Decision{}, fmt.Errorf("chat completion: %w", err)
	}

	resp := v.(openai.ChatCompletionResponse)

	return toDecision(resp)
}

// =============================================================================

func toChatRequest(model string, req copilotbus.IntentRequest) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Turns)+1)

	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.System,
	})

	for _, t := range req.Turns {
		role := openai.ChatMessageRoleUser
		if t.Role == copilotbus.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}

		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    role,
			Content: t.Content,
		})
	}

	tools := make([]openai.Tool, len(req.Tools))
	for i, t := range req.Tools {
		tools[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}

	return openai.ChatCompletionRequest{
		Model:      model,
		Messages:   msgs,
		Tools:      tools,
		ToolChoice: "auto",
	}
}

func toDecision(resp openai.ChatCompletionResponse) (copilotbus.Decision, error) {
	if len(resp.Choices) == 0 {
		return copilotbus.Decision{}, ErrEmptyResponse
	}

	msg := resp.Choices[0].Message

	d := copilotbus.Decision{
		Text: msg.Content,
	}

	for _, tc := range msg.ToolCalls {
		if tc.Type != "" && tc.Type != openai.ToolTypeFunction {
			continue
		}

		d.Calls = append(d.Calls, copilotbus.Invocation{
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return d, nil
}
