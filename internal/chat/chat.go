// Package chat answers HR care questions through an OpenAI-compatible chat completion API.
package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// SystemPrompt sets the assistant's persona and answer format.
const SystemPrompt = "You are a helpful HR care assistant. Provide a concise, user-friendly answer formatted in Markdown. " +
	"Use bullets, bold for emphasis, and short sentences. Do not include raw JSON or metadata."

// maxHistory bounds the prior turns forwarded with each message.
const maxHistory = 20

var (
	// ErrEmptyMessage is returned for a blank user message.
	ErrEmptyMessage = errors.New("chat: message is required")
	// ErrRateLimited is returned when the provider throttles the request.
	ErrRateLimited = errors.New("chat: rate limited")
)

var rateLimitPattern = regexp.MustCompile(`(?i)rate limit`)

// Turn is one prior message in the conversation. Role is "user" or "assistant".
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Assistant sends conversations to the chat model.
type Assistant struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

// NewAssistant returns an Assistant for the API at baseURL. An empty baseURL uses the OpenAI default.
func NewAssistant(apiKey, baseURL, model string, timeout time.Duration, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &Assistant{client: openai.NewClientWithConfig(cfg), model: model, log: log.Named("chat")}
}

// Reply returns the model's answer to message given the earlier turns.
func (a *Assistant) Reply(ctx context.Context, message string, history []Turn) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	req := openai.ChatCompletionRequest{Model: a.model, Messages: buildMessages(message, history)}
	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if isRateLimited(err) {
			a.log.Warn("chat provider rate limited", zap.Error(err))
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		a.log.Error("chat completion failed", zap.String("model", a.model), zap.Error(err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(message string, history []Turn) []openai.ChatCompletionMessage {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt})
	for _, t := range history {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		role := openai.ChatMessageRoleUser
		if t.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})
}

func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	return rateLimitPattern.MatchString(err.Error())
}
