// Package aiscoring asks the AI scoring service for a burnout risk and falls back to the extended
// heuristic whenever the service is unconfigured or fails.
package aiscoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/scoring"
)

const (
	defaultTimeout = 10 * time.Second
	// defaultModelScore is assumed when the service response has no score field.
	defaultModelScore = 0.5
)

// Observer receives one call per Analyze with whether the AI service produced the score.
type Observer interface {
	ObserveExternal(integration string, delivered bool)
}

// Outcome is a scored questionnaire.
type Outcome struct {
	Score  int
	Label  string
	FromAI bool
}

// Client calls the AI scoring service.
type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewClient returns a client for the scoring endpoint at baseURL.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Model:      model,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type request struct {
	Inputs scoring.Answers `json:"inputs"`
	Model  string          `json:"model"`
}

// Score returns the service's score for answers mapped onto 0..100.
func (c *Client) Score(ctx context.Context, answers scoring.Answers) (int, error) {
	if c.APIKey == "" || c.BaseURL == "" {
		return 0, errors.New("aiscoring: service not configured")
	}
	raw, err := json.Marshal(request{Inputs: answers, Model: c.Model})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return 0, fmt.Errorf("aiscoring: request failed status=%d body=%s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return 0, errors.New("aiscoring: response is not valid JSON")
	}
	score := gjson.GetBytes(body, "score")
	value := defaultModelScore
	if score.Exists() {
		if score.Type != gjson.Number {
			return 0, fmt.Errorf("aiscoring: score is %s, want number", score.Type)
		}
		value = score.Float()
	}
	return scoring.Clamp(int(math.RoundToEven(value * 100))), nil
}

// Analyzer scores questionnaires, preferring the AI service.
type Analyzer struct {
	client   *Client
	log      *zap.Logger
	observer Observer
}

// NewAnalyzer returns an Analyzer. client may be nil to always use the heuristic.
func NewAnalyzer(client *Client, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{client: client, log: log.Named("aiscoring")}
}

// SetObserver registers o for service outcomes.
func (a *Analyzer) SetObserver(o Observer) {
	a.observer = o
}

// Analyze scores answers. It never fails.
func (a *Analyzer) Analyze(ctx context.Context, answers scoring.Answers) Outcome {
	if a.client != nil {
		score, err := a.client.Score(ctx, answers)
		if err == nil {
			a.observe(true)
			return Outcome{Score: score, Label: scoring.ExtendedLabel(score), FromAI: true}
		}
		a.log.Warn("ai scoring failed, using heuristic", zap.String("component", "ai_scoring"), zap.Error(err))
		a.observe(false)
	}
	score := scoring.Extended(answers)
	return Outcome{Score: score, Label: scoring.ExtendedLabel(score)}
}

func (a *Analyzer) observe(delivered bool) {
	if a.observer != nil {
		a.observer.ObserveExternal("ai_scoring", delivered)
	}
}
