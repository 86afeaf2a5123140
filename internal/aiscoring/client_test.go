package aiscoring

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/safinirasol/WellMind-IBM/internal/scoring"
)

func TestAnalyze_NoClientUsesHeuristic(t *testing.T) {
	out := NewAnalyzer(nil, nil).Analyze(context.Background(), scoring.Answers{})
	if out.FromAI {
		t.Error("FromAI should be false")
	}
	if out.Score != 65 || out.Label != scoring.LabelHigh {
		t.Errorf("Outcome = %+v, want 65 High", out)
	}
}

func TestAnalyze_Service(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantScore int
		wantLabel string
	}{
		{"score", `{"score": 0.87}`, 87, scoring.LabelUrgent},
		{"missing score defaults", `{"model": "x"}`, 50, scoring.LabelMedium},
		{"nested fields ignored", `{"score": 0.2, "details": {"score": 0.9}}`, 20, scoring.LabelLow},
		{"above range clamps", `{"score": 1.7}`, 100, scoring.LabelUrgent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer key" {
					t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
				}
				b, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(b, &got)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			a := NewAnalyzer(NewClient("key", srv.URL, "burnout-v2", time.Second), nil)
			out := a.Analyze(context.Background(), scoring.Answers{WorkHours: scoring.Num(50)})
			if !out.FromAI {
				t.Fatal("FromAI should be true")
			}
			if out.Score != tt.wantScore || out.Label != tt.wantLabel {
				t.Errorf("Outcome = %+v, want %d %s", out, tt.wantScore, tt.wantLabel)
			}
			if got["model"] != "burnout-v2" {
				t.Errorf("model = %v", got["model"])
			}
			inputs, _ := got["inputs"].(map[string]interface{})
			if inputs["work_hours"] != float64(50) {
				t.Errorf("inputs = %v", got["inputs"])
			}
		})
	}
}

func TestAnalyze_ServiceFailureFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("{oops")) }},
		{"score not a number", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"score":"high"}`)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			obs := &observer{}
			a := NewAnalyzer(NewClient("key", srv.URL, "m", time.Second), nil)
			a.SetObserver(obs)
			out := a.Analyze(context.Background(), scoring.Answers{})
			if out.FromAI {
				t.Error("FromAI should be false")
			}
			if out.Score != 65 {
				t.Errorf("Score = %d, want heuristic 65", out.Score)
			}
			if obs.failed != 1 {
				t.Errorf("observer failed = %d, want 1", obs.failed)
			}
		})
	}
}

type observer struct{ ok, failed int }

func (o *observer) ObserveExternal(integration string, delivered bool) {
	if delivered {
		o.ok++
	} else {
		o.failed++
	}
}
