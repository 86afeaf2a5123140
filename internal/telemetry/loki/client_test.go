package loki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestPushEventJSON(t *testing.T) {
	var got PushRequest
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	raw := []byte(`{"id":"e1","event_type":"survey_submitted","source":"wellmind-api","label":"High","department":"Customer Success","employee_id":3,"created_at":"2025-03-01T09:30:00Z"}`)
	if err := NewClient(srv.URL+"/").PushEventJSON(context.Background(), raw); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}
	if path != "/loki/api/v1/push" {
		t.Errorf("path = %q", path)
	}
	if len(got.Streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(got.Streams))
	}
	s := got.Streams[0]
	want := map[string]string{
		"job": "wellmind", "event_type": "survey_submitted", "source": "wellmind-api",
		"risk_label": "High", "department": "Customer_Success",
	}
	for k, v := range want {
		if s.Stream[k] != v {
			t.Errorf("label %s = %q, want %q", k, s.Stream[k], v)
		}
	}
	ts := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC).UnixNano()
	if s.Values[0][0] != strconv.FormatInt(ts, 10) || s.Values[0][1] != string(raw) {
		t.Errorf("values = %v", s.Values)
	}
}

func TestPushEventJSON_InvalidJSONStillPushed(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).PushEventJSON(context.Background(), []byte("not json")); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}
	if len(got.Streams) != 1 || got.Streams[0].Values[0][1] != "not json" || len(got.Streams[0].Stream) != 1 {
		t.Errorf("request = %+v", got)
	}
}

func TestPushEvent_Errors(t *testing.T) {
	if err := NewClient("").PushEvent(context.Background(), time.Now(), "x", nil); err == nil {
		t.Error("PushEvent should fail without a base URL")
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "entry out of order", http.StatusBadRequest)
	}))
	defer srv.Close()
	if err := NewClient(srv.URL).PushEvent(context.Background(), time.Now(), "x", nil); err == nil {
		t.Error("PushEvent should fail on non-2xx")
	}
}
