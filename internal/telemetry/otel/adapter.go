package otel

import (
	"context"
	"encoding/json"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/safinirasol/WellMind-IBM/internal/telemetry"
	"github.com/safinirasol/WellMind-IBM/internal/telemetry/domain"
)

// NewEventEmitter returns an EventEmitter that sends events as OTel log records via the given LoggerProvider.
// If provider is nil, returns a no-op emitter.
func NewEventEmitter(provider *sdklog.LoggerProvider) telemetry.EventEmitter {
	if provider == nil {
		return noopEmitter{}
	}
	return &otelEmitter{logger: provider.Logger("wellmind.events")}
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, *domain.Event) error { return nil }

type otelEmitter struct {
	logger otellog.Logger
}

// Emit converts the event to an OTel log record with the JSON event as body.
func (e *otelEmitter) Emit(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	rec := otellog.Record{}
	rec.SetTimestamp(event.CreatedAt)
	if rec.Timestamp().IsZero() {
		rec.SetTimestamp(time.Now().UTC())
	}
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetBody(otellog.BytesValue(body))
	rec.AddAttributes(
		otellog.String("event_id", event.ID),
		otellog.String("event_type", event.EventType),
		otellog.String("source", event.Source),
		otellog.Int64("employee_id", event.EmployeeID),
		otellog.Int64("result_id", event.ResultID),
		otellog.String("label", event.Label),
		otellog.Int("score", event.Score),
	)
	e.logger.Emit(ctx, rec)
	return nil
}
