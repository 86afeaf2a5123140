// Package audit computes a tamper-evident digest of each burnout result and publishes it to the ledger.
// Publishing is best-effort: when the ledger is unavailable a deterministic simulated reference is
// returned instead, and the caller never sees an error.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
)

// EventBurnoutScore is the event name carried in every ledger message.
const EventBurnoutScore = "burnout_score"

const defaultTimeout = 10 * time.Second

// ErrLedgerDisabled is returned by a Ledger that has no operator credentials.
var ErrLedgerDisabled = errors.New("audit: ledger credentials not configured")

// Ledger is the distributed-ledger client. Implementations must honour ctx cancellation.
type Ledger interface {
	// SubmitMessage appends message to the topic and returns the transaction id.
	SubmitMessage(ctx context.Context, topicID string, message []byte) (txID string, err error)
	// CreateFile stores contents in a new ledger file and returns its id.
	CreateFile(ctx context.Context, contents []byte) (fileID string, err error)
}

// Observer receives one call per Record with whether the ledger accepted the entry.
type Observer interface {
	ObserveExternal(integration string, delivered bool)
}

// Outcome is the result of recording one burnout result.
type Outcome struct {
	// Reference is stored on the result: topic:<topic>:<tx>, file:<file>, or simulate-<id>-<digest prefix>.
	Reference string
	// Delivered is true when the ledger accepted the entry.
	Delivered bool
	// Digest is the hex SHA-256 of the canonical record.
	Digest string
}

// Recorder implements the audit step of a submission.
type Recorder struct {
	ledger   Ledger
	topicID  string
	timeout  time.Duration
	log      *zap.Logger
	observer Observer
}

// NewRecorder returns a Recorder publishing through ledger. ledger may be nil, in which case every
// reference is simulated. When topicID is empty a ledger file holding the digest is created instead
// of a topic message. timeout bounds each ledger call; zero means 10s.
func NewRecorder(ledger Ledger, topicID string, timeout time.Duration, log *zap.Logger) *Recorder {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{ledger: ledger, topicID: topicID, timeout: timeout, log: log.Named("audit")}
}

// SetObserver registers o for delivery outcomes.
func (r *Recorder) SetObserver(o Observer) {
	r.observer = o
}

// Digest returns the hex SHA-256 of the canonical serialisation of rec.
func Digest(rec domain.Record) (string, error) {
	raw, err := Canonical(rec)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// SimulatedReference returns the deterministic fallback reference for a record id and digest.
func SimulatedReference(recordID int64, digest string) string {
	prefix := digest
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("simulate-%d-%s", recordID, prefix)
}

// Message returns the ledger message for rec: the event payload in fixed key order.
func Message(rec domain.Record, digest string) ([]byte, error) {
	return orderedJSON([]field{
		{"event", EventBurnoutScore},
		{"record_id", rec.ID},
		{"risk_label", rec.Label},
		{"risk_score", rec.RiskScore},
		{"hash", digest},
		{"ts", rec.SubmittedAt},
		{"employee_id", rec.EmployeeID},
	})
}

// Record digests rec and publishes it to the ledger. It never fails: any ledger error, timeout or
// missing configuration yields a simulated reference.
func (r *Recorder) Record(ctx context.Context, rec domain.Record) Outcome {
	digest, err := Digest(rec)
	if err != nil {
		// Record holds only strings and integers, so this is unreachable in practice.
		r.log.Error("digest failed", zap.Int64("record_id", rec.ID), zap.Error(err))
		return r.done(Outcome{Reference: SimulatedReference(rec.ID, "")})
	}
	out := Outcome{Reference: SimulatedReference(rec.ID, digest), Digest: digest}

	if r.ledger == nil {
		r.log.Debug("ledger not configured, simulating", zap.Int64("record_id", rec.ID))
		return r.done(out)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ref, err := r.publish(ctx, rec, digest)
	if err != nil {
		r.log.Warn("ledger publish failed, using simulated reference",
			zap.String("component", "ledger"),
			zap.Int64("record_id", rec.ID),
			zap.String("reference", out.Reference),
			zap.Error(err))
		return r.done(out)
	}
	out.Reference = ref
	out.Delivered = true
	r.log.Info("ledger entry recorded", zap.Int64("record_id", rec.ID), zap.String("reference", ref))
	return r.done(out)
}

func (r *Recorder) publish(ctx context.Context, rec domain.Record, digest string) (string, error) {
	if r.topicID != "" {
		msg, err := Message(rec, digest)
		if err != nil {
			return "", err
		}
		txID, err := r.ledger.SubmitMessage(ctx, r.topicID, msg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("topic:%s:%s", r.topicID, txID), nil
	}
	fileID, err := r.ledger.CreateFile(ctx, []byte(digest))
	if err != nil {
		return "", err
	}
	return "file:" + fileID, nil
}

func (r *Recorder) done(out Outcome) Outcome {
	if r.observer != nil {
		r.observer.ObserveExternal("ledger", out.Delivered)
	}
	return out
}
