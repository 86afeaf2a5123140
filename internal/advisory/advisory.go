// Package advisory sends wellness advisory emails to employees flagged for burnout risk.
package advisory

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"

	"go.uber.org/zap"
)

// Subject is the subject line of every advisory.
const Subject = "Wellness Check: Burnout Risk Advisory"

// ErrEmailRequired is returned when a request has no recipient address.
var ErrEmailRequired = errors.New("employee email is required")

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Observer receives delivery outcomes.
type Observer interface {
	ObserveExternal(integration string, delivered bool)
}

// Request identifies the employee to advise.
type Request struct {
	EmployeeID    int64  `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	EmployeeEmail string `json:"employeeEmail"`
}

// Outcome reports whether the advisory left through a real mailer.
type Outcome struct {
	Recipient string
	Delivered bool
}

var body = template.Must(template.New("advisory").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">VorteX Wellness Advisory</h2>
  <p>Dear {{.}},</p>
  <p>Our wellness monitoring system has detected signs of potential burnout risk.</p>
  <p>We care about your wellbeing and want to ensure you have the support you need.</p>
  <div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <h3>Recommended Actions:</h3>
    <ul>
      <li>Consider taking regular breaks during work hours</li>
      <li>Utilize your paid time off</li>
      <li>Reach out to HR or your manager to discuss workload</li>
      <li>Explore our employee assistance program</li>
    </ul>
  </div>
  <p>Please don't hesitate to contact HR if you'd like to discuss this further.</p>
  <p>Best regards,<br>VorteX Wellness Team</p>
</div>
`))

// Render returns the advisory HTML addressed to name. The name is HTML-escaped.
func Render(name string) (string, error) {
	var buf bytes.Buffer
	if err := body.Execute(&buf, name); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Sender sends advisories through a Mailer, or logs a simulated send when none is configured.
type Sender struct {
	mailer   Mailer
	log      *zap.Logger
	observer Observer
}

// NewSender returns a Sender. mailer may be nil.
func NewSender(mailer Mailer, log *zap.Logger) *Sender {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sender{mailer: mailer, log: log.Named("advisory")}
}

// SetObserver registers o for delivery outcomes.
func (s *Sender) SetObserver(o Observer) {
	s.observer = o
}

// Send emails the advisory for req. Mailer failures are returned; a missing mailer is a simulated send.
func (s *Sender) Send(ctx context.Context, req Request) (Outcome, error) {
	to := strings.TrimSpace(req.EmployeeEmail)
	if to == "" {
		return Outcome{}, ErrEmailRequired
	}
	name := strings.TrimSpace(req.EmployeeName)
	if name == "" {
		name = "colleague"
	}
	html, err := Render(name)
	if err != nil {
		return Outcome{}, err
	}

	if s.mailer == nil {
		s.log.Info("mailer not configured, advisory simulated",
			zap.Int64("employee_id", req.EmployeeID),
			zap.String("to", to))
		s.observe(false)
		return Outcome{Recipient: to}, nil
	}
	if err := s.mailer.Send(ctx, Message{To: to, Subject: Subject, HTML: html}); err != nil {
		s.log.Warn("advisory send failed", zap.Int64("employee_id", req.EmployeeID), zap.Error(err))
		return Outcome{}, err
	}
	s.log.Info("advisory sent", zap.Int64("employee_id", req.EmployeeID), zap.String("to", to))
	s.observe(true)
	return Outcome{Recipient: to, Delivered: true}, nil
}

func (s *Sender) observe(delivered bool) {
	if s.observer != nil {
		s.observer.ObserveExternal("email", delivered)
	}
}
