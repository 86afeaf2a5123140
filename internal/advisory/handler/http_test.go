package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safinirasol/WellMind-IBM/internal/advisory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMailer struct {
	sent []advisory.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg advisory.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newRouter(mailer advisory.Mailer) *gin.Engine {
	r := gin.New()
	NewHandler(advisory.NewSender(mailer, nil), nil).Register(r.Group("/api"))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/employees/send-email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSend_Delivered(t *testing.T) {
	m := &fakeMailer{}
	w := post(newRouter(m), `{"employeeId":3,"employeeName":"Ana Lima","employeeEmail":"ana@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp sendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Delivered)
	assert.Equal(t, "Wellness email sent to Ana Lima", resp.Message)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "ana@example.com", m.sent[0].To)
	assert.Equal(t, advisory.Subject, m.sent[0].Subject)
}

func TestSend_SimulatedWithoutMailer(t *testing.T) {
	w := post(newRouter(nil), `{"employeeName":"Ana Lima","employeeEmail":"ana@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp sendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Delivered)
}

func TestSend_BadRequest(t *testing.T) {
	r := newRouter(&fakeMailer{})
	for name, body := range map[string]string{
		"missing email": `{"employeeId":3,"employeeName":"Ana Lima"}`,
		"blank email":   `{"employeeEmail":"   "}`,
		"not json":      `nope`,
	} {
		t.Run(name, func(t *testing.T) {
			w := post(r, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Employee email is required"}`, w.Body.String())
		})
	}
}

func TestSend_MailerFailure(t *testing.T) {
	w := post(newRouter(&fakeMailer{err: errors.New("dial tcp: refused")}), `{"employeeEmail":"ana@example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
}
