package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/0xcro3dile/memurbot-go/internal/domain/entities"
)

// fakeAssistant implements Assistant for testing
type fakeAssistant struct {
	res   entities.Resolution
	asked []string
}

func (f *fakeAssistant) Explain(ctx context.Context, question string) entities.Resolution {
	f.asked = append(f.asked, question)
	return f.res
}

func (f *fakeAssistant) KnowledgeSize() int { return 2 }

func newTestServer(t *testing.T, a *fakeAssistant) http.Handler {
	t.Helper()
	return NewServer(a, ":0", zaptest.NewLogger(t)).Handler()
}

func TestHandleAsk_JSON(t *testing.T) {
	a := &fakeAssistant{res: entities.Resolution{Text: "10 gün", Found: true, Source: entities.SourceLocal, Score: 0.98}}
	h := newTestServer(t, a)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":" Devamsızlık hakkım? "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body askResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "10 gün", body.Answer)
	assert.True(t, body.Found)
	assert.Equal(t, "local", body.Source)
	assert.Equal(t, []string{"Devamsızlık hakkım?"}, a.asked)
}

func TestHandleAsk_Form(t *testing.T) {
	a := &fakeAssistant{res: entities.Resolution{Source: entities.SourceNone}}
	h := newTestServer(t, a)

	form := url.Values{"question": {"kantin"}}
	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body askResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Found)
	assert.Equal(t, "none", body.Source)
}

func TestHandleAsk_Rejects(t *testing.T) {
	a := &fakeAssistant{}
	h := newTestServer(t, a)

	cases := []struct {
		method, body string
		want         int
	}{
		{http.MethodGet, "", http.StatusMethodNotAllowed},
		{http.MethodPost, `{"question":"   "}`, http.StatusBadRequest},
		{http.MethodPost, `{"question":`, http.StatusBadRequest},
	}
	for _, c := range cases {
		req := httptest.NewRequest(c.method, "/api/ask", strings.NewReader(c.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, c.want, rec.Code, "%s %q", c.method, c.body)
	}
	assert.Empty(t, a.asked)
}

func TestHandleHealthAndKnowledge(t *testing.T) {
	h := newTestServer(t, &fakeAssistant{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/knowledge", nil))
	assert.JSONEq(t, `{"entries":2}`, rec.Body.String())
}

func TestHandleIndex(t *testing.T) {
	h := newTestServer(t, &fakeAssistant{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Okul Memur Botu")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
