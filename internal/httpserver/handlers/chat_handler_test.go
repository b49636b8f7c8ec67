package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistant struct {
	answerFn func(ctx context.Context, userID, query string) (string, error)
	cleared  []string
	clearErr error
}

func (f *fakeAssistant) Answer(ctx context.Context, userID, query string) (string, error) {
	if f.answerFn != nil {
		return f.answerFn(ctx, userID, query)
	}
	return "stub answer", nil
}

func (f *fakeAssistant) ClearMemory(ctx context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return f.clearErr
}

func newTestRouter(assistant Assistant) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(assistant, zerolog.Nop())
	r := gin.New()
	r.POST("/chat/agent", h.Ask)
	r.DELETE("/chat/memory/:user_id", h.ClearMemory)
	r.GET("/health", h.Health)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAskValidation(t *testing.T) {
	r := newTestRouter(&fakeAssistant{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{"},
		{"empty query", `{"user_id":"u1","query":""}`},
		{"whitespace query", `{"user_id":"u1","query":"   "}`},
		{"empty user id", `{"user_id":"","query":"hello"}`},
		{"whitespace user id", `{"user_id":"  ","query":"hello"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/chat/agent", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestAskSuccess(t *testing.T) {
	fake := &fakeAssistant{
		answerFn: func(ctx context.Context, userID, query string) (string, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "what is i7041?", query)
			return "the Pro Series Snapback", nil
		},
	}
	r := newTestRouter(fake)

	w := postJSON(r, "/chat/agent", `{"user_id":"u1","query":"what is i7041?","use_agent":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body chatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "the Pro Series Snapback", body.Response)
	assert.Equal(t, http.StatusOK, body.StatusCode)
	assert.Equal(t, "what is i7041?", body.Query)
	assert.Equal(t, "u1", body.UserID)
	assert.NotZero(t, body.Timestamp)
}

func TestAskAssistantFailure(t *testing.T) {
	fake := &fakeAssistant{
		answerFn: func(ctx context.Context, userID, query string) (string, error) {
			return "", fmt.Errorf("model unavailable")
		},
	}
	r := newTestRouter(fake)

	w := postJSON(r, "/chat/agent", `{"user_id":"u1","query":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "model unavailable")
}

func TestClearMemory(t *testing.T) {
	t.Run("clears and reports success", func(t *testing.T) {
		fake := &fakeAssistant{}
		r := newTestRouter(fake)

		req := httptest.NewRequest(http.MethodDelete, "/chat/memory/u1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"u1"}, fake.cleared)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "cleared", body["status"])
		assert.Equal(t, "u1", body["user_id"])
	})

	t.Run("storage failure still reports cleared", func(t *testing.T) {
		fake := &fakeAssistant{clearErr: fmt.Errorf("redis down")}
		r := newTestRouter(fake)

		req := httptest.NewRequest(http.MethodDelete, "/chat/memory/u1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&fakeAssistant{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["features"])
}
