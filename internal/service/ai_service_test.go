package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/markdown-note-service/pkg/workerpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstreamRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newUpstream(t *testing.T, status int, body string, seen *upstreamRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAIService(t *testing.T, baseURL, key string) AIService {
	t.Helper()
	pool := workerpool.New(&workerpool.Config{MaxWorkers: 2, QueueSize: 4}, nil)
	t.Cleanup(func() { _ = pool.Shutdown(context.Background()) })
	return NewAIService(AIServiceConfig{APIKey: key, BaseURL: baseURL}, pool, nil, nil)
}

func assertAssistError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	var aerr *AssistError
	require.True(t, errors.As(err, &aerr), "got %v", err)
	assert.Equal(t, status, aerr.StatusCode)
	assert.Equal(t, msg, aerr.Message)
}

func TestAIService_Success(t *testing.T) {
	var seen upstreamRequest
	srv := newUpstream(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"Hi"}}]}`, &seen)
	svc := newTestAIService(t, srv.URL, "test-key")

	out, err := svc.Assist(context.Background(), AssistActionSummarize, "long text")
	require.NoError(t, err)
	assert.Equal(t, "Hi", out)

	assert.Equal(t, DefaultAIModel, seen.Model)
	assert.InDelta(t, 0.7, seen.Temperature, 0.0001)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, "system", seen.Messages[0].Role)
	assert.Equal(t, "user", seen.Messages[1].Role)
	assert.Equal(t, "Summarize this text:\n\nlong text", seen.Messages[1].Content)
}

func TestAIService_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"error":{"message":"slow down"}}`,
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    MsgAIRateLimited,
		},
		{
			name:       "credits depleted",
			status:     http.StatusPaymentRequired,
			body:       `{"error":{"message":"pay up"}}`,
			wantStatus: http.StatusPaymentRequired,
			wantMsg:    MsgAICreditsDepleted,
		},
		{
			name:       "other upstream error",
			status:     http.StatusInternalServerError,
			body:       `{"error":{"message":"boom"}}`,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "AI API returned 500: boom",
		},
		{
			name:       "plain text body",
			status:     http.StatusServiceUnavailable,
			body:       "upstream exploded\n",
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "AI API returned 503: upstream exploded",
		},
		{
			name:       "json body without error object",
			status:     http.StatusBadGateway,
			body:       `{"detail":"gateway down"}`,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    `AI API returned 502: {"detail":"gateway down"}`,
		},
		{
			name:       "empty choices",
			status:     http.StatusOK,
			body:       `{"choices":[]}`,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    MsgAINoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newUpstream(t, tt.status, tt.body, nil)
			svc := newTestAIService(t, srv.URL, "test-key")

			_, err := svc.Assist(context.Background(), AssistActionImprove, "text")
			assertAssistError(t, err, tt.wantStatus, tt.wantMsg)
		})
	}
}

func TestAIService_InvalidActionAndMissingKey(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, `{"choices":[{"message":{"content":"unused"}}]}`, nil)

	svc := newTestAIService(t, srv.URL, "test-key")
	_, err := svc.Assist(context.Background(), "translate", "text")
	assertAssistError(t, err, http.StatusInternalServerError, MsgAIInvalidAction)

	unconfigured := newTestAIService(t, srv.URL, "")
	_, err = unconfigured.Assist(context.Background(), AssistActionGenerate, "text")
	assertAssistError(t, err, http.StatusInternalServerError, MsgAIKeyNotConfigured)
}

func TestBuildAssistPrompt(t *testing.T) {
	_, user, ok := BuildAssistPrompt(AssistActionGenerate, "a poem")
	require.True(t, ok)
	assert.Equal(t, "a poem", user)

	_, user, ok = BuildAssistPrompt(AssistActionExpand, "seed")
	require.True(t, ok)
	assert.Equal(t, "Expand this text:\n\nseed", user)

	assert.True(t, IsAssistAction(AssistActionImprove))
	assert.False(t, IsAssistAction(""))
}
