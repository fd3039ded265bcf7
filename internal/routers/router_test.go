package routers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/markdown-note-service/internal/app"
	"github.com/haierkeys/markdown-note-service/internal/dao"
	"github.com/haierkeys/markdown-note-service/internal/middleware"
	"github.com/haierkeys/markdown-note-service/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	engine *gin.Engine
	app    *app.App
}

func newTestServer(t *testing.T, aiBaseURL string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("security:\n  auth-token-key: test-key\n"), 0644))
	cfg, _, err := app.LoadConfig(path)
	require.NoError(t, err)
	cfg.Database.Path = filepath.Join(t.TempDir(), "notes.sqlite3")
	if aiBaseURL != "" {
		cfg.AI.APIKey = "upstream-key"
		cfg.AI.BaseURL = aiBaseURL
	} else {
		t.Setenv(app.EnvAIAPIKey, "")
		t.Setenv(app.EnvLovableAPIKey, "")
	}

	db, err := dao.NewDBEngineWithConfig(cfg.Database, nil, false)
	require.NoError(t, err)
	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	uni, err := validator.Setup()
	require.NoError(t, err)

	return &testServer{engine: NewRouter(a, uni), app: a}
}

func (s *testServer) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *testServer) register(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/user/register", "",
		`{"email":"ada@example.com","username":"ada_l","password":"secret1","confirmPassword":"secret1"}`)
	var user struct {
		Token string `json:"token"`
	}
	env := decodeEnvelope(t, w, &user)
	require.True(t, env.Status, w.Body.String())
	require.NotEmpty(t, user.Token)
	return user.Token
}

type noteJSON struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DisplayTitle string `json:"displayTitle"`
	Content      string `json:"content"`
}

func TestRouter_NoteLifecycle(t *testing.T) {
	s := newTestServer(t, "")
	token := s.register(t)

	w := s.do(t, http.MethodGet, "/api/notes", "", "")
	env := decodeEnvelope(t, w, nil)
	assert.False(t, env.Status, "notes require a token")

	w = s.do(t, http.MethodPost, "/api/note", token, "")
	var created noteJSON
	env = decodeEnvelope(t, w, &created)
	require.True(t, env.Status, w.Body.String())
	assert.Equal(t, "Untitled", created.DisplayTitle)

	w = s.do(t, http.MethodPut, "/api/note", token,
		`{"id":"`+created.ID+`","title":"Plan","content":"# Plan\nline one\nline two"}`)
	env = decodeEnvelope(t, w, nil)
	require.True(t, env.Status, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/notes?keyword=PLAN", token, "")
	var list struct {
		List  []noteJSON `json:"list"`
		Empty string     `json:"empty"`
	}
	decodeEnvelope(t, w, &list)
	require.Len(t, list.List, 1)
	assert.Equal(t, "Plan", list.List[0].Title)

	w = s.do(t, http.MethodGet, "/api/note/export?id="+created.ID, token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="Plan.md"`)
	assert.Equal(t, "# Plan\nline one\nline two", w.Body.String())

	w = s.do(t, http.MethodGet, "/api/note/preview?id="+created.ID, token, "")
	var preview struct {
		HTML string `json:"html"`
	}
	decodeEnvelope(t, w, &preview)
	assert.Contains(t, preview.HTML, "<h1>Plan</h1>")
	assert.Contains(t, preview.HTML, "<br")

	w = s.do(t, http.MethodDelete, "/api/note?id="+created.ID, token, "")
	env = decodeEnvelope(t, w, nil)
	require.True(t, env.Status, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/notes", token, "")
	decodeEnvelope(t, w, &list)
	assert.Empty(t, list.List)
	assert.Equal(t, "No notes yet", list.Empty)
}

func TestRouter_InvalidParams(t *testing.T) {
	s := newTestServer(t, "")
	token := s.register(t)

	w := s.do(t, http.MethodGet, "/api/note?id=not-a-uuid", token, "")
	env := decodeEnvelope(t, w, nil)
	assert.False(t, env.Status)
	assert.Equal(t, 405, env.Code)
}

func TestRouter_AIAssistPreflight(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodOptions, "/ai-assist", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, middleware.CorsAllowHeaders, w.Header().Get("Access-Control-Allow-Headers"))
}

func TestRouter_UserAuth(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodPost, "/api/user/register", "", `{"email":"nope","username":"a b","password":"secret1","confirmPassword":"secret1"}`)
	env := decodeEnvelope(t, w, nil)
	assert.False(t, env.Status)
	assert.Equal(t, 405, env.Code)

	token := s.register(t)

	w = s.do(t, http.MethodPost, "/api/user/login", "", `{"credentials":"ada@example.com","password":"secret1"}`)
	var user struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}
	env = decodeEnvelope(t, w, &user)
	require.True(t, env.Status, w.Body.String())
	assert.Equal(t, "ada_l", user.Username)
	assert.NotEmpty(t, user.Token)

	w = s.do(t, http.MethodPost, "/api/user/login", "", `{"credentials":"ada_l","password":"wrong-pass"}`)
	env = decodeEnvelope(t, w, nil)
	assert.False(t, env.Status)

	w = s.do(t, http.MethodGet, "/api/user/info", token, "")
	user.Username = ""
	env = decodeEnvelope(t, w, &user)
	require.True(t, env.Status, w.Body.String())
	assert.Equal(t, "ada_l", user.Username)
}

func TestRouter_APIPreflight(t *testing.T) {
	s := newTestServer(t, "")

	for _, target := range []string{"/api/notes", "/api/note/export", "/api/user/login"} {
		w := s.do(t, http.MethodOptions, target, "", "")
		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Empty(t, w.Body.String(), target)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), target)
		assert.Equal(t, middleware.CorsAllowHeaders, w.Header().Get("Access-Control-Allow-Headers"), target)
	}

	w := s.do(t, http.MethodGet, "/api/notes", "", "")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodGet, "/api/health", "", "")
	var health struct {
		Status      string `json:"status"`
		Database    string `json:"database"`
		WriteQueued int64  `json:"writeQueued"`
	}
	env := decodeEnvelope(t, w, &health)
	assert.True(t, env.Status, w.Body.String())
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
	assert.Zero(t, health.WriteQueued)
}

func TestRouter_AIAssistWithoutKey(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodPost, "/ai-assist", "", `{"action":"generate","content":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"AI API key not configured"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_AIAssistProxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(readAll(r), "rate me") {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"# Title"}}]}`))
	}))
	defer upstream.Close()

	s := newTestServer(t, upstream.URL)

	w := s.do(t, http.MethodPost, "/ai-assist", "", `{"action":"generate","content":"a heading"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"# Title"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/ai-assist", "", `{"action":"translate","content":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Invalid action"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/ai-assist", "", `{"action":"improve","content":"rate me"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Rate limit exceeded. Please try again in a moment."}`, w.Body.String())
}

func TestPrivateRouter_Metrics(t *testing.T) {
	s := newTestServer(t, "")
	s.do(t, http.MethodGet, "/api/version", "", "")

	r := NewPrivateRouterWithLogger("release", zap.NewNop(), s.app.Registry())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "markdown_note_http_requests_total")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, json.Valid(w.Body.Bytes()))
}

func readAll(r *http.Request) string {
	var sb strings.Builder
	buf := make([]byte, 1024)
	for {
		n, err := r.Body.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			return sb.String()
		}
	}
}
