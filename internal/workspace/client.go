package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/haierkeys/markdown-note-service/internal/domain"
	"github.com/haierkeys/markdown-note-service/internal/dto"
	"github.com/pkg/errors"
)

// NoteStore persistence collaborator the controller saves through
// NoteStore 控制器使用的笔记持久化接口
type NoteStore interface {
	ListNotes(ctx context.Context) ([]*domain.Note, error)
	CreateNote(ctx context.Context) (*domain.Note, error)
	UpdateNote(ctx context.Context, id, title, content string) (*domain.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// AssistClient the AI proxy
type AssistClient interface {
	Assist(ctx context.Context, action Action, content string) (string, error)
}

// Client talks to a running server over HTTP
// Client 通过 HTTP 访问服务端
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *SessionStore
}

var (
	_ NoteStore     = (*Client)(nil)
	_ AssistClient  = (*Client)(nil)
	_ Authenticator = (*Client)(nil)
)

type ClientOption func(*Client)

// WithHTTPClient 自定义 http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSessionStore shares a session store with the controller
// WithSessionStore 与控制器共享会话
func WithSessionStore(s *SessionStore) ClientOption {
	return func(c *Client) {
		c.sessions = s
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessions == nil {
		c.sessions = NewSessionStore(nil)
	}
	return c
}

// Sessions the store updated by Login and SignOut
func (c *Client) Sessions() *SessionStore {
	return c.sessions
}

// envelope /api 统一响应
type envelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message any             `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details any             `json:"details"`
}

func (e *envelope) message() string {
	switch m := e.Message.(type) {
	case string:
		return m
	case nil:
		return ""
	default:
		b, _ := sonic.MarshalString(m)
		return b
	}
}

func (c *Client) token() string {
	if s := c.sessions.Current(); s != nil {
		return s.Token
	}
	return ""
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// call performs an /api request and decodes the envelope data into out
// call 执行 /api 请求并将 data 解码到 out
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return errors.Wrapf(err, "decode response (status %d)", resp.StatusCode)
	}
	if !env.Status {
		return &APIError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.message()}
	}
	if out != nil && len(env.Data) > 0 {
		if err := sonic.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "decode data")
		}
	}
	return nil
}

// Register creates an account and signs in with it
// Register 注册并登录
func (c *Client) Register(ctx context.Context, params *dto.UserCreateRequest) (*Session, error) {
	var user dto.UserDTO
	if err := c.call(ctx, http.MethodPost, "/api/user/register", nil, params, &user); err != nil {
		return nil, err
	}
	return c.signIn(&user), nil
}

// Login signs in by username or email
// Login 使用用户名或邮箱登录
func (c *Client) Login(ctx context.Context, credentials, password string) (*Session, error) {
	var user dto.UserDTO
	params := &dto.UserLoginRequest{Credentials: credentials, Password: password}
	if err := c.call(ctx, http.MethodPost, "/api/user/login", nil, params, &user); err != nil {
		return nil, err
	}
	return c.signIn(&user), nil
}

// UseToken restores a session from a saved token
// UseToken 使用已保存的 Token 恢复会话
func (c *Client) UseToken(ctx context.Context, token string) (*Session, error) {
	c.sessions.Set(&Session{Token: token})
	var user dto.UserDTO
	if err := c.call(ctx, http.MethodGet, "/api/user/info", nil, nil, &user); err != nil {
		c.sessions.Set(nil)
		return nil, err
	}
	return c.signIn(&dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		Token:     token,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}), nil
}

func (c *Client) signIn(user *dto.UserDTO) *Session {
	s := &Session{Token: user.Token, User: user}
	c.sessions.Set(s)
	return s
}

func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	return c.sessions.Current(), nil
}

// SignOut tokens are stateless, signing out forgets the local session
// SignOut Token 无状态，登出即清除本地会话
func (c *Client) SignOut(ctx context.Context) error {
	c.sessions.Set(nil)
	return nil
}

func noteFromDTO(n *dto.NoteDTO) *domain.Note {
	return &domain.Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.Time(),
		UpdatedAt: n.UpdatedAt.Time(),
	}
}

// ListNotes most recently updated first
func (c *Client) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	return c.SearchNotes(ctx, "")
}

// SearchNotes server-side keyword filter
// SearchNotes 服务端关键字过滤
func (c *Client) SearchNotes(ctx context.Context, keyword string) ([]*domain.Note, error) {
	var query url.Values
	if keyword != "" {
		query = url.Values{"keyword": {keyword}}
	}
	var list dto.NoteListDTO
	if err := c.call(ctx, http.MethodGet, "/api/notes", query, nil, &list); err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(list.List))
	for _, n := range list.List {
		notes = append(notes, noteFromDTO(n))
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	var note dto.NoteDTO
	if err := c.call(ctx, http.MethodGet, "/api/note", url.Values{"id": {id}}, nil, &note); err != nil {
		return nil, err
	}
	return noteFromDTO(&note), nil
}

// CreateNote creates an empty note
// CreateNote 创建空笔记
func (c *Client) CreateNote(ctx context.Context) (*domain.Note, error) {
	var note dto.NoteDTO
	if err := c.call(ctx, http.MethodPost, "/api/note", nil, &dto.NoteCreateRequest{}, &note); err != nil {
		return nil, err
	}
	return noteFromDTO(&note), nil
}

func (c *Client) UpdateNote(ctx context.Context, id, title, content string) (*domain.Note, error) {
	var note dto.NoteDTO
	params := &dto.NoteUpdateRequest{ID: id, Title: title, Content: content}
	if err := c.call(ctx, http.MethodPut, "/api/note", nil, params, &note); err != nil {
		return nil, err
	}
	return noteFromDTO(&note), nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/note", url.Values{"id": {id}}, nil, nil)
}

// ExportNote downloads the stored markdown and the server-chosen file name
// ExportNote 下载笔记原文及服务端给出的文件名
func (c *Client) ExportNote(ctx context.Context, id string) (string, []byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/note/export", url.Values{"id": {id}}, nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, errors.Wrap(err, "export note")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, errors.Wrap(err, "read export")
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "text/markdown" {
		var env envelope
		if err := sonic.Unmarshal(raw, &env); err != nil {
			return "", nil, errors.Wrapf(err, "decode response (status %d)", resp.StatusCode)
		}
		return "", nil, &APIError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.message()}
	}

	name := domain.ExportFileName("")
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return name, raw, nil
}

// Preview renders markdown on the server
// Preview 由服务端渲染 markdown
func (c *Client) Preview(ctx context.Context, content string) (string, error) {
	var out dto.NotePreviewDTO
	if err := c.call(ctx, http.MethodPost, "/api/note/preview", nil, &dto.NotePreviewRequest{Content: content}, &out); err != nil {
		return "", err
	}
	return out.HTML, nil
}

// Assist calls the AI proxy; the proxy answers a bare {result} or {error}
// Assist 调用 AI 代理，响应为 {result} 或 {error}
func (c *Client) Assist(ctx context.Context, action Action, content string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/ai-assist", nil, &dto.AssistRequest{
		Action:  string(action),
		Content: content,
	})
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "ai assist")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read ai response")
	}

	var out struct {
		Result string `json:"result"`
		Error  string `json:"error"`
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return "", assistError(resp.StatusCode, "decode AI response: "+err.Error())
	}

	if resp.StatusCode != http.StatusOK || out.Error != "" {
		return "", assistError(resp.StatusCode, out.Error)
	}
	if out.Result == "" {
		return "", assistError(resp.StatusCode, "No content in AI response")
	}
	return out.Result, nil
}
