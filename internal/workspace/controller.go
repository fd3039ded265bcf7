// Package workspace is the notes workspace client: note list, editor buffers with debounced autosave,
// markdown export, the AI assistant and the signed-in session.
// Package workspace 笔记工作区客户端：笔记列表、带防抖自动保存的编辑缓冲区、导出、AI 助手与登录会话
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/markdown-note-service/internal/domain"
	"go.uber.org/zap"
)

// Controller workspace state
// Controller 工作区状态
type Controller struct {
	store    NoteStore
	sessions *SessionStore
	logger   *zap.Logger

	debouncer   *Debouncer
	guard       SaveGuard
	saveTimeout time.Duration

	onSignedOut func()
	onSaveError func(error)

	mu          sync.Mutex
	ctx         context.Context
	session     *Session
	notes       []*domain.Note
	selectedID  string
	title       string
	content     string
	query       string
	unsubscribe func()
}

var _ Editor = (*Controller)(nil)

type Option func(*Controller)

func WithLogger(lg *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = lg
	}
}

// WithSaveDelay autosave quiet period
// WithSaveDelay 自动保存静默时间
func WithSaveDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.debouncer = NewDebouncer(d)
	}
}

// WithSignInRedirect called when the session goes away
// WithSignInRedirect 会话失效时回调
func WithSignInRedirect(fn func()) Option {
	return func(c *Controller) {
		c.onSignedOut = fn
	}
}

// WithSaveErrorHandler receives autosave failures
func WithSaveErrorHandler(fn func(error)) Option {
	return func(c *Controller) {
		c.onSaveError = fn
	}
}

func NewController(store NoteStore, sessions *SessionStore, opts ...Option) *Controller {
	c := &Controller{
		store:       store,
		sessions:    sessions,
		logger:      zap.NewNop(),
		debouncer:   NewDebouncer(DefaultSaveDelay),
		saveTimeout: 30 * time.Second,
		ctx:         context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessions == nil {
		c.sessions = NewSessionStore(nil)
	}
	return c
}

// Start subscribes to the session; each delivered session reloads the notes
// Start 订阅会话，每次收到会话都会重新加载笔记
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	unsubscribe := c.sessions.Subscribe(c.onSession)

	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
}

// Stop unsubscribes and drops the pending autosave
// Stop 取消订阅并丢弃待执行的自动保存
func (c *Controller) Stop() {
	c.debouncer.Cancel()

	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (c *Controller) onSession(s *Session) {
	c.mu.Lock()
	c.session = s
	ctx := c.ctx
	c.mu.Unlock()

	if s == nil {
		c.debouncer.Cancel()
		c.mu.Lock()
		c.notes = nil
		c.clearSelectionLocked()
		c.mu.Unlock()
		if c.onSignedOut != nil {
			c.onSignedOut()
		}
		return
	}

	if err := c.Load(ctx); err != nil {
		c.logger.Warn("load notes failed", zap.Error(err))
	}
}

// Load fetches the collection; the first note is selected when nothing is
// Load 拉取笔记列表，未选中时选中第一条
func (c *Controller) Load(ctx context.Context) error {
	if c.Session() == nil {
		return ErrAuthRequired
	}
	notes, err := c.store.ListNotes(ctx)
	if err != nil {
		return err
	}
	domain.SortNotes(notes)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = notes
	if c.selectedID != "" && c.findLocked(c.selectedID) == nil {
		c.clearSelectionLocked()
	}
	if c.selectedID == "" && len(notes) > 0 {
		c.selectLocked(notes[0])
	}
	return nil
}

func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Notes the collection filtered by the current query
// Notes 按当前关键字过滤后的笔记
func (c *Controller) Notes() []*domain.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*domain.Note, 0, len(c.notes))
	for _, n := range domain.FilterNotes(c.notes, c.query) {
		cp := *n
		out = append(out, &cp)
	}
	return out
}

func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

// EmptyMessage list placeholder for the current query
func (c *Controller) EmptyMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.EmptyListMessage(c.query)
}

func (c *Controller) SelectedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

func (c *Controller) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

func (c *Controller) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

func (c *Controller) findLocked(id string) *domain.Note {
	for _, n := range c.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (c *Controller) selectLocked(n *domain.Note) {
	c.selectedID = n.ID
	c.title = n.Title
	c.content = n.Content
}

func (c *Controller) clearSelectionLocked() {
	c.selectedID = ""
	c.title = ""
	c.content = ""
}

// Select loads the note into the editor buffers, the pending autosave of the previous note is dropped
// Select 将笔记载入编辑区，上一条笔记待执行的自动保存被丢弃
func (c *Controller) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.findLocked(id)
	if n == nil {
		return ErrNoteNotFound
	}
	if id != c.selectedID {
		c.debouncer.Cancel()
	}
	c.selectLocked(n)
	return nil
}

// Create prepends a new empty note and selects it
// Create 新建空笔记，插入列表顶部并选中
func (c *Controller) Create(ctx context.Context) (*domain.Note, error) {
	if c.Session() == nil {
		return nil, ErrAuthRequired
	}
	n, err := c.store.CreateNote(ctx)
	if err != nil {
		return nil, err
	}

	c.debouncer.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append([]*domain.Note{n}, c.notes...)
	domain.SortNotes(c.notes)
	c.selectLocked(n)
	cp := *n
	return &cp, nil
}

// Delete removes the note; deleting the selected one selects the most recent remaining note
// Delete 删除笔记；删除当前笔记时选中剩余最新的一条
func (c *Controller) Delete(ctx context.Context, id string) error {
	if c.Session() == nil {
		return ErrAuthRequired
	}
	if err := c.store.DeleteNote(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.notes[:0]
	for _, n := range c.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.notes = kept

	if c.selectedID == id {
		c.debouncer.Cancel()
		if len(c.notes) > 0 {
			c.selectLocked(c.notes[0])
		} else {
			c.clearSelectionLocked()
		}
	}
	return nil
}

// SetTitle updates the title buffer and schedules an autosave
// SetTitle 更新标题并安排自动保存
func (c *Controller) SetTitle(title string) {
	c.mu.Lock()
	c.title = title
	selected := c.selectedID != ""
	c.mu.Unlock()
	if selected {
		c.debouncer.Trigger(c.autosave)
	}
}

// SetContent updates the content buffer and schedules an autosave
// SetContent 更新内容并安排自动保存
func (c *Controller) SetContent(content string) {
	c.mu.Lock()
	c.content = content
	selected := c.selectedID != ""
	c.mu.Unlock()
	if selected {
		c.debouncer.Trigger(c.autosave)
	}
}

func (c *Controller) autosave() {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.saveTimeout)
	defer cancel()

	if _, err := c.Save(ctx); err != nil {
		c.logger.Warn("autosave failed", zap.Error(err))
		if c.onSaveError != nil {
			c.onSaveError(err)
		}
	}
}

// Save persists the buffers of the selected note.
// It reports false without saving while another save is running.
// Save 保存当前笔记的缓冲区；已有保存进行中时直接放弃并返回 false
func (c *Controller) Save(ctx context.Context) (bool, error) {
	if !c.guard.TryAcquire() {
		return false, nil
	}
	defer c.guard.Release()

	c.mu.Lock()
	id, title, content := c.selectedID, c.title, c.content
	c.mu.Unlock()
	if id == "" {
		return false, ErrNoNoteSelected
	}

	saved, err := c.store.UpdateNote(ctx, id, title, content)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if n := c.findLocked(id); n != nil {
		n.Title = saved.Title
		n.Content = saved.Content
		n.UpdatedAt = saved.UpdatedAt
		domain.SortNotes(c.notes)
	}
	return true, nil
}

// Saving reports whether a save is in flight
func (c *Controller) Saving() bool {
	return c.guard.Saving()
}

// Export file name and content of the editor buffers
// Export 编辑区的导出文件名与内容
func (c *Controller) Export() (string, []byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedID == "" {
		return "", nil, ErrNoNoteSelected
	}
	return domain.ExportFileName(c.title), []byte(c.content), nil
}
