package workspace

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Action AI assist action
type Action string

const (
	ActionGenerate  Action = "generate"
	ActionExpand    Action = "expand"
	ActionSummarize Action = "summarize"
	ActionImprove   Action = "improve"
)

// SelectionActions actions offered by the selection toolbar
// SelectionActions 选区工具栏提供的操作
var SelectionActions = []Action{ActionExpand, ActionSummarize, ActionImprove}

// Editor content buffer the assistant writes into
// Editor 助手写入的内容缓冲区
type Editor interface {
	Content() string
	SetContent(content string)
}

// Assistant AI generate dialog and selection actions, one call in flight at most
// Assistant AI 生成与选区操作，同一时间最多一个请求
type Assistant struct {
	client  AssistClient
	editor  Editor
	toolbar *Toolbar
	logger  *zap.Logger

	loading atomic.Bool

	mu         sync.Mutex
	prompt     string
	dialogOpen bool
}

func NewAssistant(client AssistClient, editor Editor, toolbar *Toolbar, logger *zap.Logger) *Assistant {
	if toolbar == nil {
		toolbar = &Toolbar{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		client:  client,
		editor:  editor,
		toolbar: toolbar,
		logger:  logger,
	}
}

func (a *Assistant) Toolbar() *Toolbar {
	return a.toolbar
}

func (a *Assistant) Loading() bool {
	return a.loading.Load()
}

// OpenDialog 打开生成对话框
func (a *Assistant) OpenDialog() {
	a.mu.Lock()
	a.dialogOpen = true
	a.mu.Unlock()
}

func (a *Assistant) CloseDialog() {
	a.mu.Lock()
	a.dialogOpen = false
	a.mu.Unlock()
}

func (a *Assistant) DialogOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dialogOpen
}

func (a *Assistant) SetPrompt(prompt string) {
	a.mu.Lock()
	a.prompt = prompt
	a.mu.Unlock()
}

func (a *Assistant) Prompt() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.prompt
}

// begin claims the loading flag
func (a *Assistant) begin() bool {
	return a.loading.CompareAndSwap(false, true)
}

// Generate appends generated text to the content; on success the prompt is cleared and the dialog closed
// Generate 将生成的文本追加到内容末尾，成功后清空提示词并关闭对话框
func (a *Assistant) Generate(ctx context.Context, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	if !a.begin() {
		return ErrAssistantBusy
	}
	defer a.loading.Store(false)

	result, err := a.client.Assist(ctx, ActionGenerate, prompt)
	if err != nil {
		a.logger.Warn("ai generate failed", zap.Error(err))
		return err
	}

	a.editor.SetContent(InsertText(a.editor.Content(), result, ""))

	a.mu.Lock()
	a.prompt = ""
	a.dialogOpen = false
	a.mu.Unlock()
	return nil
}

// RunSelectionAction transforms the selected preview text and replaces its first occurrence in the content
// RunSelectionAction 处理预览区选中的文本，并替换内容中第一次出现的位置
func (a *Assistant) RunSelectionAction(ctx context.Context, action Action, sel Selection) error {
	a.toolbar.Hide()

	if !sel.Actionable() {
		return ErrEmptySelection
	}
	if !a.begin() {
		return ErrAssistantBusy
	}
	defer a.loading.Store(false)

	result, err := a.client.Assist(ctx, action, sel.Text)
	if err != nil {
		a.logger.Warn("ai selection action failed", zap.String("action", string(action)), zap.Error(err))
		return err
	}

	a.editor.SetContent(InsertText(a.editor.Content(), result, sel.Text))
	return nil
}

// RunToolbarAction runs action on the selection captured by the toolbar
// RunToolbarAction 对工具栏捕获的选区执行操作
func (a *Assistant) RunToolbarAction(ctx context.Context, action Action) error {
	return a.RunSelectionAction(ctx, action, a.toolbar.Selection())
}
