package workspace

import (
	"strings"
	"sync"
)

// Region where a text selection was made
// Region 选区所在区域
type Region int

const (
	RegionNone Region = iota
	RegionEditor
	RegionPreview
)

func (r Region) String() string {
	switch r {
	case RegionEditor:
		return "editor"
	case RegionPreview:
		return "preview"
	default:
		return "none"
	}
}

// Selection captured selection text and its region
// Selection 选中的文本及其所在区域
type Selection struct {
	Text   string
	Region Region
}

// Actionable non-blank text inside the preview
// Actionable 预览区内的非空选区
func (s Selection) Actionable() bool {
	return s.Region == RegionPreview && strings.TrimSpace(s.Text) != ""
}

// SelectionSource reports the current selection, ok is false when there is none
// SelectionSource 返回当前选区，没有选区时 ok 为 false
type SelectionSource interface {
	GetSelection() (Selection, bool)
}

// StaticSelection a fixed SelectionSource
type StaticSelection Selection

func (s StaticSelection) GetSelection() (Selection, bool) {
	return Selection(s), s.Text != ""
}

// Toolbar floating actions shown over a preview selection
// Toolbar 预览区选区上方的浮动工具栏
type Toolbar struct {
	mu        sync.Mutex
	visible   bool
	selection Selection
}

// Update re-reads the selection; the toolbar is visible only for an actionable selection
// Update 重新读取选区，仅当选区可操作时显示
func (t *Toolbar) Update(src SelectionSource) bool {
	sel, ok := src.GetSelection()

	t.mu.Lock()
	defer t.mu.Unlock()
	if !ok || !sel.Actionable() {
		t.visible = false
		t.selection = Selection{}
		return false
	}
	t.visible = true
	t.selection = sel
	return true
}

// Hide hides the toolbar, the captured selection is kept
// Hide 隐藏工具栏，保留已捕获的选区
func (t *Toolbar) Hide() {
	t.mu.Lock()
	t.visible = false
	t.mu.Unlock()
}

func (t *Toolbar) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// Selection last captured selection
func (t *Toolbar) Selection() Selection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selection
}

// InsertText replaces the first occurrence of selection with text,
// or appends text after a blank line when selection is empty or absent
// InsertText 替换 selection 的第一次出现；selection 为空或不存在时在末尾空一行追加
func InsertText(content, text, selection string) string {
	if selection != "" && strings.Contains(content, selection) {
		return strings.Replace(content, selection, text, 1)
	}
	return content + "\n\n" + text
}
