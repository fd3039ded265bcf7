// Package domain 定义领域模型和接口
package domain

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// UntitledTitle 无标题笔记的显示名
	UntitledTitle = "Untitled"
	// EmptyNoteSnippet 空笔记的摘要
	EmptyNoteSnippet = "Empty note"
	// SnippetLength 摘要长度（字符）
	SnippetLength = 100
)

// Note 笔记领域模型
type Note struct {
	ID        string
	UID       int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayTitle 标题为空时显示 Untitled
func (n *Note) DisplayTitle() string {
	if n.Title == "" {
		return UntitledTitle
	}
	return n.Title
}

// ContentSnippet 内容前 100 个字符，空内容返回 Empty note
func (n *Note) ContentSnippet() string {
	if n.Content == "" {
		return EmptyNoteSnippet
	}
	if utf8.RuneCountInString(n.Content) <= SnippetLength {
		return n.Content
	}
	return string([]rune(n.Content)[:SnippetLength])
}

// ExportFileName 导出文件名 <title or Untitled>.md
func (n *Note) ExportFileName() string {
	return ExportFileName(n.Title)
}

// ExportFileName 导出文件名 <title or Untitled>.md
func ExportFileName(title string) string {
	if title == "" {
		title = UntitledTitle
	}
	return title + ".md"
}

// Matches case-insensitive substring match on title or content
// Matches 标题或内容包含关键字（不区分大小写）
func (n *Note) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content), q)
}

// FilterNotes keeps notes matching query, in their original order
// FilterNotes 保留匹配 query 的笔记，顺序不变
// an empty query returns notes unchanged
// 空查询原样返回
func FilterNotes(notes []*Note, query string) []*Note {
	if query == "" {
		return notes
	}
	out := make([]*Note, 0, len(notes))
	for _, n := range notes {
		if n.Matches(query) {
			out = append(out, n)
		}
	}
	return out
}

// SortNotes orders by UpdatedAt desc, ties by CreatedAt desc
// SortNotes 按 UpdatedAt 倒序，相同时按 CreatedAt 倒序
func SortNotes(notes []*Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if !notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}

// EmptyListMessage 列表为空时的提示
func EmptyListMessage(query string) string {
	if query != "" {
		return "No notes found"
	}
	return "No notes yet"
}
