package dto

import "github.com/haierkeys/markdown-note-service/pkg/timex"

// NoteListRequest 笔记列表请求参数
type NoteListRequest struct {
	Keyword string `json:"keyword" form:"keyword"` // Case-insensitive filter on title or content // 标题或内容关键字，不区分大小写
}

// NoteGetRequest 获取单条笔记请求参数
type NoteGetRequest struct {
	ID string `json:"id" form:"id" binding:"required,uuid"` // Note ID // 笔记 ID
}

// NoteCreateRequest 创建笔记请求参数，标题与内容可为空
type NoteCreateRequest struct {
	Title   string `json:"title" form:"title" binding:"max=255"`
	Content string `json:"content" form:"content"`
}

// NoteUpdateRequest 更新笔记请求参数
type NoteUpdateRequest struct {
	ID      string `json:"id" form:"id" binding:"required,uuid"` // Note ID // 笔记 ID
	Title   string `json:"title" form:"title" binding:"max=255"`
	Content string `json:"content" form:"content"`
}

// NoteDeleteRequest 删除笔记请求参数
type NoteDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required,uuid"` // Note ID // 笔记 ID
}

// NotePreviewRequest 预览请求参数
type NotePreviewRequest struct {
	Content string `json:"content" form:"content"`
}

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	DisplayTitle string     `json:"displayTitle"` // Title or "Untitled" // 标题或 Untitled
	Content      string     `json:"content"`
	Snippet      string     `json:"snippet"` // First 100 characters or "Empty note" // 前 100 个字符或 Empty note
	CreatedAt    timex.Time `json:"createdAt"`
	UpdatedAt    timex.Time `json:"updatedAt"`
}

// NoteListDTO 笔记列表，Empty 为列表为空时的提示
type NoteListDTO struct {
	List  []*NoteDTO `json:"list"`
	Empty string     `json:"empty,omitempty"`
}

// NoteExportDTO 导出结果
type NoteExportDTO struct {
	FileName string
	Content  []byte
}

// NotePreviewDTO 预览结果
type NotePreviewDTO struct {
	HTML string `json:"html"`
}
