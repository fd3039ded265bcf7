// Package domain 定义领域模型和接口
package domain

import "context"

// NoteRepository 笔记仓储接口，所有操作按 uid 隔离
type NoteRepository interface {
	// GetByID 根据 ID 获取笔记
	GetByID(ctx context.Context, id string, uid int64) (*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note, uid int64) (*Note, error)

	// Update 更新标题与内容并刷新 UpdatedAt
	Update(ctx context.Context, note *Note, uid int64) (*Note, error)

	// Delete 删除笔记
	Delete(ctx context.Context, id string, uid int64) error

	// List 按 updated_at 倒序返回用户的全部笔记
	List(ctx context.Context, uid int64) ([]*Note, error)

	// CountAll 所有用户的笔记数
	CountAll(ctx context.Context) (int64, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)
}
