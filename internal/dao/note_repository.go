package dao

import (
	"context"

	"github.com/google/uuid"
	"github.com/haierkeys/markdown-note-service/internal/domain"
	"github.com/haierkeys/markdown-note-service/internal/model"
	"github.com/haierkeys/markdown-note-service/pkg/convert"
	"github.com/haierkeys/markdown-note-service/pkg/timex"
	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

var _ domain.NoteRepository = (*noteRepository)(nil)

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// note 获取笔记表，首次访问时迁移
func (r *noteRepository) note(ctx context.Context) *gorm.DB {
	return r.dao.UseWithOnceFunc(func(g *gorm.DB) error {
		return model.AutoMigrate(g, "Note")
	}, "note").WithContext(ctx)
}

func (r *noteRepository) toDomain(m *model.Note) (*domain.Note, error) {
	if m == nil {
		return nil, nil
	}
	n := &domain.Note{}
	if err := convert.StructAssign(n, m); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *noteRepository) toModel(n *domain.Note) (*model.Note, error) {
	m := &model.Note{}
	if err := convert.StructAssign(m, n); err != nil {
		return nil, err
	}
	return m, nil
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id string, uid int64) (*domain.Note, error) {
	var m model.Note
	if err := r.note(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m)
}

// Create 创建笔记，ID 由服务端生成
func (r *noteRepository) Create(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	m, err := r.toModel(note)
	if err != nil {
		return nil, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.UID = uid
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	tx := r.note(ctx)
	err = r.dao.ExecuteWrite(ctx, uid, func(_ *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m)
}

// Update 更新标题与内容
func (r *noteRepository) Update(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	tx := r.note(ctx)
	now := timex.Now()

	err := r.dao.ExecuteWrite(ctx, uid, func(_ *gorm.DB) error {
		res := tx.Model(&model.Note{}).
			Where("id = ? AND uid = ?", note.ID, uid).
			Updates(map[string]interface{}{
				"title":      note.Title,
				"content":    note.Content,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID, uid)
}

// Delete 删除笔记
func (r *noteRepository) Delete(ctx context.Context, id string, uid int64) error {
	tx := r.note(ctx)
	return r.dao.ExecuteWrite(ctx, uid, func(_ *gorm.DB) error {
		res := tx.Where("id = ? AND uid = ?", id, uid).Delete(&model.Note{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List 按 updated_at 倒序返回用户的全部笔记
func (r *noteRepository) List(ctx context.Context, uid int64) ([]*domain.Note, error) {
	var rows []*model.Note
	err := r.note(ctx).
		Where("uid = ?", uid).
		Order("updated_at DESC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(rows))
	for _, m := range rows {
		n, err := r.toDomain(m)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// CountAll 所有用户的笔记数
func (r *noteRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.note(ctx).Model(&model.Note{}).Count(&total).Error
	return total, err
}
