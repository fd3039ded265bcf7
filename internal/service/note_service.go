package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/haierkeys/markdown-note-service/internal/domain"
	"github.com/haierkeys/markdown-note-service/internal/dto"
	"github.com/haierkeys/markdown-note-service/pkg/code"
	"github.com/haierkeys/markdown-note-service/pkg/logger"
	"github.com/haierkeys/markdown-note-service/pkg/markdown"
	"github.com/haierkeys/markdown-note-service/pkg/metrics"
	"github.com/haierkeys/markdown-note-service/pkg/timex"
	"github.com/haierkeys/markdown-note-service/pkg/writequeue"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// List 返回用户的笔记，按最近更新倒序；keyword 非空时按标题或内容过滤
	List(ctx context.Context, uid int64, keyword string) (*dto.NoteListDTO, error)

	// Get 获取单条笔记
	Get(ctx context.Context, uid int64, id string) (*dto.NoteDTO, error)

	// Create 创建笔记
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Update 保存标题与内容
	Update(ctx context.Context, uid int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// Delete 删除笔记
	Delete(ctx context.Context, uid int64, id string) error

	// Export 导出为 <title or Untitled>.md，内容原样返回
	Export(ctx context.Context, uid int64, id string) (*dto.NoteExportDTO, error)

	// Preview 渲染已保存笔记的预览
	Preview(ctx context.Context, uid int64, id string) (*dto.NotePreviewDTO, error)

	// Render 渲染任意 markdown 内容
	Render(content string) (*dto.NotePreviewDTO, error)

	// CountAll 所有用户的笔记总数
	CountAll(ctx context.Context) (int64, error)
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo domain.NoteRepository
	renderer *markdown.Renderer
	metrics  *metrics.Metrics
	logger   *zap.Logger
	sf       *singleflight.Group
}

var _ NoteService = (*noteService)(nil)

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, lg *zap.Logger, m *metrics.Metrics, config *ServiceConfig) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	var opts markdown.Options
	if config != nil {
		opts = markdown.Options{
			AllowUnsafeHTML:     config.Preview.AllowUnsafeHTML,
			ExternalLinksNewTab: config.Preview.ExternalLinksNewTab,
		}
	}
	return &noteService{
		noteRepo: noteRepo,
		renderer: markdown.New(opts),
		metrics:  m,
		logger:   lg,
		sf:       &singleflight.Group{},
	}
}

func (s *noteService) domainToDTO(n *domain.Note) *dto.NoteDTO {
	if n == nil {
		return nil
	}
	return &dto.NoteDTO{
		ID:           n.ID,
		Title:        n.Title,
		DisplayTitle: n.DisplayTitle(),
		Content:      n.Content,
		Snippet:      n.ContentSnippet(),
		CreatedAt:    timex.Time(n.CreatedAt),
		UpdatedAt:    timex.Time(n.UpdatedAt),
	}
}

// List 同一用户的并发列表请求合并为一次查询
func (s *noteService) List(ctx context.Context, uid int64, keyword string) (*dto.NoteListDTO, error) {
	v, err, _ := s.sf.Do("list_"+strconv.FormatInt(uid, 10), func() (any, error) {
		return s.noteRepo.List(ctx, uid)
	})
	s.metrics.NoteOp("list", err)
	if err != nil {
		s.logger.Error("NoteService.List failed", zap.Int64(logger.FieldUID, uid), zap.Error(err))
		return nil, code.ErrorNoteGetFailed.WithDetails(err.Error())
	}

	notes := domain.FilterNotes(v.([]*domain.Note), keyword)

	out := &dto.NoteListDTO{List: make([]*dto.NoteDTO, 0, len(notes))}
	for _, n := range notes {
		out.List = append(out.List, s.domainToDTO(n))
	}
	if len(out.List) == 0 {
		out.Empty = domain.EmptyListMessage(keyword)
	}
	return out, nil
}

func (s *noteService) get(ctx context.Context, uid int64, id string) (*domain.Note, error) {
	n, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		s.logger.Error("NoteService.get failed", zap.Int64(logger.FieldUID, uid), zap.String(logger.FieldNoteID, id), zap.Error(err))
		return nil, code.ErrorDBQuery
	}
	return n, nil
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, uid int64, id string) (*dto.NoteDTO, error) {
	n, err := s.get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	return s.domainToDTO(n), nil
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	n, err := s.noteRepo.Create(ctx, &domain.Note{Title: params.Title, Content: params.Content}, uid)
	s.metrics.NoteOp("create", err)
	if err != nil {
		s.logger.Error("NoteService.Create failed", zap.Int64(logger.FieldUID, uid), zap.Error(err))
		return nil, writeError(err, code.ErrorNoteCreateFailed)
	}
	return s.domainToDTO(n), nil
}

// Update 保存标题与内容，UpdatedAt 由仓储刷新
func (s *noteService) Update(ctx context.Context, uid int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	n, err := s.noteRepo.Update(ctx, &domain.Note{ID: params.ID, Title: params.Title, Content: params.Content}, uid)
	s.metrics.NoteOp("update", err)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		s.logger.Error("NoteService.Update failed", zap.Int64(logger.FieldUID, uid), zap.String(logger.FieldNoteID, params.ID), zap.Error(err))
		return nil, writeError(err, code.ErrorNoteUpdateFailed)
	}
	return s.domainToDTO(n), nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, uid int64, id string) error {
	err := s.noteRepo.Delete(ctx, id, uid)
	s.metrics.NoteOp("delete", err)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotFound
		}
		s.logger.Error("NoteService.Delete failed", zap.Int64(logger.FieldUID, uid), zap.String(logger.FieldNoteID, id), zap.Error(err))
		return writeError(err, code.ErrorNoteDeleteFailed)
	}
	return nil
}

// Export 导出笔记
func (s *noteService) Export(ctx context.Context, uid int64, id string) (*dto.NoteExportDTO, error) {
	n, err := s.get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	s.metrics.NoteOp("export", nil)
	return &dto.NoteExportDTO{
		FileName: n.ExportFileName(),
		Content:  []byte(n.Content),
	}, nil
}

// Preview 渲染已保存笔记
func (s *noteService) Preview(ctx context.Context, uid int64, id string) (*dto.NotePreviewDTO, error) {
	n, err := s.get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	return s.Render(n.Content)
}

// Render 渲染 markdown，空内容返回占位提示
func (s *noteService) Render(content string) (*dto.NotePreviewDTO, error) {
	html, err := s.renderer.Render(content)
	if err != nil {
		return nil, code.ErrorNotePreviewFailed.WithDetails(err.Error())
	}
	return &dto.NotePreviewDTO{HTML: html}, nil
}

// CountAll 所有用户的笔记总数
func (s *noteService) CountAll(ctx context.Context) (int64, error) {
	return s.noteRepo.CountAll(ctx)
}

// writeError maps write-queue saturation to its own code
// writeError 写队列繁忙时返回专用错误码
func writeError(err error, fallback *code.Code) error {
	switch {
	case errors.Is(err, writequeue.ErrWriteQueueFull), errors.Is(err, writequeue.ErrWriteTimeout):
		return code.ErrorNoteWriteQueueFull
	case errors.Is(err, context.DeadlineExceeded):
		return code.ErrorRequestTimeout
	default:
		return fallback.WithDetails(err.Error())
	}
}
