package task

import (
	"context"

	"github.com/haierkeys/markdown-note-service/internal/app"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// NoteStatsTask 刷新笔记总数指标
type NoteStatsTask struct {
	app      *app.App
	schedule cron.Schedule
	logger   *zap.Logger
}

func (t *NoteStatsTask) Name() string {
	return "note_stats"
}

func (t *NoteStatsTask) Schedule() cron.Schedule {
	return t.schedule
}

func (t *NoteStatsTask) IsStartupRun() bool {
	return true
}

func (t *NoteStatsTask) Run(ctx context.Context) error {
	defer t.app.TrackOperation()()

	total, err := t.app.NoteService.CountAll(ctx)
	if err != nil {
		return errors.Wrap(err, "count notes")
	}
	t.app.Metrics.SetNotesTotal(total)
	t.logger.Debug("note stats refreshed", zap.Int64("notes", total))
	return nil
}

// NewNoteStatsTask 创建 note_stats 任务，cron 为空时禁用
func NewNoteStatsTask(appContainer *app.App) (Task, error) {
	expr := appContainer.Config().Task.NoteStatsCron
	if expr == "" {
		return nil, nil
	}
	schedule, err := ParseSchedule(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse note_stats cron %q", expr)
	}
	return &NoteStatsTask{
		app:      appContainer,
		schedule: schedule,
		logger:   appContainer.Logger(),
	}, nil
}

func init() {
	RegisterWithApp(NewNoteStatsTask)
}
