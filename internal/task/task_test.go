package task

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/markdown-note-service/internal/app"
	"github.com/haierkeys/markdown-note-service/internal/dao"
	"github.com/haierkeys/markdown-note-service/internal/dto"
	"github.com/haierkeys/markdown-note-service/pkg/safe_close"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingTask struct {
	runs     atomic.Int32
	schedule cron.Schedule
	startup  bool
	panics   bool
}

func (t *countingTask) Name() string            { return "counting" }
func (t *countingTask) Schedule() cron.Schedule { return t.schedule }
func (t *countingTask) IsStartupRun() bool      { return t.startup }
func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	if t.panics {
		panic("boom")
	}
	return nil
}

// tickSchedule fires every d, cron.Every rounds below one second
type tickSchedule time.Duration

func (d tickSchedule) Next(t time.Time) time.Time { return t.Add(time.Duration(d)) }

func TestParseSchedule(t *testing.T) {
	_, err := ParseSchedule("@every 5m")
	assert.NoError(t, err)
	_, err = ParseSchedule("*/5 * * * *")
	assert.NoError(t, err)
	_, err = ParseSchedule("not a cron")
	assert.Error(t, err)
}

func TestScheduler_RunsUntilClosed(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	task := &countingTask{schedule: tickSchedule(10 * time.Millisecond), startup: true, panics: true}
	s.AddTask(task)
	s.Start()

	require.Eventually(t, func() bool { return task.runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	sc.SendCloseSignal(nil)
	require.NoError(t, sc.WaitClosed())

	stopped := task.runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, task.runs.Load())
}

func TestScheduler_StartupOnly(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	task := &countingTask{startup: true}
	s.AddTask(task)
	s.Start()

	require.NoError(t, sc.WaitClosed())
	assert.Equal(t, int32(1), task.runs.Load())
}

func newTestApp(t *testing.T, cronExpr string) *app.App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("task:\n  note-stats-cron: \""+cronExpr+"\"\n"), 0644))
	cfg, _, err := app.LoadConfig(path)
	require.NoError(t, err)
	cfg.Database.Path = filepath.Join(t.TempDir(), "notes.sqlite3")

	db, err := dao.NewDBEngineWithConfig(cfg.Database, nil, false)
	require.NoError(t, err)
	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

func TestNoteStatsTask_SetsGauge(t *testing.T) {
	a := newTestApp(t, "@every 1h")
	ctx := context.Background()

	_, err := a.NoteService.Create(ctx, 1, &dto.NoteCreateRequest{Title: "a"})
	require.NoError(t, err)
	_, err = a.NoteService.Create(ctx, 2, &dto.NoteCreateRequest{Title: "b"})
	require.NoError(t, err)

	task, err := NewNoteStatsTask(a)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "note_stats", task.Name())
	require.NoError(t, task.Run(ctx))

	families, err := a.Registry().Gather()
	require.NoError(t, err)
	var got float64 = -1
	for _, f := range families {
		if f.GetName() == "markdown_note_notes" {
			got = f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(2), got)
}

func TestNoteStatsTask_BadCron(t *testing.T) {
	a := newTestApp(t, "@every 1h")
	a.Config().Task.NoteStatsCron = "every now and then"
	_, err := NewNoteStatsTask(a)
	assert.Error(t, err)

	a.Config().Task.NoteStatsCron = ""
	task, err := NewNoteStatsTask(a)
	assert.NoError(t, err)
	assert.Nil(t, task)
}
