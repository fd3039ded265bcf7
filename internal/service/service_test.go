package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/haierkeys/markdown-note-service/internal/dao"
	"github.com/haierkeys/markdown-note-service/internal/domain"
	"github.com/haierkeys/markdown-note-service/pkg/writequeue"
	"github.com/stretchr/testify/require"
)

// newTestRepos opens a throwaway sqlite database
// newTestRepos 打开一次性 sqlite 数据库
func newTestRepos(t *testing.T) (domain.NoteRepository, domain.UserRepository) {
	t.Helper()
	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "notes.sqlite3"),
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, nil, false)
	require.NoError(t, err)

	wq := writequeue.New(nil, nil)
	t.Cleanup(func() {
		_ = wq.Shutdown(context.Background())
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	d := dao.New(db, context.Background(), dao.WithWriteQueue(wq))
	return dao.NewNoteRepository(d), dao.NewUserRepository(d)
}
