package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/haierkeys/markdown-note-service/internal/dto"
	"github.com/haierkeys/markdown-note-service/pkg/code"
	"github.com/haierkeys/markdown-note-service/pkg/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNoteService(t *testing.T) NoteService {
	t.Helper()
	noteRepo, _ := newTestRepos(t)
	return NewNoteService(noteRepo, nil, nil, &ServiceConfig{})
}

func TestNoteService_CreateListFilter(t *testing.T) {
	ctx := context.Background()
	svc := newTestNoteService(t)

	empty, err := svc.List(ctx, 1, "")
	require.NoError(t, err)
	assert.Empty(t, empty.List)
	assert.Equal(t, "No notes yet", empty.Empty)

	first, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", first.DisplayTitle)
	assert.Equal(t, "Empty note", first.Snippet)

	time.Sleep(5 * time.Millisecond)
	_, err = svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "Groceries", Content: "milk, EGGS"})
	require.NoError(t, err)

	list, err := svc.List(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, list.List, 2)
	assert.Equal(t, "Groceries", list.List[0].Title)
	assert.Empty(t, list.Empty)

	filtered, err := svc.List(ctx, 1, "eggs")
	require.NoError(t, err)
	require.Len(t, filtered.List, 1)
	assert.Equal(t, "Groceries", filtered.List[0].Title)

	none, err := svc.List(ctx, 1, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none.List)
	assert.Equal(t, "No notes found", none.Empty)

	other, err := svc.List(ctx, 2, "")
	require.NoError(t, err)
	assert.Empty(t, other.List)
}

func TestNoteService_UpdateMovesToTop(t *testing.T) {
	ctx := context.Background()
	svc := newTestNoteService(t)

	a, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "a"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "b"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	updated, err := svc.Update(ctx, 1, &dto.NoteUpdateRequest{ID: a.ID, Title: "a2", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "a2", updated.Title)

	list, err := svc.List(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, list.List, 2)
	assert.Equal(t, a.ID, list.List[0].ID)
}

func TestNoteService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestNoteService(t)
	missing := uuid.NewString()

	_, err := svc.Get(ctx, 1, missing)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	_, err = svc.Update(ctx, 1, &dto.NoteUpdateRequest{ID: missing, Title: "x"})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 1, missing), code.ErrorNoteNotFound)

	n, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "mine"})
	require.NoError(t, err)
	_, err = svc.Get(ctx, 2, n.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound, "notes are private to their owner")

	require.NoError(t, svc.Delete(ctx, 1, n.ID))
	_, err = svc.Get(ctx, 1, n.ID)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_Export(t *testing.T) {
	ctx := context.Background()
	svc := newTestNoteService(t)

	titled, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Title: "Plan", Content: "# Plan\n- a"})
	require.NoError(t, err)
	out, err := svc.Export(ctx, 1, titled.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plan.md", out.FileName)
	assert.Equal(t, []byte("# Plan\n- a"), out.Content)

	untitled, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{})
	require.NoError(t, err)
	out, err = svc.Export(ctx, 1, untitled.ID)
	require.NoError(t, err)
	assert.Equal(t, "Untitled.md", out.FileName)
	assert.Empty(t, out.Content)
}

func TestNoteService_PreviewAndRender(t *testing.T) {
	ctx := context.Background()
	svc := newTestNoteService(t)

	placeholder, err := svc.Render("")
	require.NoError(t, err)
	assert.Contains(t, placeholder.HTML, markdown.Placeholder)

	n, err := svc.Create(ctx, 1, &dto.NoteCreateRequest{Content: "line one\nline two"})
	require.NoError(t, err)
	out, err := svc.Preview(ctx, 1, n.ID)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out.HTML, "<br"), out.HTML)

	count, err := svc.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
