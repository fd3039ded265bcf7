package workspace

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/markdown-note-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore() *memoryStore {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return newMemoryStore(
		&domain.Note{ID: "a", Title: "Alpha", Content: "first", CreatedAt: base, UpdatedAt: base.Add(time.Hour)},
		&domain.Note{ID: "b", Title: "", Content: "second", CreatedAt: base, UpdatedAt: base.Add(2 * time.Hour)},
		&domain.Note{ID: "c", Title: "Gamma", Content: "third", CreatedAt: base, UpdatedAt: base.Add(30 * time.Minute)},
	)
}

func startedController(t *testing.T, store NoteStore, opts ...Option) (*Controller, *SessionStore) {
	t.Helper()
	sessions := NewSessionStore(&Session{Token: "token"})
	c := NewController(store, sessions, opts...)
	c.Start(context.Background())
	t.Cleanup(c.Stop)
	return c, sessions
}

func ids(notes []*domain.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestController_StartSelectsMostRecent(t *testing.T) {
	c, _ := startedController(t, seededStore())

	assert.Equal(t, []string{"b", "a", "c"}, ids(c.Notes()))
	assert.Equal(t, "b", c.SelectedID())
	assert.Equal(t, "", c.Title())
	assert.Equal(t, "second", c.Content())
}

func TestController_FilterAndEmptyMessage(t *testing.T) {
	c, _ := startedController(t, seededStore())

	c.SetQuery("GAMMA")
	assert.Equal(t, []string{"c"}, ids(c.Notes()))

	c.SetQuery("zzz")
	assert.Empty(t, c.Notes())
	assert.Equal(t, "No notes found", c.EmptyMessage())

	c.SetQuery("")
	assert.Len(t, c.Notes(), 3)
}

func TestController_SelectCopiesBuffers(t *testing.T) {
	c, _ := startedController(t, seededStore())

	require.NoError(t, c.Select("a"))
	assert.Equal(t, "Alpha", c.Title())
	assert.Equal(t, "first", c.Content())

	assert.ErrorIs(t, c.Select("missing"), ErrNoteNotFound)
	assert.Equal(t, "a", c.SelectedID())
}

func TestController_CreateRequiresSession(t *testing.T) {
	store := seededStore()
	c := NewController(store, NewSessionStore(nil))
	c.Start(context.Background())
	defer c.Stop()

	_, err := c.Create(context.Background())
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Empty(t, c.Notes())
}

func TestController_CreatePrependsAndSelects(t *testing.T) {
	c, _ := startedController(t, seededStore())

	n, err := c.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, n.ID, c.Notes()[0].ID)
	assert.Equal(t, n.ID, c.SelectedID())
	assert.Equal(t, "", c.Title())
	assert.Equal(t, "", c.Content())
}

func TestController_DeleteSelectedFallsBack(t *testing.T) {
	c, _ := startedController(t, seededStore())

	require.NoError(t, c.Delete(context.Background(), "b"))
	assert.Equal(t, "a", c.SelectedID())
	assert.Equal(t, "first", c.Content())

	require.NoError(t, c.Delete(context.Background(), "c"))
	assert.Equal(t, "a", c.SelectedID(), "deleting another note keeps the selection")

	require.NoError(t, c.Delete(context.Background(), "a"))
	assert.Equal(t, "", c.SelectedID())
	assert.Equal(t, "", c.Title())
	assert.Equal(t, "", c.Content())
	assert.Equal(t, "No notes yet", c.EmptyMessage())
}

func TestController_AutosaveDebounced(t *testing.T) {
	store := seededStore()
	c, _ := startedController(t, store, WithSaveDelay(60*time.Millisecond))

	require.NoError(t, c.Select("c"))
	c.SetContent("draft 1")
	time.Sleep(40 * time.Millisecond)
	lastEdit := time.Now()
	c.SetContent("draft 2")

	require.Eventually(t, func() bool { return len(store.updateLog()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"c:draft 2"}, store.updateLog())

	// 以最后一次编辑为起点等满整个静默期
	saved := store.saveTimes()
	require.Len(t, saved, 1)
	assert.GreaterOrEqual(t, saved[0].Sub(lastEdit), 60*time.Millisecond)

	// 保存后重新排序，c 成为最新
	assert.Equal(t, "c", c.Notes()[0].ID)
	assert.Equal(t, "draft 2", c.Notes()[0].Content)
}

func TestController_SwitchingDropsPendingSave(t *testing.T) {
	store := seededStore()
	c, _ := startedController(t, store, WithSaveDelay(40*time.Millisecond))

	c.SetTitle("renamed")
	require.NoError(t, c.Select("a"))

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, store.updateLog())
}

func TestController_SaveDroppedWhileSaving(t *testing.T) {
	store := seededStore()
	store.block = make(chan struct{})
	c, _ := startedController(t, store)

	done := make(chan bool, 1)
	go func() {
		ok, _ := c.Save(context.Background())
		done <- ok
	}()
	require.Eventually(t, c.Saving, time.Second, time.Millisecond)

	ok, err := c.Save(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)

	close(store.block)
	assert.True(t, <-done)
	assert.Len(t, store.updateLog(), 1)
}

func TestController_AutosaveError(t *testing.T) {
	store := seededStore()
	store.failErr = errors.New("db down")
	var got atomic.Value
	c, _ := startedController(t, store,
		WithSaveDelay(10*time.Millisecond),
		WithSaveErrorHandler(func(err error) { got.Store(err) }),
	)

	c.SetContent("x")
	require.Eventually(t, func() bool { return got.Load() != nil }, time.Second, 5*time.Millisecond)
	assert.False(t, c.Saving())
}

func TestController_Export(t *testing.T) {
	c, _ := startedController(t, seededStore())

	name, body, err := c.Export()
	require.NoError(t, err)
	assert.Equal(t, "Untitled.md", name)
	assert.Equal(t, []byte("second"), body)

	require.NoError(t, c.Select("a"))
	c.SetContent("# Alpha\nü")
	name, body, err = c.Export()
	require.NoError(t, err)
	assert.Equal(t, "Alpha.md", name)
	assert.Equal(t, "# Alpha\nü", string(body))
}

func TestController_SignOutClearsState(t *testing.T) {
	var redirected atomic.Int32
	c, sessions := startedController(t, seededStore(), WithSignInRedirect(func() { redirected.Add(1) }))
	require.NotEmpty(t, c.Notes())

	sessions.Set(nil)
	assert.Empty(t, c.Notes())
	assert.Equal(t, "", c.SelectedID())
	assert.Nil(t, c.Session())
	assert.Equal(t, int32(1), redirected.Load())

	c.Stop()
	assert.Equal(t, 0, sessions.Subscribers())
}

func TestController_AssistantWritesThroughAutosave(t *testing.T) {
	store := seededStore()
	c, _ := startedController(t, store, WithSaveDelay(20*time.Millisecond))
	a := NewAssistant(&stubAssist{result: "more"}, c, nil, nil)

	require.NoError(t, a.Generate(context.Background(), "continue"))
	assert.Equal(t, "second\n\nmore", c.Content())
	require.Eventually(t, func() bool { return len(store.updateLog()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "b:second\n\nmore", store.updateLog()[0])
}
