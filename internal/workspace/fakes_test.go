package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/markdown-note-service/internal/domain"
)

// memoryStore in-memory NoteStore
type memoryStore struct {
	mu      sync.Mutex
	notes   map[string]*domain.Note
	seq     int
	clock   time.Time
	updates []string
	savedAt []time.Time
	block   chan struct{}
	failErr error
}

func newMemoryStore(notes ...*domain.Note) *memoryStore {
	s := &memoryStore{
		notes: map[string]*domain.Note{},
		clock: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, n := range notes {
		s.notes[n.ID] = n
	}
	return s
}

func (s *memoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *memoryStore) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Note, 0, len(s.notes))
	for _, n := range s.notes {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memoryStore) CreateNote(ctx context.Context) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	s.seq++
	now := s.tick()
	n := &domain.Note{ID: fmt.Sprintf("new-%d", s.seq), CreatedAt: now, UpdatedAt: now}
	s.notes[n.ID] = n
	cp := *n
	return &cp, nil
}

func (s *memoryStore) UpdateNote(ctx context.Context, id, title, content string) (*domain.Note, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	n, ok := s.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	n.Title, n.Content, n.UpdatedAt = title, content, s.tick()
	s.updates = append(s.updates, id+":"+content)
	s.savedAt = append(s.savedAt, time.Now())
	cp := *n
	return &cp, nil
}

func (s *memoryStore) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, id)
	return nil
}

// saveTimes wall clock times the updates arrived
func (s *memoryStore) saveTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.savedAt...)
}

func (s *memoryStore) updateLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.updates...)
}

// stubAssist scripted AssistClient
type stubAssist struct {
	mu      sync.Mutex
	result  string
	err     error
	calls   []Action
	inputs  []string
	started chan struct{}
	release chan struct{}
}

func (s *stubAssist) Assist(ctx context.Context, action Action, content string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, action)
	s.inputs = append(s.inputs, content)
	started, release := s.started, s.release
	s.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return s.result, s.err
}

func (s *stubAssist) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// bufferEditor plain Editor
type bufferEditor struct {
	content string
}

func (e *bufferEditor) Content() string     { return e.content }
func (e *bufferEditor) SetContent(s string) { e.content = s }
