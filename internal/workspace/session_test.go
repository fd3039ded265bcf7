package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	initial := &Session{Token: "t1"}
	s := NewSessionStore(initial)

	var seen []*Session
	unsubscribe := s.Subscribe(func(sess *Session) { seen = append(seen, sess) })
	assert.Equal(t, []*Session{initial}, seen, "current session is delivered on subscribe")
	assert.Equal(t, 1, s.Subscribers())

	next := &Session{Token: "t2"}
	s.Set(next)
	s.Set(nil)
	assert.Equal(t, []*Session{initial, next, nil}, seen)
	assert.Nil(t, s.Current())

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, s.Subscribers())

	s.Set(initial)
	assert.Len(t, seen, 3)
}

func TestSessionStore_Close(t *testing.T) {
	s := NewSessionStore(nil)
	calls := 0
	s.Subscribe(func(*Session) { calls++ })

	s.Close()
	s.Set(&Session{Token: "ignored"})
	assert.Equal(t, 1, calls)
	assert.Nil(t, s.Current())

	s.Subscribe(func(*Session) { calls++ })
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Subscribers())
}
