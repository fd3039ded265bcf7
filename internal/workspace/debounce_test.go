package workspace

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_TrailingEdge(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)

	var mu sync.Mutex
	var calls []string
	var at time.Time
	start := time.Now()

	record := func(v string) func() {
		return func() {
			mu.Lock()
			calls = append(calls, v)
			at = time.Now()
			mu.Unlock()
		}
	}

	d.Trigger(record("first"))
	time.Sleep(50 * time.Millisecond)
	d.Trigger(record("second"))
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"second"}, calls)
	assert.GreaterOrEqual(t, at.Sub(start), 150*time.Millisecond)
	assert.False(t, d.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var fired atomic.Bool

	d.Trigger(func() { fired.Store(true) })
	d.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.False(t, fired.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultSaveDelay, NewDebouncer(0).delay)
}

func TestSaveGuard(t *testing.T) {
	var g SaveGuard
	assert.False(t, g.Saving())

	require.True(t, g.TryAcquire())
	assert.True(t, g.Saving())
	assert.False(t, g.TryAcquire(), "a save while saving is dropped")

	g.Release()
	assert.False(t, g.Saving())
	assert.True(t, g.TryAcquire())
}
