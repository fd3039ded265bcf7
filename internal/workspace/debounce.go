package workspace

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSaveDelay quiet period before an autosave
// DefaultSaveDelay 自动保存前的静默时间
const DefaultSaveDelay = time.Second

// Debouncer runs the last triggered func once the quiet period has passed
// Debouncer 静默期结束后执行最后一次触发的函数（尾沿）
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger cancels the pending timer and schedules fn
// Trigger 取消待执行的定时器并重新计时
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// 已被取消或被新的触发替换
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel disposes the pending timer
// Cancel 丢弃待执行的定时器
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether a call is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

type saveState int32

const (
	saveIdle saveState = iota
	saveSaving
)

// SaveGuard allows one save at a time, a save attempted while saving is dropped
// SaveGuard 同一时间只允许一次保存，保存中的新请求直接丢弃
type SaveGuard struct {
	state atomic.Int32
}

// TryAcquire idle → saving
func (g *SaveGuard) TryAcquire() bool {
	return g.state.CompareAndSwap(int32(saveIdle), int32(saveSaving))
}

// Release saving → idle
func (g *SaveGuard) Release() {
	g.state.Store(int32(saveIdle))
}

func (g *SaveGuard) Saving() bool {
	return saveState(g.state.Load()) == saveSaving
}
