// Package writequeue serializes write operations per user
// Package writequeue 按用户串行化写操作
// SQLite allows a single writer, so writes of the same user take turns on one lane
// SQLite 只允许单写者，同一用户的写操作在同一通道上轮流执行
package writequeue

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrWriteQueueFull too many pending writes for one user
	// ErrWriteQueueFull 单用户等待中的写操作过多
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed manager has been shut down
	// ErrWriteQueueClosed 管理器已关闭
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout waited too long for the lane
	// ErrWriteTimeout 等待写通道超时
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config write queue configuration
// Config 写队列配置
type Config struct {
	// QueueCapacity pending writes allowed per user, default 100
	// QueueCapacity 每用户允许的等待写操作数，默认 100
	QueueCapacity int
	// WriteTimeout default 30 seconds
	// WriteTimeout 默认 30 秒
	WriteTimeout time.Duration
	// IdleTimeout idle lanes are dropped after this, default 10 minutes
	// IdleTimeout 空闲通道回收时间，默认 10 分钟
	IdleTimeout time.Duration
}

// DefaultConfig returns default configuration
// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
	}
}

// lane one user's write slot
// lane 单个用户的写通道
type lane struct {
	turn     chan struct{}
	pending  int
	lastUsed time.Time
}

// Manager owns the per-user lanes
// Manager 管理所有用户的写通道
type Manager struct {
	config Config
	logger *zap.Logger

	mu     sync.Mutex
	lanes  map[int64]*lane
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates the manager and starts idle lane cleanup
// New 创建写队列管理器并启动空闲回收
func New(cfg *Config, logger *zap.Logger) *Manager {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.QueueCapacity > 0 {
			c.QueueCapacity = cfg.QueueCapacity
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			c.IdleTimeout = cfg.IdleTimeout
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		config: c,
		logger: logger,
		lanes:  make(map[int64]*lane),
		ctx:    ctx,
		cancel: cancel,
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	m.logger.Info("write queue manager started",
		zap.Int("queueCapacity", c.QueueCapacity),
		zap.Duration("writeTimeout", c.WriteTimeout),
		zap.Duration("idleTimeout", c.IdleTimeout))

	return m
}

// Execute runs fn once no other write of uid is running
// Execute 等待同一用户的其他写操作结束后执行 fn
func (m *Manager) Execute(ctx context.Context, uid int64, fn func() error) error {
	l, err := m.join(uid)
	if err != nil {
		return err
	}
	defer m.leave(l)

	timer := time.NewTimer(m.config.WriteTimeout)
	defer timer.Stop()

	select {
	case l.turn <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	case <-m.ctx.Done():
		return ErrWriteQueueClosed
	}
	defer func() { <-l.turn }()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}

func (m *Manager) join(uid int64) (*lane, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrWriteQueueClosed
	}

	l, ok := m.lanes[uid]
	if !ok {
		l = &lane{turn: make(chan struct{}, 1)}
		m.lanes[uid] = l
		m.logger.Debug("created write lane for user", zap.Int64("uid", uid))
	}
	if l.pending >= m.config.QueueCapacity {
		return nil, ErrWriteQueueFull
	}
	l.pending++
	l.lastUsed = time.Now()
	return l, nil
}

func (m *Manager) leave(l *lane) {
	m.mu.Lock()
	l.pending--
	l.lastUsed = time.Now()
	m.mu.Unlock()
}

func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.cleanup(time.Now())
		}
	}
}

// cleanup drops lanes without pending writes that have been idle too long
// cleanup 回收无等待写操作且空闲超时的通道
func (m *Manager) cleanup(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for uid, l := range m.lanes {
		if l.pending == 0 && now.Sub(l.lastUsed) > m.config.IdleTimeout {
			delete(m.lanes, uid)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("cleaned up idle write lanes", zap.Int("count", removed))
	}
	return removed
}

// QueueCount number of live lanes
// QueueCount 当前通道数
func (m *Manager) QueueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lanes)
}

// QueuedCount writes running or waiting across all users
// QueuedCount 所有用户正在执行或等待的写操作数
func (m *Manager) QueuedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, l := range m.lanes {
		total += l.pending
	}
	return total
}

// Shutdown rejects new writes and waits for the in-flight ones
// Shutdown 拒绝新写入并等待进行中的写操作完成
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.logger.Info("write queue manager shutting down", zap.Int("queuedCount", m.QueuedCount()))

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for m.QueuedCount() > 0 {
		select {
		case <-ctx.Done():
			m.cancel()
			m.wg.Wait()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	m.cancel()
	m.wg.Wait()
	m.logger.Info("write queue manager shutdown completed")
	return nil
}

// Metrics write queue metrics
// Metrics 写队列指标
type Metrics struct {
	QueueCount  int
	QueuedCount int
	IsClosed    bool
}

// GetMetrics returns current metrics
// GetMetrics 返回当前指标
func (m *Manager) GetMetrics() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, l := range m.lanes {
		total += l.pending
	}
	return Metrics{QueueCount: len(m.lanes), QueuedCount: total, IsClosed: m.closed}
}
