// Package workerpool 提供限制并发数的任务池
// 调用方在自己的 goroutine 中等待执行槽位，池只负责限流、排队上限与优雅关闭
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// 错误定义
var (
	// ErrWorkerPoolFull 等待队列已满
	ErrWorkerPoolFull = errors.New("worker pool queue is full")
	// ErrWorkerPoolClosed Worker Pool 已关闭
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
)

// Config Worker Pool 配置
type Config struct {
	// MaxWorkers 最大并发执行数，默认 16
	MaxWorkers int
	// QueueSize 最大等待数，默认 256
	QueueSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxWorkers: 16,
		QueueSize:  256,
	}
}

// Pool 并发受限的任务池
type Pool struct {
	config Config
	logger *zap.Logger

	slots   chan struct{}
	waiting atomic.Int64
	active  atomic.Int64
	tasks   sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New 创建 Worker Pool
// cfg 为 nil 时使用默认配置，logger 为 nil 时使用 nop logger
func New(cfg *Config, logger *zap.Logger) *Pool {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.MaxWorkers > 0 {
			c.MaxWorkers = cfg.MaxWorkers
		}
		if cfg.QueueSize > 0 {
			c.QueueSize = cfg.QueueSize
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		config: c,
		logger: logger,
		slots:  make(chan struct{}, c.MaxWorkers),
		ctx:    ctx,
		cancel: cancel,
	}

	p.logger.Info("worker pool started",
		zap.Int("maxWorkers", c.MaxWorkers),
		zap.Int("queueSize", c.QueueSize))

	return p
}

// Submit 等待执行槽位后运行 fn，并返回 fn 的结果
// 池已关闭、等待数超限或 ctx 结束时直接返回错误
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.tasks.Done()
	return p.run(ctx, fn)
}

// SubmitAsync 异步提交任务，错误只记录日志
func (p *Pool) SubmitAsync(ctx context.Context, fn func(context.Context) error) error {
	if err := p.enter(); err != nil {
		return err
	}
	go func() {
		defer p.tasks.Done()
		if err := p.run(ctx, fn); err != nil {
			p.logger.Warn("worker pool async task failed", zap.Error(err))
		}
	}()
	return nil
}

// enter 登记一个任务；关闭检查与计数在同一把锁内完成
func (p *Pool) enter() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}
	if p.waiting.Load() >= int64(p.config.QueueSize) {
		return ErrWorkerPoolFull
	}
	p.tasks.Add(1)
	return nil
}

func (p *Pool) run(ctx context.Context, fn func(context.Context) error) (err error) {
	p.waiting.Add(1)
	select {
	case p.slots <- struct{}{}:
		p.waiting.Add(-1)
	case <-ctx.Done():
		p.waiting.Add(-1)
		return ctx.Err()
	case <-p.ctx.Done():
		p.waiting.Add(-1)
		return ErrWorkerPoolClosed
	}

	p.active.Add(1)
	defer func() {
		p.active.Add(-1)
		<-p.slots
		if r := recover(); r != nil {
			p.logger.Error("worker pool task panic", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("task panic: %v", r)
		}
	}()

	return fn(ctx)
}

// ActiveCount 当前正在执行的任务数
func (p *Pool) ActiveCount() int64 {
	return p.active.Load()
}

// QueuedCount 当前等待执行槽位的任务数
func (p *Pool) QueuedCount() int64 {
	return p.waiting.Load()
}

// IsClosed 是否已关闭
func (p *Pool) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// Shutdown 停止接收新任务并等待已登记任务完成
// ctx 超时后取消仍在等待槽位的任务
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.logger.Info("worker pool shutting down",
		zap.Int64("activeCount", p.active.Load()),
		zap.Int64("queuedCount", p.waiting.Load()))

	done := make(chan struct{})
	go func() {
		p.tasks.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Info("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.cancel()
		p.logger.Warn("worker pool shutdown timeout, cancelling waiting tasks")
		return ctx.Err()
	}
}

// Metrics Worker Pool 指标
type Metrics struct {
	MaxWorkers  int
	ActiveCount int64
	QueuedCount int64
	IsClosed    bool
}

// GetMetrics 获取当前指标
func (p *Pool) GetMetrics() Metrics {
	return Metrics{
		MaxWorkers:  p.config.MaxWorkers,
		ActiveCount: p.active.Load(),
		QueuedCount: p.waiting.Load(),
		IsClosed:    p.IsClosed(),
	}
}
