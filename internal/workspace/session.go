package workspace

import (
	"context"
	"sync"

	"github.com/haierkeys/markdown-note-service/internal/dto"
)

// Session signed-in token and the user it identifies
// Session 登录 Token 及对应用户
type Session struct {
	Token string
	User  *dto.UserDTO
}

// Authenticator auth collaborator
// Authenticator 认证协作方
type Authenticator interface {
	GetSession(ctx context.Context) (*Session, error)
	SignOut(ctx context.Context) error
}

type storeState int

const (
	storeUninitialized storeState = iota
	storeSubscribed
	storeTornDown
)

// SessionStore observable session
// SessionStore 可订阅的会话状态
//
//	uninitialized → subscribed → torn down
type SessionStore struct {
	mu      sync.Mutex
	state   storeState
	current *Session
	subs    map[uint64]func(*Session)
	nextID  uint64
}

func NewSessionStore(initial *Session) *SessionStore {
	return &SessionStore{
		current: initial,
		subs:    make(map[uint64]func(*Session)),
	}
}

// Subscribe registers fn and immediately delivers the current session
// Subscribe 注册回调并立即推送当前会话
func (s *SessionStore) Subscribe(fn func(*Session)) (unsubscribe func()) {
	s.mu.Lock()
	if s.state == storeTornDown {
		s.mu.Unlock()
		return func() {}
	}
	s.state = storeSubscribed
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Set replaces the session and notifies subscribers, ignored once closed
// Set 更新会话并通知订阅者，关闭后忽略
func (s *SessionStore) Set(session *Session) {
	s.mu.Lock()
	if s.state == storeTornDown {
		s.mu.Unlock()
		return
	}
	s.current = session
	fns := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

func (s *SessionStore) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close tears the store down and drops every subscriber
// Close 销毁并移除全部订阅者
func (s *SessionStore) Close() {
	s.mu.Lock()
	s.state = storeTornDown
	s.subs = make(map[uint64]func(*Session))
	s.mu.Unlock()
}

// Subscribers number of live subscriptions
func (s *SessionStore) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
