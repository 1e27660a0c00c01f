// ABOUTME: Copilot chat session with delayed assistant replies
// ABOUTME: Keeps the append-only message log and cancels pending replies on Close
package copilot

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/models"
)

// DefaultReplyDelay is the simulated typing latency before a reply shows up.
const DefaultReplyDelay = 500 * time.Millisecond

// Task is a scheduled callback that can be cancelled.
type Task interface {
	Stop() bool
}

// Scheduler defers a callback. The default implementation uses time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// Session owns one conversation. Send is called by the owning view; replies
// arrive later from the scheduler. Close must be called when the view goes
// away so that no reply lands afterwards.
type Session struct {
	mu        sync.Mutex
	matcher   *Matcher
	scheduler Scheduler
	delay     time.Duration
	now       func() time.Time
	onReply   func(models.ChatMessage)
	logger    *zap.Logger

	messages []models.ChatMessage
	pending  map[uint64]Task
	seq      uint64
	closed   bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMatcher replaces the default rule table.
func WithMatcher(m *Matcher) SessionOption {
	return func(s *Session) { s.matcher = m }
}

// WithScheduler replaces the timer-based scheduler.
func WithScheduler(sch Scheduler) SessionOption {
	return func(s *Session) { s.scheduler = sch }
}

// WithReplyDelay sets the typing latency. Zero or negative values are kept as-is
// and still go through the scheduler.
func WithReplyDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.delay = d }
}

// WithOnReply registers a callback invoked after each assistant reply is appended.
func WithOnReply(f func(models.ChatMessage)) SessionOption {
	return func(s *Session) { s.onReply = f }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession starts a conversation seeded with the welcome message.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		matcher:   defaultMatcher,
		scheduler: timerScheduler{},
		delay:     DefaultReplyDelay,
		now:       time.Now,
		logger:    zap.NewNop(),
		pending:   make(map[uint64]Task),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.appendLocked(models.RoleAssistant, Welcome)
	return s
}

// Send records a user message and schedules the matching reply. Blank input
// is ignored and reported with ok=false.
func (s *Session) Send(text string) (models.ChatMessage, bool) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return models.ChatMessage{}, false
	}

	msg := s.appendLocked(models.RoleUser, text)

	rule, matched := s.matcher.MatchRule(text)
	reply := s.matcher.fallback
	ruleName := "fallback"
	if matched {
		reply = rule.Response
		ruleName = rule.Name
	}

	s.seq++
	key := s.seq
	s.pending[key] = s.scheduler.AfterFunc(s.delay, func() {
		s.deliver(key, reply)
	})

	s.logger.Debug("copilot reply scheduled",
		zap.Int("message_id", msg.ID),
		zap.String("rule", ruleName),
		zap.Duration("delay", s.delay))

	return msg, true
}

func (s *Session) deliver(key uint64, reply string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	msg := s.appendLocked(models.RoleAssistant, reply)
	onReply := s.onReply
	s.mu.Unlock()

	if onReply != nil {
		onReply(msg)
	}
}

func (s *Session) appendLocked(role, content string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        len(s.messages) + 1,
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Messages returns a copy of the log in insertion order.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Pending returns how many replies are still scheduled.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close cancels every pending reply. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for key, task := range s.pending {
		task.Stop()
		delete(s.pending, key)
	}
}
