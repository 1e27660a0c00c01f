// ABOUTME: Tests for copilot chat sessions
// ABOUTME: Uses a manual scheduler for ordering and real timers for leak checks
package copilot

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/harperreed/socialpulse/models"
)

type manualTask struct {
	f       func()
	delay   time.Duration
	stopped bool
	fired   bool
}

func (t *manualTask) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{f: f, delay: d}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *manualScheduler) fireAll() {
	m.mu.Lock()
	tasks := append([]*manualTask(nil), m.tasks...)
	m.mu.Unlock()
	for _, t := range tasks {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

func TestSessionSeedsWelcome(t *testing.T) {
	s := NewSession(WithScheduler(&manualScheduler{}))
	defer s.Close()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, models.RoleAssistant, msgs[0].Role)
	assert.Equal(t, Welcome, msgs[0].Content)
	assert.Equal(t, 1, msgs[0].ID)
}

func TestSessionSendSchedulesReply(t *testing.T) {
	sch := &manualScheduler{}
	var replies []models.ChatMessage
	s := NewSession(
		WithScheduler(sch),
		WithReplyDelay(250*time.Millisecond),
		WithOnReply(func(m models.ChatMessage) { replies = append(replies, m) }),
	)
	defer s.Close()

	msg, ok := s.Send("tell me about sentiment")
	require.True(t, ok)
	assert.Equal(t, models.RoleUser, msg.Role)
	assert.Equal(t, 2, msg.ID)

	// reply is not visible until the scheduler fires
	assert.Len(t, s.Messages(), 2)
	assert.Equal(t, 1, s.Pending())
	require.Len(t, sch.tasks, 1)
	assert.Equal(t, 250*time.Millisecond, sch.tasks[0].delay)

	sch.fireAll()

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, models.RoleAssistant, msgs[2].Role)
	assert.Equal(t, responseOf(t, RuleSentiment), msgs[2].Content)
	assert.Equal(t, 3, msgs[2].ID)
	assert.Equal(t, 0, s.Pending())
	require.Len(t, replies, 1)
	assert.Equal(t, msgs[2], replies[0])
}

func TestSessionRejectsBlankInput(t *testing.T) {
	sch := &manualScheduler{}
	s := NewSession(WithScheduler(sch))
	defer s.Close()

	for _, input := range []string{"", "   ", "\n\t"} {
		_, ok := s.Send(input)
		assert.False(t, ok)
	}
	assert.Len(t, s.Messages(), 1)
	assert.Empty(t, sch.tasks)
}

func TestSessionIDsStayUniqueWithOverlappingReplies(t *testing.T) {
	sch := &manualScheduler{}
	s := NewSession(WithScheduler(sch))
	defer s.Close()

	s.Send("hello")
	s.Send("bye")
	sch.fireAll()

	seen := map[int]bool{}
	for _, m := range s.Messages() {
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
	}
	assert.Len(t, seen, 5)
}

func TestSessionCloseCancelsPendingReplies(t *testing.T) {
	sch := &manualScheduler{}
	s := NewSession(WithScheduler(sch))

	s.Send("analytics")
	s.Close()

	require.Len(t, sch.tasks, 1)
	assert.True(t, sch.tasks[0].stopped)

	// a timer that already fired before Stop must still be harmless
	sch.tasks[0].f()
	assert.Len(t, s.Messages(), 2)

	_, ok := s.Send("hello again")
	assert.False(t, ok, "closed session should reject sends")

	s.Close()
}

func TestSessionRealTimersDeliverAndDoNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	got := make(chan models.ChatMessage, 1)
	s := NewSession(
		WithReplyDelay(10*time.Millisecond),
		WithOnReply(func(m models.ChatMessage) { got <- m }),
	)

	s.Send("bye")
	select {
	case m := <-got:
		assert.Equal(t, responseOf(t, RuleFarewell), m.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("reply never arrived")
	}
	s.Close()
}

func TestSessionCloseStopsRealTimers(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewSession(WithReplyDelay(time.Hour))
	s.Send("hello")
	assert.Equal(t, 1, s.Pending())
	s.Close()
	assert.Equal(t, 0, s.Pending())
	assert.Len(t, s.Messages(), 2)
}

func TestSessionClock(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	s := NewSession(WithScheduler(&manualScheduler{}), WithClock(func() time.Time { return fixed }))
	defer s.Close()
	assert.True(t, s.Messages()[0].Timestamp.Equal(fixed))
}
