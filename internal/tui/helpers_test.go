package tui

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

var discardLogger = slog.New(slog.DiscardHandler)

// fakeSubscription counts Close calls and closes its channel on the first.
type fakeSubscription struct {
	ch chan domain.ChangeEvent

	mu     sync.Mutex
	closes int
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{ch: make(chan domain.ChangeEvent, 8)}
}

func (s *fakeSubscription) Changes() <-chan domain.ChangeEvent { return s.ch }

func (s *fakeSubscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	if s.closes == 1 {
		close(s.ch)
	}
}

func (s *fakeSubscription) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

func (s *fakeSubscription) Emit(op domain.ChangeOp) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closes == 0 {
		s.ch <- domain.ChangeEvent{Collection: domain.CollectionQuestions, Op: op, ID: uuid.New()}
	}
}

// subscriptions hands out a fresh fakeSubscription per call and remembers
// them. The first failures calls return an error instead.
type subscriptions struct {
	mu       sync.Mutex
	subs     []*fakeSubscription
	failures int
}

func (s *subscriptions) subscribe(context.Context, domain.Collection) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return nil, errors.New("connection refused")
	}
	sub := newFakeSubscription()
	s.subs = append(s.subs, sub)
	return sub, nil
}

func (s *subscriptions) all() []*fakeSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*fakeSubscription(nil), s.subs...)
}

func (s *subscriptions) last(t *testing.T) *fakeSubscription {
	t.Helper()
	all := s.all()
	if len(all) == 0 {
		t.Fatal("no subscription opened")
	}
	return all[len(all)-1]
}

// runner executes commands off the test goroutine, the way the bubbletea
// runtime does, and feeds their messages back through update one at a time.
// Messages other than the components' own (cursor blinks, spinner ticks)
// are dropped.
type runner struct {
	msgs chan tea.Msg
}

func newRunner() *runner {
	return &runner{msgs: make(chan tea.Msg, 256)}
}

func (r *runner) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				r.exec(c)
			}
			return
		}
		if isComponentMsg(msg) {
			r.msgs <- msg
		}
	}()
}

// settle processes messages until none arrive for a short while.
func (r *runner) settle(update func(tea.Msg) tea.Cmd) {
	for {
		select {
		case msg := <-r.msgs:
			r.exec(update(msg))
		case <-time.After(100 * time.Millisecond):
			return
		}
	}
}

func (r *runner) run(cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	r.exec(cmd)
	r.settle(update)
}

func isComponentMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case questionsLoadedMsg, subscribedMsg, changeMsg, subscriptionEndedMsg, resubscribeMsg, answersLoadedMsg, postedMsg:
		return true
	}
	return false
}

var base = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func question(content string, age time.Duration, answers int) domain.Question {
	return domain.Question{ID: uuid.New(), Content: content, CreatedAt: base.Add(-age), AnswerCount: answers}
}

func answer(questionID uuid.UUID, content string, age time.Duration) domain.Answer {
	return domain.Answer{ID: uuid.New(), QuestionID: questionID, Content: content, CreatedAt: base.Add(-age)}
}

// questionStore backs ListQuestions with a mutable snapshot.
type questionStore struct {
	mu   sync.Mutex
	list []domain.Question
	err  error
}

func (s *questionStore) set(qs []domain.Question, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list, s.err = qs, err
}

func (s *questionStore) prepend(q domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append([]domain.Question{q}, s.list...)
}

func (s *questionStore) listQuestions(context.Context) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Question(nil), s.list...), nil
}
