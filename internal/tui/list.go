package tui

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

// State is the list's view state.
type State int

const (
	StateLoading State = iota
	StateEmpty
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	}
	return "unknown"
}

type (
	questionsLoadedMsg struct {
		listID    uint64
		gen       uint64
		questions []domain.Question
		err       error
	}

	subscribedMsg struct {
		listID uint64
		sub    Subscription
		err    error
	}

	changeMsg struct {
		listID uint64
		sub    Subscription
		event  domain.ChangeEvent
	}

	subscriptionEndedMsg struct {
		listID uint64
	}

	resubscribeMsg struct {
		listID uint64
	}
)

// DefaultResubscribeDelay is the pause between failed subscribe attempts.
const DefaultResubscribeDelay = 2 * time.Second

// List is the root collection of questions. Between Init and Close it
// holds one change subscription; every notification triggers one full
// reload. Only the result of the most recently issued fetch is applied.
type List struct {
	id      uint64
	backend Backend
	log     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	gen     uint64
	loading bool
	items   []*Item
	byID    map[uuid.UUID]*Item
	cursor  int

	resubscribeDelay time.Duration
	// set after a failed subscribe; the next success reloads to cover the gap
	missedChanges bool

	mu       sync.Mutex
	sub      Subscription
	closed   bool
	released sync.Once
}

// NewList creates a list bound to parent. It starts fetching on Init.
func NewList(parent context.Context, backend Backend, log *slog.Logger) *List {
	ctx, cancel := context.WithCancel(parent)
	return &List{
		id:      nextComponentID(),
		backend: backend,
		log:     log.With("component", "list"),
		ctx:     ctx,
		cancel:  cancel,
		loading: true,
		byID:    make(map[uuid.UUID]*Item),

		resubscribeDelay: DefaultResubscribeDelay,
	}
}

// SetResubscribeDelay sets the pause before retrying a failed subscribe.
func (l *List) SetResubscribeDelay(d time.Duration) {
	if d > 0 {
		l.resubscribeDelay = d
	}
}

// Init issues the first fetch and opens the change subscription.
func (l *List) Init() tea.Cmd {
	return tea.Batch(l.Reload(), l.subscribe())
}

// Reload issues a full fetch. Any fetch issued earlier becomes stale.
func (l *List) Reload() tea.Cmd {
	if l.isClosed() {
		return nil
	}
	l.gen++
	l.loading = true

	ctx, backend, id, gen := l.ctx, l.backend, l.id, l.gen
	return func() tea.Msg {
		questions, err := backend.ListQuestions(ctx)
		return questionsLoadedMsg{listID: id, gen: gen, questions: questions, err: err}
	}
}

func (l *List) subscribe() tea.Cmd {
	ctx, backend, id := l.ctx, l.backend, l.id
	return func() tea.Msg {
		sub, err := backend.SubscribeToChanges(ctx, domain.CollectionQuestions)
		if err != nil {
			return subscribedMsg{listID: id, err: err}
		}
		if !l.adopt(sub) {
			sub.Close()
			return nil
		}
		return subscribedMsg{listID: id, sub: sub}
	}
}

// adopt hands sub to the list unless the list is already closed.
func (l *List) adopt(sub Subscription) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.sub = sub
	return true
}

func (l *List) waitForChange(sub Subscription) tea.Cmd {
	id := l.id
	return func() tea.Msg {
		event, ok := <-sub.Changes()
		if !ok {
			return subscriptionEndedMsg{listID: id}
		}
		return changeMsg{listID: id, sub: sub, event: event}
	}
}

// Close cancels in-flight fetches and releases the subscription. Results
// that arrive afterwards are discarded. Close is idempotent.
func (l *List) Close() {
	l.mu.Lock()
	l.closed = true
	sub := l.sub
	l.mu.Unlock()

	l.cancel()
	if sub != nil {
		l.released.Do(sub.Close)
	}
}

func (l *List) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Update routes async results to the list and its items.
func (l *List) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		if msg.listID == l.id {
			l.applyQuestions(msg)
		}
		return nil

	case subscribedMsg:
		if msg.listID != l.id || l.isClosed() {
			return nil
		}
		if msg.err != nil {
			l.log.Warn("subscribe to changes",
				slog.String("error", msg.err.Error()),
				slog.Duration("retry_in", l.resubscribeDelay),
			)
			l.missedChanges = true
			id := l.id
			return tea.Tick(l.resubscribeDelay, func(time.Time) tea.Msg {
				return resubscribeMsg{listID: id}
			})
		}
		if l.missedChanges {
			l.missedChanges = false
			return tea.Batch(l.Reload(), l.waitForChange(msg.sub))
		}
		return l.waitForChange(msg.sub)

	case resubscribeMsg:
		if msg.listID != l.id || l.isClosed() {
			return nil
		}
		return l.subscribe()

	case changeMsg:
		if msg.listID != l.id || l.isClosed() {
			return nil
		}
		l.log.Debug("change received",
			slog.String("op", msg.event.Op.String()),
			slog.String("id", msg.event.ID.String()),
		)
		return tea.Batch(l.Reload(), l.waitForChange(msg.sub))

	case subscriptionEndedMsg:
		if msg.listID == l.id && !l.isClosed() {
			l.log.Warn("change subscription ended")
		}
		return nil
	}

	var cmds []tea.Cmd
	for _, it := range l.items {
		cmds = append(cmds, it.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (l *List) applyQuestions(msg questionsLoadedMsg) {
	if msg.gen != l.gen || l.isClosed() {
		return
	}
	l.loading = false
	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			l.log.Warn("load questions", slog.String("error", msg.err.Error()))
		}
		return
	}

	var selected uuid.UUID
	if it := l.Selected(); it != nil {
		selected = it.questionID()
	}

	items := make([]*Item, 0, len(msg.questions))
	byID := make(map[uuid.UUID]*Item, len(msg.questions))
	cursor := -1
	for i, q := range msg.questions {
		it, ok := l.byID[q.ID]
		if ok {
			it.setQuestion(q)
		} else {
			it = newItem(l.ctx, q, l.backend, l.log)
		}
		items = append(items, it)
		byID[q.ID] = it
		if q.ID == selected {
			cursor = i
		}
	}
	l.items = items
	l.byID = byID

	if cursor < 0 {
		cursor = min(l.cursor, len(items)-1)
	}
	l.cursor = max(cursor, 0)
}

// State reports loading while a fetch is in flight, then empty or populated.
func (l *List) State() State {
	switch {
	case l.loading:
		return StateLoading
	case len(l.items) == 0:
		return StateEmpty
	}
	return StatePopulated
}

// Items returns the items in display order.
func (l *List) Items() []*Item { return l.items }

// Questions returns the question records in display order.
func (l *List) Questions() []domain.Question {
	out := make([]domain.Question, len(l.items))
	for i, it := range l.items {
		out[i] = it.question
	}
	return out
}

// Selected returns the item under the cursor, or nil when the list is empty.
func (l *List) Selected() *Item {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[l.cursor]
}

func (l *List) Cursor() int { return l.cursor }

func (l *List) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *List) MoveDown() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
	}
}
