package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

// answersLoadedMsg carries the result of one answer fetch.
type answersLoadedMsg struct {
	itemID  uint64
	gen     uint64
	answers []domain.Answer
	err     error
}

// Item is one question in the list. It owns an independently loaded
// answer sequence and an answer form whose visibility toggles separately
// from the expanded flag.
type Item struct {
	id       uint64
	question domain.Question

	ctx     context.Context
	backend Backend
	log     *slog.Logger

	expanded bool
	answers  []domain.Answer
	fetched  bool
	loading  bool
	gen      uint64

	showForm bool
	form     *Form
}

func newItem(ctx context.Context, q domain.Question, backend Backend, log *slog.Logger) *Item {
	it := &Item{
		id:       nextComponentID(),
		question: q,
		ctx:      ctx,
		backend:  backend,
		log:      log.With("component", "item", "question_id", q.ID.String()),
	}
	it.form = NewAnswerForm(ctx, q.ID, backend, log, it.answerPosted)
	return it
}

// Question returns the question record from the most recent list load.
func (it *Item) Question() domain.Question { return it.question }

// Answers returns the loaded answers, newest first.
func (it *Item) Answers() []domain.Answer { return it.answers }

func (it *Item) Expanded() bool { return it.expanded }

// LoadingAnswers reports whether an answer fetch is in flight.
func (it *Item) LoadingAnswers() bool { return it.loading }

// ShowingForm reports whether the answer form is visible.
func (it *Item) ShowingForm() bool { return it.showForm }

// Form returns the item's answer form.
func (it *Item) Form() *Form { return it.form }

// setQuestion replaces the record after a list reload. Local state is kept.
func (it *Item) setQuestion(q domain.Question) { it.question = q }

// Toggle flips the expanded flag. The first expansion with no answers
// loaded fetches them; later expansions never do.
func (it *Item) Toggle() tea.Cmd {
	it.expanded = !it.expanded
	if !it.expanded || it.fetched || len(it.answers) > 0 {
		return nil
	}
	it.fetched = true
	return it.loadAnswers()
}

// ToggleForm shows or hides the answer form. Showing it focuses the field.
func (it *Item) ToggleForm() tea.Cmd {
	it.showForm = !it.showForm
	if !it.showForm {
		it.form.Blur()
		return nil
	}
	return it.form.Focus()
}

func (it *Item) answerPosted() tea.Cmd {
	it.showForm = false
	it.form.Blur()
	return it.loadAnswers()
}

func (it *Item) loadAnswers() tea.Cmd {
	it.gen++
	it.loading = true

	ctx, backend, id, gen, questionID := it.ctx, it.backend, it.id, it.gen, it.question.ID
	return func() tea.Msg {
		answers, err := backend.ListAnswers(ctx, questionID)
		return answersLoadedMsg{itemID: id, gen: gen, answers: answers, err: err}
	}
}

// Update applies answer results issued by this item and forwards
// everything else to the answer form.
func (it *Item) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(answersLoadedMsg); ok {
		if msg.itemID == it.id {
			it.applyAnswers(msg)
		}
		return nil
	}
	return it.form.Update(msg)
}

func (it *Item) applyAnswers(msg answersLoadedMsg) {
	if msg.gen != it.gen || it.ctx.Err() != nil {
		return
	}
	it.loading = false
	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			it.log.Warn("load answers", slog.String("error", msg.err.Error()))
		}
		return
	}
	it.answers = msg.answers
}

// View renders the card. now drives relative timestamps.
func (it *Item) View(now time.Time, selected bool, width int) string {
	var b strings.Builder
	b.WriteString(it.question.Content)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(RelativeTime(it.question.CreatedAt, now)))
	b.WriteString("\n\n")

	arrow := "▾"
	if it.expanded {
		arrow = "▴"
	}
	b.WriteString(countStyle.Render(AnswerCountLabel(it.question.AnswerCount) + " " + arrow))
	b.WriteString("  ")
	if it.showForm {
		b.WriteString(actionStyle.Render("Cancel"))
	} else {
		b.WriteString(actionStyle.Render("Write Answer"))
	}

	if it.showForm {
		b.WriteString("\n\n")
		b.WriteString(it.form.View())
	}

	if it.expanded {
		b.WriteString("\n\n")
		b.WriteString(it.answersView(now))
	}

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(b.String())
}

func (it *Item) answersView(now time.Time) string {
	switch {
	case it.loading && len(it.answers) == 0:
		return mutedStyle.Render("Loading answers...")
	case len(it.answers) == 0:
		return mutedStyle.Render("No answers yet. Be the first to answer!")
	}

	parts := make([]string, 0, len(it.answers)+1)
	if it.loading {
		// Refetch in flight: keep the old answers visible under the marker.
		parts = append(parts, mutedStyle.Render("Loading answers..."))
	}
	for _, a := range it.answers {
		parts = append(parts, answerStyle.Render(a.Content+"\n"+mutedStyle.Render(RelativeTime(a.CreatedAt, now))))
	}
	return strings.Join(parts, "\n")
}

// questionID is used by the list to key items across reloads.
func (it *Item) questionID() uuid.UUID { return it.question.ID }
