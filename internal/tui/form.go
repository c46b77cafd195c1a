package tui

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// FormKind selects what a Form creates.
type FormKind int

const (
	FormQuestion FormKind = iota
	FormAnswer
)

type formText struct {
	placeholder string
	empty       string
	failed      string
	submit      string
}

var formTexts = map[FormKind]formText{
	FormQuestion: {
		placeholder: "Ask your question anonymously...",
		empty:       "Please enter a question",
		failed:      "Failed to post question. Please try again.",
		submit:      "Post Question",
	},
	FormAnswer: {
		placeholder: "Write your answer anonymously...",
		empty:       "Please enter an answer",
		failed:      "Failed to post answer. Please try again.",
		submit:      "Post Answer",
	},
}

const postingLabel = "Posting..."

var componentSeq atomic.Uint64

// nextComponentID tags async results so they reach the component that issued them.
func nextComponentID() uint64 { return componentSeq.Add(1) }

// postedMsg reports the outcome of a Form submission.
type postedMsg struct {
	formID uint64
	err    error
}

// Form is a single-field submission component. It validates locally,
// creates the record through the Backend, and calls onPosted once per
// successful submission.
type Form struct {
	id         uint64
	kind       FormKind
	questionID uuid.UUID
	text       formText

	ctx      context.Context
	backend  Backend
	log      *slog.Logger
	onPosted func() tea.Cmd

	input      textarea.Model
	submitting bool
	err        string
}

// NewQuestionForm creates a form that posts new questions.
func NewQuestionForm(ctx context.Context, backend Backend, log *slog.Logger, onPosted func() tea.Cmd) *Form {
	return newForm(ctx, FormQuestion, uuid.Nil, backend, log, onPosted)
}

// NewAnswerForm creates a form that posts answers to questionID.
func NewAnswerForm(ctx context.Context, questionID uuid.UUID, backend Backend, log *slog.Logger, onPosted func() tea.Cmd) *Form {
	return newForm(ctx, FormAnswer, questionID, backend, log, onPosted)
}

func newForm(ctx context.Context, kind FormKind, questionID uuid.UUID, backend Backend, log *slog.Logger, onPosted func() tea.Cmd) *Form {
	text := formTexts[kind]

	input := textarea.New()
	input.Placeholder = text.placeholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(3)
	// Enter submits; newlines need a modifier.
	input.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	return &Form{
		id:         nextComponentID(),
		kind:       kind,
		questionID: questionID,
		text:       text,
		ctx:        ctx,
		backend:    backend,
		log:        log.With("component", "form", "kind", kind.String()),
		onPosted:   onPosted,
		input:      input,
	}
}

func (k FormKind) String() string {
	if k == FormAnswer {
		return "answer"
	}
	return "question"
}

// Value returns the current field text.
func (f *Form) Value() string { return f.input.Value() }

// SetValue replaces the field text.
func (f *Form) SetValue(s string) { f.input.SetValue(s) }

// Err returns the message shown under the field, or "".
func (f *Form) Err() string { return f.err }

// Submitting reports whether a create call is in flight.
func (f *Form) Submitting() bool { return f.submitting }

func (f *Form) Focus() tea.Cmd { return f.input.Focus() }
func (f *Form) Blur() { f.input.Blur() }
func (f *Form) Focused() bool { return f.input.Focused() }

// SetWidth resizes the text field.
func (f *Form) SetWidth(w int) { f.input.SetWidth(w) }

// Submit validates the field and, if it is non-blank, returns a command
// that performs the create call. It is a no-op while a submission is in flight.
func (f *Form) Submit() tea.Cmd {
	if f.submitting {
		return nil
	}

	content := strings.TrimSpace(f.input.Value())
	if content == "" {
		f.err = f.text.empty
		return nil
	}

	f.submitting = true
	f.err = ""

	ctx, backend, id := f.ctx, f.backend, f.id
	if f.kind == FormAnswer {
		questionID := f.questionID
		return func() tea.Msg {
			_, err := backend.CreateAnswer(ctx, questionID, content)
			return postedMsg{formID: id, err: err}
		}
	}
	return func() tea.Msg {
		_, err := backend.CreateQuestion(ctx, content)
		return postedMsg{formID: id, err: err}
	}
}

// Update applies submission results addressed to this form and, while
// focused, handles key input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case postedMsg:
		if msg.formID != f.id {
			return nil
		}
		return f.finish(msg.err)

	case tea.KeyMsg:
		if !f.input.Focused() {
			return nil
		}
		if key.Matches(msg, keys.Submit) {
			return f.Submit()
		}
		if f.submitting {
			return nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *Form) finish(err error) tea.Cmd {
	f.submitting = false
	if err != nil {
		f.log.Error("post failed", slog.String("error", err.Error()))
		f.err = f.text.failed
		return nil
	}

	f.input.Reset()
	f.err = ""
	if f.onPosted == nil {
		return nil
	}
	return f.onPosted()
}

// View renders the field, the error line and the submit control.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(f.input.View())
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(errorStyle.Render(f.err))
		b.WriteString("\n")
	}
	if f.submitting {
		b.WriteString(disabledStyle.Render(postingLabel))
	} else {
		b.WriteString(buttonStyle.Render(f.text.submit))
	}
	return b.String()
}
