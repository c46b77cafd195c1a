package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusList focusArea = iota
	focusQuestionForm
	focusAnswerForm
)

// App is the bubbletea root model: header, question form, refresh
// control, question list and footer.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
	now    func() time.Time

	form *Form
	list *List

	focus     focusArea
	answering *Item

	spinner spinner.Model
	help    help.Model
	width   int
}

// NewApp wires the components against backend. Call Close after the
// program exits.
func NewApp(ctx context.Context, backend Backend, log *slog.Logger) *App {
	ctx, cancel := context.WithCancel(ctx)
	log = log.With("service", "board")

	a := &App{
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
		now:     time.Now,
		list:    NewList(ctx, backend, log),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(mutedStyle)),
		help:    help.New(),
	}
	a.form = NewQuestionForm(ctx, backend, log, a.list.Reload)
	return a
}

// List exposes the question list.
func (a *App) List() *List { return a.list }

// QuestionForm exposes the question form.
func (a *App) QuestionForm() *Form { return a.form }

// Close tears down the list and cancels outstanding calls.
func (a *App) Close() {
	a.list.Close()
	a.cancel()
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.list.Init(), a.spinner.Tick)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.form.SetWidth(a.contentWidth())
		for _, it := range a.list.Items() {
			it.Form().SetWidth(a.contentWidth() - 4)
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return a, tea.Quit
		}
		return a, a.handleKey(msg)
	}

	cmds := []tea.Cmd{a.form.Update(msg), a.list.Update(msg)}
	a.syncFocus()
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.focus {
	case focusQuestionForm:
		switch {
		case key.Matches(msg, keys.Blur), key.Matches(msg, keys.Focus):
			a.form.Blur()
			a.focus = focusList
			return nil
		}
		return a.form.Update(msg)

	case focusAnswerForm:
		switch {
		case key.Matches(msg, keys.Blur), key.Matches(msg, keys.Focus):
			a.answering.Form().Blur()
			a.answering = nil
			a.focus = focusList
			return nil
		}
		cmd := a.answering.Form().Update(msg)
		a.syncFocus()
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Focus):
		a.focus = focusQuestionForm
		return a.form.Focus()
	case key.Matches(msg, keys.Up):
		a.list.MoveUp()
	case key.Matches(msg, keys.Down):
		a.list.MoveDown()
	case key.Matches(msg, keys.Refresh):
		return a.list.Reload()
	case key.Matches(msg, keys.Toggle):
		if it := a.list.Selected(); it != nil {
			return it.Toggle()
		}
	case key.Matches(msg, keys.Answer):
		it := a.list.Selected()
		if it == nil {
			return nil
		}
		cmd := it.ToggleForm()
		if it.ShowingForm() {
			it.Form().SetWidth(a.contentWidth() - 4)
			a.answering = it
			a.focus = focusAnswerForm
		}
		return cmd
	}
	return nil
}

// syncFocus returns focus to the list once the answer form it was on is
// hidden (after a successful post) or its item left the list.
func (a *App) syncFocus() {
	if a.focus != focusAnswerForm {
		return
	}
	if a.answering.ShowingForm() && a.list.byID[a.answering.questionID()] == a.answering {
		return
	}
	a.answering.Form().Blur()
	a.answering = nil
	a.focus = focusList
}

func (a *App) contentWidth() int {
	if a.width <= 0 {
		return 0
	}
	return max(a.width-4, 20)
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("? Query Cloud"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Ask questions and share knowledge anonymously. Your identity stays private while you learn and help others."))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Ask a Question"))
	b.WriteString("\n")
	b.WriteString(a.form.View())
	b.WriteString("\n")

	heading := headingStyle.Render("Recent Questions")
	refresh := mutedStyle.Render("  [r] Refresh")
	if a.list.State() == StateLoading && len(a.list.Items()) > 0 {
		refresh = "  " + a.spinner.View()
	}
	b.WriteString(heading + refresh)
	b.WriteString("\n")
	b.WriteString(a.listView())
	b.WriteString("\n\n")

	b.WriteString(mutedStyle.Render("All posts are completely anonymous. No user data is tracked or stored."))
	b.WriteString("\n")
	if a.focus == focusList {
		b.WriteString(a.help.ShortHelpView(keys.listHelp()))
	} else {
		b.WriteString(a.help.ShortHelpView(keys.formHelp()))
	}
	return b.String()
}

func (a *App) listView() string {
	switch a.list.State() {
	case StateEmpty:
		return emptyStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Render("No questions yet"),
			"Be the first to ask a question and start the conversation!",
		))
	case StateLoading:
		if len(a.list.Items()) == 0 {
			return a.spinner.View() + " " + mutedStyle.Render("Loading questions...")
		}
	}

	now := a.now()
	width := a.contentWidth()
	cards := make([]string, 0, len(a.list.Items()))
	for i, it := range a.list.Items() {
		cards = append(cards, it.View(now, a.focus == focusList && i == a.list.Cursor(), width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
