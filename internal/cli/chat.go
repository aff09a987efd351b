package cli

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/raphaelgruber/rebuttal-go/internal/models"
	"github.com/raphaelgruber/rebuttal-go/internal/service"
	"github.com/raphaelgruber/rebuttal-go/internal/session"
)

// chatTheme holds the color scheme for the debate chat.
type chatTheme struct {
	User     color.Color
	Opponent color.Color
	Accent   color.Color
	Error    color.Color
	Hint     color.Color
}

var defaultChatTheme = chatTheme{
	User:     lipgloss.Color("#5FAFD7"), // light blue
	Opponent: lipgloss.Color("#D7AF5F"), // amber
	Accent:   lipgloss.Color("#00D787"), // green
	Error:    lipgloss.Color("#FF005F"), // red
	Hint:     lipgloss.Color("#6C6C6C"), // dim gray
}

func (t chatTheme) userStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.User).Bold(true)
}

func (t chatTheme) opponentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Opponent).Bold(true)
}

func (t chatTheme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t chatTheme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t chatTheme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

var emphasisRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// renderEmphasis converts **text** markup into bold accent-colored text.
func renderEmphasis(s string, theme chatTheme) string {
	return emphasisRe.ReplaceAllStringFunc(s, func(match string) string {
		inner := strings.TrimSuffix(strings.TrimPrefix(match, "**"), "**")
		return theme.accentStyle().Render(inner)
	})
}

// sessionEventMsg carries an opponent turn or failure from the service.
type sessionEventMsg service.Event

// eventsClosedMsg signals the session completed and the stream is done.
type eventsClosedMsg struct{}

// summaryMsg carries the final score after ending the debate.
type summaryMsg *session.Summary

// endErrMsg carries a non-recoverable error from ending the debate.
type endErrMsg struct{ err error }

// chatTickMsg refreshes the exam timer display.
type chatTickMsg time.Time

// chatModel is the bubbletea model for an interactive debate.
type chatModel struct {
	svc    *service.DebateService
	sess   *session.Session
	events <-chan service.Event
	theme  chatTheme

	input    textinput.Model
	spin     spinner.Model
	thinking bool
	notice   string
	summary  *session.Summary
	err      error
	quitting bool
	width    int
}

func newChatModel(svc *service.DebateService, sess *session.Session, events <-chan service.Event) chatModel {
	theme := defaultChatTheme

	input := textinput.New()
	input.Placeholder = "Type your argument..."
	input.Focus()

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.hintStyle()),
	)

	return chatModel{
		svc:      svc,
		sess:     sess,
		events:   events,
		theme:    theme,
		input:    input,
		spin:     spin,
		thinking: true, // opening statement is already on its way
		width:    80,
	}
}

func (m chatModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitEvent(), m.spin.Tick}
	if m.sess.Config().Mode == models.ModeExamPreparation {
		cmds = append(cmds, chatTick())
	}
	return tea.Batch(cmds...)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			return m, m.endDebate()
		case "enter":
			return m.submit()
		}

	case sessionEventMsg:
		ev := service.Event(msg)
		m.thinking = false
		if ev.Type == service.EventFailure {
			m.notice = ev.Err + ". Try submitting again."
		}
		return m, m.waitEvent()

	case eventsClosedMsg:
		return m, nil

	case summaryMsg:
		m.summary = msg
		return m, tea.Quit

	case endErrMsg:
		var verr *session.ValidationError
		if errors.As(msg.err, &verr) {
			m.notice = verr.Reason
			return m, nil
		}
		m.err = msg.err
		return m, tea.Quit

	case chatTickMsg:
		if m.sess.Phase() == session.PhaseActive {
			return m, chatTick()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if m.thinking {
		m.notice = "Wait for the opponent's response"
		return m, nil
	}

	if err := m.svc.SubmitArgument(context.Background(), m.sess.ID(), text); err != nil {
		m.notice = submitNotice(err)
		return m, nil
	}

	m.input.Reset()
	m.notice = ""
	m.thinking = true
	return m, nil
}

func submitNotice(err error) string {
	var verr *session.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Reason
	case errors.Is(err, session.ErrTurnPending):
		return "Wait for the opponent's response"
	default:
		return err.Error()
	}
}

// endDebate runs scoring off the update loop.
func (m chatModel) endDebate() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		sum, err := m.svc.EndDebate(ctx, m.sess.ID())
		if err != nil {
			return endErrMsg{err: err}
		}
		return summaryMsg(sum)
	}
}

// waitEvent blocks on the session event stream.
func (m chatModel) waitEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return eventsClosedMsg{}
		}
		return sessionEventMsg(ev)
	}
}

func chatTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return chatTickMsg(t)
	})
}

func (m chatModel) View() tea.View {
	if m.summary != nil {
		return tea.NewView(m.scoreView())
	}
	return tea.NewView(m.chatView())
}

func (m chatModel) chatView() string {
	var b strings.Builder
	cfg := m.sess.Config()

	header := fmt.Sprintf("%s\nYou: %s | AI: %s", cfg.Topic, cfg.UserSide, cfg.AISide)
	if cfg.Mode == models.ModeExamPreparation {
		header += " | " + formatClock(m.sess.Elapsed())
	}
	b.WriteString(m.theme.accentStyle().Render(header))
	b.WriteString("\n\n")

	wrap := lipgloss.NewStyle().Width(min(m.width-4, 76)).PaddingLeft(2)
	for _, turn := range m.sess.Turns() {
		if turn.Role == models.RoleUser {
			b.WriteString(m.theme.userStyle().Render("You"))
		} else {
			b.WriteString(m.theme.opponentStyle().Render("AI"))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(renderEmphasis(turn.Content, m.theme)))
		b.WriteString("\n\n")
	}

	if m.thinking {
		b.WriteString(m.spin.View())
		b.WriteString(m.theme.hintStyle().Render(" AI is thinking..."))
		b.WriteString("\n\n")
	}

	if m.notice != "" {
		b.WriteString(m.theme.errorStyle().Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.theme.hintStyle().Render("Enter to send | Esc to end debate | Ctrl+C to abandon"))
	b.WriteString("\n")
	return b.String()
}

func (m chatModel) scoreView() string {
	var b strings.Builder
	sum := m.summary

	b.WriteString(m.theme.accentStyle().Render("Debate Results"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Logical Strength  %3d/100\n", sum.Score.Logical))
	b.WriteString(fmt.Sprintf("  Confidence        %3d/100\n", sum.Score.Confidence))
	b.WriteString(fmt.Sprintf("  Clarity           %3d/100\n", sum.Score.Clarity))
	b.WriteString(fmt.Sprintf("  Overall           %3d/100\n\n", sum.Score.Overall))
	b.WriteString("  Rating: ")
	b.WriteString(m.theme.accentStyle().Render(string(sum.Rating)))
	b.WriteString("\n")

	if sum.Config.Mode == models.ModeExamPreparation {
		b.WriteString(fmt.Sprintf("  Duration: %s\n", formatClock(sum.Duration)))
	}

	b.WriteString("\n  Tips:\n")
	for _, tip := range sum.Tips {
		b.WriteString(fmt.Sprintf("  • %s\n", tip))
	}

	b.WriteString("\n")
	if sum.Persisted {
		b.WriteString(m.theme.hintStyle().Render("  Saved to your debate history."))
	} else {
		b.WriteString(m.theme.errorStyle().Render("  Not saved: profile store unavailable."))
	}
	b.WriteString("\n\n")
	b.WriteString(m.theme.hintStyle().Render(fmt.Sprintf(
		"  I scored %d/100 debating %q on Rebuttal!", sum.Score.Overall, sum.Config.Topic)))
	b.WriteString("\n")
	return b.String()
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// runChat starts the session and runs the interactive chat UI.
func runChat(svc *service.DebateService, cfg models.DebateConfig) error {
	sess, err := svc.StartDebate(context.Background(), cfg)
	if err != nil {
		return err
	}

	model := newChatModel(svc, sess, svc.Subscribe(sess.ID()))
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}

	if m, ok := finalModel.(chatModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
