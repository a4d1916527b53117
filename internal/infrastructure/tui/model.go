// Package tui is the terminal chat window for memurbot.
// Clean Architecture: Framework/driver layer - talks to the core only through ports.Submitter.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/0xcro3dile/memurbot-go/internal/domain/ports"
)

const (
	Title    = "Okul Memur Botu"
	Greeting = "Okul Memur Botuna Hoş Geldiniz! Size nasıl yardımcı olabilirim?\nÇıkmak için Esc veya Ctrl+C tuşlarına basabilirsiniz."

	userPrefix = "Siz: "
	botPrefix  = "Memur Bot: "
)

// answerMsg carries a finished resolution back to the UI loop.
type answerMsg struct {
	seq    int
	answer string
	ok     bool
}

type styles struct {
	title  lipgloss.Style
	user   lipgloss.Style
	bot    lipgloss.Style
	status lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1),
		user:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		bot:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		status: lipgloss.NewStyle().Faint(true),
	}
}

type line struct {
	prefix string
	text   string
}

// Model is the bubbletea model of the chat window.
type Model struct {
	submitter ports.Submitter
	logger    *zap.Logger
	parent    context.Context

	input    textinput.Model
	viewport viewport.Model
	styles   styles
	lines    []line

	seq     int
	cancel  context.CancelFunc
	waiting bool
	ready   bool
	width   int
}

// New creates the chat model. Resolutions run with ctx as their parent.
func New(ctx context.Context, submitter ports.Submitter, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Placeholder = "Sorunuzu yazın ve Enter'a basın"
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Focus()

	m := Model{
		submitter: submitter,
		logger:    logger,
		parent:    ctx,
		input:     ti,
		viewport:  viewport.New(80, 20),
		styles:    defaultStyles(),
		width:     80,
	}
	m.addBot(Greeting)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-5, 3) // title, status, input
		m.input.Width = max(msg.Width-4, 10)
		m.ready = true
		m.refresh()
		return m, nil

	case answerMsg:
		if msg.seq != m.seq {
			// superseded by a newer question
			return m, nil
		}
		m.waiting = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		if msg.ok {
			m.addBot(msg.answer)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit echoes the question, clears the input and resolves in the background.
// A question still in flight is cancelled.
func (m Model) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" {
		return m, nil
	}
	m.addUser(question)
	m.input.Reset()

	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(m.parent)
	m.cancel = cancel
	m.seq++
	m.waiting = true

	seq := m.seq
	submitter := m.submitter
	logger := m.logger.With(zap.String("question_id", uuid.NewString()))
	return m, func() tea.Msg {
		logger.Info("question submitted", zap.String("question", question))
		answer, ok := submitter.Submit(ctx, question)
		logger.Info("question resolved", zap.Bool("answered", ok))
		return answerMsg{seq: seq, answer: answer, ok: ok}
	}
}

func (m *Model) addUser(text string) {
	m.lines = append(m.lines, line{prefix: userPrefix, text: text})
	m.refresh()
}

func (m *Model) addBot(text string) {
	m.lines = append(m.lines, line{prefix: botPrefix, text: text})
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m Model) renderLog() string {
	wrap := lipgloss.NewStyle().Width(max(m.width-2, 20))
	var sb strings.Builder
	for _, l := range m.lines {
		prefix := m.styles.bot.Render(l.prefix)
		if l.prefix == userPrefix {
			prefix = m.styles.user.Render(l.prefix)
		}
		sb.WriteString(wrap.Render(prefix + l.text))
		sb.WriteString("\n")
	}
	return sb.String()
}

// View implements tea.Model.
func (m Model) View() string {
	status := ""
	if m.waiting {
		status = "Yanıt hazırlanıyor..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(Title),
		m.viewport.View(),
		m.styles.status.Render(status),
		m.input.View(),
	)
}

// Transcript returns the chat log as plain text.
func (m Model) Transcript() []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = l.prefix + l.text
	}
	return out
}

// Run starts the chat window and blocks until the user quits.
func Run(ctx context.Context, submitter ports.Submitter, logger *zap.Logger) error {
	p := tea.NewProgram(New(ctx, submitter, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
