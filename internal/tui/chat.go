package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"astropath/internal/assistant"
)

// streamEvent carries one streaming update from the provider goroutine
// into the BubbleTea update loop.
type streamEvent struct {
	delta string
	done  bool
	err   error
}

// ChatModel is the BubbleTea model for the assistant chat view.
// BubbleTea copies the model by value on every Update, so all mutable
// state here must be copy-safe: plain strings for the transcript and
// shared channels/pointers for anything the stream goroutine touches.
type ChatModel struct {
	styles   Styles
	provider assistant.Provider
	session  *assistant.Session

	viewport viewport.Model
	input    textarea.Model

	transcript string
	partial    string
	events     chan streamEvent
	cancel     context.CancelFunc

	streaming bool
	quitting  bool
	width     int
	height    int
	err       error
}

// NewChatModel creates the chat view bound to a provider and session.
func NewChatModel(provider assistant.Provider, session *assistant.Session) ChatModel {
	input := textarea.New()
	input.Placeholder = "Ask about clustering, anomaly detection, spectra..."
	input.SetHeight(3)
	input.Focus()

	vp := viewport.New(80, 20)

	return ChatModel{
		styles:   DefaultStyles(),
		provider: provider,
		session:  session,
		viewport: vp,
		input:    input,
	}
}

// Init implements tea.Model.
func (m ChatModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.input.Height() - 3
		m.input.SetWidth(msg.Width - 2)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case tea.KeyEnter:
			if m.streaming {
				return m, nil // one exchange at a time
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.err = nil
			m.transcript += m.styles.UserLabel.Render("You: ") + text + "\n\n"
			m.transcript += m.styles.AssistantLabel.Render("Assistant: ")
			m.partial = ""
			m.streaming = true
			m.events = make(chan streamEvent, 16)

			ctx, cancel := context.WithCancel(context.Background())
			m.cancel = cancel

			m.refreshViewport()
			return m, tea.Batch(m.startStream(ctx, text), m.waitForEvent())
		}

	case streamEvent:
		if msg.err != nil {
			m.streaming = false
			m.releaseStream()
			m.err = msg.err
			m.transcript += "\n\n"
			m.refreshViewport()
			return m, nil
		}
		if msg.done {
			m.streaming = false
			m.releaseStream()
			m.transcript += m.partial + "\n\n"
			m.partial = ""
			m.refreshViewport()
			return m, nil
		}
		m.partial += msg.delta
		m.refreshViewport()
		return m, m.waitForEvent()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m ChatModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("AstroPath Assistant") + "\n")
	b.WriteString(m.viewport.View() + "\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.styles.Help.Render("enter: send • esc: quit"))
	return b.String()
}

// startStream launches the provider exchange in a goroutine. Deltas and
// the final outcome arrive through m.events; every send also watches the
// context so a quit mid-stream never strands the goroutine on a full
// channel.
func (m ChatModel) startStream(ctx context.Context, text string) tea.Cmd {
	session, provider, events := m.session, m.provider, m.events
	return func() tea.Msg {
		go func() {
			send := func(ev streamEvent) {
				select {
				case events <- ev:
				case <-ctx.Done():
				}
			}
			_, err := session.Ask(ctx, provider, text, func(delta string, done bool) {
				if !done {
					send(streamEvent{delta: delta})
				}
			})
			if err != nil {
				send(streamEvent{err: fmt.Errorf("assistant request failed: %w", err)})
				return
			}
			send(streamEvent{done: true})
		}()
		return nil
	}
}

// releaseStream cancels the stream context once an exchange finishes.
func (m *ChatModel) releaseStream() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// waitForEvent blocks on the next streaming update.
func (m ChatModel) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// refreshViewport re-renders the transcript including any in-flight
// partial response and pins the view to the bottom.
func (m *ChatModel) refreshViewport() {
	content := m.transcript
	if m.streaming {
		content += m.partial
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// RunChat starts the interactive chat program.
func RunChat(provider assistant.Provider, session *assistant.Session) error {
	p := tea.NewProgram(
		NewChatModel(provider, session),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
