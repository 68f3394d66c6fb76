// Package tui provides Bubble Tea models for terminal UI interactions.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chazuruo/chatfill/internal/fill"
	"github.com/chazuruo/chatfill/internal/placeholder"
)

// chatRole identifies who produced a transcript entry.
type chatRole int

const (
	roleAssistant chatRole = iota
	roleUser
)

// chatMessage is a single transcript entry.
type chatMessage struct {
	role chatRole
	text string
}

// ChatModel drives the conversational fill loop: it asks one question
// per placeholder, validates answers through the session, and shows a
// running checklist of what is filled.
type ChatModel struct {
	session    *fill.Session
	input      textinput.Model
	transcript []chatMessage
	width      int
	height     int
	done       bool
	cancelled  bool
}

// NewChatModel creates a chat model over an extracted placeholder list.
func NewChatModel(placeholders []placeholder.Placeholder) *ChatModel {
	session := fill.NewSession(placeholders)
	session.Start()
	return NewChatModelFromSession(session)
}

// NewChatModelFromSession creates a chat model over an existing
// session, which may already hold answers (for example from --answer
// flags). The session must have been started.
func NewChatModelFromSession(session *fill.Session) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Type your answer"
	ti.Focus()
	ti.CharLimit = 512

	m := &ChatModel{
		session: session,
		input:   ti,
	}

	if session.State() == fill.StateComplete {
		if len(session.Placeholders()) == 0 {
			m.say("This document has no placeholders to fill.")
		} else {
			m.say("All placeholders are filled! Type /edit <number> to revise an answer.")
		}
		m.done = true
		return m
	}

	answered, total := session.Progress()
	if answered > 0 {
		m.say(fmt.Sprintf("%d of %d placeholder(s) already have answers. Let's fill in the rest.", answered, total))
	} else {
		m.say(fmt.Sprintf("Found %d placeholder(s) in your document. Let's fill them in one by one.", total))
	}
	m.askCurrent()
	return m
}

// Init initializes the chat model.
func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update updates the chat model.
func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			return m.handleSubmit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit processes the typed line: either a /edit command or an
// answer for the current placeholder.
func (m *ChatModel) handleSubmit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" && m.done {
		return m, tea.Quit
	}

	if strings.HasPrefix(line, "/edit") {
		return m.handleEdit(line)
	}

	if m.done {
		return m, tea.Quit
	}

	m.transcript = append(m.transcript, chatMessage{role: roleUser, text: line})
	m.input.SetValue("")

	if err := m.session.Submit(line); err != nil {
		switch {
		case err == fill.ErrEmptyAnswer:
			m.say("Please provide a value.")
		case err == fill.ErrDateFormat:
			m.say("Please enter the date in YYYY-MM-DD format.")
		default:
			m.say("Sorry, I couldn't use that answer. Please try again.")
		}
		return m, nil
	}

	if m.session.State() == fill.StateComplete {
		m.say("All placeholders are filled! You can now generate the completed document.")
		m.say("Press Enter to finish, or type /edit <number> to revise an answer.")
		m.done = true
		return m, nil
	}

	m.askCurrent()
	return m, nil
}

// handleEdit re-opens a previously answered placeholder.
func (m *ChatModel) handleEdit(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		m.say("Usage: /edit <number>")
		m.input.SetValue("")
		return m, nil
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || m.session.Select(n-1) != nil {
		m.say(fmt.Sprintf("There is no placeholder number %q.", fields[1]))
		m.input.SetValue("")
		return m, nil
	}

	m.done = false
	current, _ := m.session.Current()
	m.say(fmt.Sprintf("Let's revise %s. %s", current.Label, current.Question))
	if prior, ok := m.session.Answer(current.ID); ok {
		m.input.SetValue(prior)
	} else {
		m.input.SetValue("")
	}
	return m, nil
}

// askCurrent appends the question for the placeholder under the cursor.
func (m *ChatModel) askCurrent() {
	if current, ok := m.session.Current(); ok {
		m.say(current.Question)
	}
}

func (m *ChatModel) say(text string) {
	m.transcript = append(m.transcript, chatMessage{role: roleAssistant, text: text})
}

// DidComplete reports whether every placeholder was answered.
func (m *ChatModel) DidComplete() bool {
	return m.session.State() == fill.StateComplete && !m.cancelled
}

// DidCancel reports whether the user aborted the conversation.
func (m *ChatModel) DidCancel() bool {
	return m.cancelled
}

// Answers returns the collected answers keyed by placeholder id.
func (m *ChatModel) Answers() map[string]string {
	return m.session.Answers()
}

// View renders the transcript, checklist and input line.
func (m *ChatModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")).
		Bold(true).
		MarginBottom(1)

	assistantStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("251"))

	userStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Bold(true)

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Document Fill"))
	b.WriteString("\n")

	transcript := m.transcript
	if max := m.transcriptHeight(); len(transcript) > max {
		transcript = transcript[len(transcript)-max:]
	}
	for _, msg := range transcript {
		switch msg.role {
		case roleUser:
			b.WriteString(userStyle.Render("you: " + msg.text))
		default:
			b.WriteString(assistantStyle.Render(msg.text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderChecklist())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(" [Enter]: answer [Esc]: cancel /edit <n>: revise"))
	return b.String()
}

// transcriptHeight caps how many transcript lines fit above the
// checklist and input.
func (m *ChatModel) transcriptHeight() int {
	if m.height == 0 {
		return 12
	}
	h := m.height - m.checklistHeight() - 5
	if h < 4 {
		return 4
	}
	return h
}

func (m *ChatModel) checklistHeight() int {
	return len(m.session.Placeholders())
}

// renderChecklist lists every placeholder with its fill state.
func (m *ChatModel) renderChecklist() string {
	filledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("78"))

	pendingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	activeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("226")).
		Bold(true)

	activeIndex := m.session.CurrentIndex()

	var b strings.Builder
	for i, p := range m.session.Placeholders() {
		answer, answered := m.session.Answer(p.ID)

		marker := "[ ]"
		line := fmt.Sprintf("%s %d. %s", marker, i+1, p.Label)
		style := pendingStyle
		if answered {
			marker = "[x]"
			line = fmt.Sprintf("%s %d. %s: %s", marker, i+1, p.Label, answer)
			style = filledStyle
		}
		if i == activeIndex {
			style = activeStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
