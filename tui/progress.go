// Package tui renders the interactive download progress surface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nekosama-cli/nekosama/style"
)

type labelMsg string

type progressMsg float64

type doneMsg struct {
	err error
}

// Tracker drives a terminal progress bar from the segment loop's callbacks.
// Feed it from the download goroutine; Run blocks the caller until Done is
// observed or the user aborts.
type Tracker struct {
	program *tea.Program
	model   *trackerModel
}

// NewTracker builds a Tracker. Run must be called on the main goroutine.
func NewTracker() *Tracker {
	m := &trackerModel{
		bar: progress.New(progress.WithDefaultGradient()),
	}
	return &Tracker{
		program: tea.NewProgram(m),
		model:   m,
	}
}

// Label replaces the line shown above the bar.
func (t *Tracker) Label(s string) {
	t.program.Send(labelMsg(s))
}

// Progress observes one completed segment. Its signature matches the download
// pipeline's callback contract so it can be passed directly as the Progress option.
func (t *Tracker) Progress(index, total int) {
	t.program.Send(progressMsg(float64(index+1) / float64(total)))
}

// Done ends the session. A non-nil error is rendered before the program exits.
func (t *Tracker) Done(err error) {
	t.program.Send(doneMsg{err: err})
}

// Run renders the progress surface until Done arrives. Returns the abort
// sentinel if the user quit mid-download.
func (t *Tracker) Run() error {
	if _, err := t.program.Run(); err != nil {
		return err
	}
	if t.model.aborted {
		return fmt.Errorf("aborted")
	}
	return nil
}

type trackerModel struct {
	bar     progress.Model
	label   string
	percent float64
	err     error
	aborted bool
}

func (m *trackerModel) Init() tea.Cmd {
	return nil
}

func (m *trackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.aborted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
	case labelMsg:
		m.label = string(msg)
	case progressMsg:
		m.percent = float64(msg)
	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *trackerModel) View() string {
	var b strings.Builder

	if m.label != "" {
		b.WriteString(m.label)
		b.WriteRune('\n')
	}
	b.WriteString(m.bar.ViewAs(m.percent))
	b.WriteRune('\n')

	if m.err != nil {
		b.WriteString(style.ErrorTitle(" Error "))
		b.WriteRune(' ')
		b.WriteString(m.err.Error())
		b.WriteRune('\n')
	}
	return b.String()
}
