// Package tui holds the interactive pieces of qc: the setup form and the
// spinner shown while the VPN client is being driven.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"qc/internal/result"
	"qc/internal/ui"
)

type doneMsg struct {
	res result.Result[string]
}

type progressModel struct {
	spinner     spinner.Model
	title       string
	run         func() result.Result[string]
	cancel      context.CancelFunc
	res         result.Result[string]
	done        bool
	interrupted bool
}

func newProgressModel(title string, cancel context.CancelFunc, run func() result.Result[string]) progressModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(ui.Spinner))
	return progressModel{spinner: s, title: title, run: run, cancel: cancel}
}

func (m progressModel) Init() tea.Cmd {
	run := m.run
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return doneMsg{res: run()}
	})
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.res = msg.res
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			// the run still has to return before quitting
			if !m.interrupted && m.cancel != nil {
				m.interrupted = true
				m.cancel()
			}
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	if m.interrupted {
		return m.spinner.View() + " " + ui.Warn.Render("Stopping…") + "\n"
	}
	return m.spinner.View() + " " + m.title + " " + ui.Muted.Render("(ctrl+c to stop)") + "\n"
}

// RunWithSpinner runs fn while a spinner is drawn on out. Pressing ctrl+c
// cancels the context handed to fn.
func RunWithSpinner(ctx context.Context, in io.Reader, out io.Writer, title string, fn func(context.Context) result.Result[string]) (result.Result[string], error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	model := newProgressModel(title, cancel, func() result.Result[string] { return fn(ctx) })
	p := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return result.Result[string]{}, fmt.Errorf("progress view: %w", err)
	}
	m, ok := final.(progressModel)
	if !ok || !m.done {
		return result.Result[string]{}, fmt.Errorf("progress view exited before the operation finished")
	}
	return m.res, nil
}
