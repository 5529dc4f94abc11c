package cmd

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var errUnexpectedSpinnerModel = errors.New("unexpected final spinner model type")

type taskDoneMsg struct {
	err error
}

type taskSpinnerModel struct {
	spinner spinner.Model
	label   string
	task    tea.Cmd
	err     error
	done    bool
}

func newTaskSpinnerModel(label string, task tea.Cmd) taskSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return taskSpinnerModel{
		spinner: s,
		label:   label,
		task:    task,
	}
}

func (m taskSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

func (m taskSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m taskSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return m.spinner.View() + m.label + "…"
}

// runWithSpinner runs task behind a terminal spinner on stderr and returns
// its error. The long waits here are uploads and reanalysis round trips.
func runWithSpinner(cmd *cobra.Command, label string, task func() error) error {
	p := tea.NewProgram(
		newTaskSpinnerModel(label, func() tea.Msg {
			return taskDoneMsg{err: task()}
		}),
		tea.WithInput(nil),
		tea.WithOutput(cmd.ErrOrStderr()),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(taskSpinnerModel)
	if !ok {
		return errUnexpectedSpinnerModel
	}

	return m.err
}
