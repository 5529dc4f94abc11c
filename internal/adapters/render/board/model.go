package board

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veldtec/talentctl/internal/application"
	"github.com/veldtec/talentctl/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	render func(styles) string
	styles styles
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.render(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func run(render func(styles) string) (string, error) {
	p := tea.NewProgram(
		model{render: render, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// RenderJobs renders the posting list.
func RenderJobs(jobs []domain.Job, _ RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderJobsView(jobs, s)
	})
}

// RenderBoard renders one job's candidate pipeline grouped by review stage.
func RenderBoard(job domain.Job, candidates []domain.Candidate, _ RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderBoardView(job, candidates, s)
	})
}

// RenderStats renders the aggregate dashboard.
func RenderStats(stats application.DashboardStats) (string, error) {
	return run(func(s styles) string {
		return renderStatsView(stats, s)
	})
}
