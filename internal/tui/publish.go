package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/draftbridge/internal/styles"
)

// PublishResult holds the outcome of a draft creation
type PublishResult struct {
	DraftID  int64
	DraftURL string
	Duration time.Duration
}

// PublishMsg is sent when the draft request completes
type PublishMsg struct {
	Result *PublishResult
	Err    error
}

// StatusMsg replaces the line shown next to the spinner
type StatusMsg string

// PublishModel is the Bubble Tea model shown while a draft is created
type PublishModel struct {
	spinner  spinner.Model
	title    string
	status   string
	complete bool
	canceled bool
	result   *PublishResult
	err      error
}

// InitPublishModel creates the spinner model for the article title
func InitPublishModel(title string) PublishModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return PublishModel{
		spinner: s,
		title:   title,
		status:  "Authenticating...",
	}
}

func (m PublishModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m PublishModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.canceled = true
			return m, tea.Quit
		}

	case StatusMsg:
		m.status = string(msg)
		return m, nil

	case PublishMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m PublishModel) View() string {
	if m.complete {
		if m.err != nil {
			return styles.ErrorStyle.Render("✗ Draft failed: "+m.err.Error()) + "\n"
		}
		return styles.SuccessStyle.Render(fmt.Sprintf("✓ Draft created: %s", m.title)) + "\n" +
			styles.DimStyle.Render(fmt.Sprintf("Completed in %v", m.result.Duration.Round(time.Millisecond))) + "\n"
	}
	if m.canceled {
		return styles.WarningStyle.Render("Canceled") + "\n"
	}

	return fmt.Sprintf("\n%s %s %s\n\n", m.spinner.View(), m.status, styles.DimStyle.Render(m.title))
}

// Done reports whether the draft request has come back
func (m PublishModel) Done() bool {
	return m.complete
}

// Result returns the draft or the error it failed with
func (m PublishModel) Result() (*PublishResult, error) {
	return m.result, m.err
}

// Canceled reports whether the user quit before the draft came back
func (m PublishModel) Canceled() bool {
	return m.canceled
}
