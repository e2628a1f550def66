package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/draftbridge/internal/styles"
)

// DraftRow is one tracked draft in the browser
type DraftRow struct {
	Path   string
	Title  string
	URL    string
	Age    string
	Status string // "drafted", "changed", "missing"
}

// DiffMsg carries the body diff for the selected draft
type DiffMsg struct {
	Content string
	Err     error
}

// BrowseModel lists tracked drafts and previews their changes
type BrowseModel struct {
	table       table.Model
	viewport    viewport.Model
	rows        []DraftRow
	selected    *DraftRow
	showingDiff bool
	err         error
	diffFunc    func(path string) (string, error)
}

// InitBrowseModel creates the drafts browser. diffFunc renders the changes
// for a source path.
func InitBrowseModel(rows []DraftRow, diffFunc func(string) (string, error)) BrowseModel {
	columns := []table.Column{
		{Title: "Title", Width: 40},
		{Title: "Status", Width: 12},
		{Title: "Drafted", Width: 16},
		{Title: "URL", Width: 50},
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row{r.Title, statusIcon(r.Status) + " " + r.Status, r.Age, r.URL})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows), 15)+3),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Background)).
		Background(lipgloss.Color(styles.Yellow)).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = styles.PreviewStyle

	return BrowseModel{
		table:    t,
		viewport: vp,
		rows:     rows,
		diffFunc: diffFunc,
	}
}

func statusIcon(status string) string {
	switch status {
	case "changed":
		return "●"
	case "missing":
		return "✗"
	}
	return "✓"
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 3))
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showingDiff {
			switch msg.String() {
			case "q", "esc":
				m.showingDiff = false
				return m, nil
			case "up", "k", "down", "j":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "enter", "d":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.rows) {
				return m, nil
			}
			m.selected = &m.rows[idx]
			return m, m.loadDiff(m.selected.Path)
		}

	case DiffMsg:
		m.err = msg.Err
		content := msg.Content
		if msg.Err == nil && content == "" {
			content = "No changes since last draft"
		}
		m.viewport.SetContent(content)
		m.viewport.GotoTop()
		m.showingDiff = msg.Err == nil
		return m, nil
	}

	return m, nil
}

func (m BrowseModel) loadDiff(path string) tea.Cmd {
	return func() tea.Msg {
		if m.diffFunc == nil {
			return DiffMsg{}
		}
		content, err := m.diffFunc(path)
		return DiffMsg{Content: content, Err: err}
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Drafts"))
	b.WriteString("\n\n")

	if m.showingDiff && m.selected != nil {
		b.WriteString(styles.DimStyle.Render("Changes since last draft: " + m.selected.Title))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Tracked Drafts: %d", len(m.rows))))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(styles.DimStyle.Render("↑/k up • ↓/j down • enter/d diff • q quit"))
	b.WriteString("\n")

	return b.String()
}
