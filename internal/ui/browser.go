package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// datasetItem is one dataset in the browser list
type datasetItem struct {
	card DatasetCard
}

func (i datasetItem) Title() string { return i.card.Title }

func (i datasetItem) Description() string {
	parts := []string{}
	if i.card.Issued != "" {
		parts = append(parts, i.card.Issued)
	}
	if i.card.Publisher != "" {
		parts = append(parts, i.card.Publisher)
	}
	if len(i.card.Formats) > 0 {
		parts = append(parts, strings.Join(i.card.Formats, ", "))
	}
	return strings.Join(parts, " · ")
}

func (i datasetItem) FilterValue() string {
	return i.card.Title + " " + strings.Join(i.card.Tags, " ")
}

// browserModel is the Bubble Tea model for the dataset browser
type browserModel struct {
	list     list.Model
	summary  StatsSummary
	header   string
	detail   bool
	quitting bool
	width    int
	height   int
}

// NewBrowser creates the interactive dataset browser for one results page.
func NewBrowser(header string, summary StatsSummary, cards []DatasetCard) *browserModel {
	items := make([]list.Item, len(cards))
	for i, c := range cards {
		items[i] = datasetItem{card: c}
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorHighlight).
		BorderForeground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorTextDim).
		BorderForeground(ColorPrimary)

	l := list.New(items, delegate, 80, 20)
	l.Title = "Datasets"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)

	return &browserModel{
		list:    l,
		summary: summary,
		header:  header,
		width:   80,
		height:  24,
	}
}

func (m *browserModel) Init() tea.Cmd { return nil }

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg.String()); handled {
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	if m.detail {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKey processes the browser's own bindings; anything else goes to the list.
func (m *browserModel) handleKey(key string) (bool, tea.Cmd) {
	if key == "ctrl+c" {
		m.quitting = true
		return true, tea.Quit
	}

	if m.detail {
		switch key {
		case "esc", "backspace", "enter", "q":
			m.detail = false
		}
		return true, nil
	}

	// while the list filter is being typed, keys belong to the list
	if m.list.FilterState() == list.Filtering {
		return false, nil
	}

	switch key {
	case "enter":
		if _, ok := m.list.SelectedItem().(datasetItem); ok {
			m.detail = true
		}
		return true, nil
	case "q", "esc":
		if m.list.FilterState() == list.FilterApplied && key == "esc" {
			return false, nil
		}
		m.quitting = true
		return true, tea.Quit
	}
	return false, nil
}

func (m *browserModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m *browserModel) render() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(Title.Render(m.header))
	b.WriteString("\n")
	b.WriteString(Dim.Render(fmt.Sprintf("%d datasets · %d formats · %d publishers · %s",
		m.summary.TotalDatasets, m.summary.UniqueFormats, m.summary.UniquePublishers, m.summary.DateRange)))
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().Foreground(ColorTextDim)
	if m.detail {
		if it, ok := m.list.SelectedItem().(datasetItem); ok {
			b.WriteString(HighlightBox.Render(RenderCard(0, it.card)))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc/enter: back to list · ctrl+c: quit"))
		return b.String()
	}

	if len(m.list.Items()) == 0 {
		b.WriteString(FormatStatus("warning", Warning.Render("No datasets found for this search.")))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q: quit"))
		return b.String()
	}

	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: details · /: filter · q: quit"))
	return b.String()
}

// RunBrowser runs the dataset browser until the user quits.
func RunBrowser(header string, summary StatsSummary, cards []DatasetCard) error {
	p := tea.NewProgram(NewBrowser(header, summary, cards))
	_, err := p.Run()
	return err
}
