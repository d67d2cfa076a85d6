package ui

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/richlist/internal/filterspec"
	"github.com/unkn0wn-root/richlist/internal/fragment"
	"github.com/unkn0wn-root/richlist/internal/query"
	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

const (
	// lines outside the data pane
	chromeLines  = 6
	frameColumns = 4
	maxCellWidth = 40
)

func (m Model) View() string {
	if !m.ready {
		return "Initialising..."
	}
	sections := []string{
		m.renderHeader(),
		m.renderOptions(),
		m.renderFilters(),
		m.renderFilterSummary(),
		m.renderDataPane(),
		m.renderStatus(),
		m.renderCommandBar(),
	}
	return m.theme.AppFrame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) applyLayout() {
	width := m.width - frameColumns
	if width < 10 {
		width = 10
	}
	height := m.height - chromeLines - 3
	if height < 3 {
		height = 3
	}
	m.data.Width = width
	m.data.Height = height
	m.renderData()
}

func (m *Model) renderData() {
	var content string
	switch m.mode {
	case modeRaw:
		content = m.highlightHTML()
	case modeDiff:
		content = m.diffHTML()
	default:
		content = m.renderTable()
	}
	m.content = content
	m.data.SetContent(content)
}

func (m *Model) renderTable() string {
	if m.html == "" {
		return "No data loaded. Press r to refresh."
	}
	doc, err := fragment.Parse(m.html)
	if err != nil {
		return fmt.Sprintf("cannot parse fragment: %v", err)
	}
	out := doc.Render(maxCellWidth)
	if strings.TrimSpace(out) == "" {
		return "(empty fragment)"
	}
	if len(doc.Links) > 0 {
		out += "\n\n" + m.theme.OptionLabel.Render("links:")
		for _, link := range doc.Links {
			out += "\n  " + link
		}
	}
	return out
}

func (m *Model) highlightHTML() string {
	if m.html == "" {
		return ""
	}
	var sb strings.Builder
	if err := quick.Highlight(&sb, m.html, "html", "terminal256", m.theme.HighlightStyle); err != nil {
		return m.html
	}
	return sb.String()
}

func (m *Model) diffHTML() string {
	if m.prevHTML == "" {
		return "No previous fragment to compare."
	}
	prev := ensureTrailingNewline(m.prevHTML)
	cur := ensureTrailingNewline(m.html)
	if prev == cur {
		return "Fragment unchanged since the previous refresh."
	}
	diff := udiff.Unified("previous", "current", prev, cur)
	if strings.TrimSpace(diff) == "" {
		return "Fragments differ but diff is empty"
	}
	return diff
}

func (m Model) renderHeader() string {
	target := m.viewURL
	if target == "" {
		target = m.state.PageURL()
	}
	brand := m.theme.HeaderBrand.Render("richlist")
	return m.theme.Header.Render(brand + " " + m.theme.HeaderValue.Render(target))
}

func (m Model) renderOptions() string {
	defaults := m.state.Defaults()
	valueStyle := func(changed bool) lipgloss.Style {
		switch {
		case !m.controlsEnabled:
			return m.theme.OptionDisabled
		case changed:
			return m.theme.OptionChanged
		default:
			return m.theme.OptionValue
		}
	}

	parts := make([]string, 0, len(viewmodel.RadioOptions)+len(viewmodel.CheckboxOptions)+1)
	for _, name := range viewmodel.RadioOptions {
		v := m.radios[name]
		parts = append(parts, m.theme.OptionLabel.Render(name+":")+valueStyle(v != defaults.Radio(name)).Render(v))
	}
	for _, name := range viewmodel.CheckboxOptions {
		box := "[ ]"
		if m.checks[name] {
			box = "[x]"
		}
		parts = append(parts, valueStyle(m.checks[name] != defaults.Checkbox(name)).Render(box+" "+name))
	}
	league := viewmodel.AllLeagues
	if m.leagueIdx >= 0 && m.leagueIdx < len(m.leagues) {
		league = m.leagues[m.leagueIdx].Name
	}
	parts = append(parts, m.theme.OptionLabel.Render("league:")+valueStyle(m.leagueChanged()).Render(league))
	return strings.Join(parts, "  ")
}

func (m Model) renderFilters() string {
	parts := make([]string, 0, len(m.filters)+1)
	for i, f := range m.filters {
		label := m.theme.FilterLabel
		if m.focus == focusFilters && i == m.filterIdx {
			label = m.theme.FilterFocused
		}
		parts = append(parts, label.Render(f.name+":")+" "+f.input.View())
	}
	label := m.theme.FilterLabel
	if m.focus == focusOrdering {
		label = m.theme.FilterFocused
	}
	parts = append(parts, label.Render(orderingKey+":")+" "+m.ordering.View())
	return strings.Join(parts, "  ")
}

func (m Model) renderFilterSummary() string {
	terms := query.MergeFilters(query.CollectFilters(&m), m.state.Filters())
	if len(terms) == 0 {
		return m.theme.FilterSummary.Render("no filters")
	}
	return m.theme.FilterSummary.Render("filters: " + filterspec.Describe(terms))
}

func (m Model) renderDataPane() string {
	title := m.theme.DataTitle.Render(m.mode.String())
	return m.theme.DataBorder.Render(title + "\n" + m.data.View())
}

func (m Model) renderStatus() string {
	var prefix string
	if m.loading {
		prefix = m.spinner.View() + " loading "
	}
	text := m.status.text
	var style lipgloss.Style
	switch m.status.level {
	case statusWarn:
		style = m.theme.Warning
	case statusError:
		style = m.theme.Error
	case statusSuccess:
		style = m.theme.Success
	default:
		style = m.theme.Notification
	}
	return m.theme.StatusBar.Render(prefix + style.Render(text))
}

func (m Model) renderCommandBar() string {
	if m.focus != focusData {
		return m.theme.CommandBarHint.Render("tab next field · enter apply · esc back")
	}
	return m.theme.CommandBarHint.Render(renderHelp(m.keys.help))
}

func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
