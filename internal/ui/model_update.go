package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/richlist/internal/bindings"
	"github.com/unkn0wn-root/richlist/internal/errdef"
	"github.com/unkn0wn-root/richlist/internal/refresh"
	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.ready = true
		m.applyLayout()
	case tea.KeyMsg:
		if cmd := m.handleKey(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case loadingMsg:
		if cmd := m.setLoading(typed.loading); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.nextPageMsgCmd())
	case controlsMsg:
		m.setControlsEnabled(typed.enabled)
		cmds = append(cmds, m.nextPageMsgCmd())
	case dataMsg:
		m.replaceData(typed.html)
		cmds = append(cmds, m.nextPageMsgCmd())
	case failureMsg:
		m.showFailure(typed.err)
		cmds = append(cmds, m.nextPageMsgCmd())
	case refreshDoneMsg:
		m.handleRefreshDone(typed)
	case syncDoneMsg:
		if typed.err != nil {
			m.setStatusMessage(statusMsg{text: fmt.Sprintf("save url: %v", typed.err), level: statusError})
		} else {
			m.setStatusMessage(statusMsg{text: "saved " + typed.url, level: statusSuccess})
		}
	case statusMsg:
		m.setStatusMessage(typed)
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(typed)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.client.Cancel()
		return tea.Quit
	}
	switch m.focus {
	case focusFilters, focusOrdering:
		return m.handleInputKey(msg)
	}

	action, ok := m.keys.actions.Match(msg.String())
	if !ok {
		var cmd tea.Cmd
		m.data, cmd = m.data.Update(msg)
		return cmd
	}
	if _, gated := controlActions[action]; gated && !m.controlsEnabled {
		m.setStatusMessage(statusMsg{text: "refresh in progress (x to cancel)", level: statusWarn})
		return nil
	}

	switch action {
	case bindings.ActionQuit:
		m.client.Cancel()
		return tea.Quit
	case bindings.ActionCancel:
		if m.loading {
			m.client.Cancel()
		}
		return nil
	case bindings.ActionMode:
		m.mode = (m.mode + 1) % 3
		m.renderData()
		return nil
	case bindings.ActionCopyURL:
		return m.copyViewURL()
	case bindings.ActionRefresh:
		return m.refreshCmd()
	case bindings.ActionSync:
		return m.syncCmd()
	case bindings.ActionElements:
		return m.cycleRadio(viewmodel.OptElements)
	case bindings.ActionComplete:
		return m.cycleRadio(viewmodel.OptComplete)
	case bindings.ActionLink:
		return m.cycleRadio(viewmodel.OptLink)
	case bindings.ActionMenus:
		return m.cycleRadio(viewmodel.OptMenus)
	case bindings.ActionIndex:
		return m.toggleCheckbox(viewmodel.OptIndex)
	case bindings.ActionKey:
		return m.toggleCheckbox(viewmodel.OptKey)
	case bindings.ActionLeague:
		return m.cycleLeague()
	case bindings.ActionFilters:
		return m.focusFilterPanel()
	case bindings.ActionOrdering:
		return m.focusOrderingField()
	}
	return nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.blurInputs()
		return nil
	case key.Matches(msg, m.keys.Apply):
		m.blurInputs()
		return m.refreshCmd()
	case key.Matches(msg, m.keys.NextField):
		if m.focus != focusFilters || len(m.filters) == 0 {
			return nil
		}
		step := 1
		if msg.String() == "shift+tab" {
			step = len(m.filters) - 1
		}
		m.filters[m.filterIdx].input.Blur()
		m.filterIdx = (m.filterIdx + step) % len(m.filters)
		return m.filters[m.filterIdx].input.Focus()
	}

	var cmd tea.Cmd
	if m.focus == focusOrdering {
		m.ordering, cmd = m.ordering.Update(msg)
		return cmd
	}
	if m.filterIdx < len(m.filters) {
		m.filters[m.filterIdx].input, cmd = m.filters[m.filterIdx].input.Update(msg)
	}
	return cmd
}

func (m *Model) focusFilterPanel() tea.Cmd {
	if len(m.filters) == 0 {
		m.setStatusMessage(statusMsg{text: "no filter fields configured", level: statusWarn})
		return nil
	}
	m.focus = focusFilters
	if m.filterIdx >= len(m.filters) {
		m.filterIdx = 0
	}
	return m.filters[m.filterIdx].input.Focus()
}

func (m *Model) focusOrderingField() tea.Cmd {
	m.focus = focusOrdering
	return m.ordering.Focus()
}

func (m *Model) blurInputs() {
	for i := range m.filters {
		m.filters[i].input.Blur()
	}
	m.ordering.Blur()
	m.focus = focusData
}

func (m *Model) cycleRadio(name string) tea.Cmd {
	choices := m.choices.For(name)
	if len(choices) == 0 {
		return nil
	}
	next := choices[0]
	for i, v := range choices {
		if v == m.radios[name] {
			next = choices[(i+1)%len(choices)]
			break
		}
	}
	m.radios[name] = next
	return m.refreshCmd()
}

func (m *Model) toggleCheckbox(name string) tea.Cmd {
	m.checks[name] = !m.checks[name]
	return m.refreshCmd()
}

func (m *Model) cycleLeague() tea.Cmd {
	if len(m.leagues) < 2 {
		return nil
	}
	m.leagueIdx = (m.leagueIdx + 1) % len(m.leagues)
	return m.refreshCmd()
}

// refreshCmd snapshots the widgets on the update goroutine and refreshes in
// the background. Page updates arrive through pageQueue.
func (m *Model) refreshCmd() tea.Cmd {
	snap := viewmodel.Capture(m, m)
	client := m.client
	return func() tea.Msg {
		resp, err := client.Refresh(context.Background(), snap, snap)
		return refreshDoneMsg{resp: resp, err: err}
	}
}

func (m *Model) syncCmd() tea.Cmd {
	snap := viewmodel.Capture(m, m)
	client := m.client
	return func() tea.Msg {
		u, err := client.SyncURL(snap, snap)
		return syncDoneMsg{url: u, err: err}
	}
}

func (m *Model) handleRefreshDone(msg refreshDoneMsg) {
	if errors.Is(msg.err, refresh.ErrSuperseded) {
		return
	}
	if msg.resp != nil && msg.resp.ViewURL != "" {
		m.viewURL = msg.resp.ViewURL
	}
	if msg.err == nil {
		m.setStatusMessage(statusMsg{text: "refreshed " + m.viewURL, level: statusSuccess})
	}
}

func (m *Model) setLoading(loading bool) tea.Cmd {
	wasLoading := m.loading
	m.loading = loading
	if loading && !wasLoading {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) setControlsEnabled(enabled bool) {
	m.controlsEnabled = enabled
	if !enabled {
		m.blurInputs()
	}
}

func (m *Model) replaceData(html string) {
	m.prevHTML = m.html
	m.html = html
	m.renderData()
}

func (m *Model) showFailure(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		m.setStatusMessage(statusMsg{text: "refresh canceled", level: statusWarn})
		return
	}
	label := "refresh failed"
	if code := errdef.CodeOf(err); code != errdef.CodeUnknown {
		label += " (" + string(code) + ")"
	}
	m.setStatusMessage(statusMsg{text: label + ": " + err.Error(), level: statusError})
}

func (m *Model) setStatusMessage(msg statusMsg) {
	m.status = msg
}

func (m *Model) copyViewURL() tea.Cmd {
	u := m.viewURL
	if u == "" {
		u = m.state.PageURL() + m.QueryString()
	}
	if u == "" {
		m.setStatusMessage(statusMsg{text: "nothing to copy", level: statusWarn})
		return nil
	}
	if err := clipboard.WriteAll(u); err != nil {
		m.setStatusMessage(statusMsg{text: fmt.Sprintf("copy failed: %v", err), level: statusError})
		return nil
	}
	m.setStatusMessage(statusMsg{text: "copied " + u, level: statusInfo})
	return nil
}
