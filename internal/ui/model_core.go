// Package ui is the interactive list view: option radios and checkboxes,
// a league selector, a filter panel and an ordering field driving refreshes
// of the data region.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/richlist/internal/bindings"
	"github.com/unkn0wn-root/richlist/internal/config"
	"github.com/unkn0wn-root/richlist/internal/filterspec"
	"github.com/unkn0wn-root/richlist/internal/httpclient"
	"github.com/unkn0wn-root/richlist/internal/refresh"
	"github.com/unkn0wn-root/richlist/internal/theme"
	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

const orderingKey = "ordering"

type Config struct {
	State        *viewmodel.State
	Fetcher      refresh.Fetcher
	History      refresh.History
	HTTP         httpclient.Options
	Choices      config.ChoiceSettings
	Leagues      []config.League
	FilterFields []string
	Theme        *theme.Theme
	Bindings     *bindings.Map
	// Initial seeds the widgets; nil means the state's defaults.
	Initial *viewmodel.Snapshot
	// RefreshOnStart issues a refresh from Init.
	RefreshOnStart bool
}

type focusArea int

const (
	focusData focusArea = iota
	focusFilters
	focusOrdering
)

type dataMode int

const (
	modeTable dataMode = iota
	modeRaw
	modeDiff
)

func (d dataMode) String() string {
	switch d {
	case modeRaw:
		return "raw"
	case modeDiff:
		return "diff"
	default:
		return "table"
	}
}

type filterInput struct {
	name  string
	input textinput.Model
}

type Model struct {
	state       *viewmodel.State
	client      *refresh.Client
	pageQueue   *pageQueue
	keys        keyMap
	theme       theme.Theme

	choices   config.ChoiceSettings
	leagues   []config.League
	leagueIdx int
	radios    map[string]string
	checks    map[string]bool
	filters   []filterInput
	filterIdx int
	ordering  textinput.Model
	focus     focusArea

	spinner         spinner.Model
	data            viewport.Model
	mode            dataMode
	html            string
	prevHTML        string
	content         string
	loading         bool
	controlsEnabled bool
	refreshOnStart  bool

	status  statusMsg
	viewURL string

	width  int
	height int
	ready  bool
}

func New(cfg Config) Model {
	state := cfg.State
	if state == nil {
		state = viewmodel.NewState(viewmodel.DefaultDefaults(), "", "", nil)
	}
	initial := cfg.Initial
	if initial == nil {
		initial = viewmodel.NewSnapshot(state.Defaults())
	}

	pageQueue := newPageQueue()
	client := refresh.New(refresh.Config{
		State:   state,
		Fetcher: cfg.Fetcher,
		Page:    page{q: pageQueue},
		History: cfg.History,
		HTTP:    cfg.HTTP,
	})

	th := theme.DefaultTheme()
	if cfg.Theme != nil {
		th = *cfg.Theme
	}

	leagues := cfg.Leagues
	if len(leagues) == 0 {
		leagues = config.NormaliseLeagues(nil)
	}
	leagueIdx := 0
	for i, l := range leagues {
		if l.ID == initial.League {
			leagueIdx = i
			break
		}
	}

	m := Model{
		state:           state,
		client:          client,
		pageQueue:       pageQueue,
		keys:            newKeyMap(cfg.Bindings),
		theme:           th,
		choices:         config.NormaliseChoices(cfg.Choices, defaultsSettings(state.Defaults())),
		leagues:         leagues,
		leagueIdx:       leagueIdx,
		radios:          make(map[string]string, len(viewmodel.RadioOptions)),
		checks:          make(map[string]bool, len(viewmodel.CheckboxOptions)),
		ordering:        newInput("-date_time"),
		spinner:         createLoadingSpinner(th.SpinnerColor),
		data:            viewport.New(0, 0),
		controlsEnabled: true,
		refreshOnStart:  cfg.RefreshOnStart,
	}
	for _, name := range viewmodel.RadioOptions {
		m.radios[name] = initial.SelectedOption(name)
	}
	for _, name := range viewmodel.CheckboxOptions {
		m.checks[name] = initial.IsChecked(name)
	}
	m.ordering.SetValue(orderingValue(initial.OrderingParams()))
	m.filters = buildFilterInputs(cfg.FilterFields, initial.FilterFields(), state.Filters())
	return m
}

// Init starts listening for page updates and, when configured, loads the
// first fragment.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.nextPageMsgCmd()}
	if m.refreshOnStart {
		cmds = append(cmds, m.refreshCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) SelectedOption(name string) string {
	return m.radios[name]
}

func (m *Model) IsChecked(name string) bool {
	return m.checks[name]
}

func (m *Model) FilterFields() []viewmodel.FilterField {
	out := make([]viewmodel.FilterField, 0, len(m.filters))
	for _, f := range m.filters {
		out = append(out, viewmodel.FilterField{
			ID:    filterFieldID(f.name),
			Name:  f.name,
			Value: strings.TrimSpace(f.input.Value()),
		})
	}
	return out
}

func (m *Model) LeagueID() string {
	if m.leagueIdx < 0 || m.leagueIdx >= len(m.leagues) {
		return viewmodel.AllLeagues
	}
	return m.leagues[m.leagueIdx].ID
}

func (m *Model) leagueChanged() bool {
	return m.LeagueID() != viewmodel.AllLeagues
}

// OrderingParams reads the ordering field, a comma-separated list of
// column names with an optional "-" for descending.
func (m *Model) OrderingParams() []string {
	v := strings.TrimSpace(m.ordering.Value())
	if v == "" {
		return nil
	}
	return []string{orderingKey + "=" + v}
}

// QueryString is the query the current widgets would send.
func (m *Model) QueryString() string {
	return m.client.QueryString(m, m)
}

func buildFilterInputs(names []string, seeded []viewmodel.FilterField, current []string) []filterInput {
	values := make(map[string]string, len(seeded))
	order := make([]string, 0, len(names)+len(seeded))
	add := func(name string) {
		for _, existing := range order {
			if existing == name {
				return
			}
		}
		order = append(order, name)
	}
	for _, name := range names {
		add(name)
	}
	for _, f := range seeded {
		if f.Name == "" {
			continue
		}
		add(f.Name)
		values[f.Name] = f.Value
	}
	// Fields present in the page URL start out showing their value, so an
	// untouched field matches its current filter term.
	for _, term := range current {
		name, _, ok := strings.Cut(term, "=")
		if !ok || name == "" {
			continue
		}
		add(name)
		if _, seededValue := values[name]; seededValue {
			continue
		}
		if spec, err := filterspec.Parse(term); err == nil {
			values[name] = spec.Value
		}
	}

	out := make([]filterInput, 0, len(order))
	for _, name := range order {
		in := newInput(name)
		in.SetValue(values[name])
		out = append(out, filterInput{name: name, input: in})
	}
	return out
}

func filterFieldID(name string) string {
	return viewmodel.FilterFieldPrefix + "_" + name
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 0
	in.Prompt = ""
	in.SetCursor(0)
	return in
}

func orderingValue(params []string) string {
	var fields []string
	for _, p := range params {
		if v, ok := strings.CutPrefix(p, orderingKey+"="); ok && v != "" {
			fields = append(fields, v)
		}
	}
	return strings.Join(fields, ",")
}

func defaultsSettings(d viewmodel.Defaults) config.DefaultsSettings {
	return config.DefaultsSettings{
		Elements: d.Elements,
		Complete: d.Complete,
		Link:     d.Link,
		Menus:    d.Menus,
		Index:    d.Index,
		Key:      d.Key,
	}
}

func createLoadingSpinner(color lipgloss.Color) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(color)
	return s
}
