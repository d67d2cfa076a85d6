// Package query turns list-view widget state into the query string the
// server's list and AJAX endpoints understand.
package query

import (
	"net/url"
	"strings"

	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

const leagueKey = "league"

// Builder builds query strings against the page state it was created with.
type Builder struct {
	State *viewmodel.State
}

func NewBuilder(state *viewmodel.State) Builder {
	return Builder{State: state}
}

// Build returns "" or a string starting with "?". Option terms come first,
// then ordering, then filters, then the league scope.
func (b Builder) Build(view viewmodel.View, ordering viewmodel.Ordering) string {
	var defaults viewmodel.Defaults
	var current []string
	if b.State != nil {
		defaults = b.State.Defaults()
		current = b.State.Filters()
	}

	terms := OptionTerms(view, defaults)
	if ordering != nil {
		terms = append(terms, ordering.OrderingParams()...)
	}
	terms = append(terms, MergeFilters(CollectFilters(view), current)...)

	var sb strings.Builder
	if len(terms) > 0 {
		sb.WriteByte('?')
		sb.WriteString(strings.Join(terms, "&"))
	}

	if league := view.LeagueID(); league != "" && league != viewmodel.AllLeagues {
		if sb.Len() > 0 {
			sb.WriteByte('&')
		} else {
			sb.WriteByte('?')
		}
		sb.WriteString(leagueKey)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(league))
	}
	return sb.String()
}

// OptionTerms lists the option terms whose values differ from defaults.
// An unselected radio group differing from its default yields an empty
// term; it is kept so the emitted query mirrors the widgets exactly.
func OptionTerms(view viewmodel.View, defaults viewmodel.Defaults) []string {
	var terms []string
	for _, name := range viewmodel.RadioOptions {
		if v := view.SelectedOption(name); v != defaults.Radio(name) {
			terms = append(terms, v)
		}
	}
	for _, name := range viewmodel.CheckboxOptions {
		if v := view.IsChecked(name); v != defaults.Checkbox(name) {
			terms = append(terms, viewmodel.CheckboxTerm(name, v))
		}
	}
	return terms
}
