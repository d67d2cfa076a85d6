// Package viewmodel describes the widget state a list view is built from.
//
// View is the capability set the query builder reads. The terminal UI
// implements it over its own controls; Snapshot implements it over plain
// values for the CLI and tests.
package viewmodel

// Option names. Radio groups are read with SelectedOption, checkboxes with
// IsChecked.
const (
	OptElements = "elements"
	OptComplete = "complete"
	OptLink     = "link"
	OptMenus    = "menus"
	OptIndex    = "index"
	OptKey      = "key"
)

// RadioOptions lists the radio groups in the order their terms are emitted.
var RadioOptions = []string{OptElements, OptComplete, OptLink, OptMenus}

// CheckboxOptions lists the checkboxes in the order their terms are emitted.
var CheckboxOptions = []string{OptIndex, OptKey}

// AllLeagues is the league scope id meaning "no league restriction".
const AllLeagues = "0"

// FilterFieldPrefix marks the controls of the filter panel.
const FilterFieldPrefix = "filter_field"

// NoneValue is what an unset select in the filter panel reports.
const NoneValue = "None"

type View interface {
	SelectedOption(name string) string
	IsChecked(name string) bool
	// FilterFields returns the filter panel controls in display order.
	FilterFields() []FilterField
	LeagueID() string
}

// Ordering supplies sort directives as "key=value" terms.
type Ordering interface {
	OrderingParams() []string
}

type FilterField struct {
	ID    string
	Name  string
	Value string
}
