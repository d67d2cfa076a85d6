package viewmodel

import "sync"

// State replaces the page-wide globals of a rendered list view: option
// defaults, the filters the page was rendered with, the static page URL and
// the AJAX endpoint, which is the only field that changes after startup.
type State struct {
	defaults Defaults
	filters  []string
	pageURL  string

	mu      sync.RWMutex
	ajaxURL string
}

func NewState(defaults Defaults, pageURL, ajaxURL string, filters []string) *State {
	return &State{
		defaults: defaults,
		filters:  cloneStrings(filters),
		pageURL:  pageURL,
		ajaxURL:  ajaxURL,
	}
}

func (s *State) Defaults() Defaults {
	return s.defaults
}

// Filters returns the filter terms present in the page URL at startup.
func (s *State) Filters() []string {
	return cloneStrings(s.filters)
}

func (s *State) PageURL() string {
	return s.pageURL
}

func (s *State) AjaxURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ajaxURL
}

// SetAjaxURL records the endpoint returned by the last successful refresh.
// Empty values are ignored so a partial response cannot strand the client.
func (s *State) SetAjaxURL(u string) {
	if u == "" {
		return
	}
	s.mu.Lock()
	s.ajaxURL = u
	s.mu.Unlock()
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
