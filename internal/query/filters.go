package query

import (
	"net/url"
	"strings"

	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

// CollectFilters reads the filter panel. Fields outside the panel's id
// prefix, empty values and "None" are skipped; order is preserved.
func CollectFilters(view viewmodel.View) []string {
	fields := view.FilterFields()
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !strings.HasPrefix(f.ID, viewmodel.FilterFieldPrefix) {
			continue
		}
		if f.Value == "" || f.Value == viewmodel.NoneValue {
			continue
		}
		out = append(out, f.Name+"="+url.QueryEscape(f.Value))
	}
	return out
}

// MergeFilters appends each current term not already present verbatim in
// panel. Duplicates inside current are kept as found.
func MergeFilters(panel, current []string) []string {
	if len(current) == 0 {
		return panel
	}
	seen := make(map[string]struct{}, len(panel))
	for _, term := range panel {
		seen[term] = struct{}{}
	}
	out := make([]string, 0, len(panel)+len(current))
	out = append(out, panel...)
	for _, term := range current {
		if _, ok := seen[term]; ok {
			continue
		}
		out = append(out, term)
	}
	return out
}
