package main

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/unkn0wn-root/richlist/internal/config"
	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

type widgetFlags struct {
	radios   map[string]*string
	index    optionalBool
	key      optionalBool
	league   string
	filters  stringList
	ordering stringList
}

// splitPageURL returns the page URL without query or fragment, and the raw
// query the page was opened with.
func splitPageURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse page url: %w", err)
	}
	query := u.RawQuery
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	return u.String(), query, nil
}

// seedFromQuery applies the display options, league and ordering encoded in
// a page URL's query to snap. Filter terms are left to the page state.
func seedFromQuery(snap *viewmodel.Snapshot, rawQuery string, choices config.ChoiceSettings) {
	for _, term := range strings.Split(strings.TrimPrefix(rawQuery, "?"), "&") {
		if term == "" {
			continue
		}
		name, value, hasValue := strings.Cut(term, "=")
		if hasValue {
			switch name {
			case "league":
				if v, err := url.QueryUnescape(value); err == nil {
					snap.League = v
				}
			case "ordering":
				snap.Order = append(snap.Order, term)
			}
			continue
		}
		if applyCheckboxTerm(snap, name) {
			continue
		}
		for _, opt := range viewmodel.RadioOptions {
			if slices.Contains(choices.For(opt), name) {
				snap.Radios[opt] = name
				break
			}
		}
	}
}

func applyCheckboxTerm(snap *viewmodel.Snapshot, term string) bool {
	for _, opt := range viewmodel.CheckboxOptions {
		switch term {
		case viewmodel.CheckboxTerm(opt, true):
			snap.Checkboxes[opt] = true
			return true
		case viewmodel.CheckboxTerm(opt, false):
			snap.Checkboxes[opt] = false
			return true
		}
	}
	return false
}

// applyWidgetFlags overrides snap with explicit command-line widgets.
func applyWidgetFlags(snap *viewmodel.Snapshot, flags widgetFlags) error {
	for name, v := range flags.radios {
		if v != nil && strings.TrimSpace(*v) != "" {
			snap.Radios[name] = strings.TrimSpace(*v)
		}
	}
	if flags.index.set {
		snap.Checkboxes[viewmodel.OptIndex] = flags.index.value
	}
	if flags.key.set {
		snap.Checkboxes[viewmodel.OptKey] = flags.key.value
	}
	if league := strings.TrimSpace(flags.league); league != "" {
		snap.League = league
	}
	for _, f := range flags.filters {
		name, value, ok := strings.Cut(f, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid -filter %q, want name=value", f)
		}
		snap.Filters = append(snap.Filters, viewmodel.FilterField{
			ID:    viewmodel.FilterFieldPrefix + "_" + name,
			Name:  name,
			Value: value,
		})
	}
	if len(flags.ordering) > 0 {
		snap.Order = nil
		for _, o := range flags.ordering {
			if !strings.Contains(o, "=") {
				o = "ordering=" + o
			}
			snap.Order = append(snap.Order, o)
		}
	}
	return nil
}
