package config

import (
	"slices"
	"strings"
	"time"

	"github.com/unkn0wn-root/richlist/internal/util"
	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

type ServerSettings struct {
	PageURL string `json:"page_url" toml:"page_url"`
	AjaxURL string `json:"ajax_url" toml:"ajax_url"`
	// FilterFields names the fields the filter panel offers, e.g.
	// "season" or "game__name__contains".
	FilterFields []string `json:"filter_fields" toml:"filter_fields"`
}

type DefaultsSettings struct {
	Elements string `json:"elements" toml:"elements"`
	Complete string `json:"complete" toml:"complete"`
	Link     string `json:"link"     toml:"link"`
	Menus    string `json:"menus"    toml:"menus"`
	Index    bool   `json:"index"    toml:"index"`
	Key      bool   `json:"key"      toml:"key"`
}

// ChoiceSettings lists the values each radio group offers.
type ChoiceSettings struct {
	Elements []string `json:"elements" toml:"elements"`
	Complete []string `json:"complete" toml:"complete"`
	Link     []string `json:"link"     toml:"link"`
	Menus    []string `json:"menus"    toml:"menus"`
}

type League struct {
	ID   string `json:"id"   toml:"id"`
	Name string `json:"name" toml:"name"`
}

type HTTPSettings struct {
	Timeout         string `json:"timeout"          toml:"timeout"`
	Proxy           string `json:"proxy"            toml:"proxy"`
	Insecure        bool   `json:"insecure"         toml:"insecure"`
	FollowRedirects *bool  `json:"follow_redirects" toml:"follow_redirects"`
}

type HistorySettings struct {
	Backend    string `json:"backend"     toml:"backend"`
	MaxEntries int    `json:"max_entries" toml:"max_entries"`
}

const (
	HTTPTimeoutDefault       = 30 * time.Second
	HistoryBackendDefault    = "json"
	HistoryMaxEntriesDefault = 200
	HistoryMaxEntriesMax     = 10000
	AllLeaguesName           = "All leagues"
)

func DefaultChoices() ChoiceSettings {
	return ChoiceSettings{
		Elements: []string{"brief", "verbose", "rich", "detail", "specified"},
		Complete: []string{"shown", "all"},
		Link:     []string{"internal", "external", "nolinks"},
		Menus:    []string{"menus", "buttons", "nomenus"},
	}
}

func DefaultDefaultsSettings() DefaultsSettings {
	d := viewmodel.DefaultDefaults()
	return DefaultsSettings{
		Elements: d.Elements,
		Complete: d.Complete,
		Link:     d.Link,
		Menus:    d.Menus,
		Index:    d.Index,
		Key:      d.Key,
	}
}

func (d DefaultsSettings) ViewDefaults() viewmodel.Defaults {
	return viewmodel.Defaults{
		Elements: d.Elements,
		Complete: d.Complete,
		Link:     d.Link,
		Menus:    d.Menus,
		Index:    d.Index,
		Key:      d.Key,
	}
}

// For returns the choices for a radio option name.
func (c ChoiceSettings) For(name string) []string {
	switch name {
	case viewmodel.OptElements:
		return c.Elements
	case viewmodel.OptComplete:
		return c.Complete
	case viewmodel.OptLink:
		return c.Link
	case viewmodel.OptMenus:
		return c.Menus
	}
	return nil
}

// NormaliseDefaults fills blank radio defaults from the built-in set.
func NormaliseDefaults(in DefaultsSettings) DefaultsSettings {
	base := DefaultDefaultsSettings()
	out := in
	out.Elements = firstNonBlank(in.Elements, base.Elements)
	out.Complete = firstNonBlank(in.Complete, base.Complete)
	out.Link = firstNonBlank(in.Link, base.Link)
	out.Menus = firstNonBlank(in.Menus, base.Menus)
	return out
}

// NormaliseChoices trims and dedups each list, falls back to the built-in
// list when empty, and makes sure the default value is selectable.
func NormaliseChoices(in ChoiceSettings, defaults DefaultsSettings) ChoiceSettings {
	base := DefaultChoices()
	return ChoiceSettings{
		Elements: normaliseChoiceList(in.Elements, base.Elements, defaults.Elements),
		Complete: normaliseChoiceList(in.Complete, base.Complete, defaults.Complete),
		Link:     normaliseChoiceList(in.Link, base.Link, defaults.Link),
		Menus:    normaliseChoiceList(in.Menus, base.Menus, defaults.Menus),
	}
}

// NormaliseLeagues drops blank ids and duplicates and puts the all-leagues
// entry first.
func NormaliseLeagues(in []League) []League {
	out := []League{{ID: viewmodel.AllLeagues, Name: AllLeaguesName}}
	seen := map[string]struct{}{viewmodel.AllLeagues: {}}
	for _, l := range in {
		id := strings.TrimSpace(l.ID)
		if id == "" {
			continue
		}
		if id == viewmodel.AllLeagues {
			if name := strings.TrimSpace(l.Name); name != "" {
				out[0].Name = name
			}
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, League{ID: id, Name: firstNonBlank(l.Name, id)})
	}
	return out
}

// NormaliseFilterFields trims and dedups the panel's field names.
func NormaliseFilterFields(in []string) []string {
	out := util.DedupeNonEmptyStrings(util.TrimStrings(in))
	if len(out) == 0 {
		return nil
	}
	return out
}

func NormaliseHTTP(in HTTPSettings) HTTPSettings {
	out := in
	out.Proxy = strings.TrimSpace(in.Proxy)
	if _, err := time.ParseDuration(strings.TrimSpace(in.Timeout)); err != nil {
		out.Timeout = HTTPTimeoutDefault.String()
	} else {
		out.Timeout = strings.TrimSpace(in.Timeout)
	}
	if out.FollowRedirects == nil {
		follow := true
		out.FollowRedirects = &follow
	}
	return out
}

func (h HTTPSettings) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(h.Timeout)
	if err != nil || d <= 0 {
		return HTTPTimeoutDefault
	}
	return d
}

func (h HTTPSettings) Follow() bool {
	return h.FollowRedirects == nil || *h.FollowRedirects
}

func NormaliseHistory(in HistorySettings) HistorySettings {
	out := HistorySettings{
		Backend:    strings.ToLower(strings.TrimSpace(in.Backend)),
		MaxEntries: in.MaxEntries,
	}
	if out.Backend != "json" && out.Backend != "sqlite" {
		out.Backend = HistoryBackendDefault
	}
	switch {
	case out.MaxEntries <= 0:
		out.MaxEntries = HistoryMaxEntriesDefault
	case out.MaxEntries > HistoryMaxEntriesMax:
		out.MaxEntries = HistoryMaxEntriesMax
	}
	return out
}

func normaliseChoiceList(in, fallback []string, def string) []string {
	out := util.DedupeNonEmptyStrings(util.TrimStrings(in))
	if len(out) == 0 {
		out = append(out, fallback...)
	}
	if def != "" && !slices.Contains(out, def) {
		out = append(out, def)
	}
	return out
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
