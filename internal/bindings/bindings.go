package bindings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	toml "github.com/pelletier/go-toml/v2"
)

// Format identifies the serialization format for shortcut configs.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Source describes where the bindings config was loaded from.
type Source struct {
	Path   string
	Format Format
}

// ActionID uniquely identifies a shortcut action.
type ActionID string

const (
	ActionRefresh  ActionID = "refresh"
	ActionSync     ActionID = "save_url"
	ActionCancel   ActionID = "cancel_refresh"
	ActionElements ActionID = "cycle_elements"
	ActionComplete ActionID = "cycle_complete"
	ActionLink     ActionID = "cycle_link"
	ActionMenus    ActionID = "cycle_menus"
	ActionIndex    ActionID = "toggle_index"
	ActionKey      ActionID = "toggle_key"
	ActionLeague   ActionID = "cycle_league"
	ActionFilters  ActionID = "edit_filters"
	ActionOrdering ActionID = "edit_ordering"
	ActionMode     ActionID = "cycle_view"
	ActionCopyURL  ActionID = "copy_url"
	ActionQuit     ActionID = "quit"
)

type definition struct {
	id       ActionID
	help     string
	defaults []string
}

var definitions = []definition{
	{ActionRefresh, "refresh", []string{"r", "f5"}},
	{ActionElements, "elements", []string{"e"}},
	{ActionComplete, "complete", []string{"c"}},
	{ActionLink, "links", []string{"l"}},
	{ActionMenus, "menus", []string{"m"}},
	{ActionIndex, "index", []string{"i"}},
	{ActionKey, "key", []string{"k"}},
	{ActionLeague, "league", []string{"g"}},
	{ActionFilters, "filters", []string{"f", "/"}},
	{ActionOrdering, "ordering", []string{"o"}},
	{ActionMode, "table/raw/diff", []string{"v"}},
	{ActionSync, "save url", []string{"s"}},
	{ActionCopyURL, "copy url", []string{"y"}},
	{ActionCancel, "cancel", []string{"x", "ctrl+x"}},
	{ActionQuit, "quit", []string{"q", "ctrl+c"}},
}

var definitionLookup = func() map[ActionID]definition {
	out := make(map[ActionID]definition, len(definitions))
	for _, def := range definitions {
		out[def.id] = def
	}
	return out
}()

// Map stores runtime shortcut bindings and lookup helpers.
type Map struct {
	single  map[string]ActionID
	actions map[ActionID][]string
}

// Load attempts to read bindings from bindings.toml/json in dir. Missing files fall back to defaults.
func Load(dir string) (*Map, Source, error) {
	candidates := []Source{
		{Path: filepath.Join(dir, "bindings.toml"), Format: FormatTOML},
		{Path: filepath.Join(dir, "bindings.json"), Format: FormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				fmt.Errorf("read bindings %q: %w", candidate.Path, err),
			)
			continue
		}

		overrides, err := parseConfig(data, candidate.Format)
		if err != nil {
			return nil, Source{}, fmt.Errorf("parse bindings %q: %w", candidate.Path, err)
		}
		built, err := buildMap(overrides)
		if err != nil {
			return nil, Source{}, fmt.Errorf("apply bindings %q: %w", candidate.Path, err)
		}
		return built, candidate, nil
	}

	if accumulated != nil {
		return nil, Source{}, accumulated
	}

	built, err := buildMap(nil)
	if err != nil {
		return nil, Source{}, err
	}
	return built, Source{Path: candidates[0].Path, Format: FormatTOML}, nil
}

// DefaultMap builds the built-in bindings without consulting disk.
func DefaultMap() *Map {
	m, err := buildMap(nil)
	if err != nil {
		panic(err)
	}
	return m
}

// Match returns the action bound to key, if any.
func (m *Map) Match(key string) (ActionID, bool) {
	if m == nil {
		return "", false
	}
	id, ok := m.single[NormalizeKeyString(key)]
	return id, ok
}

// Keys returns a copy of the keys bound to action, in configured order.
func (m *Map) Keys(action ActionID) []string {
	if m == nil {
		return nil
	}
	keys := m.actions[action]
	if len(keys) == 0 {
		return nil
	}
	return append([]string(nil), keys...)
}

// Help is the short description shown next to an action's first key.
func Help(action ActionID) string {
	return definitionLookup[action].help
}

type configFile struct {
	Bindings map[string][]string `json:"bindings" toml:"bindings"`
}

func parseConfig(data []byte, format Format) (map[ActionID][]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var payload configFile
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if len(payload.Bindings) == 0 {
		return nil, nil
	}

	overrides := make(map[ActionID][]string, len(payload.Bindings))
	for key, specs := range payload.Bindings {
		id := ActionID(key)
		if _, ok := definitionLookup[id]; !ok {
			return nil, fmt.Errorf("unknown action %q", key)
		}
		keys := make([]string, 0, len(specs))
		for _, spec := range specs {
			if len(strings.Fields(spec)) > 1 {
				return nil, fmt.Errorf("action %q: chorded bindings are not supported", key)
			}
			step, err := normalizeStep(spec)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", key, err)
			}
			keys = append(keys, step)
		}
		overrides[id] = keys
	}
	return overrides, nil
}

func buildMap(overrides map[ActionID][]string) (*Map, error) {
	keysByAction := make(map[ActionID][]string, len(definitions))
	for _, def := range definitions {
		keys := make([]string, 0, len(def.defaults))
		for _, k := range def.defaults {
			step, err := normalizeStep(k)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", def.id, err)
			}
			keys = append(keys, step)
		}
		keysByAction[def.id] = keys
	}
	for id, keys := range overrides {
		keysByAction[id] = append([]string(nil), keys...)
	}

	single := make(map[string]ActionID)
	actions := make(map[ActionID][]string, len(keysByAction))
	for _, id := range actionIDs() {
		seen := make(map[string]struct{})
		for _, k := range keysByAction[id] {
			if _, ok := seen[k]; ok {
				return nil, fmt.Errorf("action %s: duplicate binding %q", id, k)
			}
			seen[k] = struct{}{}
			if existing, ok := single[k]; ok {
				return nil, fmt.Errorf("binding %q assigned to both %s and %s", k, existing, id)
			}
			single[k] = id
			actions[id] = append(actions[id], k)
		}
	}
	if len(actions[ActionQuit]) == 0 {
		return nil, fmt.Errorf("action %s needs at least one binding", ActionQuit)
	}
	return &Map{single: single, actions: actions}, nil
}

func normalizeStep(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty key step")
	}
	if raw == "?" {
		raw = "shift+/"
	}

	runes := []rune(raw)
	if len(runes) == 1 {
		r := runes[0]
		if unicode.IsLetter(r) && unicode.IsUpper(r) {
			return "shift+" + strings.ToLower(raw), nil
		}
		return strings.ToLower(raw), nil
	}

	if !strings.Contains(raw, "+") {
		return strings.ToLower(raw), nil
	}

	parts := strings.Split(raw, "+")
	var keyParts []string
	modSet := make(map[string]struct{})
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		switch lower {
		case "ctrl", "control":
			modSet["ctrl"] = struct{}{}
		case "alt", "option":
			modSet["alt"] = struct{}{}
		case "shift":
			modSet["shift"] = struct{}{}
		default:
			keyParts = append(keyParts, lower)
		}
	}
	if len(keyParts) == 0 {
		return "", fmt.Errorf("binding %q missing key", raw)
	}
	key := strings.Join(keyParts, "+")
	mods := orderedModifiers(modSet)
	if len(mods) == 0 {
		return key, nil
	}
	return strings.Join(append(mods, key), "+"), nil
}

func orderedModifiers(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	order := []string{"ctrl", "alt", "shift"}
	out := make([]string, 0, len(set))
	for _, mod := range order {
		if _, ok := set[mod]; ok {
			out = append(out, mod)
		}
	}
	return out
}

// NormalizeKeyString converts runtime key strings into canonical form for lookup.
func NormalizeKeyString(raw string) string {
	normalized, err := normalizeStep(raw)
	if err != nil {
		return ""
	}
	return normalized
}

func actionIDs() []ActionID {
	ids := make([]ActionID, 0, len(definitions))
	for _, def := range definitions {
		ids = append(ids, def.id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// KnownActions returns the sorted list of action identifiers.
func KnownActions() []ActionID {
	return actionIDs()
}
