package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/unkn0wn-root/richlist/internal/bindings"
)

var helpOrder = []bindings.ActionID{
	bindings.ActionRefresh,
	bindings.ActionElements,
	bindings.ActionComplete,
	bindings.ActionLink,
	bindings.ActionMenus,
	bindings.ActionIndex,
	bindings.ActionKey,
	bindings.ActionLeague,
	bindings.ActionFilters,
	bindings.ActionOrdering,
	bindings.ActionMode,
	bindings.ActionSync,
	bindings.ActionCopyURL,
	bindings.ActionCancel,
	bindings.ActionQuit,
}

// Actions that change widgets or start a request; ignored while a refresh
// holds the controls.
var controlActions = map[bindings.ActionID]struct{}{
	bindings.ActionRefresh:  {},
	bindings.ActionSync:     {},
	bindings.ActionElements: {},
	bindings.ActionComplete: {},
	bindings.ActionLink:     {},
	bindings.ActionMenus:    {},
	bindings.ActionIndex:    {},
	bindings.ActionKey:      {},
	bindings.ActionLeague:   {},
	bindings.ActionFilters:  {},
	bindings.ActionOrdering: {},
}

type keyMap struct {
	actions *bindings.Map
	help    []key.Binding

	NextField key.Binding
	Apply     key.Binding
	Leave     key.Binding
}

func newKeyMap(m *bindings.Map) keyMap {
	if m == nil {
		m = bindings.DefaultMap()
	}
	km := keyMap{
		actions:   m,
		NextField: key.NewBinding(key.WithKeys("tab", "shift+tab")),
		Apply:     key.NewBinding(key.WithKeys("enter")),
		Leave:     key.NewBinding(key.WithKeys("esc")),
	}
	for _, id := range helpOrder {
		keys := m.Keys(id)
		if len(keys) == 0 {
			continue
		}
		km.help = append(km.help, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], bindings.Help(id)),
		))
	}
	return km
}

func renderHelp(bs []key.Binding) string {
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
