package config

import (
	"reflect"
	"testing"
)

func TestNormaliseChoicesAddsDefault(t *testing.T) {
	got := NormaliseChoices(ChoiceSettings{Menus: []string{"buttons"}}, DefaultsSettings{Menus: "menus"})
	if !reflect.DeepEqual(got.Menus, []string{"buttons", "menus"}) {
		t.Fatalf("expected default appended, got %v", got.Menus)
	}
	if !reflect.DeepEqual(got.Elements, DefaultChoices().Elements) {
		t.Fatalf("expected built-in element choices, got %v", got.Elements)
	}
	if got.For("menus")[0] != "buttons" || got.For("unknown") != nil {
		t.Fatalf("For returned unexpected lists")
	}
}

func TestNormaliseLeaguesRenamesAllEntry(t *testing.T) {
	got := NormaliseLeagues([]League{{ID: "0", Name: "Everywhere"}, {ID: " 3 "}, {ID: ""}})
	want := []League{{ID: "0", Name: "Everywhere"}, {ID: "3", Name: "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestNormaliseHTTPAndHistoryClamp(t *testing.T) {
	h := NormaliseHTTP(HTTPSettings{Timeout: "soon"})
	if h.TimeoutDuration() != HTTPTimeoutDefault || !h.Follow() {
		t.Fatalf("unexpected http normalisation %#v", h)
	}
	hist := NormaliseHistory(HistorySettings{Backend: "redis", MaxEntries: 1 << 20})
	if hist.Backend != HistoryBackendDefault || hist.MaxEntries != HistoryMaxEntriesMax {
		t.Fatalf("unexpected history normalisation %#v", hist)
	}
}

func TestNormaliseFilterFieldsDedups(t *testing.T) {
	got := NormaliseFilterFields([]string{" season ", "", "week", "season"})
	if len(got) != 2 || got[0] != "season" || got[1] != "week" {
		t.Fatalf("unexpected filter fields %v", got)
	}
}
