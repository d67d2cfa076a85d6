package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStoreByPathFiltersNewestFirst(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"), 10)
	for _, u := range []string{"/list/Game?brief", "/list/Player", "/list/Game?league=2"} {
		if err := store.Push(u); err != nil {
			t.Fatalf("Push(%q): %v", u, err)
		}
	}

	got, err := store.ByPath("/list/Game", 0)
	if err != nil {
		t.Fatalf("ByPath: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for games, got %d", len(got))
	}
	if got[0].URL != "/list/Game?league=2" || got[1].URL != "/list/Game?brief" {
		t.Fatalf("expected newest-first order, got %q then %q", got[0].URL, got[1].URL)
	}

	if got, _ := store.ByPath("/list/Game", 1); len(got) != 1 || got[0].URL != "/list/Game?league=2" {
		t.Fatalf("expected limit to keep the newest entry, got %#v", got)
	}
	if got, _ := store.ByPath("", 0); len(got) != 0 {
		t.Fatalf("expected empty result for blank path")
	}
}

func TestStoreKeepsPushOrderWithinOneClockTick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewStore(path, 10)
	tick := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return tick }

	urls := []string{"/list/Game?a", "/list/Game?b", "/list/Game?c", "/list/Game?d"}
	for _, u := range urls {
		if err := store.Push(u); err != nil {
			t.Fatalf("Push(%q): %v", u, err)
		}
	}
	// The newest entry is the one repeat detection compares against.
	if err := store.Push("/list/Game?d"); err != nil {
		t.Fatalf("Push repeat: %v", err)
	}

	check := func(label string, entries []Entry) {
		t.Helper()
		if len(entries) != len(urls) {
			t.Fatalf("%s: expected %d entries, got %d", label, len(urls), len(entries))
		}
		for i, e := range entries {
			if want := urls[len(urls)-1-i]; e.URL != want {
				t.Fatalf("%s: entry %d expected %q, got %q", label, i, want, e.URL)
			}
		}
	}
	list, err := store.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	check("in memory", list)

	reloaded, err := NewStore(path, 10).List(0)
	if err != nil {
		t.Fatalf("List reloaded: %v", err)
	}
	check("reloaded", reloaded)
}

func TestStorePushSkipsRepeatAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewStore(path, 2)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	for _, u := range []string{
		"/list/Game?brief&league=7",
		"/list/Game?brief&league=7",
		"/list/Game?league=3",
		"/list/Game",
	} {
		if err := store.Push(u); err != nil {
			t.Fatalf("Push(%q): %v", u, err)
		}
	}

	entries := store.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected cap of 2 entries, got %d", len(entries))
	}
	if entries[0].URL != "/list/Game" || entries[1].URL != "/list/Game?league=3" {
		t.Fatalf("unexpected entries %#v", entries)
	}
	if entries[1].Path != "/list/Game" || entries[1].Query != "league=3" {
		t.Fatalf("url not split: %#v", entries[1])
	}

	reloaded := NewStore(path, 2)
	list, err := reloaded.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].URL != "/list/Game" {
		t.Fatalf("unexpected reloaded entries %#v", list)
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"), 10)
	if err := store.Push("/list/Game"); err != nil {
		t.Fatalf("Push: %v", err)
	}
	id := store.Entries()[0].ID
	ok, err := store.Delete(id)
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, got %v %v", ok, err)
	}
	if len(store.Entries()) != 0 {
		t.Fatalf("expected empty store after delete")
	}
	ok, err = store.Delete(id)
	if err != nil || ok {
		t.Fatalf("expected second delete to report missing, got %v %v", ok, err)
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir(), 10); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	b, err := Open("", t.TempDir(), 10)
	if err != nil {
		t.Fatalf("Open json: %v", err)
	}
	if _, ok := b.(*Store); !ok {
		t.Fatalf("expected json store, got %T", b)
	}
}
