package history

import "testing"

func TestSQLiteStorePushAndList(t *testing.T) {
	store, err := OpenSQLite(":memory:", 3)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	for _, u := range []string{"/list/Game", "/list/Game", "/list/Game?brief", "/list/Game?league=2", "/list/Player"} {
		if err := store.Push(u); err != nil {
			t.Fatalf("Push(%q): %v", u, err)
		}
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after trim, got %d", len(entries))
	}
	want := []string{"/list/Player", "/list/Game?league=2", "/list/Game?brief"}
	for i, e := range entries {
		if e.URL != want[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, want[i], e.URL)
		}
		if e.ID == "" || e.PushedAt.IsZero() {
			t.Fatalf("entry %d missing id or time: %#v", i, e)
		}
	}
	if entries[1].Query != "league=2" {
		t.Fatalf("expected query to be stored, got %q", entries[1].Query)
	}
}

func TestOpenSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(BackendSQLite, dir, 5)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()
	if err := b.Push("/list/Game"); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if _, ok := b.(*SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", b)
	}
	entries, err := b.List(10)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one entry, got %v (%v)", entries, err)
	}
}

func TestSQLiteStoreByPathAndDelete(t *testing.T) {
	store, err := OpenSQLite(":memory:", 10)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	for _, u := range []string{"/list/Game?brief", "/list/Player", "/list/Game?league=2"} {
		if err := store.Push(u); err != nil {
			t.Fatalf("Push(%q): %v", u, err)
		}
	}

	games, err := store.ByPath("/list/Game", 0)
	if err != nil {
		t.Fatalf("ByPath: %v", err)
	}
	if len(games) != 2 || games[0].URL != "/list/Game?league=2" || games[1].URL != "/list/Game?brief" {
		t.Fatalf("unexpected game entries %#v", games)
	}

	ok, err := store.Delete(games[0].ID)
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, got %v %v", ok, err)
	}
	ok, err = store.Delete(games[0].ID)
	if err != nil || ok {
		t.Fatalf("expected second delete to report missing, got %v %v", ok, err)
	}
	games, _ = store.ByPath("/list/Game", 0)
	if len(games) != 1 {
		t.Fatalf("expected one game entry after delete, got %d", len(games))
	}
}
