package main

import (
	"bytes"
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/unkn0wn-root/richlist/internal/config"
	"github.com/unkn0wn-root/richlist/internal/history"
	"github.com/unkn0wn-root/richlist/internal/httpclient"
	"github.com/unkn0wn-root/richlist/internal/refresh"
	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

func TestSplitPageURL(t *testing.T) {
	base, query, err := splitPageURL("https://example.org/list/Game?brief&season=2023#top")
	if err != nil {
		t.Fatalf("splitPageURL: %v", err)
	}
	if base != "https://example.org/list/Game" {
		t.Fatalf("unexpected base %q", base)
	}
	if query != "brief&season=2023" {
		t.Fatalf("unexpected query %q", query)
	}

	if base, query, err := splitPageURL("  "); err != nil || base != "" || query != "" {
		t.Fatalf("expected empty result for blank url, got %q %q %v", base, query, err)
	}
}

func TestSeedFromQuery(t *testing.T) {
	snap := viewmodel.NewSnapshot(viewmodel.DefaultDefaults())
	seedFromQuery(snap, "brief&nomenus&index&league=7&ordering=-date_time&season=2023&unknown", config.DefaultChoices())

	if snap.Radios[viewmodel.OptElements] != "brief" {
		t.Fatalf("expected elements brief, got %q", snap.Radios[viewmodel.OptElements])
	}
	if snap.Radios[viewmodel.OptMenus] != "nomenus" {
		t.Fatalf("expected menus nomenus, got %q", snap.Radios[viewmodel.OptMenus])
	}
	if !snap.Checkboxes[viewmodel.OptIndex] {
		t.Fatalf("expected index checked")
	}
	if snap.League != "7" {
		t.Fatalf("expected league 7, got %q", snap.League)
	}
	if len(snap.Order) != 1 || snap.Order[0] != "ordering=-date_time" {
		t.Fatalf("unexpected ordering %v", snap.Order)
	}
	if len(snap.Filters) != 0 {
		t.Fatalf("filters belong to the page state, got %v", snap.Filters)
	}
}

func TestApplyWidgetFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var w widgetFlags
	w.radios = map[string]*string{viewmodel.OptElements: fs.String(viewmodel.OptElements, "", "")}
	fs.Var(&w.index, viewmodel.OptIndex, "")
	fs.Var(&w.key, viewmodel.OptKey, "")
	fs.StringVar(&w.league, "league", "", "")
	fs.Var(&w.filters, "filter", "")
	fs.Var(&w.ordering, "ordering", "")
	args := []string{"-elements", "verbose", "-index", "-key=false", "-league", "3",
		"-filter", "season=2023", "-filter", "game__name__contains=a b", "-ordering", "-date_time"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}

	snap := viewmodel.NewSnapshot(viewmodel.Defaults{Elements: "rich", Key: true})
	snap.Order = []string{"ordering=name"}
	if err := applyWidgetFlags(snap, w); err != nil {
		t.Fatalf("applyWidgetFlags: %v", err)
	}

	state := viewmodel.NewState(viewmodel.Defaults{Elements: "rich", Key: true}, "/list/Game", "", nil)
	var out bytes.Buffer
	if err := runQuery(&out, state, snap); err != nil {
		t.Fatalf("runQuery: %v", err)
	}
	want := "?verbose&index&nokey&ordering=-date_time&season=2023&game__name__contains=a+b&league=3\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestApplyWidgetFlagsRejectsBadFilter(t *testing.T) {
	snap := viewmodel.NewSnapshot(viewmodel.DefaultDefaults())
	err := applyWidgetFlags(snap, widgetFlags{filters: stringList{"season"}})
	if err == nil || !strings.Contains(err.Error(), "name=value") {
		t.Fatalf("expected filter format error, got %v", err)
	}
}

func TestOptionalBoolRemembersPresence(t *testing.T) {
	var b optionalBool
	if b.String() != "" || b.set {
		t.Fatalf("expected unset flag")
	}
	if err := b.Set("nope"); err == nil {
		t.Fatalf("expected parse error")
	}
	if err := b.Set("true"); err != nil || !b.set || !b.value {
		t.Fatalf("expected set true, got %#v err %v", b, err)
	}
}

func TestRunOncePrintsFragment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Requested-With") != "XMLHttpRequest" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"HTML":"<table><tr><th>Player</th></tr><tr><td><a href=\"/view/Player/1\">Alice</a></td></tr><tr><td>Bob</td></tr></table>","json_URL":"/json/list/Game","view_URL":"/list/Game?week=5"}`))
	}))
	defer srv.Close()

	store := history.NewStore(filepath.Join(t.TempDir(), "history.json"), 10)
	state := viewmodel.NewState(viewmodel.DefaultDefaults(), "/list/Game", srv.URL+"/json/list/Game", []string{"week=5"})
	rc := refresh.New(refresh.Config{State: state, Fetcher: httpclient.NewClient(), History: store, HTTP: httpclient.Options{Timeout: 5 * time.Second}})

	var out bytes.Buffer
	if err := runOnce(context.Background(), &out, rc, state, viewmodel.NewSnapshot(viewmodel.DefaultDefaults())); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Player", "Alice", "Bob", "2 rows where week = 5", "view: /list/Game?week=5", "link: /view/Player/1"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q\n%s", want, text)
		}
	}

	out.Reset()
	if err := printHistory(&out, store, "/list/Game", 5); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	if !strings.Contains(out.String(), "/list/Game?week=5") {
		t.Fatalf("expected pushed view url in history, got %q", out.String())
	}

	out.Reset()
	if err := printHistory(&out, store, "/list/Player", 5); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	if strings.TrimSpace(out.String()) != "no history" {
		t.Fatalf("expected no entries for another view, got %q", out.String())
	}

	id := store.Entries()[0].ID
	out.Reset()
	if err := deleteHistory(&out, store, id); err != nil {
		t.Fatalf("deleteHistory: %v", err)
	}
	if len(store.Entries()) != 0 {
		t.Fatalf("expected entry to be deleted, got %v", store.Entries())
	}
	if err := deleteHistory(&out, store, id); err == nil {
		t.Fatalf("expected error deleting a missing entry")
	}
}

func TestHistoryPath(t *testing.T) {
	if got := historyPath("https://example.org/list/Game"); got != "/list/Game" {
		t.Fatalf("expected /list/Game, got %q", got)
	}
	if got := historyPath(""); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
}

func TestRunOnceReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	state := viewmodel.NewState(viewmodel.DefaultDefaults(), "/list/Game", srv.URL, nil)
	rc := refresh.New(refresh.Config{State: state, Fetcher: httpclient.NewClient()})
	err := runOnce(context.Background(), &bytes.Buffer{}, rc, state, viewmodel.NewSnapshot(viewmodel.DefaultDefaults()))
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestRunSyncAndEmptyHistory(t *testing.T) {
	store := history.NewStore(filepath.Join(t.TempDir(), "history.json"), 10)

	var out bytes.Buffer
	if err := printHistory(&out, store, "", 5); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	if strings.TrimSpace(out.String()) != "no history" {
		t.Fatalf("unexpected empty history output %q", out.String())
	}

	state := viewmodel.NewState(viewmodel.DefaultDefaults(), "/list/Game", "/json/list/Game", nil)
	rc := refresh.New(refresh.Config{State: state, History: store})
	snap := viewmodel.NewSnapshot(viewmodel.DefaultDefaults())
	snap.League = "2"

	out.Reset()
	if err := runSync(&out, rc, snap); err != nil {
		t.Fatalf("runSync: %v", err)
	}
	if out.String() != "/list/Game?league=2\n" {
		t.Fatalf("unexpected sync output %q", out.String())
	}
	if entries := store.Entries(); len(entries) != 1 || entries[0].URL != "/list/Game?league=2" {
		t.Fatalf("unexpected history %v", entries)
	}

	if err := printHistory(&out, nil, "", 5); err == nil {
		t.Fatalf("expected error without a backend")
	}
}
