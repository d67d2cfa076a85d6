package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/unkn0wn-root/richlist/internal/filterspec"
	"github.com/unkn0wn-root/richlist/internal/fragment"
	"github.com/unkn0wn-root/richlist/internal/history"
	"github.com/unkn0wn-root/richlist/internal/query"
	"github.com/unkn0wn-root/richlist/internal/refresh"
	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

func runQuery(w io.Writer, state *viewmodel.State, snap *viewmodel.Snapshot) error {
	_, err := fmt.Fprintln(w, query.NewBuilder(state).Build(snap, snap))
	return err
}

func runSync(w io.Writer, client *refresh.Client, snap *viewmodel.Snapshot) error {
	u, err := client.SyncURL(snap, snap)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, u)
	return err
}

// runOnce refreshes the data region once and prints it as text, followed by
// a summary of the filters that were sent.
func runOnce(ctx context.Context, w io.Writer, client *refresh.Client, state *viewmodel.State, snap *viewmodel.Snapshot) error {
	resp, err := client.Refresh(ctx, snap, snap)
	if resp == nil {
		return err
	}
	if err != nil {
		// The fragment arrived; only the history push failed.
		fmt.Fprintf(w, "warning: %v\n", err)
	}

	doc, parseErr := fragment.Parse(resp.HTML)
	if parseErr != nil {
		return parseErr
	}
	if out := doc.Render(0); out != "" {
		fmt.Fprintln(w, out)
	}

	terms := query.MergeFilters(query.CollectFilters(snap), state.Filters())
	fmt.Fprintf(w, "\n%d rows", doc.RowCount())
	if len(terms) > 0 {
		fmt.Fprintf(w, " where %s", filterspec.Describe(terms))
	}
	fmt.Fprintln(w)
	if resp.ViewURL != "" {
		fmt.Fprintf(w, "view: %s\n", resp.ViewURL)
	}
	for _, link := range doc.Links {
		fmt.Fprintf(w, "link: %s\n", link)
	}
	return nil
}

// printHistory lists recorded URLs, newest first. A non-empty path limits
// the listing to that list view.
func printHistory(w io.Writer, backend history.Backend, path string, limit int) error {
	if backend == nil {
		return errors.New("history unavailable")
	}
	var (
		entries []history.Entry
		err     error
	)
	if path != "" {
		entries, err = backend.ByPath(path, limit)
	} else {
		entries, err = backend.List(limit)
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no history")
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s  %s  %s\n", e.PushedAt.Local().Format(time.DateTime), e.ID, e.URL); err != nil {
			return err
		}
	}
	return nil
}

func deleteHistory(w io.Writer, backend history.Backend, id string) error {
	if backend == nil {
		return errors.New("history unavailable")
	}
	ok, err := backend.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no history entry %q", id)
	}
	_, err = fmt.Fprintf(w, "deleted %s\n", id)
	return err
}

// historyPath is the path component history entries are keyed by.
func historyPath(pageBase string) string {
	u, err := url.Parse(pageBase)
	if err != nil {
		return ""
	}
	return u.Path
}
