// Package refresh reloads a list view's data region from its AJAX endpoint
// and keeps the visible URL in history.
//
// One refresh is in flight at a time. Starting a new one cancels the
// previous request; a superseded call returns ErrSuperseded and leaves the
// page and state untouched, so responses can never land out of order.
package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/unkn0wn-root/richlist/internal/errdef"
	"github.com/unkn0wn-root/richlist/internal/httpclient"
	"github.com/unkn0wn-root/richlist/internal/query"
	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

var ErrSuperseded = errors.New("refresh superseded by a newer request")

// Page is what a refresh drives while it runs. Methods are called with the
// client's lock held, so implementations must not block or call back into
// the client.
type Page interface {
	SetLoading(loading bool)
	SetControlsEnabled(enabled bool)
	ReplaceData(html string)
	ShowFailure(err error)
}

type History interface {
	Push(rawURL string) error
}

type Fetcher interface {
	Get(ctx context.Context, target string, opts httpclient.Options) (*httpclient.Response, error)
}

// Response is the JSON envelope the list view's AJAX endpoint returns.
type Response struct {
	HTML    string `json:"HTML"`
	JSONURL string `json:"json_URL"`
	ViewURL string `json:"view_URL"`
}

type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("refresh %s: unexpected status %s", e.URL, status)
}

type Config struct {
	State   *viewmodel.State
	Fetcher Fetcher
	Page    Page
	History History
	HTTP    httpclient.Options
}

type Client struct {
	state   *viewmodel.State
	builder query.Builder
	fetcher Fetcher
	page    Page
	history History
	opts    httpclient.Options

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func New(cfg Config) *Client {
	state := cfg.State
	if state == nil {
		state = viewmodel.NewState(viewmodel.DefaultDefaults(), "", "", nil)
	}
	page := cfg.Page
	if page == nil {
		page = NopPage{}
	}
	hist := cfg.History
	if hist == nil {
		hist = nopHistory{}
	}
	return &Client{
		state:   state,
		builder: query.NewBuilder(state),
		fetcher: cfg.Fetcher,
		page:    page,
		history: hist,
		opts:    cfg.HTTP,
	}
}

// QueryString is the query built from view and ordering against the
// client's state.
func (c *Client) QueryString(view viewmodel.View, ordering viewmodel.Ordering) string {
	return c.builder.Build(view, ordering)
}

// Refresh fetches the fragment for the current widget state and applies it.
// view is read before Refresh returns its first page update; callers on a
// UI thread should pass a viewmodel.Snapshot.
func (c *Client) Refresh(ctx context.Context, view viewmodel.View, ordering viewmodel.Ordering) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	target := c.state.AjaxURL() + c.builder.Build(view, ordering)

	reqCtx, seq := c.begin(ctx)
	defer c.finish(seq)

	resp, err := c.fetch(reqCtx, target)

	// Results are applied under the lock so a newer call cannot start
	// between the staleness check and the page updates.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != seq {
		return nil, ErrSuperseded
	}
	if err != nil {
		c.fail(err)
		return nil, err
	}

	c.page.ReplaceData(resp.HTML)
	c.state.SetAjaxURL(resp.JSONURL)
	var histErr error
	if resp.ViewURL != "" {
		histErr = errdef.Wrap(errdef.CodeHistory, c.history.Push(resp.ViewURL), "push view url")
	}
	c.page.SetLoading(false)
	c.page.SetControlsEnabled(true)
	if histErr != nil {
		c.page.ShowFailure(histErr)
		return resp, histErr
	}
	return resp, nil
}

// SyncURL records the page URL for the current widget state without
// fetching anything.
func (c *Client) SyncURL(view viewmodel.View, ordering viewmodel.Ordering) (string, error) {
	u := c.state.PageURL() + c.builder.Build(view, ordering)
	if err := c.history.Push(u); err != nil {
		return u, errdef.Wrap(errdef.CodeHistory, err, "push page url")
	}
	return u, nil
}

// Cancel aborts the in-flight refresh, if any. The aborted call restores
// the page before returning.
func (c *Client) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Client) fetch(ctx context.Context, target string) (*Response, error) {
	if c.fetcher == nil {
		return nil, errdef.New(errdef.CodeHTTP, "no fetcher configured")
	}
	httpResp, err := c.fetcher.Get(ctx, target, c.opts)
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: httpResp.StatusCode, Status: httpResp.Status, URL: target}
	}
	var out Response
	if err := json.Unmarshal(httpResp.Body, &out); err != nil {
		return nil, errdef.Wrap(errdef.CodeDecode, err, "decode refresh response")
	}
	return &out, nil
}

func (c *Client) fail(err error) {
	c.page.SetLoading(false)
	c.page.SetControlsEnabled(true)
	c.page.ShowFailure(err)
}

// begin supersedes any in-flight call and marks the page busy. Both happen
// under the lock so an older call can never mark the page after a newer
// call has restored it.
func (c *Client) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	c.cancel = cancel
	c.page.SetLoading(true)
	c.page.SetControlsEnabled(false)
	return ctx, c.seq
}

func (c *Client) finish(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == seq && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// NopPage ignores every update.
type NopPage struct{}

func (NopPage) SetLoading(bool)         {}
func (NopPage) SetControlsEnabled(bool) {}
func (NopPage) ReplaceData(string)      {}
func (NopPage) ShowFailure(error)       {}

type nopHistory struct{}

func (nopHistory) Push(string) error { return nil }
