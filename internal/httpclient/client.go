package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/unkn0wn-root/richlist/internal/errdef"
	"github.com/unkn0wn-root/richlist/internal/telemetry"
)

type Options struct {
	Timeout            time.Duration
	FollowRedirects    bool
	InsecureSkipVerify bool
	ProxyURL           string
	HTTP2              bool
	UserAgent          string
}

type Client struct {
	jar         http.CookieJar
	httpFactory func(Options) (*http.Client, error)
	telemetry   telemetry.Instrumenter
}

func (c *Client) resolveHTTPFactory() func(Options) (*http.Client, error) {
	if c == nil {
		return nil
	}
	if c.httpFactory != nil {
		return c.httpFactory
	}
	return c.buildHTTPClient
}

func NewClient() *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{jar: jar, telemetry: telemetry.Noop()}
	c.httpFactory = c.buildHTTPClient
	return c
}

// SetHTTPFactory allows callers to override how http.Client instances are created.
// Passing nil restores the default factory.
func (c *Client) SetHTTPFactory(factory func(Options) (*http.Client, error)) {
	c.httpFactory = factory
}

// SetTelemetry configures the instrumenter used to emit OpenTelemetry spans. Passing nil restores the no-op implementation.
func (c *Client) SetTelemetry(instr telemetry.Instrumenter) {
	if instr == nil {
		instr = telemetry.Noop()
	}
	c.telemetry = instr
}

type Response struct {
	Status       string
	StatusCode   int
	Proto        string
	Headers      http.Header
	ReqMethod    string
	Body         []byte
	Duration     time.Duration
	EffectiveURL string
}

// Get fetches a list-view fragment. The request is marked as XHR so the
// server answers with its JSON envelope rather than a full page.
// Telemetry spans always end, including on transport failure.
func (c *Client) Get(ctx context.Context, target string, opts Options) (resp *Response, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHTTP, err, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	if opts.UserAgent != "" {
		httpReq.Header.Set("User-Agent", opts.UserAgent)
	}

	factory := c.resolveHTTPFactory()
	if factory == nil {
		return nil, errdef.New(errdef.CodeHTTP, "http client factory unavailable")
	}
	client, err := factory(opts)
	if err != nil {
		return nil, err
	}

	instrumenter := c.telemetry
	if instrumenter == nil {
		instrumenter = telemetry.Noop()
	}
	spanCtx, span := instrumenter.Start(httpReq.Context(), telemetry.RequestStart{
		Name:        "list refresh",
		HTTPRequest: httpReq,
	})
	httpReq = httpReq.WithContext(spanCtx)

	defer func() {
		if span == nil {
			return
		}
		result := telemetry.RequestResult{Err: err}
		if resp != nil {
			result.StatusCode = resp.StatusCode
			result.BodyBytes = len(resp.Body)
			result.Duration = resp.Duration
		}
		span.End(result)
	}()

	start := time.Now()
	httpResp, err := client.Do(httpReq)
	if err != nil {
		return &Response{
			Duration:     time.Since(start),
			EffectiveURL: effURL(httpReq, nil),
			ReqMethod:    httpReq.Method,
		}, errdef.Wrap(errdef.CodeHTTP, err, "perform request")
	}

	defer func() {
		if closeErr := httpResp.Body.Close(); closeErr != nil && err == nil {
			err = errdef.Wrap(errdef.CodeHTTP, closeErr, "close response body")
		}
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHTTP, err, "read response body")
	}

	return respFromHTTP(httpReq, httpResp, body, time.Since(start)), nil
}
