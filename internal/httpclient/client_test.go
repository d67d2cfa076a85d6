package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/unkn0wn-root/richlist/internal/errdef"
	"github.com/unkn0wn-root/richlist/internal/telemetry"
)

func TestGetSendsXHRHeaders(t *testing.T) {
	var gotXHR, gotAccept, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotXHR = r.Header.Get("X-Requested-With")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"HTML":"<p>ok</p>"}`))
	}))
	defer srv.Close()

	client := NewClient()
	resp, err := client.Get(context.Background(), srv.URL+"/json/list/Game?brief&league=7", Options{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"HTML":"<p>ok</p>"}` {
		t.Fatalf("unexpected body %q", resp.Body)
	}
	if gotXHR != "XMLHttpRequest" || gotAccept != "application/json" {
		t.Fatalf("missing xhr headers: %q %q", gotXHR, gotAccept)
	}
	if gotQuery != "brief&league=7" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if resp.ReqMethod != http.MethodGet || resp.EffectiveURL == "" {
		t.Fatalf("response metadata not captured: %#v", resp)
	}
}

func TestGetNetworkErrorIsCodedHTTP(t *testing.T) {
	client := NewClient()
	client.SetHTTPFactory(func(Options) (*http.Client, error) {
		return &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})}, nil
	})

	_, err := client.Get(context.Background(), "http://example.invalid/json", Options{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if errdef.CodeOf(err) != errdef.CodeHTTP {
		t.Fatalf("expected http code, got %q (%v)", errdef.CodeOf(err), err)
	}
}

func TestGetHonoursCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient().Get(ctx, srv.URL, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGetRecordsSpan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	recorder := tracetest.NewSpanRecorder()
	inst, err := telemetry.New(
		telemetry.Config{ServiceName: "richlist-test"},
		telemetry.WithSpanProcessor(recorder),
	)
	if err != nil {
		t.Fatalf("telemetry.New: %v", err)
	}
	t.Cleanup(func() { _ = inst.Shutdown(context.Background()) })

	client := NewClient()
	client.SetTelemetry(inst)
	if _, err := client.Get(context.Background(), srv.URL, Options{}); err != nil {
		t.Fatalf("Get: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	assertStatusAttr(t, spans[0], 404)
}

func TestBuildHTTPClientRejectsBadProxy(t *testing.T) {
	c := NewClient()
	if _, err := c.buildHTTPClient(Options{ProxyURL: "://bad"}); err == nil {
		t.Fatalf("expected proxy parse error")
	}
	hc, err := c.buildHTTPClient(Options{Timeout: time.Second, HTTP2: true})
	if err != nil {
		t.Fatalf("buildHTTPClient: %v", err)
	}
	if hc.Timeout != time.Second || hc.CheckRedirect == nil {
		t.Fatalf("unexpected client config: timeout=%s redirect=%v", hc.Timeout, hc.CheckRedirect != nil)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func assertStatusAttr(t *testing.T, span sdktrace.ReadOnlySpan, want int64) {
	t.Helper()
	for _, attr := range span.Attributes() {
		if string(attr.Key) == "http.status_code" {
			if attr.Value.AsInt64() != want {
				t.Fatalf("expected status %d, got %d", want, attr.Value.AsInt64())
			}
			return
		}
	}
	t.Fatalf("status attribute not found")
}
