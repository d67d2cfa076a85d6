package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/richlist/internal/bindings"
	"github.com/unkn0wn-root/richlist/internal/config"
	"github.com/unkn0wn-root/richlist/internal/filterspec"
	"github.com/unkn0wn-root/richlist/internal/history"
	"github.com/unkn0wn-root/richlist/internal/httpclient"
	"github.com/unkn0wn-root/richlist/internal/refresh"
	"github.com/unkn0wn-root/richlist/internal/telemetry"
	"github.com/unkn0wn-root/richlist/internal/theme"
	"github.com/unkn0wn-root/richlist/internal/ui"
	"github.com/unkn0wn-root/richlist/internal/viewmodel"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code. Deferred cleanups finish before main
// calls os.Exit.
func run() int {
	var (
		pageURL         string
		ajaxURL         string
		widgets         widgetFlags
		printQuery      bool
		syncURL         bool
		once            bool
		showHistory     bool
		historyLimit    int
		historyDelete   string
		timeout         time.Duration
		insecure        bool
		follow          bool
		http2           bool
		proxyURL        string
		showVersion     bool
		traceOTEndpoint string
		traceOTInsecure bool
		traceOTService  string
	)

	settings, _, err := config.LoadSettings()
	if err != nil {
		log.Printf("settings load error: %v", err)
		settings = config.DefaultSettings()
	}

	telemetryCfg := telemetry.ConfigFromEnv(os.Getenv)
	traceOTEndpoint = telemetryCfg.Endpoint
	traceOTInsecure = telemetryCfg.Insecure
	traceOTService = telemetryCfg.ServiceName

	widgets.radios = make(map[string]*string, len(viewmodel.RadioOptions))
	for _, name := range viewmodel.RadioOptions {
		widgets.radios[name] = flag.String(
			name,
			"",
			fmt.Sprintf("%s option (%s)", name, strings.Join(settings.Choices.For(name), ", ")),
		)
	}
	flag.Var(&widgets.index, viewmodel.OptIndex, "Show the index column")
	flag.Var(&widgets.key, viewmodel.OptKey, "Show the key column")
	flag.StringVar(&widgets.league, "league", "", "League scope id (0 for all leagues)")
	flag.Var(&widgets.filters, "filter", "Filter as name=value, repeatable (e.g. season=2023)")
	flag.Var(&widgets.ordering, "ordering", "Ordering directive, repeatable (e.g. -date_time)")

	flag.StringVar(&pageURL, "page-url", settings.Server.PageURL, "List view URL; its query seeds the widgets")
	flag.StringVar(&ajaxURL, "ajax-url", settings.Server.AjaxURL, "AJAX endpoint of the list view")
	flag.BoolVar(&printQuery, "query", false, "Print the query string and exit")
	flag.BoolVar(&syncURL, "sync", false, "Record and print the page URL for the widgets and exit")
	flag.BoolVar(&once, "once", false, "Refresh once, print the data region and exit")
	flag.BoolVar(&showHistory, "history", false, "List recorded view URLs and exit")
	flag.IntVar(&historyLimit, "history-limit", 20, "Entries shown by -history")
	flag.StringVar(&historyDelete, "history-delete", "", "Delete the history entry with this id and exit")
	flag.DurationVar(&timeout, "timeout", settings.HTTP.TimeoutDuration(), "Request timeout")
	flag.BoolVar(&insecure, "insecure", settings.HTTP.Insecure, "Skip TLS certificate verification")
	flag.BoolVar(&follow, "follow", settings.HTTP.Follow(), "Follow redirects")
	flag.BoolVar(&http2, "http2", false, "Configure the transport for HTTP/2")
	flag.StringVar(&proxyURL, "proxy", settings.HTTP.Proxy, "HTTP proxy URL")
	flag.BoolVar(&showVersion, "version", false, "Show richlist version")
	flag.StringVar(
		&traceOTEndpoint,
		"trace-otel-endpoint",
		traceOTEndpoint,
		"OTLP collector endpoint for refresh spans",
	)
	flag.BoolVar(
		&traceOTInsecure,
		"trace-otel-insecure",
		traceOTInsecure,
		"Disable TLS for OTLP trace export",
	)
	flag.StringVar(
		&traceOTService,
		"trace-otel-service",
		traceOTService,
		"Override service.name resource attribute for exported spans",
	)
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usageText)
		flag.PrintDefaults()
	}
	flag.Parse()

	telemetryCfg.Endpoint = strings.TrimSpace(traceOTEndpoint)
	telemetryCfg.Insecure = traceOTInsecure
	telemetryCfg.ServiceName = strings.TrimSpace(traceOTService)
	telemetryCfg.Version = version

	if showVersion {
		fmt.Printf("richlist %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		return 0
	}

	if pageURL == "" && flag.NArg() > 0 {
		pageURL = flag.Arg(0)
	}
	pageBase, pageQuery, err := splitPageURL(pageURL)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	if strings.TrimSpace(ajaxURL) == "" {
		ajaxURL = pageBase
	}

	defaults := settings.Defaults.ViewDefaults()
	currentFilters, err := filterspec.FromURL(strings.TrimSpace(pageURL))
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	state := viewmodel.NewState(defaults, pageBase, strings.TrimSpace(ajaxURL), currentFilters)

	snap := viewmodel.NewSnapshot(defaults)
	seedFromQuery(snap, pageQuery, settings.Choices)
	if err := applyWidgetFlags(snap, widgets); err != nil {
		log.Printf("%v", err)
		return 1
	}

	if printQuery {
		if err := runQuery(os.Stdout, state, snap); err != nil {
			log.Printf("write query: %v", err)
			return 1
		}
		return 0
	}

	backend, err := history.Open(settings.History.Backend, config.HistoryDir(), settings.History.MaxEntries)
	if err != nil {
		log.Printf("history open error: %v", err)
		backend = nil
	} else {
		defer func() {
			if closeErr := backend.Close(); closeErr != nil {
				log.Printf("history close: %v", closeErr)
			}
		}()
	}

	if historyDelete != "" {
		if err := deleteHistory(os.Stdout, backend, strings.TrimSpace(historyDelete)); err != nil {
			log.Printf("history: %v", err)
			return 1
		}
		return 0
	}
	if showHistory {
		if err := printHistory(os.Stdout, backend, historyPath(pageBase), historyLimit); err != nil {
			log.Printf("history: %v", err)
			return 1
		}
		return 0
	}

	client := httpclient.NewClient()
	provider, err := telemetry.New(telemetryCfg)
	if err != nil {
		if telemetryCfg.Enabled() {
			log.Printf("telemetry init error: %v", err)
		}
	} else {
		client.SetTelemetry(provider)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if shutdownErr := provider.Shutdown(ctx); shutdownErr != nil {
				log.Printf("telemetry shutdown: %v", shutdownErr)
			}
		}()
	}

	httpOpts := httpclient.Options{
		Timeout:            timeout,
		FollowRedirects:    follow,
		InsecureSkipVerify: insecure,
		ProxyURL:           proxyURL,
		HTTP2:              http2,
		UserAgent:          "richlist/" + version,
	}

	var hist refresh.History
	if backend != nil {
		hist = backend
	}

	if syncURL || once {
		if state.AjaxURL() == "" && once {
			log.Printf("no list view configured: pass -page-url or -ajax-url")
			return 1
		}
		rc := refresh.New(refresh.Config{State: state, Fetcher: client, History: hist, HTTP: httpOpts})
		if syncURL {
			err = runSync(os.Stdout, rc, snap)
		} else {
			err = runOnce(context.Background(), os.Stdout, rc, state, snap)
		}
		if err != nil {
			log.Printf("error: %v", err)
			return 1
		}
		return 0
	}

	if state.AjaxURL() == "" {
		log.Printf("no list view configured: pass -page-url or -ajax-url")
		return 1
	}

	th := theme.DefaultTheme()
	if applied, err := theme.ApplySpec(th, settings.Theme); err != nil {
		log.Printf("theme error: %v; using built-in default", err)
	} else {
		th = applied
	}

	keys, _, err := bindings.Load(config.Dir())
	if err != nil {
		log.Printf("bindings load error: %v", err)
		keys = bindings.DefaultMap()
	}

	model := ui.New(ui.Config{
		State:          state,
		Fetcher:        client,
		History:        hist,
		HTTP:           httpOpts,
		Choices:        settings.Choices,
		Leagues:        settings.Leagues,
		FilterFields:   settings.Server.FilterFields,
		Theme:          &th,
		Bindings:       keys,
		Initial:        snap,
		RefreshOnStart: true,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

var usageText = heredoc.Doc(`
	richlist drives a server-rendered list view from the terminal.

	Usage:
	  richlist [flags] [page-url]

	Without a mode flag an interactive view opens. Display options, the
	league and filters start from the page URL's query and the settings
	file, and flags override both.

	Examples:
	  richlist -page-url 'https://example.org/list/Game?season=2023' -query -elements brief
	  richlist -page-url https://example.org/list/Game -ajax-url https://example.org/json/list/Game -once
	  richlist -history https://example.org/list/Game

	Flags:
`)
