package ui

import (
	"github.com/unkn0wn-root/richlist/internal/refresh"
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
	statusSuccess
)

type statusMsg struct {
	text  string
	level statusLevel
}

// Page updates sent by a running refresh.
type loadingMsg struct {
	loading bool
}

type controlsMsg struct {
	enabled bool
}

type dataMsg struct {
	html string
}

type failureMsg struct {
	err error
}

type refreshDoneMsg struct {
	resp *refresh.Response
	err  error
}

type syncDoneMsg struct {
	url string
	err error
}
