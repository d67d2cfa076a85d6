package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// page forwards refresh updates into the program's message loop so they
// are applied on the update goroutine. Sends never block: the refresh
// client calls the page while holding its lock.
type page struct {
	q *pageQueue
}

func (p page) SetLoading(loading bool)    { p.emit(loadingMsg{loading: loading}) }
func (p page) SetControlsEnabled(on bool) { p.emit(controlsMsg{enabled: on}) }
func (p page) ReplaceData(html string)    { p.emit(dataMsg{html: html}) }
func (p page) ShowFailure(err error)      { p.emit(failureMsg{err: err}) }

func (p page) emit(msg tea.Msg) {
	if p.q == nil {
		return
	}
	p.q.push(msg)
}

// pageQueue is an unbounded FIFO drained one message per command.
type pageQueue struct {
	mu    sync.Mutex
	msgs  []tea.Msg
	ready chan struct{}
}

func newPageQueue() *pageQueue {
	return &pageQueue{ready: make(chan struct{}, 1)}
}

func (q *pageQueue) push(msg tea.Msg) {
	q.mu.Lock()
	q.msgs = append(q.msgs, msg)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *pageQueue) tryPop() (tea.Msg, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return nil, false
	}
	msg := q.msgs[0]
	q.msgs[0] = nil
	q.msgs = q.msgs[1:]
	return msg, true
}

func (q *pageQueue) wait() tea.Msg {
	for {
		if msg, ok := q.tryPop(); ok {
			return msg
		}
		<-q.ready
	}
}

func (m *Model) nextPageMsgCmd() tea.Cmd {
	if m.pageQueue == nil {
		return nil
	}
	q := m.pageQueue
	return func() tea.Msg {
		return q.wait()
	}
}
