package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var pollerSeq atomic.Int64

// pollTickMsg fires when a poller's interval elapses. It is only honoured
// by the poller whose id and generation it carries.
type pollTickMsg struct {
	id  int64
	gen uint64
}

// poller is a disposable repeating timer for one view. Bubble Tea ticks
// cannot be withdrawn once scheduled, so every Start or Stop bumps the
// generation and ticks from an older generation are ignored.
type poller struct {
	id       int64
	interval time.Duration
	gen      uint64
	active   bool
}

func newPoller(interval time.Duration) *poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &poller{id: pollerSeq.Add(1), interval: interval}
}

// Start begins a fresh generation and schedules its first tick.
func (p *poller) Start() tea.Cmd {
	p.gen++
	p.active = true
	return p.tick()
}

// Next schedules the following tick of the current generation.
func (p *poller) Next() tea.Cmd {
	if !p.active {
		return nil
	}
	return p.tick()
}

func (p *poller) tick() tea.Cmd {
	id, gen := p.id, p.gen
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return pollTickMsg{id: id, gen: gen}
	})
}

// Owns reports whether msg belongs to the live generation of this poller.
func (p *poller) Owns(msg pollTickMsg) bool {
	return p.active && msg.id == p.id && msg.gen == p.gen
}

// Stop invalidates every outstanding tick.
func (p *poller) Stop() {
	p.active = false
	p.gen++
}

// Dispose stops the poller for good when its view is closed.
func (p *poller) Dispose() {
	p.Stop()
}

func (p *poller) Active() bool {
	return p.active
}

func (p *poller) Interval() time.Duration {
	return p.interval
}

// disposer is implemented by views that own pollers.
type disposer interface {
	Dispose()
}
