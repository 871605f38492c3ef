package tui

import (
	"testing"
	"time"
)

func TestPollerOwnsOnlyLiveGeneration(t *testing.T) {
	p := newPoller(time.Second)
	if p.Active() {
		t.Fatal("new poller should be inactive")
	}
	if cmd := p.Next(); cmd != nil {
		t.Error("Next on an inactive poller should not schedule")
	}

	p.Start()
	first := pollTickMsg{id: p.id, gen: p.gen}
	if !p.Owns(first) {
		t.Fatal("poller should own its current tick")
	}

	p.Stop()
	if p.Owns(first) {
		t.Error("stopped poller must drop in-flight ticks")
	}

	p.Start()
	if p.Owns(first) {
		t.Error("restarted poller must drop ticks from an older generation")
	}
	if !p.Owns(pollTickMsg{id: p.id, gen: p.gen}) {
		t.Error("restarted poller should own its new generation")
	}

	p.Dispose()
	if p.Active() || p.Owns(pollTickMsg{id: p.id, gen: p.gen}) {
		t.Error("disposed poller should own nothing")
	}
}

func TestPollersDoNotShareTicks(t *testing.T) {
	a := newPoller(time.Second)
	b := newPoller(time.Second)
	a.Start()
	b.Start()

	if a.id == b.id {
		t.Fatal("pollers should have distinct ids")
	}
	if b.Owns(pollTickMsg{id: a.id, gen: a.gen}) {
		t.Error("poller claimed another poller's tick")
	}
}

func TestPollerIntervalDefault(t *testing.T) {
	if got := newPoller(0).Interval(); got != time.Second {
		t.Errorf("interval = %v, want 1s", got)
	}
}
