// Package logbuf keeps the most recent log lines in memory so they can be
// served over HTTP.
package logbuf

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const DefaultCapacity = 1000

// Buffer is a fixed-size ring of formatted log lines. It implements
// logrus.Hook.
type Buffer struct {
	mu        sync.Mutex
	lines     []string
	next      int
	full      bool
	formatter logrus.Formatter
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		lines: make([]string, capacity),
		formatter: &logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			QuoteEmptyFields: true,
		},
	}
}

// Levels implements logrus.Hook
func (b *Buffer) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook
func (b *Buffer) Fire(entry *logrus.Entry) error {
	line, err := b.formatter.Format(entry)
	if err != nil {
		return err
	}
	b.Append(strings.TrimRight(string(line), "\n"))
	return nil
}

// Append adds one line, overwriting the oldest when full.
func (b *Buffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines[b.next] = line
	b.next = (b.next + 1) % len(b.lines)
	if b.next == 0 {
		b.full = true
	}
}

// Len is the number of lines held.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.full {
		return len(b.lines)
	}
	return b.next
}

// Tail returns up to n of the most recent lines, oldest first, and the
// total number held.
func (b *Buffer) Tail(n int) ([]string, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := b.next
	if b.full {
		total = len(b.lines)
	}
	if n <= 0 || n > total {
		n = total
	}

	out := make([]string, n)
	start := b.next - n
	if start < 0 {
		start += len(b.lines)
	}
	for i := 0; i < n; i++ {
		out[i] = b.lines[(start+i)%len(b.lines)]
	}
	return out, total
}
