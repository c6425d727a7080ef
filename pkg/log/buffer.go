package log

import (
	"fmt"
	"io"
	"sync"
)

// DefaultBufferCapacity is used when [NewCircularBuffer] is given a
// non-positive capacity.
const DefaultBufferCapacity = 100

// CircularBuffer keeps the most recent writes. It is used to hold log lines
// while the terminal UI owns the screen, so they can be printed on exit.
//
// CircularBuffer is safe for concurrent use.
type CircularBuffer struct {
	entries [][]byte
	next    int
	count   int
	mu      sync.RWMutex
}

// NewCircularBuffer creates a [CircularBuffer] holding up to capacity writes.
func NewCircularBuffer(capacity int) *CircularBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}

	return &CircularBuffer{entries: make([][]byte, capacity)}
}

// Write implements [io.Writer]. Each call is stored as one entry, replacing
// the oldest entry once the buffer is full.
func (b *CircularBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	entry := append([]byte(nil), p...)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = entry
	b.next = (b.next + 1) % len(b.entries)
	b.count = min(b.count+1, len(b.entries))

	return len(p), nil
}

// Entries returns copies of the stored entries, oldest first.
func (b *CircularBuffer) Entries() [][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	start := 0
	if b.count == len(b.entries) {
		start = b.next
	}

	out := make([][]byte, 0, b.count)
	for i := range b.count {
		e := b.entries[(start+i)%len(b.entries)]
		out = append(out, append([]byte(nil), e...))
	}

	return out
}

// Size returns the number of stored entries.
func (b *CircularBuffer) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.count
}

// Capacity returns the maximum number of entries.
func (b *CircularBuffer) Capacity() int {
	return len(b.entries)
}

// Clear removes every entry.
func (b *CircularBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.entries)
	b.next = 0
	b.count = 0
}

// WriteTo implements [io.WriterTo], writing the entries oldest first.
func (b *CircularBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, e := range b.Entries() {
		n, err := w.Write(e)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write log entry: %w", err)
		}
	}

	return total, nil
}
