// Package ringbuf implements the single-producer/single-consumer line
// ring buffer that sits between the UART interrupt source and the
// control loop (spec §4.1, §5).
//
// In real firmware the producer is an ISR; here it is the background
// goroutine that reads bytes off the modem transport (package system).
// The consumer is the control loop goroutine. The two sides never take
// a lock: the write index, read index, entry count and line-feed count
// are published with atomic stores and observed with atomic loads,
// matching the "acquire semantics before dereferencing the buffer slice"
// guidance of spec §9.
package ringbuf

import "sync/atomic"

// DefaultCapacity vastly exceeds any credible modem burst (spec §3: "at
// least 10 KiB").
const DefaultCapacity = 16 * 1024

// Buffer is a fixed-size byte ring buffer with line framing. Capacity
// must be a value the caller is prepared to never overflow in practice;
// Buffer performs no overflow check by design (spec §4.1: "No overflow
// check ... overflow, if it nevertheless occurred, would corrupt at most
// the oldest unread line").
type Buffer struct {
	data []byte

	writeIdx  atomic.Uint32
	readIdx   atomic.Uint32
	entries   atomic.Uint32
	lineFeeds atomic.Uint32
}

// New allocates a Buffer of the given capacity. capacity must be > 0.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Push appends a single byte to the buffer. It is the only method the
// producer (UART ISR / reader goroutine) may call.
func (b *Buffer) Push(c byte) {
	idx := b.writeIdx.Load()
	b.data[idx] = c
	b.writeIdx.Store((idx + 1) % uint32(len(b.data)))
	b.entries.Add(1)
	if c == '\n' {
		b.lineFeeds.Add(1)
	}
}

// Entries reports the number of unread bytes currently buffered.
func (b *Buffer) Entries() int {
	return int(b.entries.Load())
}

// LineFeedCount reports the number of LF bytes within the unread region
// (spec §3 invariant). A non-zero count means at least one complete line
// is available to PopLine.
func (b *Buffer) LineFeedCount() int {
	return int(b.lineFeeds.Load())
}

// PopLine drains bytes up to and including the next LF into dst and
// returns the number of bytes written (LF included) and true, or (0,
// false) if no complete line is currently buffered. It is the only
// method the consumer (control loop) may call.
//
// If dst is too small to hold the line, the line is still fully drained
// from the buffer (so framing is never lost) but only len(dst) bytes are
// copied; callers size dst to at.MaxLineLength plus terminator slack.
func (b *Buffer) PopLine(dst []byte) (int, bool) {
	if b.lineFeeds.Load() == 0 {
		return 0, false
	}

	capacity := uint32(len(b.data))
	read := b.readIdx.Load()
	n := 0
	for {
		c := b.data[read]
		if n < len(dst) {
			dst[n] = c
		}
		n++
		read = (read + 1) % capacity
		if c == '\n' {
			break
		}
	}
	b.readIdx.Store(read)
	b.entries.Add(^uint32(n - 1))     // entries -= n
	b.lineFeeds.Add(^uint32(0))       // lineFeeds--

	if n > len(dst) {
		return len(dst), true
	}
	return n, true
}
