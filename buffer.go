package gohevclib

import (
	"errors"
	"sync"
)

// ErrBufferDiscarded is returned when accessing a Buffer that has been
// discarded.
var ErrBufferDiscarded = errors.New("buffer has been discarded")

// Buffer is an owned, mutable region of encoded bytes, created by the
// hardware encoder once per encoded frame.
type Buffer struct {
	mu        sync.Mutex
	data      []byte
	discarded bool
}

// NewBuffer allocates a Buffer wrapping data. Ownership of data passes to
// the Buffer.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Map acquires exclusive read+write access to the buffer content and runs
// f on it. Access is released when f returns, on every path, including
// when f fails.
func (b *Buffer) Map(f func([]byte) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.discarded {
		return ErrBufferDiscarded
	}

	return f(b.data)
}

// Discard releases the buffer content. It is called on buffers whose
// content is no longer consistent; a discarded buffer must not be
// forwarded downstream.
func (b *Buffer) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = nil
	b.discarded = true
}

// Bytes returns the buffer content, or nil when the buffer has been
// discarded. The returned slice is owned by the Buffer and is valid only
// until the next mutation.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}
