// Package tailbuf implements a byte-bounded, append-only text buffer.
//
// A Buffer accumulates text chunks while never retaining more than a
// fixed budget of UTF-8 encoded bytes. When an append pushes the total
// over budget, the oldest chunks are dropped whole; a single append
// that is itself larger than the budget keeps only the largest
// trailing slice that fits without splitting a multi-byte code point.
// Any loss of content is recorded by a monotonic truncation flag.
//
// Buffers are not safe for concurrent use. A host that shares one
// across goroutines must serialize access externally.
package tailbuf

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxBytes is the byte budget used by NewDefault.
const DefaultMaxBytes = 1 << 20 // 1 MiB

// Buffer is an append-only text accumulator with a hard byte budget.
// The zero value is unusable; construct with New or NewDefault.
type Buffer struct {
	maxBytes  int
	chunks    []string // retained appends, oldest first
	size      int      // total encoded bytes across chunks
	truncated bool
}

// New returns a Buffer with the given byte budget. A budget <= 0 is
// valid configuration: such a buffer retains nothing and marks
// truncation on the first non-empty append.
func New(maxBytes int) *Buffer {
	return &Buffer{maxBytes: maxBytes}
}

// NewDefault returns a Buffer with the 1 MiB default budget.
func NewDefault() *Buffer {
	return New(DefaultMaxBytes)
}

// Append adds text to the buffer, dropping the oldest retained chunks
// as needed to stay within the byte budget. Empty input is a no-op.
//
// If text alone exceeds the budget, all previously retained content is
// discarded and only the tail-fit slice of text survives. Otherwise
// text is retained whole and older chunks are evicted whole; partial
// trimming happens only in the oversized-single-append path.
func (b *Buffer) Append(text string) {
	if text == "" {
		return
	}

	if len(text) > b.maxBytes {
		tail := tailFit(text, b.maxBytes)

		b.chunks = b.chunks[:0]
		if tail != "" {
			b.chunks = append(b.chunks, tail)
		}

		b.size = len(tail)
		b.truncated = true

		return
	}

	b.chunks = append(b.chunks, text)
	b.size += len(text)

	for b.size > b.maxBytes {
		b.size -= len(b.chunks[0])
		b.chunks = b.chunks[1:]
		b.truncated = true
	}
}

// String returns the retained content: all surviving chunks
// concatenated in append order.
func (b *Buffer) String() string {
	var sb strings.Builder

	sb.Grow(b.size)

	for _, c := range b.chunks {
		sb.WriteString(c)
	}

	return sb.String()
}

// Truncated reports whether any content has ever been dropped from
// this buffer. Once true it stays true for the buffer's lifetime.
func (b *Buffer) Truncated() bool {
	return b.truncated
}

// Len returns the number of encoded bytes currently retained. It
// always equals len(b.String()).
func (b *Buffer) Len() int {
	return b.size
}

// tailFit returns the longest trailing slice of text whose UTF-8
// encoding fits within maxBytes, never splitting a multi-byte code
// point. A budget <= 0 yields the empty string.
//
// Because the encoded size of a suffix shrinks monotonically as its
// start moves right, the first code-point boundary at or after
// len(text)-maxBytes starts the maximal suffix under the budget.
func tailFit(text string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}

	if len(text) <= maxBytes {
		return text
	}

	start := len(text) - maxBytes
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}

	return text[start:]
}
