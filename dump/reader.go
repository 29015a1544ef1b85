// Package dump feeds a SQL dump to the translator one physical line at a
// time, with a single line of lookahead.
package dump

import (
	"bufio"
	"io"
)

// Dump rows can be enormous; a single INSERT line holding a blob easily
// exceeds bufio's default token size.
const maxLineSize = 64 * 1024 * 1024

// Reader yields lines with one-line lookahead. Line returns the current
// line after a successful Scan; Peek returns the following line, or "" at
// end of input.
type Reader struct {
	scanner *bufio.Scanner
	line    string
	next    string
	pending bool
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	reader := &Reader{scanner: scanner}
	if scanner.Scan() {
		reader.next = scanner.Text()
		reader.pending = true
	}
	return reader
}

// Scan advances to the next line, returning false at end of input.
func (r *Reader) Scan() bool {
	if !r.pending {
		return false
	}
	r.line = r.next
	if r.scanner.Scan() {
		r.next = r.scanner.Text()
	} else {
		r.next = ""
		r.pending = false
	}
	return true
}

func (r *Reader) Line() string { return r.line }

func (r *Reader) Peek() string { return r.next }

func (r *Reader) Err() error { return r.scanner.Err() }
