// Package chunk iterates length-prefixed records in a byte buffer. Each
// record is framed by a 4-byte little-endian length prefix.
package chunk

import (
	"encoding/binary"
	"errors"
)

// Sentinel errors for truncated framing. A truncated prefix or payload is
// terminal for the scan, not a skippable record.
var (
	ErrIncompleteLengthPrefix = errors.New("chunk: incomplete length prefix")
	ErrIncompleteChunkData    = errors.New("chunk: incomplete chunk data")
)

// Scanner steps through length-prefixed records in the manner of
// bufio.Scanner. A Scanner is single-pass: once Scan returns false the
// sequence is over, either cleanly (Err returns nil) or at a truncated
// record (Err returns the terminal error).
type Scanner struct {
	data    []byte
	pos     int
	index   int
	payload []byte
	err     error
	done    bool
}

// NewScanner returns a Scanner over data. The buffer is borrowed; payloads
// returned by Bytes are subslices of it.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data, index: -1}
}

// Scan advances to the next record, returning false at the end of the
// buffer or on a truncated record.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	if s.pos+4 > len(s.data) {
		s.done = true
		if s.pos != len(s.data) {
			s.err = ErrIncompleteLengthPrefix
		}
		return false
	}

	n := int(binary.LittleEndian.Uint32(s.data[s.pos:]))
	s.pos += 4

	if s.pos+n > len(s.data) {
		s.done = true
		s.err = ErrIncompleteChunkData
		return false
	}

	s.payload = s.data[s.pos : s.pos+n]
	s.pos += n
	s.index++
	return true
}

// Index returns the 0-based position of the current record in iteration
// order, independent of byte offset.
func (s *Scanner) Index() int {
	return s.index
}

// Bytes returns the current record's payload.
func (s *Scanner) Bytes() []byte {
	return s.payload
}

// Err returns the terminal error if the scan stopped at a truncated record,
// nil after a clean end of buffer.
func (s *Scanner) Err() error {
	return s.err
}
