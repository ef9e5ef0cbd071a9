// Package bits provides an MSB-first bit reader over a byte slice, used for
// decoding bit-packed frame headers that do not align to byte boundaries.
package bits

import "errors"

// ErrUnexpectedEOF is returned when a read or skip would address a byte past
// the end of the underlying buffer.
var ErrUnexpectedEOF = errors.New("bits: unexpected end of input")

// Reader consumes bits MSB-first from a byte slice. The bit position is a
// single monotonically increasing counter; it is never rewound, including on
// failure, so callers must stop at the first error.
type Reader struct {
	data   []byte
	bitPos int
}

// NewReader returns a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBit consumes a single bit.
func (r *Reader) ReadBit() (bool, error) {
	byteIdx := r.bitPos / 8
	if byteIdx >= len(r.data) {
		return false, ErrUnexpectedEOF
	}
	bitIdx := 7 - r.bitPos%8
	r.bitPos++
	return (r.data[byteIdx]>>uint(bitIdx))&1 == 1, nil
}

// Read consumes n bits (0 to 32) and returns them right-aligned, most
// significant bit first.
func (r *Reader) Read(n int) (uint32, error) {
	var val uint32
	for i := 0; i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		val <<= 1
		if bit {
			val |= 1
		}
	}
	return val, nil
}

// Skip advances the position by n bits. The resulting position must still be
// inside the buffer.
func (r *Reader) Skip(n int) error {
	r.bitPos += n
	if r.bitPos/8 >= len(r.data) {
		return ErrUnexpectedEOF
	}
	return nil
}
