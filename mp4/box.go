// Package mp4 walks the ISO-BMFF box structure of an MP4 buffer to identify
// the codec of its first audio track. Box content is exposed as subslices of
// the input; nothing is copied.
package mp4

import "encoding/binary"

// Box is one parsed ISO-BMFF box. Content excludes the box header and is a
// subslice of the buffer the box was read from; End is the absolute offset
// just past the box in that buffer, usable as the next sibling offset.
type Box struct {
	Type    [4]byte
	Content []byte
	End     int
}

// NextBox reads the box starting at offset. A 32-bit size of 1 means a
// 64-bit size follows the type code; a size of 0 means the box extends to
// the end of the buffer. ok is false at the end of the buffer or on a
// malformed size; callers treat that as end of iteration, not an error.
func NextBox(data []byte, offset int) (Box, bool) {
	if offset < 0 || offset+8 > len(data) {
		return Box{}, false
	}

	size32 := binary.BigEndian.Uint32(data[offset:])
	headerLen := 8
	size := uint64(size32)

	switch size32 {
	case 1:
		if offset+16 > len(data) {
			return Box{}, false
		}
		size = binary.BigEndian.Uint64(data[offset+8:])
		headerLen = 16
	case 0:
		size = uint64(len(data) - offset)
	}

	if size < uint64(headerLen) {
		return Box{}, false
	}
	// Compare against the remaining length instead of adding: a hostile
	// 64-bit size near the uint64 ceiling would wrap offset+size.
	if size > uint64(len(data)-offset) {
		return Box{}, false
	}

	var b Box
	copy(b.Type[:], data[offset+4:offset+8])
	b.End = offset + int(size)
	b.Content = data[offset+headerLen : b.End]
	return b, true
}

// FindChild returns the content of the first immediate child box of the
// given type, iterating siblings from offset 0.
func FindChild(data []byte, boxType string) ([]byte, bool) {
	offset := 0
	for {
		box, ok := NextBox(data, offset)
		if !ok {
			return nil, false
		}
		if string(box.Type[:]) == boxType {
			return box.Content, true
		}
		offset = box.End
	}
}
