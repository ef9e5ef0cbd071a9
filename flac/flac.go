// Package flac decodes FLAC frame headers and locates frame boundaries in
// raw FLAC streams. Decoding stops at the frame header; subframe data and
// checksums are not touched.
package flac

import (
	"encoding/binary"
	"fmt"

	"github.com/avsniff/sniff/internal/bits"
)

// Channel decorrelation modes. Independent covers 1-8 discretely coded
// channels; the stereo modes carry one decorrelated channel pair.
const (
	ChannelModeIndependent = 0
	ChannelModeLeftSide    = 1
	ChannelModeRightSide   = 2
	ChannelModeMidSide     = 3
)

// FrameInfo holds the decoded fields of one FLAC frame header.
type FrameInfo struct {
	VariableBlockSize bool
	BlockingStrategy  uint8
	BlockSize         uint16
	SampleRate        uint32
	ChannelMode       uint8
	Channels          uint8
	BitsPerSample     uint8 // 0 means "defined in STREAMINFO"
	FrameOrSampleNum  uint64
}

// Lookup tables per RFC 9639 section 9.1. Values are indexed directly by the
// decoded bitfield; reserved codes are rejected before indexing.
var sampleSizeTable = [8]uint8{0, 8, 12, 0, 16, 20, 24, 32}

var blockSizeTable = [16]uint16{
	0, 192, 576, 1152, 2304, 4608, 0, 0,
	256, 512, 1024, 2048, 4096, 8192, 16384, 32768,
}

var sampleRateTable = [12]uint32{
	0, 88200, 176400, 192000, 8000, 16000, 22050, 24000, 32000, 44100, 48000, 96000,
}

// Detect reports whether data begins with the 15-bit FLAC frame sync code.
func Detect(data []byte) bool {
	r := bits.NewReader(data)
	v, err := r.Read(15)
	return err == nil && v == 0x7FFC
}

// Decode parses the frame header at the start of data. The trailing CRC-8
// is consumed but not verified.
func Decode(data []byte) (FrameInfo, error) {
	var fi FrameInfo
	r := bits.NewReader(data)

	sync, err := r.Read(15)
	if err != nil {
		return fi, err
	}
	if sync != 0x7FFC {
		return fi, ErrInvalidSyncCode
	}

	varSize, err := r.ReadBit()
	if err != nil {
		return fi, err
	}
	fi.VariableBlockSize = varSize
	if varSize {
		fi.BlockingStrategy = 1
	}

	bsCode, err := r.Read(4)
	if err != nil {
		return fi, err
	}
	srCode, err := r.Read(4)
	if err != nil {
		return fi, err
	}

	chMode, err := r.Read(4)
	if err != nil {
		return fi, err
	}
	switch {
	case chMode < 8:
		fi.Channels = uint8(chMode) + 1
		fi.ChannelMode = ChannelModeIndependent
	case chMode < 11:
		fi.Channels = 2
		fi.ChannelMode = uint8(chMode) - 7
	default:
		return fi, fmt.Errorf("%w: %d", ErrInvalidChannelMode, chMode)
	}

	bpsCode, err := r.Read(3)
	if err != nil {
		return fi, err
	}
	if bpsCode == 3 {
		return fi, fmt.Errorf("%w: %d", ErrInvalidSampleSizeCode, bpsCode)
	}
	fi.BitsPerSample = sampleSizeTable[bpsCode]

	reserved, err := r.ReadBit()
	if err != nil {
		return fi, err
	}
	if reserved {
		return fi, ErrInvalidPadding
	}

	fi.FrameOrSampleNum, err = readUTF8(r)
	if err != nil {
		return fi, err
	}

	switch bsCode {
	case 0:
		return fi, ErrReservedBlocksizeCode
	case 6:
		v, err := r.Read(8)
		if err != nil {
			return fi, err
		}
		fi.BlockSize = uint16(v) + 1
	case 7:
		v, err := r.Read(16)
		if err != nil {
			return fi, err
		}
		fi.BlockSize = uint16(v) + 1
	default:
		fi.BlockSize = blockSizeTable[bsCode]
	}

	switch {
	case srCode <= 11:
		fi.SampleRate = sampleRateTable[srCode]
	case srCode == 12:
		v, err := r.Read(8)
		if err != nil {
			return fi, err
		}
		fi.SampleRate = v * 1000
	case srCode == 13:
		v, err := r.Read(16)
		if err != nil {
			return fi, err
		}
		fi.SampleRate = v
	case srCode == 14:
		v, err := r.Read(16)
		if err != nil {
			return fi, err
		}
		fi.SampleRate = v * 10
	default:
		return fi, fmt.Errorf("%w: %d", ErrIllegalSampleRateCode, srCode)
	}

	// Header CRC-8: consumed, not verified.
	if err := r.Skip(8); err != nil {
		return fi, err
	}

	return fi, nil
}

// readUTF8 decodes the extended UTF-8-style integer carrying the frame or
// sample number. The low 7 bits of each byte accumulate at increasing shift
// offsets while the top bit signals continuation. Once the shift reaches the
// 64-bit ceiling the top five bits of the final byte must be clear.
func readUTF8(r *bits.Reader) (uint64, error) {
	var value uint64
	var shift uint

	for {
		v, err := r.Read(8)
		if err != nil {
			return 0, err
		}
		b := uint8(v)
		if shift >= 36 && b&0xF8 != 0 {
			return 0, ErrUTF8Decoding
		}
		value |= uint64(b&0x7F) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}

	return value, nil
}

// isSync reports a two-byte FLAC frame sync pattern at the start of p.
func isSync(p []byte) bool {
	return len(p) >= 2 && p[0] == 0xFF && p[1]&0xFC == 0xF8
}

// SplitFrames cuts data into frames on sync pattern boundaries. Each frame
// runs from one sync match to the next; bytes before the first match are
// discarded. This is a heuristic scanner, not a validated decode: compressed
// frame payload can coincidentally match the sync pattern and cause a false
// split. Returned frames are subslices of data.
func SplitFrames(data []byte) [][]byte {
	var frames [][]byte
	start := 0

	for start < len(data) {
		if !isSync(data[start:]) {
			start++
			continue
		}
		end := start + 1
		for end < len(data) && !isSync(data[end:]) {
			end++
		}
		frames = append(frames, data[start:end])
		start = end
	}

	return frames
}

// FirstFrame returns the subslice of data starting at the first frame sync
// match, or nil if no sync pattern is present.
func FirstFrame(data []byte) []byte {
	for i := 0; i+1 < len(data); i++ {
		if data[i] == 0xFF && data[i+1]&0xFC == 0xF8 {
			return data[i:]
		}
	}
	return nil
}

// StreamInfo synthesizes a 34-byte STREAMINFO metadata block from a decoded
// frame header. Min and max frame size are left zero and the MD5 signature
// is blank; the block carries only what a single frame header can supply.
func StreamInfo(fi FrameInfo) []byte {
	b := make([]byte, 0, 34)

	b = binary.BigEndian.AppendUint16(b, fi.BlockSize) // min block size
	b = binary.BigEndian.AppendUint16(b, fi.BlockSize) // max block size
	b = append(b, 0, 0, 0)                             // min frame size
	b = append(b, 0, 0, 0)                             // max frame size

	combined := (fi.SampleRate&0xFFFFF)<<12 |
		((uint32(fi.Channels)-1)&0x7)<<9 |
		((uint32(fi.BitsPerSample)-1)&0x1F)<<4 |
		uint32((fi.FrameOrSampleNum>>32)&0xF)
	b = binary.BigEndian.AppendUint32(b, combined)
	b = binary.BigEndian.AppendUint32(b, uint32(fi.FrameOrSampleNum))

	b = append(b, make([]byte, 16)...) // MD5 signature
	return b
}
