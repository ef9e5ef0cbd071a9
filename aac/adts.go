// Package aac parses and synthesizes AAC ADTS headers. Every function is a
// pure computation over a caller-owned byte slice; extracted payloads are
// subslices of the input.
package aac

import "errors"

// ErrInvalidADTS is returned when the ADTS sync word or header is malformed.
var ErrInvalidADTS = errors.New("aac: invalid ADTS header")

// AAC sample rate index table (ISO 14496-3).
var sampleRates = [...]int{
	96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050,
	16000, 12000, 11025, 8000, 7350,
}

// Profile byte codes accepted by BuildHeader and produced by EnsureHeader.
const (
	ProfileLC   = 0x66 // AAC-LC
	ProfileHEv1 = 0x67 // HE-AAC v1
	ProfileHEv2 = 0x68 // HE-AAC v2
)

// Header holds the fixed-header fields of one ADTS frame.
type Header struct {
	ProtectionAbsent bool
	Profile          uint8 // 2-bit MPEG-4 audio object type minus one
	SampleRateIndex  uint8
	SampleRate       int
	Channels         uint8
	FrameLength      int // header-inclusive length in bytes
	HeaderLength     int // 7, or 9 when a CRC follows
}

// IsADTS reports whether data plausibly begins with an ADTS frame header.
// It is a structural check (sync word, layer, profile, sample rate index),
// not a full decode.
func IsADTS(data []byte) bool {
	if len(data) < 7 {
		return false
	}
	if data[0] != 0xFF || data[1]&0xF0 != 0xF0 {
		return false
	}
	if (data[1]&0x06)>>1 != 0 {
		return false // layer must be 0 for AAC
	}
	if data[2]>>6 == 3 {
		return false // reserved profile
	}
	if (data[2]&0x3C)>>2 > 11 {
		return false
	}
	return true
}

// ParseHeader decodes the fixed header of the ADTS frame at the start of
// data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < 7 {
		return h, ErrInvalidADTS
	}
	if data[0] != 0xFF || data[1]&0xF0 != 0xF0 {
		return h, ErrInvalidADTS
	}
	if (data[1]&0x06)>>1 != 0 {
		return h, ErrInvalidADTS
	}

	h.ProtectionAbsent = data[1]&0x01 == 1
	h.HeaderLength = 7
	if !h.ProtectionAbsent {
		h.HeaderLength = 9
	}

	h.Profile = data[2] >> 6
	if h.Profile == 3 {
		return h, ErrInvalidADTS
	}
	h.SampleRateIndex = (data[2] & 0x3C) >> 2
	if h.SampleRateIndex > 11 {
		return h, ErrInvalidADTS
	}
	h.SampleRate = sampleRates[h.SampleRateIndex]

	h.Channels = (data[2]&0x01)<<2 | (data[3]>>6)&0x03
	h.FrameLength = int(data[3]&0x03)<<11 | int(data[4])<<3 | int(data[5])>>5
	return h, nil
}

// ExtractPayload returns the raw AAC payload of the ADTS frame at the start
// of data as a subslice, or nil if data does not carry a complete frame
// (short buffer, bad sync, or a declared frame length past the buffer end).
func ExtractPayload(data []byte) []byte {
	if len(data) < 7 {
		return nil
	}
	if data[0] != 0xFF || data[1]&0xF0 != 0xF0 {
		return nil
	}

	headerSize := 7
	if data[1]&0x01 == 0 {
		headerSize = 9 // CRC present
	}
	if len(data) < headerSize {
		return nil
	}

	frameLen := int(data[3]&0x03)<<11 | int(data[4])<<3 | int(data[5])>>5
	if frameLen < headerSize || len(data) < frameLen {
		return nil
	}
	return data[headerSize:frameLen]
}

// EnsureHeader returns payload as a complete ADTS frame. A payload already
// carrying a valid header passes through unchanged. Otherwise the first two
// bytes are treated as an AudioSpecificConfig, the object type is taken from
// its top five bits, and a synthesized 7-byte header for the remaining bytes
// is prepended. Unknown object types silently fall back to AAC-LC; this
// never fails.
func EnsureHeader(payload []byte, channels uint8, sampleRate int) []byte {
	if ExtractPayload(payload) != nil {
		return payload
	}
	if len(payload) < 2 {
		return payload
	}

	var profile uint8
	switch payload[0] >> 3 {
	case 1:
		profile = ProfileLC
	case 2:
		profile = ProfileHEv1
	case 5:
		profile = ProfileHEv2
	default:
		profile = ProfileLC
	}

	header := BuildHeader(profile, channels, sampleRate, len(payload)-2, false)
	out := make([]byte, 0, len(header)+len(payload)-2)
	out = append(out, header...)
	out = append(out, payload[2:]...)
	return out
}

// BuildHeader synthesizes a 7-byte ADTS header (9 bytes with a zeroed CRC
// placeholder when hasCRC is set) for an AAC frame of aacFrameLength payload
// bytes. Unsupported sample rates map to index 0xF; channel counts above 7
// are clamped.
func BuildHeader(profile uint8, channels uint8, sampleRate, aacFrameLength int, hasCRC bool) []byte {
	var objectType uint8
	switch profile {
	case ProfileLC:
		objectType = 1
	case ProfileHEv1:
		objectType = 2
	case ProfileHEv2:
		objectType = 3
	default:
		objectType = 1
	}

	srIdx := sampleRateIndex(sampleRate)
	channelCfg := channels
	if channelCfg > 7 {
		channelCfg = 7
	}
	headerLen := 7
	if hasCRC {
		headerLen = 9
	}
	frameLen := aacFrameLength + headerLen

	protectionAbsent := byte(1)
	if hasCRC {
		protectionAbsent = 0
	}

	header := make([]byte, 0, headerLen)
	header = append(header, 0xFF, 0xF0|protectionAbsent)
	header = append(header, objectType<<6|srIdx<<2|channelCfg>>2)
	header = append(header, (channelCfg&0x03)<<6|byte(frameLen>>11)&0x03)
	header = append(header, byte(frameLen>>3))
	header = append(header, byte(frameLen&0x07)<<5|0x1F) // buffer fullness high bits
	header = append(header, 0xFC)                        // buffer fullness low bits

	if hasCRC {
		header = append(header, 0x00, 0x00)
	}
	return header
}

func sampleRateIndex(rate int) uint8 {
	for i, r := range sampleRates {
		if r == rate {
			return uint8(i)
		}
	}
	return 0xF // forbidden/implicit
}
