// Package mp3 parses MPEG-1/2 audio frame headers (Layers I-III) and scans
// byte streams for the first plausible frame.
package mp3

import "errors"

// Sentinel errors for header parsing. Reserved bit patterns each get their
// own sentinel so callers can tell malformed input from future codec codes.
var (
	ErrTooShort         = errors.New("mp3: header too short")
	ErrInvalidSync      = errors.New("mp3: invalid sync")
	ErrReservedVersion  = errors.New("mp3: reserved version")
	ErrReservedLayer    = errors.New("mp3: reserved layer")
	ErrBadBitrate       = errors.New("mp3: bad bitrate index")
	ErrBadSampleRate    = errors.New("mp3: bad sample rate index")
	ErrReservedEmphasis = errors.New("mp3: reserved emphasis")
)

// Version is the MPEG audio version ID.
type Version uint8

// MPEG audio versions.
const (
	V1 Version = iota
	V2
	V25
)

func (v Version) String() string {
	switch v {
	case V1:
		return "MPEG-1"
	case V2:
		return "MPEG-2"
	case V25:
		return "MPEG-2.5"
	}
	return "unknown"
}

// Layer is the MPEG audio layer.
type Layer uint8

// MPEG audio layers.
const (
	LayerI Layer = iota
	LayerII
	LayerIII
)

func (l Layer) String() string {
	switch l {
	case LayerI:
		return "Layer I"
	case LayerII:
		return "Layer II"
	case LayerIII:
		return "Layer III"
	}
	return "unknown"
}

// ChannelMode is the channel configuration of a frame.
type ChannelMode uint8

// Channel modes.
const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel
	Mono
)

func (m ChannelMode) String() string {
	switch m {
	case Stereo:
		return "stereo"
	case JointStereo:
		return "joint stereo"
	case DualChannel:
		return "dual channel"
	case Mono:
		return "mono"
	}
	return "unknown"
}

// Header holds the parsed fields of one MPEG audio frame header.
type Header struct {
	Version         Version
	Layer           Layer
	BitrateKbps     int
	SampleRate      int
	Padding         bool
	ChannelMode     ChannelMode
	SamplesPerFrame int
	FrameLength     int // total frame size in bytes, header included
}

// Bitrate tables in kbps, indexed by bitrate index minus one (ISO 11172-3
// table B.2 and the ISO 13818-3 extension). Index 0 is free-format and 0xF
// is forbidden; both are rejected before lookup.
var (
	bitrateV1L1 = [14]int{32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448}
	bitrateV1L2 = [14]int{32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384}
	bitrateV1L3 = [14]int{32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}
	bitrateV2L1 = [14]int{32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256}
	bitrateV2L2 = [14]int{8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}
)

// Sample rates in Hz, indexed by version then the 2-bit sample rate index.
// Index 3 is reserved.
var sampleRateTable = [3][3]int{
	V1:  {44100, 48000, 32000},
	V2:  {22050, 24000, 16000},
	V25: {11025, 12000, 8000},
}

// Scan finds the first plausible MPEG audio frame header in data, trying a
// full parse at every byte offset. Headers whose computed frame length is
// under 16 bytes are rejected as noise. Like any sync-pattern scan this can
// misfire on payload bytes that happen to parse as a header; a miss is
// reported as ok == false, never an error.
func Scan(data []byte) (offset int, h Header, ok bool) {
	for off := 0; off+4 <= len(data); off++ {
		hdr, err := ParseHeader(data[off:])
		if err != nil {
			continue
		}
		if hdr.FrameLength >= 16 {
			return off, hdr, true
		}
	}
	return 0, Header{}, false
}

// ParseHeader decodes the 4-byte frame header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < 4 {
		return h, ErrTooShort
	}

	b1, b2, b3 := data[1], data[2], data[3]

	if data[0] != 0xFF || b1&0xE0 != 0xE0 {
		return h, ErrInvalidSync
	}

	switch (b1 >> 3) & 0x03 {
	case 0b00:
		h.Version = V25
	case 0b10:
		h.Version = V2
	case 0b11:
		h.Version = V1
	default:
		return h, ErrReservedVersion
	}

	switch (b1 >> 1) & 0x03 {
	case 0b01:
		h.Layer = LayerIII
	case 0b10:
		h.Layer = LayerII
	case 0b11:
		h.Layer = LayerI
	default:
		return h, ErrReservedLayer
	}

	kbps, ok := bitrate(h.Version, h.Layer, b2>>4)
	if !ok {
		return h, ErrBadBitrate
	}
	h.BitrateKbps = kbps

	rate, ok := sampleRate(h.Version, (b2>>2)&0x03)
	if !ok {
		return h, ErrBadSampleRate
	}
	h.SampleRate = rate

	h.Padding = (b2>>1)&0x01 == 1

	switch (b3 >> 6) & 0x03 {
	case 0b00:
		h.ChannelMode = Stereo
	case 0b01:
		h.ChannelMode = JointStereo
	case 0b10:
		h.ChannelMode = DualChannel
	default:
		h.ChannelMode = Mono
	}

	if b3&0x03 == 0b10 {
		return h, ErrReservedEmphasis
	}

	h.SamplesPerFrame = samplesPerFrame(h.Version, h.Layer)
	h.FrameLength = frameLength(h.SamplesPerFrame, h.BitrateKbps, h.SampleRate, h.Layer, h.Padding)
	return h, nil
}

func bitrate(version Version, layer Layer, index uint8) (int, bool) {
	if index == 0 || index == 0x0F {
		return 0, false
	}

	var table *[14]int
	switch {
	case version == V1 && layer == LayerI:
		table = &bitrateV1L1
	case version == V1 && layer == LayerII:
		table = &bitrateV1L2
	case version == V1 && layer == LayerIII:
		table = &bitrateV1L3
	case layer == LayerI:
		table = &bitrateV2L1
	default:
		table = &bitrateV2L2
	}
	return table[index-1], true
}

func sampleRate(version Version, index uint8) (int, bool) {
	if index > 2 {
		return 0, false
	}
	return sampleRateTable[version][index], true
}

func samplesPerFrame(version Version, layer Layer) int {
	switch layer {
	case LayerI:
		return 384
	case LayerII:
		return 1152
	}
	if version == V1 {
		return 1152
	}
	return 576
}

func frameLength(samplesPerFrame, bitrateKbps, sampleRate int, layer Layer, padding bool) int {
	length := samplesPerFrame * bitrateKbps * 1000 / (sampleRate * 8)

	switch {
	case layer == LayerI && padding:
		length += 4
	case padding:
		length++
	}
	return length
}
