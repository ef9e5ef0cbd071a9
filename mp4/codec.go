package mp4

import "encoding/binary"

// Codec identifies the audio sample-entry format found in an stsd box.
type Codec int

// Recognized sample-entry codecs.
const (
	CodecUnknown Codec = iota
	CodecAAC
	CodecFLAC
	CodecOpus
	CodecMP3
)

func (c Codec) String() string {
	switch c {
	case CodecAAC:
		return "AAC"
	case CodecFLAC:
		return "FLAC"
	case CodecOpus:
		return "Opus"
	case CodecMP3:
		return "MP3"
	}
	return "unknown"
}

// IsMP4 reports whether data begins with an ftyp box.
func IsMP4(data []byte) bool {
	box, ok := NextBox(data, 0)
	return ok && string(box.Type[:]) == "ftyp"
}

// DetectAudioTrack walks moov/trak/mdia/minf/stbl/stsd to the first sample
// entry with a recognized audio fourCC, checking each track's handler type
// along the way. ok is false when no audio track is identified; absence is
// not an error.
func DetectAudioTrack(data []byte) (Codec, bool) {
	if !IsMP4(data) {
		return CodecUnknown, false
	}

	moov, ok := FindChild(data, "moov")
	if !ok {
		return CodecUnknown, false
	}

	offset := 0
	for {
		box, ok := NextBox(moov, offset)
		if !ok {
			break
		}
		if string(box.Type[:]) == "trak" {
			if codec, ok := parseTrak(box.Content); ok {
				return codec, true
			}
		}
		offset = box.End
	}

	return CodecUnknown, false
}

func parseTrak(trak []byte) (Codec, bool) {
	mdia, ok := FindChild(trak, "mdia")
	if !ok || !isAudioHandler(mdia) {
		return CodecUnknown, false
	}

	minf, ok := FindChild(mdia, "minf")
	if !ok {
		return CodecUnknown, false
	}
	stbl, ok := FindChild(minf, "stbl")
	if !ok {
		return CodecUnknown, false
	}
	stsd, ok := FindChild(stbl, "stsd")
	if !ok {
		return CodecUnknown, false
	}

	return parseSTSD(stsd)
}

func isAudioHandler(mdia []byte) bool {
	hdlr, ok := FindChild(mdia, "hdlr")
	if !ok || len(hdlr) < 12 {
		return false
	}
	// hdlr full box: version/flags (4), pre_defined (4), handler_type (4)
	return string(hdlr[8:12]) == "soun"
}

func parseSTSD(stsd []byte) (Codec, bool) {
	if len(stsd) < 8 {
		return CodecUnknown, false
	}

	// stsd full box: version/flags (4), entry_count (4), then sample entries
	// each prefixed by [size, format fourCC].
	entryCount := int(binary.BigEndian.Uint32(stsd[4:8]))
	offset := 8

	for i := 0; i < entryCount; i++ {
		format, next, ok := stsdEntry(stsd, offset)
		if !ok {
			return CodecUnknown, false
		}
		if codec := codecFromFourCC(format); codec != CodecUnknown {
			return codec, true
		}
		offset = next
	}

	return CodecUnknown, false
}

func stsdEntry(stsd []byte, offset int) (format string, next int, ok bool) {
	if offset+8 > len(stsd) {
		return "", 0, false
	}
	size := int(binary.BigEndian.Uint32(stsd[offset:]))
	if size < 8 || offset+size > len(stsd) {
		return "", 0, false
	}
	return string(stsd[offset+4 : offset+8]), offset + size, true
}

func codecFromFourCC(code string) Codec {
	switch code {
	case "mp4a":
		return CodecAAC
	case "fLaC", "FLAC":
		return CodecFLAC
	case "Opus", "opus":
		return CodecOpus
	case "mp3 ", ".mp3":
		return CodecMP3
	}
	return CodecUnknown
}
