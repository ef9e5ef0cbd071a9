package sniff

import "bytes"

// ebmlMagic is the EBML header magic for WebM/Matroska containers.
var ebmlMagic = []byte{0x1A, 0x45, 0xDF, 0xA3}

// docTypeSearchLen bounds the DocType substring search; the EBML header
// carrying it sits within the first few dozen bytes of a real file.
const docTypeSearchLen = 64

// IsEBML reports whether data begins with the EBML magic bytes.
func IsEBML(data []byte) bool {
	return bytes.HasPrefix(data, ebmlMagic)
}

// IsWebM reports an EBML header whose DocType is "webm".
func IsWebM(data []byte) bool {
	if !IsEBML(data) {
		return false
	}
	n := min(len(data), docTypeSearchLen)
	return bytes.Contains(data[:n], []byte("webm"))
}

// IsMatroska reports an EBML header whose DocType is "matroska".
func IsMatroska(data []byte) bool {
	if !IsEBML(data) {
		return false
	}
	n := min(len(data), docTypeSearchLen)
	return bytes.Contains(data[:n], []byte("matroska"))
}

// IsWAVE reports a RIFF container with a WAVE form type.
func IsWAVE(data []byte) bool {
	return len(data) >= 12 &&
		bytes.HasPrefix(data, []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WAVE"))
}

// IsOgg reports whether data begins with an Ogg page header.
func IsOgg(data []byte) bool {
	return bytes.HasPrefix(data, []byte("OggS"))
}

// HasOpusHead reports an OpusHead identification header anywhere in data.
func HasOpusHead(data []byte) bool {
	return bytes.Contains(data, []byte("OpusHead"))
}

// IsAnnexB reports whether data contains an H.264 Annex B start code
// (0x000001 or 0x00000001) at any offset.
func IsAnnexB(data []byte) bool {
	for i := 0; i+3 <= len(data); i++ {
		if data[i] != 0x00 || data[i+1] != 0x00 {
			continue
		}
		if data[i+2] == 0x01 {
			return true
		}
		if data[i+2] == 0x00 && i+4 <= len(data) && data[i+3] == 0x01 {
			return true
		}
	}
	return false
}
