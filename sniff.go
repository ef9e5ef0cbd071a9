// Package sniff classifies the media encoding and container format of a raw
// byte buffer without an external format hint. Detect tries the per-format
// detectors from most to least specific; the per-format packages (aac, flac,
// mp3, mp4, chunk) expose the underlying parsers for callers that already
// know what they are holding.
//
// Every function is a pure computation over the caller-owned buffer: no I/O,
// no retained references, safe for concurrent use on shared read-only data.
package sniff

import (
	"github.com/avsniff/sniff/aac"
	"github.com/avsniff/sniff/flac"
	"github.com/avsniff/sniff/mp3"
	"github.com/avsniff/sniff/mp4"
)

// Format is a detected media format.
type Format int

// Detectable formats.
const (
	Unknown Format = iota
	AAC
	FLAC
	Opus
	MP3
	WAVE
	WebM
	Matroska
)

func (f Format) String() string {
	switch f {
	case AAC:
		return "AAC"
	case FLAC:
		return "FLAC"
	case Opus:
		return "Opus"
	case MP3:
		return "MP3"
	case WAVE:
		return "WAVE"
	case WebM:
		return "WebM"
	case Matroska:
		return "Matroska"
	}
	return "unknown"
}

// Detect classifies data by trying detectors in priority order: MP4 audio
// track, FLAC frame sync, ADTS, EBML DocType, Ogg-wrapped Opus, raw
// OpusHead, RIFF/WAVE, and finally an MPEG audio header scan. The first
// positive classification wins; a buffer matching nothing is Unknown.
func Detect(data []byte) Format {
	if codec, ok := mp4.DetectAudioTrack(data); ok {
		switch codec {
		case mp4.CodecAAC:
			return AAC
		case mp4.CodecFLAC:
			return FLAC
		case mp4.CodecOpus:
			return Opus
		case mp4.CodecMP3:
			return MP3
		}
	}
	if flac.Detect(data) {
		return FLAC
	}
	if aac.IsADTS(data) {
		return AAC
	}
	if IsWebM(data) {
		return WebM
	}
	if IsMatroska(data) {
		return Matroska
	}
	if IsOgg(data) && HasOpusHead(data) {
		return Opus
	}
	if HasOpusHead(data) {
		return Opus
	}
	if IsWAVE(data) {
		return WAVE
	}
	if _, _, ok := mp3.Scan(data); ok {
		return MP3
	}
	return Unknown
}
