package sniff

import (
	"encoding/binary"
	"testing"

	"github.com/avsniff/sniff/aac"
)

// buildBox wraps content in an ISO-BMFF box with a 32-bit size header.
func buildBox(boxType string, content ...[]byte) []byte {
	var payload []byte
	for _, c := range content {
		payload = append(payload, c...)
	}
	b := binary.BigEndian.AppendUint32(nil, uint32(8+len(payload)))
	b = append(b, boxType...)
	return append(b, payload...)
}

// buildMP4 assembles a minimal file with a single audio track whose sample
// entry carries the given fourCC.
func buildMP4(fourCC string) []byte {
	stsd := []byte{0, 0, 0, 0}
	stsd = binary.BigEndian.AppendUint32(stsd, 1)
	entry := binary.BigEndian.AppendUint32(nil, 16)
	entry = append(entry, fourCC...)
	entry = append(entry, make([]byte, 8)...)
	stsd = append(stsd, entry...)

	hdlr := buildBox("hdlr", make([]byte, 8), []byte("soun"))
	mdia := buildBox("mdia", hdlr, buildBox("minf", buildBox("stbl", buildBox("stsd", stsd))))
	moov := buildBox("moov", buildBox("trak", mdia))
	ftyp := buildBox("ftyp", []byte("isom"), []byte{0, 0, 0, 1})
	return append(ftyp, moov...)
}

// buildMP3Frame is an MPEG-1 Layer III 128 kbps 44.1 kHz stereo frame
// padded to its full 417 bytes.
func buildMP3Frame() []byte {
	frame := make([]byte, 417)
	copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})
	return frame
}

func TestDetect(t *testing.T) {
	t.Parallel()

	adts := aac.BuildHeader(aac.ProfileLC, 2, 48000, 4, false)
	adts = append(adts, 0x01, 0x02, 0x03, 0x04)

	oggOpus := append([]byte("OggS"), make([]byte, 24)...)
	oggOpus = append(oggOpus, []byte("OpusHead")...)

	webm := []byte{0x1A, 0x45, 0xDF, 0xA3, 0x01, 0x00, 0x00, 0x00}
	webm = append(webm, []byte("webm")...)

	mkv := []byte{0x1A, 0x45, 0xDF, 0xA3, 0x01, 0x00, 0x00, 0x00}
	mkv = append(mkv, []byte("matroska")...)

	wave := append([]byte("RIFF"), 0x24, 0x00, 0x00, 0x00)
	wave = append(wave, []byte("WAVE")...)

	mp3Stream := append(make([]byte, 5), buildMP3Frame()...)

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"mp4 aac track", buildMP4("mp4a"), AAC},
		{"mp4 flac track", buildMP4("fLaC"), FLAC},
		{"mp4 opus track", buildMP4("Opus"), Opus},
		{"flac frame sync", []byte{0xFF, 0xF8, 0xC9, 0x18, 0x00, 0xAA, 0x00}, FLAC},
		{"adts frame", adts, AAC},
		{"webm", webm, WebM},
		{"matroska", mkv, Matroska},
		{"ogg opus", oggOpus, Opus},
		{"raw opus head", append(make([]byte, 3), []byte("OpusHead")...), Opus},
		{"riff wave", wave, WAVE},
		{"mp3 after junk", mp3Stream, MP3},
		{"garbage", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, Unknown},
		{"empty", nil, Unknown},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Detect(tc.data); got != tc.want {
				t.Errorf("Detect: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDetectPriority(t *testing.T) {
	t.Parallel()
	// An EBML header containing both DocType spellings classifies as WebM:
	// the WebM check runs first.
	data := []byte{0x1A, 0x45, 0xDF, 0xA3}
	data = append(data, []byte("webm matroska")...)
	if got := Detect(data); got != WebM {
		t.Errorf("Detect: got %v, want %v", got, WebM)
	}
}

func TestFormatString(t *testing.T) {
	t.Parallel()
	pairs := map[Format]string{
		Unknown:  "unknown",
		AAC:      "AAC",
		FLAC:     "FLAC",
		Opus:     "Opus",
		MP3:      "MP3",
		WAVE:     "WAVE",
		WebM:     "WebM",
		Matroska: "Matroska",
	}
	for f, want := range pairs {
		if got := f.String(); got != want {
			t.Errorf("Format(%d).String(): got %q, want %q", int(f), got, want)
		}
	}
	if got := Format(99).String(); got != "unknown" {
		t.Errorf(`Format(99).String(): got %q, want "unknown"`, got)
	}
}

func TestMagicSniffers(t *testing.T) {
	t.Parallel()

	if !IsEBML([]byte{0x1A, 0x45, 0xDF, 0xA3, 0x00}) {
		t.Error("IsEBML on magic: got false")
	}
	if IsEBML([]byte{0x1A, 0x45, 0xDF}) {
		t.Error("IsEBML on a short buffer: got true")
	}
	if IsWebM([]byte("RIFF")) {
		t.Error("IsWebM on RIFF: got true")
	}

	// DocType outside the 64-byte search window is not found.
	far := append([]byte{0x1A, 0x45, 0xDF, 0xA3}, make([]byte, 64)...)
	far = append(far, []byte("webm")...)
	if IsWebM(far) {
		t.Error("IsWebM with DocType past the search window: got true")
	}

	if !IsWAVE(append([]byte("RIFF\x00\x00\x00\x00"), []byte("WAVE")...)) {
		t.Error("IsWAVE: got false")
	}
	if IsWAVE([]byte("RIFF\x00\x00\x00\x00WAV")) {
		t.Error("IsWAVE on a truncated form type: got true")
	}

	if !IsOgg([]byte("OggS\x00")) {
		t.Error("IsOgg: got false")
	}
	if !HasOpusHead(append(make([]byte, 10), []byte("OpusHead")...)) {
		t.Error("HasOpusHead: got false")
	}
}

func TestIsAnnexB(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"3-byte start code at 0", []byte{0x00, 0x00, 0x01, 0x09, 0xFF}, true},
		{"4-byte start code at 0", []byte{0x00, 0x00, 0x00, 0x01, 0x09, 0xFF}, true},
		{"start code mid-buffer", []byte{0xFF, 0xFF, 0x00, 0x00, 0x01, 0x09}, true},
		{"4-byte start code mid-buffer", []byte{0xFF, 0xFF, 0x00, 0x00, 0x00, 0x01, 0x09}, true},
		{"start code at end", []byte{0xFF, 0xFF, 0x00, 0x00, 0x01}, true},
		{"no start code", []byte{0x00, 0x01, 0x00, 0x01}, false},
		{"all ones", []byte{0xFF, 0xFF, 0xFF, 0xFF}, false},
		{"too short", []byte{0x00, 0x00}, false},
		{"partial code at end", []byte{0xFF, 0x00, 0x00}, false},
		{"partial 4-byte code at end", []byte{0xFF, 0x00, 0x00, 0x00}, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsAnnexB(tc.data); got != tc.want {
				t.Errorf("IsAnnexB(% X): got %v, want %v", tc.data, got, tc.want)
			}
		})
	}
}

func FuzzDetect(f *testing.F) {
	f.Add(buildMP4("mp4a"))
	f.Add(buildMP3Frame())
	f.Add([]byte{0xFF, 0xF8, 0xC9, 0x18, 0x00, 0xAA, 0x00})
	f.Add([]byte("OggSOpusHead"))
	f.Fuzz(func(t *testing.T, data []byte) {
		Detect(data) // must not panic
		IsAnnexB(data)
	})
}
