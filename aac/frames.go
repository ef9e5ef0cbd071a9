package aac

// Frame is one complete ADTS frame cut from a stream.
type Frame struct {
	Data       []byte // header + payload, subslice of the input
	SampleRate int
	Channels   int
}

// Frames splits an ADTS byte stream into individual frames, resynchronizing
// on the sync word after junk bytes. A truncated trailing frame is dropped.
func Frames(data []byte) ([]Frame, error) {
	var frames []Frame
	offset := 0

	for offset < len(data) {
		if len(data)-offset < 7 {
			break // not enough for an ADTS header
		}

		if data[offset] != 0xFF || data[offset+1]&0xF0 != 0xF0 {
			offset++
			continue
		}

		hasCRC := data[offset+1]&0x01 == 0
		headerSize := 7
		if hasCRC {
			headerSize = 9
		}

		sampleRateIdx := (data[offset+2] >> 2) & 0x0F
		if int(sampleRateIdx) >= len(sampleRates) {
			return frames, ErrInvalidADTS
		}

		channelCfg := (data[offset+2]&0x01)<<2 | (data[offset+3]>>6)&0x03

		frameLen := int(data[offset+3]&0x03)<<11 |
			int(data[offset+4])<<3 |
			int(data[offset+5]>>5)

		if frameLen < headerSize || offset+frameLen > len(data) {
			break // truncated
		}

		frames = append(frames, Frame{
			Data:       data[offset : offset+frameLen],
			SampleRate: sampleRates[sampleRateIdx],
			Channels:   int(channelCfg),
		})

		offset += frameLen
	}

	return frames, nil
}
