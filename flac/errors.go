package flac

import (
	"errors"

	"github.com/avsniff/sniff/internal/bits"
)

// Sentinel errors for frame header decoding. These form a closed set so
// callers can distinguish "malformed" from "reserved/future code" using
// errors.Is. Failures that carry a decoded code wrap one of these sentinels.
var (
	ErrInvalidSyncCode       = errors.New("flac: invalid sync code")
	ErrInvalidChannelMode    = errors.New("flac: invalid channel mode")
	ErrInvalidSampleSizeCode = errors.New("flac: invalid sample size code")
	ErrInvalidPadding        = errors.New("flac: invalid padding")
	ErrUTF8Decoding          = errors.New("flac: utf-8 decoding error")
	ErrReservedBlocksizeCode = errors.New("flac: reserved blocksize code")
	ErrIllegalSampleRateCode = errors.New("flac: illegal sample rate code")
)

// ErrUnexpectedEOF reports bit cursor exhaustion while decoding a header.
var ErrUnexpectedEOF = bits.ErrUnexpectedEOF
