package riffy

import (
	"encoding/binary"
	"fmt"
)

const (
	wavFormatPCM = 1

	// fmtChunkMinSize is the fixed part of the fmt payload.
	fmtChunkMinSize = 16
	// fmtChunkMinSizeNonPCM adds the mandatory cbSize field.
	fmtChunkMinSizeNonPCM = 18
)

// Format stores the decoded "fmt " chunk fields.
type Format struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16

	// DurationSeconds is derived from the audio-data payload and
	// AvgBytesPerSec. It is recomputed whenever the "data" chunk changes
	// and is zero when AvgBytesPerSec is zero.
	DurationSeconds float64
}

// IsPCM reports whether the format tag is uncompressed linear PCM.
func (f *Format) IsPCM() bool {
	if f == nil {
		return false
	}

	return f.FormatTag == wavFormatPCM
}

// Clone returns a copy of the format.
func (f *Format) Clone() *Format {
	if f == nil {
		return nil
	}

	out := *f

	return &out
}

// decodeFormatChunk decodes a raw "fmt " payload.
//
// Non-PCM formats must carry the cbSize field and at least cbSize extension
// bytes; the extension bytes themselves are not interpreted.
func decodeFormatChunk(data []byte) (*Format, error) {
	if len(data) < fmtChunkMinSize {
		return nil, fmt.Errorf("%w: format chunk too small (%d bytes)", ErrInvalidFormat, len(data))
	}

	format := &Format{
		FormatTag:      binary.LittleEndian.Uint16(data[0:2]),
		NumChannels:    binary.LittleEndian.Uint16(data[2:4]),
		SampleRate:     binary.LittleEndian.Uint32(data[4:8]),
		AvgBytesPerSec: binary.LittleEndian.Uint32(data[8:12]),
		BlockAlign:     binary.LittleEndian.Uint16(data[12:14]),
		BitsPerSample:  binary.LittleEndian.Uint16(data[14:16]),
	}

	if format.FormatTag == wavFormatPCM {
		return format, nil
	}

	if len(data) < fmtChunkMinSizeNonPCM {
		return nil, fmt.Errorf("%w: non-PCM format (tag %d) requires at least 18 bytes in format chunk",
			ErrInvalidFormat, format.FormatTag)
	}

	extraSize := binary.LittleEndian.Uint16(data[16:18])

	expected := fmtChunkMinSizeNonPCM + int(extraSize)
	if len(data) < expected {
		return nil, fmt.Errorf("%w: format chunk size (%d bytes) is smaller than expected (%d bytes) for format tag %d",
			ErrInvalidFormat, len(data), expected, format.FormatTag)
	}

	return format, nil
}

// validate runs the post-parse checks. Duration is computed before this
// runs, so it is populated even for files that fail validation.
func (f *File) validate() error {
	if f.Format == nil {
		return fmt.Errorf("%w: no format chunk found", ErrInvalidFormat)
	}

	if !f.Format.IsPCM() {
		return fmt.Errorf("%w: unsupported audio format: %d (only PCM is supported)",
			ErrInvalidFormat, f.Format.FormatTag)
	}

	if f.Format.NumChannels == 0 {
		return fmt.Errorf("%w: invalid number of channels", ErrInvalidFormat)
	}

	if f.Format.SampleRate == 0 {
		return fmt.Errorf("%w: invalid sample rate", ErrInvalidFormat)
	}

	if f.AudioData == nil {
		return fmt.Errorf("%w: no audio data found", ErrInvalidFormat)
	}

	return nil
}
