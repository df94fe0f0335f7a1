package riffy

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-audio/audio"
)

var errUnhandledByteDepth = errors.New("unhandled byte depth")

// PCMFormat returns the go-audio format of the parsed file.
func (f *File) PCMFormat() *audio.Format {
	if f == nil || f.Format == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(f.Format.NumChannels),
		SampleRate:  int(f.Format.SampleRate),
	}
}

// IntBuffer decodes the stored PCM payload into a go-audio IntBuffer.
// A trailing partial sample is ignored.
func (f *File) IntBuffer() (*audio.IntBuffer, error) {
	if err := f.ensureParsed(); err != nil {
		return nil, err
	}

	bitDepth := int(f.Format.BitsPerSample)

	decodeF, err := sampleDecodeFunc(bitDepth)
	if err != nil {
		return nil, fmt.Errorf("could not get sample decode func: %w", err)
	}

	bPerSample := bytesPerSample(bitDepth)
	count := len(f.AudioData) / bPerSample
	data := make([]int, count)

	for i := 0; i < count; i++ {
		data[i] = decodeF(f.AudioData[i*bPerSample : (i+1)*bPerSample])
	}

	return &audio.IntBuffer{
		Format:         f.PCMFormat(),
		SourceBitDepth: bitDepth,
		Data:           data,
	}, nil
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

// sampleDecodeFunc returns a function converting one stored sample into an
// int based on the amount of bits used per sample.
// Note that 8bit samples are unsigned, all other values are signed.
func sampleDecodeFunc(bitsPerSample int) (func([]byte) int, error) {
	// NOTE: WAV PCM data is stored using little-endian
	switch {
	case bitsPerSample == 8:
		// 8bit values are unsigned
		return func(b []byte) int {
			return int(b[0])
		}, nil
	case bitsPerSample > 8 && bitsPerSample <= 16:
		return func(b []byte) int {
			return int(int16(binary.LittleEndian.Uint16(b[:2])))
		}, nil
	case bitsPerSample > 16 && bitsPerSample <= 24:
		return func(b []byte) int {
			return int(audio.Int24LETo32(b[:3]))
		}, nil
	case bitsPerSample > 24 && bitsPerSample <= 32:
		return func(b []byte) int {
			return int(int32(binary.LittleEndian.Uint32(b[:4])))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errUnhandledByteDepth, bitsPerSample)
	}
}
