package riffy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

type testChunk struct {
	id   string
	data []byte
}

type parsedChunk struct {
	id     string
	size   uint32
	offset int
	data   []byte
}

var (
	errImageTooSmall      = errors.New("image too small")
	errInvalidRiffWaveHdr = errors.New("invalid riff/wave header")
	errChunkExceedsImage  = errors.New("chunk exceeds image size")
)

// buildWav assembles a RIFF/WAVE byte image from the passed chunks, with
// pad bytes and a correct declared riff size.
func buildWav(chunks ...testChunk) []byte {
	var body bytes.Buffer

	for _, ch := range chunks {
		body.WriteString(ch.id)
		binary.Write(&body, binary.LittleEndian, uint32(len(ch.data)))
		body.Write(ch.data)

		if len(ch.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	var out bytes.Buffer

	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(4+body.Len()))
	out.WriteString("WAVE")
	out.Write(body.Bytes())

	return out.Bytes()
}

// formatPayload builds a raw fmt payload with explicit field values.
func formatPayload(tag, channels uint16, sampleRate, byteRate uint32, blockAlign, bits uint16, extra []byte) []byte {
	buf := make([]byte, fmtChunkMinSize, fmtChunkMinSize+len(extra))
	binary.LittleEndian.PutUint16(buf[0:2], tag)
	binary.LittleEndian.PutUint16(buf[2:4], channels)
	binary.LittleEndian.PutUint32(buf[4:8], sampleRate)
	binary.LittleEndian.PutUint32(buf[8:12], byteRate)
	binary.LittleEndian.PutUint16(buf[12:14], blockAlign)
	binary.LittleEndian.PutUint16(buf[14:16], bits)

	return append(buf, extra...)
}

// pcmFormatPayload builds a consistent PCM fmt payload.
func pcmFormatPayload(channels uint16, sampleRate uint32, bits uint16) []byte {
	blockAlign := channels * bits / 8
	byteRate := sampleRate * uint32(blockAlign)

	return formatPayload(wavFormatPCM, channels, sampleRate, byteRate, blockAlign, bits, nil)
}

// parseWavImage re-parses a serialized byte image independently of the
// library's own parser, tracking payload offsets.
func parseWavImage(data []byte) ([]parsedChunk, error) {
	if len(data) < 12 {
		return nil, errImageTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]parsedChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsImage, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, parsedChunk{id: id, size: size, offset: offset, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findParsedChunk(chunks []parsedChunk, id string) (*parsedChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}
