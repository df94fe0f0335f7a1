package riffy

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/riff"
)

// Open reads and parses the WAV file at path. Extra chunk handlers are
// consulted for chunks the built-in handlers don't claim.
//
// The returned File is fully parsed and validated; a parse or validation
// failure leaves no usable File.
func Open(path string, handlers ...ChunkHandler) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := parse(data, handlers)
	if err != nil {
		return nil, err
	}

	f.Path = path
	f.FileSize = int64(len(data))

	return f, nil
}

// Parse reads the full byte stream from r and parses it as a WAV file.
// See Open for the parse contract.
func Parse(r io.Reader, handlers ...ChunkHandler) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	f, err := parse(data, handlers)
	if err != nil {
		return nil, err
	}

	f.FileSize = int64(len(data))

	return f, nil
}

func parse(data []byte, handlers []ChunkHandler) (*File, error) {
	registry := newDefaultChunkRegistry()
	for _, h := range handlers {
		registry.Register(h)
	}

	f := &File{
		store:    newChunkStore(),
		registry: registry,
	}

	br := bytes.NewReader(data)
	parser := riff.New(br)

	err := f.parseRIFFHeader(br, parser)
	if err != nil {
		return nil, err
	}

	err = f.parseChunks(br, parser, int64(len(data)))
	if err != nil {
		return nil, err
	}

	f.recomputeDuration()

	err = f.validate()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// parseRIFFHeader consumes the 12-byte RIFF header. The declared riff size
// is recorded but deliberately not cross-checked against the actual length.
func (f *File) parseRIFFHeader(br *bytes.Reader, parser *riff.Parser) error {
	id, size, err := parser.IDnSize()
	if err != nil {
		return fmt.Errorf("%w: file too small to be a valid WAV file", ErrCorruptedFile)
	}

	var form [4]byte

	_, err = io.ReadFull(br, form[:])
	if err != nil {
		return fmt.Errorf("%w: file too small to be a valid WAV file", ErrCorruptedFile)
	}

	if id != riff.RiffID {
		return fmt.Errorf("%w: not a valid RIFF file", ErrInvalidFormat)
	}

	if form != riff.WavFormatID {
		return fmt.Errorf("%w: not a valid WAV file", ErrInvalidFormat)
	}

	f.RIFFSize = size

	return nil
}

// parseChunks walks chunk headers until fewer than 8 bytes remain. A later
// chunk with an already-seen ID silently overwrites the earlier record.
func (f *File) parseChunks(br *bytes.Reader, parser *riff.Parser, total int64) error {
	// a trailing fragment shorter than a chunk header is a normal end of
	// stream, not an error
	for br.Len() >= 8 {
		id, size, err := parser.IDnSize()
		if err != nil {
			return nil
		}

		err = validateRawChunkID(id)
		if err != nil {
			return err
		}

		offset := total - int64(br.Len())

		if int64(size) > int64(br.Len()) {
			return fmt.Errorf("%w: incomplete chunk: %s", ErrCorruptedFile, id[:])
		}

		payload := make([]byte, size)

		_, err = io.ReadFull(br, payload)
		if err != nil {
			return fmt.Errorf("%w: incomplete chunk: %s", ErrCorruptedFile, id[:])
		}

		chunk := &Chunk{
			ID:     string(id[:]),
			Size:   size,
			Data:   payload,
			Offset: offset,
		}
		f.store.put(chunk)

		_, err = f.registry.Decode(f, chunk)
		if err != nil {
			return err
		}

		if size%2 == 1 {
			// pad byte consumption is best-effort; a truncated pad
			// is not an error
			br.ReadByte()
		}
	}

	return nil
}

func validateRawChunkID(id [4]byte) error {
	for _, b := range id {
		if b > 0x7F {
			return fmt.Errorf("%w: invalid chunk ID (non-ASCII bytes): %q", ErrCorruptedFile, id[:])
		}
	}

	return nil
}
