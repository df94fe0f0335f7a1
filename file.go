package riffy

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// File is a parsed WAV session: the source identity, the chunk store, the
// decoded format, and the cached audio-data payload.
//
// AudioData aliases the "data" chunk's buffer; mutation operations keep the
// alias and the derived duration in sync. A File is not safe for concurrent
// use; independent Files share no state.
type File struct {
	// Path is the source path, empty when parsed from a stream.
	Path string
	// FileSize is the source length in bytes.
	FileSize int64
	// RIFFSize is the declared riff size from the header. It is read but
	// never validated against the actual length.
	RIFFSize uint32
	// Format is the decoded "fmt " chunk.
	Format *Format
	// AudioData is the raw payload of the "data" chunk.
	AudioData []byte

	store    *chunkStore
	registry *ChunkRegistry
}

// Info summarizes a parsed file.
type Info struct {
	Path            string
	FileSize        int64
	Format          Format
	IsPCM           bool
	DurationSeconds float64
	AudioDataSize   int
	SampleCount     int
	// Chunks maps chunk IDs to payload sizes.
	Chunks map[string]uint32
}

// ChunkInfo describes one stored chunk.
type ChunkInfo struct {
	ID     string
	Size   uint32
	Offset int64
}

func (f *File) ensureParsed() error {
	if f == nil || f.store == nil || f.Format == nil {
		return ErrNotParsed
	}

	return nil
}

func (f *File) recomputeDuration() {
	if f == nil || f.Format == nil {
		return
	}

	if f.Format.AvgBytesPerSec > 0 {
		f.Format.DurationSeconds = float64(len(f.AudioData)) / float64(f.Format.AvgBytesPerSec)
	} else {
		f.Format.DurationSeconds = 0
	}
}

// Info returns the summary information for the file.
func (f *File) Info() (*Info, error) {
	if err := f.ensureParsed(); err != nil {
		return nil, err
	}

	chunks := make(map[string]uint32, f.store.len())
	for _, id := range f.store.ids() {
		c, _ := f.store.get(id)
		chunks[id] = c.Size
	}

	return &Info{
		Path:            f.Path,
		FileSize:        f.FileSize,
		Format:          *f.Format,
		IsPCM:           f.Format.IsPCM(),
		DurationSeconds: f.Format.DurationSeconds,
		AudioDataSize:   len(f.AudioData),
		SampleCount:     f.SampleCount(),
		Chunks:          chunks,
	}, nil
}

// SampleCount returns the number of complete multi-channel sample frames in
// the audio data, zero when the format can't express one.
func (f *File) SampleCount() int {
	if f == nil || f.Format == nil || len(f.AudioData) == 0 {
		return 0
	}

	frameSize := int(f.Format.BitsPerSample) / 8 * int(f.Format.NumChannels)
	if frameSize == 0 {
		return 0
	}

	return len(f.AudioData) / frameSize
}

// ListChunks returns all stored chunks with size and offset, in the order
// they were first encountered.
func (f *File) ListChunks() ([]ChunkInfo, error) {
	if err := f.ensureParsed(); err != nil {
		return nil, err
	}

	out := make([]ChunkInfo, 0, f.store.len())
	for _, id := range f.store.ids() {
		c, _ := f.store.get(id)
		out = append(out, ChunkInfo{ID: c.ID, Size: c.Size, Offset: c.Offset})
	}

	return out, nil
}

// ChunkIDs returns the stored chunk IDs in enumeration order.
func (f *File) ChunkIDs() []string {
	if f == nil {
		return nil
	}

	return f.store.ids()
}

// Chunk returns a copy of the stored chunk with the given ID.
func (f *File) Chunk(id string) (*Chunk, error) {
	if err := f.ensureParsed(); err != nil {
		return nil, err
	}

	c, ok := f.store.get(id)
	if !ok {
		return nil, chunkNotFoundError(id, f.store.ids())
	}

	return c.Clone(), nil
}

// ExportChunk writes the named chunk's raw payload to w and returns the
// number of bytes written.
func (f *File) ExportChunk(id string, w io.Writer) (int, error) {
	if err := f.ensureParsed(); err != nil {
		return 0, err
	}

	c, ok := f.store.get(id)
	if !ok {
		return 0, chunkNotFoundError(id, f.store.ids())
	}

	n, err := w.Write(c.Data)
	if err != nil {
		return n, fmt.Errorf("failed to export chunk %q: %w", id, err)
	}

	return n, nil
}

// ExportChunkFile writes the named chunk's raw payload to the file at path.
func (f *File) ExportChunkFile(id, path string) (int, error) {
	if err := f.ensureParsed(); err != nil {
		return 0, err
	}

	c, ok := f.store.get(id)
	if !ok {
		return 0, chunkNotFoundError(id, f.store.ids())
	}

	err := os.WriteFile(path, c.Data, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to export chunk %q to %s: %w", id, path, err)
	}

	return len(c.Data), nil
}

// ExportAudioData writes the raw audio-data payload to w. It is equivalent
// to exporting the "data" chunk.
func (f *File) ExportAudioData(w io.Writer) (int, error) {
	return f.ExportChunk(DataChunkID, w)
}

// ExportAudioDataFile writes the raw audio-data payload to the file at path.
func (f *File) ExportAudioDataFile(path string) (int, error) {
	return f.ExportChunkFile(DataChunkID, path)
}

// ReplaceChunk replaces the payload of an existing chunk. The record's size
// follows the new payload; its offset keeps describing the source layout
// until the file is written and re-parsed.
func (f *File) ReplaceChunk(id string, data []byte) error {
	if err := f.ensureParsed(); err != nil {
		return err
	}

	c, ok := f.store.get(id)
	if !ok {
		return chunkNotFoundError(id, f.store.ids())
	}

	c.Data = append([]byte(nil), data...)
	c.Size = uint32(len(c.Data))

	f.syncDataViews(c)

	return nil
}

// AddChunk inserts a new chunk. The ID must be exactly 4 ASCII bytes and
// must not be present yet; use ReplaceChunk for existing chunks.
func (f *File) AddChunk(id string, data []byte) error {
	if err := f.ensureParsed(); err != nil {
		return err
	}

	if err := validateChunkID(id); err != nil {
		return err
	}

	if f.store.has(id) {
		return fmt.Errorf("%w: %q (use ReplaceChunk to modify it)", ErrChunkExists, id)
	}

	c := &Chunk{
		ID:   id,
		Size: uint32(len(data)),
		Data: append([]byte(nil), data...),
	}
	f.store.put(c)

	f.syncDataViews(c)

	return nil
}

// SetChunk replaces the chunk if present, otherwise adds it.
func (f *File) SetChunk(id string, data []byte) error {
	if err := f.ensureParsed(); err != nil {
		return err
	}

	if err := validateChunkID(id); err != nil {
		return err
	}

	if f.store.has(id) {
		return f.ReplaceChunk(id, data)
	}

	return f.AddChunk(id, data)
}

// CopyChunkFrom copies the named chunk's payload from another parsed file
// into this one, adding or replacing as needed.
func (f *File) CopyChunkFrom(id string, other *File) error {
	if err := f.ensureParsed(); err != nil {
		return err
	}

	if other == nil || other.store == nil {
		return fmt.Errorf("%w: source file", ErrNotParsed)
	}

	c, ok := other.store.get(id)
	if !ok {
		return chunkNotFoundError(id, other.store.ids())
	}

	return f.SetChunk(id, c.Data)
}

// syncDataViews re-derives the audio-data alias and the duration whenever
// the "data" chunk is touched.
func (f *File) syncDataViews(c *Chunk) {
	if c.ID != DataChunkID {
		return
	}

	f.AudioData = c.Data
	f.recomputeDuration()
}

func validateChunkID(id string) error {
	if len(id) != 4 {
		return fmt.Errorf("%w: %q must be exactly 4 bytes", ErrInvalidChunkID, id)
	}

	for i := 0; i < len(id); i++ {
		if id[i] > 0x7F {
			return fmt.Errorf("%w: %q contains non-ASCII bytes", ErrInvalidChunkID, id)
		}
	}

	return nil
}

func chunkNotFoundError(id string, available []string) error {
	return fmt.Errorf("%w: %q (available chunks: %s)", ErrChunkNotFound, id, strings.Join(available, ", "))
}
