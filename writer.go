package riffy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-audio/riff"
)

// Bytes serializes the file to a WAV byte image.
//
// Chunk order is deterministic and independent of insertion order: "fmt "
// first, then "data", then the remaining chunk IDs ascending. The riff size
// is recomputed from the current store; odd-sized chunks get a zero pad
// byte. In-memory chunk offsets are not refreshed, they keep describing the
// source layout until the output is re-parsed.
func (f *File) Bytes() ([]byte, error) {
	if err := f.ensureParsed(); err != nil {
		return nil, err
	}

	if !f.store.has(FmtChunkID) {
		return nil, fmt.Errorf("%w: missing %q chunk", ErrInvalidFormat, FmtChunkID)
	}

	if !f.store.has(DataChunkID) {
		return nil, fmt.Errorf("%w: missing %q chunk", ErrInvalidFormat, DataChunkID)
	}

	order := f.serializationOrder()

	riffSize := uint32(4)
	for _, id := range order {
		c, _ := f.store.get(id)
		riffSize += 8 + c.Size + c.Size%2
	}

	buf := bytes.NewBuffer(make([]byte, 0, 8+riffSize))
	buf.Write(riff.RiffID[:])

	var size [4]byte

	binary.LittleEndian.PutUint32(size[:], riffSize)
	buf.Write(size[:])
	buf.Write(riff.WavFormatID[:])

	for _, id := range order {
		c, _ := f.store.get(id)

		buf.WriteString(c.ID)
		binary.LittleEndian.PutUint32(size[:], c.Size)
		buf.Write(size[:])
		buf.Write(c.Data)

		if c.Size%2 == 1 {
			buf.WriteByte(0)
		}
	}

	return buf.Bytes(), nil
}

func (f *File) serializationOrder() []string {
	rest := make([]string, 0, f.store.len())
	for _, id := range f.store.ids() {
		if id != FmtChunkID && id != DataChunkID {
			rest = append(rest, id)
		}
	}

	sort.Strings(rest)

	order := make([]string, 0, f.store.len())
	if f.store.has(FmtChunkID) {
		order = append(order, FmtChunkID)
	}

	if f.store.has(DataChunkID) {
		order = append(order, DataChunkID)
	}

	return append(order, rest...)
}

// Encode serializes the file and writes it to w, returning the number of
// bytes written.
func (f *File) Encode(w io.Writer) (int, error) {
	data, err := f.Bytes()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return n, fmt.Errorf("failed to write wav data: %w", err)
	}

	return n, nil
}

// WriteFile serializes the file to path and returns the number of bytes
// written. Writing over the file the File was parsed from requires the
// overwrite flag; the comparison resolves both paths, not their spellings.
//
// The output is staged in a temporary file and renamed into place, so a
// failed write never leaves a truncated destination.
func (f *File) WriteFile(path string, overwrite bool) (int, error) {
	data, err := f.Bytes()
	if err != nil {
		return 0, err
	}

	if !overwrite && f.sameAsSource(path) {
		return 0, fmt.Errorf("%w: %s (pass overwrite to allow it)", ErrSourceOverwrite, path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".riffy-*")
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}

	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}

	if err != nil {
		os.Remove(tmp.Name())

		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return len(data), nil
}

func (f *File) sameAsSource(path string) bool {
	if f.Path == "" {
		return false
	}

	src, err := os.Stat(f.Path)
	if err != nil {
		return false
	}

	dst, err := os.Stat(path)
	if err != nil {
		return false
	}

	return os.SameFile(src, dst)
}
