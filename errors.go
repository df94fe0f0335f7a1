package riffy

import "errors"

var (
	// ErrInvalidFormat is returned when the RIFF/WAVE/fmt content is
	// structurally wrong: bad magic tags, unsupported codec, zero
	// channels or sample rate, missing required chunk, or an undersized
	// format payload.
	ErrInvalidFormat = errors.New("invalid wav format")
	// ErrCorruptedFile is returned when truncation or encoding violations
	// are discovered mid-walk: short header, short chunk payload, or a
	// non-ASCII chunk ID.
	ErrCorruptedFile = errors.New("corrupted file")
	// ErrNotParsed is returned when an operation requires a completed
	// parse pass. It is only reachable through zero-value or nil files;
	// Open and Parse never return an unparsed File.
	ErrNotParsed = errors.New("file not parsed")
	// ErrChunkNotFound is returned when a referenced chunk ID is absent
	// from the store. The message enumerates the available IDs.
	ErrChunkNotFound = errors.New("chunk not found")
	// ErrChunkExists is returned by AddChunk for a duplicate chunk ID.
	ErrChunkExists = errors.New("chunk already exists")
	// ErrInvalidChunkID is returned when a malformed chunk ID (wrong
	// length or non-ASCII bytes) is supplied to a mutation call.
	ErrInvalidChunkID = errors.New("invalid chunk ID")
	// ErrSourceOverwrite is returned when WriteFile targets the file the
	// File was parsed from without the overwrite flag set.
	ErrSourceOverwrite = errors.New("destination is the source file")
)
