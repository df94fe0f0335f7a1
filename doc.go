// Package riffy parses, inspects, and rewrites RIFF-container audio files
// (WAV).
//
// A parsed File exposes the chunk-level structure of the container, the
// decoded "fmt " chunk, and the raw audio payload. Chunks can be replaced,
// added, or copied between files, and the container can be serialized back
// to bytes with recomputed sizes and deterministic chunk ordering.
//
// Files are fully parsed and validated at construction time:
//
//   - Open(path) / Parse(r) return a validated *File or an error
//   - ReplaceChunk/AddChunk/SetChunk/CopyChunkFrom mutate the chunk store
//   - Encode/WriteFile serialize the container
//   - IntBuffer() bridges the PCM payload to go-audio buffers
//
// Only PCM (format tag 1) files validate end-to-end; other format tags are
// decoded and size-checked but rejected by post-parse validation.
package riffy
