package riffy

import "fmt"

// ChunkHandler is a typed handler invoked while chunks are walked during
// parse. The chunk has already been stored when Decode is called; a Decode
// error aborts the parse.
type ChunkHandler interface {
	CanHandle(chunkID string) bool
	Decode(f *File, c *Chunk) error
}

// ChunkRegistry resolves chunks to handlers.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

func newDefaultChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: []ChunkHandler{
			&fmtChunkHandler{},
			&dataChunkHandler{},
		},
	}
}

// Register appends a handler to the registry.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// Decode dispatches a chunk to the first matching handler.
func (r *ChunkRegistry) Decode(f *File, c *Chunk) (bool, error) {
	if r == nil || c == nil {
		return false, nil
	}

	for _, handler := range r.handlers {
		if handler.CanHandle(c.ID) {
			err := handler.Decode(f, c)
			if err != nil {
				return true, fmt.Errorf("chunk handler decode failed: %w", err)
			}

			return true, nil
		}
	}

	return false, nil
}

type fmtChunkHandler struct{}

func (h *fmtChunkHandler) CanHandle(chunkID string) bool {
	return chunkID == FmtChunkID
}

func (h *fmtChunkHandler) Decode(f *File, c *Chunk) error {
	if f == nil || c == nil {
		return nil
	}

	format, err := decodeFormatChunk(c.Data)
	if err != nil {
		return err
	}

	f.Format = format

	return nil
}

type dataChunkHandler struct{}

func (h *dataChunkHandler) CanHandle(chunkID string) bool {
	return chunkID == DataChunkID
}

func (h *dataChunkHandler) Decode(f *File, c *Chunk) error {
	if f == nil || c == nil {
		return nil
	}

	f.AudioData = c.Data

	return nil
}
