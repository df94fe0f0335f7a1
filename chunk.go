package riffy

const (
	// FmtChunkID is the ID of the canonical format chunk.
	FmtChunkID = "fmt "
	// DataChunkID is the ID of the canonical audio-data chunk.
	DataChunkID = "data"
)

// Chunk stores one RIFF chunk: a 4-byte ASCII ID, the raw payload, and the
// byte position of the payload within the source file.
//
// Size always mirrors len(Data). Offset is only meaningful for chunks read
// from disk; it is not refreshed on write and is zero for added chunks.
type Chunk struct {
	ID     string
	Size   uint32
	Data   []byte
	Offset int64
}

// Clone returns a deep copy of the chunk.
func (c *Chunk) Clone() *Chunk {
	if c == nil {
		return nil
	}

	out := *c
	out.Data = append([]byte(nil), c.Data...)

	return &out
}

// chunkStore maps chunk IDs to records. Keys are unique and insertion order
// is preserved for enumeration; serialization order is decided elsewhere.
type chunkStore struct {
	order []string
	byID  map[string]*Chunk
}

func newChunkStore() *chunkStore {
	return &chunkStore{byID: make(map[string]*Chunk)}
}

func (s *chunkStore) get(id string) (*Chunk, bool) {
	if s == nil {
		return nil, false
	}

	c, ok := s.byID[id]

	return c, ok
}

func (s *chunkStore) has(id string) bool {
	_, ok := s.get(id)

	return ok
}

// put inserts the chunk, or overwrites an existing record in place so the
// original enumeration position is kept.
func (s *chunkStore) put(c *Chunk) {
	if s == nil || c == nil {
		return
	}

	if _, ok := s.byID[c.ID]; !ok {
		s.order = append(s.order, c.ID)
	}

	s.byID[c.ID] = c
}

func (s *chunkStore) ids() []string {
	if s == nil {
		return nil
	}

	return append([]string(nil), s.order...)
}

func (s *chunkStore) len() int {
	if s == nil {
		return 0
	}

	return len(s.order)
}
