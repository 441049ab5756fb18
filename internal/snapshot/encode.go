package snapshot

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode writes s as msgpack.
func Encode(w io.Writer, s *Snapshot) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Decode reads a msgpack snapshot and rejects foreign schemas.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Schema != Schema {
		return nil, fmt.Errorf("decode snapshot: schema %d, want %d", s.Schema, Schema)
	}
	return &s, nil
}
