package topology

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
)

// SerializeIndex encodes an Index to bytes using gob encoding. The bytes are
// an opaque payload for callers that persist the topology in an external
// store to skip the routeConfig fetch on the next start.
//
// Thread safety: safe for concurrent use once the index is fully built.
func SerializeIndex(index *Index) ([]byte, error) {
	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(index); err != nil {
		return nil, fmt.Errorf("failed to encode topology index: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeIndex decodes an Index previously produced by SerializeIndex.
// A decoded index answers the same queries as the one it was exported from.
func DeserializeIndex(data []byte) (*Index, error) {
	decoder := gob.NewDecoder(bytes.NewReader(data))
	var index Index
	if err := decoder.Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to decode topology index: %w", err)
	}
	index.rehydrate()
	return &index, nil
}

// SerializeIndexToWriter streams an Index to any io.Writer for custom
// storage backends.
func SerializeIndexToWriter(index *Index, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(index); err != nil {
		return fmt.Errorf("failed to encode topology index: %w", err)
	}
	return nil
}

// DeserializeIndexFromReader reads an Index from any io.Reader.
func DeserializeIndexFromReader(r io.Reader) (*Index, error) {
	var index Index
	if err := gob.NewDecoder(r).Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to decode topology index: %w", err)
	}
	index.rehydrate()
	return &index, nil
}

// rehydrate restores pointer sharing that gob flattens: RoutesByTitle must
// alias the records in Routes so memoized fields stay shared.
func (x *Index) rehydrate() {
	if x.Routes == nil {
		return
	}
	x.RoutesByTitle = make(map[string]*Route, len(x.Routes))
	for _, r := range x.Routes {
		x.RoutesByTitle[r.Title] = r
	}
}
