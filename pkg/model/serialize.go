package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// GraphData - Canonical Serialization Format
// =============================================================================

// GraphData is the canonical serialization format for model graphs.
// Used for file output, API payloads, storage, and caching.
//
// The format round-trips: import → export → re-import produces an identical
// graph. Elements are sorted by ID on export for deterministic output.
type GraphData struct {
	SystemBoundary string         `json:"system_boundary" bson:"system_boundary"`
	Elements       []Element      `json:"elements" bson:"elements"`
	Relationships  []Relationship `json:"relationships" bson:"relationships"`
}

// Export converts a Graph to its serialization format.
func Export(g *Graph) GraphData {
	elems := g.Elements()
	out := GraphData{
		SystemBoundary: g.SystemBoundary,
		Elements:       make([]Element, len(elems)),
		Relationships:  append([]Relationship(nil), g.Relationships()...),
	}
	for i, e := range elems {
		out.Elements[i] = *e
	}
	return out
}

// Import converts serialized data back to a Graph.
// Returns an error if the data violates graph constraints.
func Import(data GraphData) (*Graph, error) {
	g := New(data.SystemBoundary)
	for _, e := range data.Elements {
		if err := g.AddElement(e); err != nil {
			return nil, fmt.Errorf("add element %s: %w", e.ID, err)
		}
	}
	for _, r := range data.Relationships {
		if err := g.AddRelationship(r); err != nil {
			return nil, fmt.Errorf("add relationship %s→%s: %w", r.From, r.To, err)
		}
	}
	return g, nil
}

// =============================================================================
// JSON I/O
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a Graph to a JSON file with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	var data GraphData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Import(data)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
