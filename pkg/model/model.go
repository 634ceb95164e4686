// Package model defines the structural system model consumed by the layout
// engine: typed elements, directed relationships, and the Graph container
// that holds them.
//
// A Graph is built by a collaborator (the pkg/sysml parser, an API client, or
// a JSON import) and is treated as immutable by the layout engine. The engine
// trusts the ElementKind tag as given; kind inference for unrecognized
// relationship endpoints happens here, at graph construction time, not during
// layout.
package model

import (
	"fmt"
	"slices"
)

// =============================================================================
// ElementKind - Closed Set of Element Types
// =============================================================================

// ElementKind classifies an element and determines its rendered shape.
type ElementKind string

// The closed set of element kinds. Anything outside this set is rejected at
// graph construction.
const (
	KindPart    ElementKind = "part"     // structural component, drawn as rectangle
	KindActor   ElementKind = "actor"    // external actor, drawn as circle
	KindUseCase ElementKind = "use_case" // functional node, drawn as ellipse
	KindSubject ElementKind = "subject"  // subject of interest, drawn as rounded rectangle
	KindSystem  ElementKind = "system"   // system boundary, drawn as enclosing frame
)

// Valid reports whether k is one of the defined kinds.
func (k ElementKind) Valid() bool {
	switch k {
	case KindPart, KindActor, KindUseCase, KindSubject, KindSystem:
		return true
	}
	return false
}

// ParseKind converts a string to an ElementKind.
// Returns an error for anything outside the closed set.
func ParseKind(s string) (ElementKind, error) {
	k := ElementKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown element kind: %q", s)
	}
	return k, nil
}

// =============================================================================
// Element & Relationship
// =============================================================================

// Element is a single named node in the system model.
// ID is unique within a Graph. Elements are immutable once added.
type Element struct {
	ID   string      `json:"id" bson:"id"`
	Name string      `json:"name,omitempty" bson:"name,omitempty"` // display name (defaults to ID)
	Kind ElementKind `json:"kind" bson:"kind"`
	Doc  string      `json:"doc,omitempty" bson:"doc,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (e *Element) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Relationship is a directed connection between two elements of the same Graph.
type Relationship struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// =============================================================================
// Graph - Model Graph Container
// =============================================================================

// Graph holds the elements and relationships of one system model.
// Relationships keep their insertion order; element iteration via IDs is
// sorted so that all downstream computations are deterministic.
type Graph struct {
	SystemBoundary string
	elements       map[string]*Element
	relationships  []Relationship
}

// New creates an empty Graph with the given system boundary name.
// An empty name defaults to "System".
func New(systemBoundary string) *Graph {
	if systemBoundary == "" {
		systemBoundary = "System"
	}
	return &Graph{
		SystemBoundary: systemBoundary,
		elements:       make(map[string]*Element),
	}
}

// AddElement adds an element to the graph.
// Returns an error for an empty ID, an invalid kind, or a duplicate ID.
func (g *Graph) AddElement(e Element) error {
	if e.ID == "" {
		return fmt.Errorf("element ID cannot be empty")
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("element %s: unknown kind %q", e.ID, e.Kind)
	}
	if _, exists := g.elements[e.ID]; exists {
		return fmt.Errorf("duplicate element ID: %s", e.ID)
	}
	g.elements[e.ID] = &e
	return nil
}

// AddRelationship appends a relationship. Endpoints that do not resolve to an
// existing element are materialized as placeholder elements with a kind
// inferred from their name, so forward references in the source never abort
// graph construction.
func (g *Graph) AddRelationship(r Relationship) error {
	if r.From == "" || r.To == "" {
		return fmt.Errorf("relationship endpoints cannot be empty")
	}
	for _, id := range []string{r.From, r.To} {
		if _, ok := g.elements[id]; !ok {
			g.elements[id] = &Element{ID: id, Kind: InferKind(id)}
		}
	}
	g.relationships = append(g.relationships, r)
	return nil
}

// Element returns the element with the given ID.
func (g *Graph) Element(id string) (*Element, bool) {
	e, ok := g.elements[id]
	return e, ok
}

// Elements returns all elements sorted by ID.
func (g *Graph) Elements() []*Element {
	out := make([]*Element, 0, len(g.elements))
	for _, e := range g.elements {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Element) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

// ElementIDs returns all element IDs sorted.
func (g *Graph) ElementIDs() []string {
	ids := make([]string, 0, len(g.elements))
	for id := range g.elements {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ElementsOfKind returns all elements of the given kind, sorted by ID.
func (g *Graph) ElementsOfKind(kind ElementKind) []*Element {
	var out []*Element
	for _, e := range g.Elements() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Relationships returns the relationships in insertion order.
// The returned slice is shared; callers must not mutate it.
func (g *Graph) Relationships() []Relationship {
	return g.relationships
}

// ElementCount returns the number of elements.
func (g *Graph) ElementCount() int { return len(g.elements) }

// RelationshipCount returns the number of relationships.
func (g *Graph) RelationshipCount() int { return len(g.relationships) }
