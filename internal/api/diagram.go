// Package api exposes the layout pipeline over HTTP. Diagrams are computed
// from submitted SysML source, persisted through a pluggable Store, and can
// be repositioned element by element after the fact.
package api

import (
	"time"

	"github.com/sysviz/sysviz/pkg/layout"
	"github.com/sysviz/sysviz/pkg/model"
)

// Diagram is a stored layout computation: the parsed model plus one layout
// result per diagram unit. It is the unit of persistence for both the
// in-memory and the MongoDB store.
type Diagram struct {
	ID             string           `json:"id" bson:"_id"`
	Name           string           `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt      time.Time        `json:"created_at" bson:"created_at"`
	ModelHash      string           `json:"model_hash" bson:"model_hash"`
	SystemBoundary string           `json:"system_boundary" bson:"system_boundary"`
	Model          model.GraphData  `json:"model" bson:"model"`
	Layouts        []*layout.Result `json:"layouts" bson:"layouts"`
}

// Summary is the listing view of a stored diagram, without model or
// layout payloads.
type Summary struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	SystemBoundary string    `json:"system_boundary" bson:"system_boundary"`
	ElementCount   int       `json:"element_count" bson:"element_count"`
	UnitCount      int       `json:"unit_count" bson:"unit_count"`
}

// Summarize reduces a diagram to its listing view.
func (d *Diagram) Summarize() Summary {
	return Summary{
		ID:             d.ID,
		Name:           d.Name,
		CreatedAt:      d.CreatedAt,
		SystemBoundary: d.SystemBoundary,
		ElementCount:   len(d.Model.Elements),
		UnitCount:      len(d.Layouts),
	}
}

// Clone returns a deep copy of the diagram. Handlers that reposition
// elements mutate a clone and save it back, so readers holding the previous
// value from the store never observe a partial write.
func (d *Diagram) Clone() *Diagram {
	out := *d
	out.Model.Elements = append([]model.Element(nil), d.Model.Elements...)
	out.Model.Relationships = append([]model.Relationship(nil), d.Model.Relationships...)
	out.Layouts = make([]*layout.Result, len(d.Layouts))
	for i, res := range d.Layouts {
		cp := *res
		cp.Placed = make(map[string]*layout.PlacedElement, len(res.Placed))
		for id, p := range res.Placed {
			pc := *p
			cp.Placed[id] = &pc
		}
		out.Layouts[i] = &cp
	}
	return &out
}

// Layout returns the layout result for the given unit ID, or nil.
func (d *Diagram) Layout(unitID string) *layout.Result {
	for _, l := range d.Layouts {
		if l.UnitID == unitID {
			return l
		}
	}
	return nil
}
