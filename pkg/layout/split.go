package layout

import (
	"fmt"
	"slices"

	"github.com/sysviz/sysviz/pkg/model"
)

// =============================================================================
// Diagram Units
// =============================================================================

// UnitKind distinguishes the full-model unit from single-relationship units.
type UnitKind string

const (
	// UnitFull covers every element and relationship of the model graph.
	UnitFull UnitKind = "full"

	// UnitFocused covers one relationship and its minimal context.
	UnitFocused UnitKind = "focused"
)

// FullUnitID is the unit ID of the full combined diagram.
const FullUnitID = "full_combined"

// Unit is an independently renderable subset of a model graph.
type Unit struct {
	ID             string
	Kind           UnitKind
	Graph          *model.Graph
	ElementIDs     []string // sorted subset of the graph's element IDs
	Relationships  []model.Relationship
	Focus          *model.Relationship // set for focused units
	Context        FocusContext        // resolved context for focused units
	SystemBoundary string
}

// Elements resolves the unit's element IDs against its graph, in ID order.
func (u *Unit) Elements() []*model.Element {
	out := make([]*model.Element, 0, len(u.ElementIDs))
	for _, id := range u.ElementIDs {
		if e, ok := u.Graph.Element(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// FocusContext identifies the shapes of a focused relationship diagram:
// the use-case ellipse, the actor circle anchored to its edge, and the part
// rectangle. Any of the IDs may be empty when the model lacks that role.
type FocusContext struct {
	UseCaseID string
	ActorID   string
	PartID    string

	// Valid reports whether both a part endpoint and an associated use case
	// were resolved. Invalid units are still laid out, using the raw
	// relationship endpoints without the specialized zone styling.
	Valid bool
}

// =============================================================================
// Splitter
// =============================================================================

// Split decomposes a model graph into diagram units: one full unit first,
// then one focused unit per relationship in relationship order.
//
// For graphs where every element participates in at least one relationship,
// the union of the focused units' element sets equals the full unit's element
// set; isolated elements appear only in the full unit.
func Split(g *model.Graph) []Unit {
	units := make([]Unit, 0, 1+g.RelationshipCount())

	units = append(units, Unit{
		ID:             FullUnitID,
		Kind:           UnitFull,
		Graph:          g,
		ElementIDs:     positionableIDs(g),
		Relationships:  slices.Clone(g.Relationships()),
		SystemBoundary: g.SystemBoundary,
	})

	for i, rel := range g.Relationships() {
		units = append(units, focusedUnit(g, i, rel))
	}

	return units
}

func focusedUnit(g *model.Graph, idx int, rel model.Relationship) Unit {
	ctx := resolveFocus(g, rel)

	idSet := map[string]struct{}{rel.From: {}, rel.To: {}}
	if ctx.UseCaseID != "" {
		idSet[ctx.UseCaseID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return Unit{
		ID:             fmt.Sprintf("rel_%d", idx),
		Kind:           UnitFocused,
		Graph:          g,
		ElementIDs:     ids,
		Relationships:  []model.Relationship{rel},
		Focus:          &rel,
		Context:        ctx,
		SystemBoundary: g.SystemBoundary,
	}
}

// resolveFocus identifies the part/actor/use-case triple for one relationship.
//
// The target element decides the use-case context: an ACTOR target pulls in
// the use case it relates to (via an explicit relationship when one exists,
// else the first use case in the graph as fallback); a USE_CASE target is the
// context itself. The source must be a PART for the context to be valid.
// Resolution never fails hard: an unresolvable context yields Valid=false and
// the unit falls back to its raw endpoints.
func resolveFocus(g *model.Graph, rel model.Relationship) FocusContext {
	var ctx FocusContext

	source, _ := g.Element(rel.From)
	target, _ := g.Element(rel.To)

	if source != nil && source.Kind == model.KindPart {
		ctx.PartID = source.ID
	}

	switch {
	case target == nil:
		// Endpoint never materialized; nothing to anchor on.
	case target.Kind == model.KindUseCase:
		ctx.UseCaseID = target.ID
	case target.Kind == model.KindActor:
		ctx.ActorID = target.ID
		ctx.UseCaseID = useCaseForActor(g, target.ID)
	}

	ctx.Valid = ctx.PartID != "" && ctx.UseCaseID != ""
	return ctx
}

// useCaseForActor finds the use case associated with an actor: first by an
// explicit use-case→actor relationship, then the first use case in the graph.
// Returns "" when the graph has no use cases at all.
func useCaseForActor(g *model.Graph, actorID string) string {
	for _, rel := range g.Relationships() {
		if rel.To != actorID {
			continue
		}
		if from, ok := g.Element(rel.From); ok && from.Kind == model.KindUseCase {
			return from.ID
		}
	}
	if ucs := g.ElementsOfKind(model.KindUseCase); len(ucs) > 0 {
		return ucs[0].ID
	}
	return ""
}

// positionableIDs returns the graph's element IDs excluding system-boundary
// elements, which are drawn as the enclosing frame rather than placed.
func positionableIDs(g *model.Graph) []string {
	var ids []string
	for _, e := range g.Elements() {
		if e.Kind == model.KindSystem {
			continue
		}
		ids = append(ids, e.ID)
	}
	return ids
}
