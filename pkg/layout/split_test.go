package layout

import (
	"testing"

	"github.com/sysviz/sysviz/pkg/model"
)

// buildGraph constructs a model graph from element and relationship specs,
// failing the test on invalid input.
func buildGraph(t *testing.T, boundary string, elems []model.Element, rels []model.Relationship) *model.Graph {
	t.Helper()
	g := model.New(boundary)
	for _, e := range elems {
		if err := g.AddElement(e); err != nil {
			t.Fatalf("AddElement(%s): %v", e.ID, err)
		}
	}
	for _, r := range rels {
		if err := g.AddRelationship(r); err != nil {
			t.Fatalf("AddRelationship(%s→%s): %v", r.From, r.To, err)
		}
	}
	return g
}

func droneGraph(t *testing.T) *model.Graph {
	t.Helper()
	return buildGraph(t, "DroneSystem",
		[]model.Element{
			{ID: "Drone", Kind: model.KindPart},
			{ID: "DroneOperator", Kind: model.KindActor},
			{ID: "InspectAircraft", Kind: model.KindUseCase},
		},
		[]model.Relationship{
			{From: "Drone", To: "DroneOperator"},
			{From: "InspectAircraft", To: "DroneOperator"},
		})
}

func TestSplitEmitsFullUnitFirst(t *testing.T) {
	units := Split(droneGraph(t))

	if len(units) != 3 {
		t.Fatalf("Split() returned %d units, want 3", len(units))
	}
	if units[0].Kind != UnitFull || units[0].ID != FullUnitID {
		t.Errorf("first unit = %s/%s, want %s/%s", units[0].Kind, units[0].ID, UnitFull, FullUnitID)
	}
	if got := len(units[0].ElementIDs); got != 3 {
		t.Errorf("full unit has %d elements, want 3", got)
	}
	if got := len(units[0].Relationships); got != 2 {
		t.Errorf("full unit has %d relationships, want 2", got)
	}
	for i, u := range units[1:] {
		if u.Kind != UnitFocused {
			t.Errorf("unit %d kind = %s, want %s", i+1, u.Kind, UnitFocused)
		}
		if u.Focus == nil {
			t.Errorf("unit %d has no focus relationship", i+1)
		}
	}
}

func TestSplitNoRelationships(t *testing.T) {
	g := buildGraph(t, "Sys",
		[]model.Element{
			{ID: "A", Kind: model.KindPart},
			{ID: "B", Kind: model.KindPart},
		}, nil)

	units := Split(g)
	if len(units) != 1 {
		t.Fatalf("Split() returned %d units, want 1 (full only)", len(units))
	}
	if got := len(units[0].ElementIDs); got != 2 {
		t.Errorf("full unit has %d elements, want 2", got)
	}
	if got := len(units[0].Relationships); got != 0 {
		t.Errorf("full unit has %d relationships, want 0", got)
	}
}

func TestSplitUnionMatchesFullUnit(t *testing.T) {
	units := Split(droneGraph(t))

	gotElems := make(map[string]bool)
	gotRels := make(map[model.Relationship]bool)
	for _, u := range units[1:] {
		for _, id := range u.ElementIDs {
			gotElems[id] = true
		}
		for _, r := range u.Relationships {
			gotRels[r] = true
		}
	}

	for _, id := range units[0].ElementIDs {
		if !gotElems[id] {
			t.Errorf("element %s missing from focused units", id)
		}
	}
	if len(gotElems) != len(units[0].ElementIDs) {
		t.Errorf("focused units cover %d elements, full unit has %d", len(gotElems), len(units[0].ElementIDs))
	}
	for _, r := range units[0].Relationships {
		if !gotRels[r] {
			t.Errorf("relationship %s→%s missing from focused units", r.From, r.To)
		}
	}
}

func TestResolveFocus(t *testing.T) {
	tests := []struct {
		name        string
		elems       []model.Element
		rels        []model.Relationship
		focus       model.Relationship
		wantUseCase string
		wantActor   string
		wantPart    string
		wantValid   bool
	}{
		{
			name: "actor target with explicit use case relationship",
			elems: []model.Element{
				{ID: "Drone", Kind: model.KindPart},
				{ID: "DroneOperator", Kind: model.KindActor},
				{ID: "InspectAircraft", Kind: model.KindUseCase},
			},
			rels: []model.Relationship{
				{From: "Drone", To: "DroneOperator"},
				{From: "InspectAircraft", To: "DroneOperator"},
			},
			focus:       model.Relationship{From: "Drone", To: "DroneOperator"},
			wantUseCase: "InspectAircraft",
			wantActor:   "DroneOperator",
			wantPart:    "Drone",
			wantValid:   true,
		},
		{
			name: "actor target falls back to first use case",
			elems: []model.Element{
				{ID: "Drone", Kind: model.KindPart},
				{ID: "Pilot", Kind: model.KindActor},
				{ID: "MonitorFlight", Kind: model.KindUseCase},
				{ID: "TrackRoute", Kind: model.KindUseCase},
			},
			rels:        []model.Relationship{{From: "Drone", To: "Pilot"}},
			focus:       model.Relationship{From: "Drone", To: "Pilot"},
			wantUseCase: "MonitorFlight", // first by ID order
			wantActor:   "Pilot",
			wantPart:    "Drone",
			wantValid:   true,
		},
		{
			name: "use case target is the context directly",
			elems: []model.Element{
				{ID: "Camera", Kind: model.KindPart},
				{ID: "InspectAircraft", Kind: model.KindUseCase},
			},
			rels:        []model.Relationship{{From: "Camera", To: "InspectAircraft"}},
			focus:       model.Relationship{From: "Camera", To: "InspectAircraft"},
			wantUseCase: "InspectAircraft",
			wantPart:    "Camera",
			wantValid:   true,
		},
		{
			name: "no use case resolvable marks context invalid",
			elems: []model.Element{
				{ID: "Drone", Kind: model.KindPart},
				{ID: "GroundStation", Kind: model.KindPart},
			},
			rels:      []model.Relationship{{From: "Drone", To: "GroundStation"}},
			focus:     model.Relationship{From: "Drone", To: "GroundStation"},
			wantPart:  "Drone",
			wantValid: false,
		},
		{
			name: "non-part source marks context invalid",
			elems: []model.Element{
				{ID: "Observer", Kind: model.KindActor},
				{ID: "Pilot", Kind: model.KindActor},
				{ID: "MonitorFlight", Kind: model.KindUseCase},
			},
			rels:        []model.Relationship{{From: "Observer", To: "Pilot"}},
			focus:       model.Relationship{From: "Observer", To: "Pilot"},
			wantUseCase: "MonitorFlight",
			wantActor:   "Pilot",
			wantValid:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, "Sys", tt.elems, tt.rels)
			ctx := resolveFocus(g, tt.focus)

			if ctx.UseCaseID != tt.wantUseCase {
				t.Errorf("UseCaseID = %q, want %q", ctx.UseCaseID, tt.wantUseCase)
			}
			if ctx.ActorID != tt.wantActor {
				t.Errorf("ActorID = %q, want %q", ctx.ActorID, tt.wantActor)
			}
			if ctx.PartID != tt.wantPart {
				t.Errorf("PartID = %q, want %q", ctx.PartID, tt.wantPart)
			}
			if ctx.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", ctx.Valid, tt.wantValid)
			}
		})
	}
}

func TestSplitInvalidUnitStillEmitted(t *testing.T) {
	g := buildGraph(t, "Sys",
		[]model.Element{
			{ID: "A", Kind: model.KindPart},
			{ID: "B", Kind: model.KindPart},
		},
		[]model.Relationship{{From: "A", To: "B"}})

	units := Split(g)
	if len(units) != 2 {
		t.Fatalf("Split() returned %d units, want 2", len(units))
	}
	focused := units[1]
	if focused.Context.Valid {
		t.Error("context should be invalid without a resolvable use case")
	}
	// Raw endpoints are still carried for the fallback layout.
	if len(focused.ElementIDs) != 2 {
		t.Errorf("focused unit has %d elements, want 2 raw endpoints", len(focused.ElementIDs))
	}
}
