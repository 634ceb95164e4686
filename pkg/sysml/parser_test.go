package sysml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sysviz/sysviz/pkg/errors"
	"github.com/sysviz/sysviz/pkg/model"
)

const droneModel = `
part def OpsCon_UAV_basedAircraftInspection {
    doc /* Operational concept for UAV-based
         aircraft inspection */
    part Drone;
    part GroundStation;
    part 'Camera';
}

part def Drone {
    doc /* Quadcopter inspection platform */
}

actor def DroneOperator;
use case def InspectAircraft;

connect Drone to DroneOperator;
connect InspectAircraft to DroneOperator;
connect Camera to Drone;
`

func TestParseDroneModel(t *testing.T) {
	g, err := Parse(droneModel)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if g.SystemBoundary != "OpsCon_UAV_basedAircraftInspection" {
		t.Errorf("SystemBoundary = %q", g.SystemBoundary)
	}
	if g.ElementCount() != 6 {
		t.Errorf("ElementCount() = %d, want 6: %v", g.ElementCount(), g.ElementIDs())
	}
	if g.RelationshipCount() != 3 {
		t.Errorf("RelationshipCount() = %d, want 3", g.RelationshipCount())
	}

	tests := []struct {
		id   string
		kind model.ElementKind
	}{
		{id: "OpsCon_UAV_basedAircraftInspection", kind: model.KindSystem},
		{id: "Drone", kind: model.KindPart},
		{id: "GroundStation", kind: model.KindPart},
		{id: "Camera", kind: model.KindPart},
		{id: "DroneOperator", kind: model.KindActor},
		{id: "InspectAircraft", kind: model.KindUseCase},
	}
	for _, tt := range tests {
		e, ok := g.Element(tt.id)
		if !ok {
			t.Errorf("element %s missing", tt.id)
			continue
		}
		if e.Kind != tt.kind {
			t.Errorf("%s parsed as %s, want %s", tt.id, e.Kind, tt.kind)
		}
	}
}

func TestParseAttachesDocs(t *testing.T) {
	g, err := Parse(droneModel)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	boundary, _ := g.Element("OpsCon_UAV_basedAircraftInspection")
	if want := "Operational concept for UAV-based aircraft inspection"; boundary.Doc != want {
		t.Errorf("boundary doc = %q, want %q (multi-line collapse)", boundary.Doc, want)
	}

	drone, _ := g.Element("Drone")
	if drone.Doc != "Quadcopter inspection platform" {
		t.Errorf("Drone doc = %q", drone.Doc)
	}
}

func TestParseMaterializesConnectEndpoints(t *testing.T) {
	g, err := Parse(`
part def Sys {
    part Drone;
}
connect Drone to MaintenancePilot;
connect MonitorBattery to Drone;
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	pilot, ok := g.Element("MaintenancePilot")
	if !ok || pilot.Kind != model.KindActor {
		t.Errorf("MaintenancePilot = %+v, want inferred actor", pilot)
	}
	mon, ok := g.Element("MonitorBattery")
	if !ok || mon.Kind != model.KindUseCase {
		t.Errorf("MonitorBattery = %+v, want inferred use case", mon)
	}
}

func TestParseWithoutPartDef(t *testing.T) {
	g, err := Parse(`
actor def Pilot;
use case def InspectAircraft;
connect InspectAircraft to Pilot;
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.SystemBoundary != "System" {
		t.Errorf("SystemBoundary = %q, want default System", g.SystemBoundary)
	}
	if _, ok := g.Element("Pilot"); !ok {
		t.Error("actor def not parsed without part defs")
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse("// nothing structural here\n")
	if !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("Parse(empty) error = %v, want %s", err, errors.ErrCodeInvalidModel)
	}
}

func TestParseDuplicateDefinitions(t *testing.T) {
	g, err := Parse(`
part def Sys {
    part Drone;
    part Drone;
}
part def Drone {}
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.ElementCount() != 2 {
		t.Errorf("ElementCount() = %d, want 2 (duplicates ignored)", g.ElementCount())
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drone.sysml")
	if err := os.WriteFile(path, []byte(droneModel), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if g.ElementCount() != 6 {
		t.Errorf("ElementCount() = %d, want 6", g.ElementCount())
	}

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.sysml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
