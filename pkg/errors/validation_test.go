package errors

import (
	"strings"
	"testing"
)

func TestValidateElementID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Drone", false},
		{"valid with underscore", "Ground_Station", false},
		{"valid with digits", "Camera2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"with space", "Ground Station", true},
		{"with slash", "foo/bar", true},
		{"path traversal", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"with dash", "my-part", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBoundaryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "DroneSystem", false},
		{"valid with spaces", "UAV Aircraft Inspection", false},
		{"valid with underscore", "OpsCon_UAV_basedAircraftInspection", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"with slash", "a/b", true},
		{"with backslash", "a\\b", true},
		{"control char", "a\x01b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoundaryName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBoundaryName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "models/drone.sysml", false},
		{"valid nested", "a/b/c.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"path traversal", "../etc/passwd", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
