package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sysviz/sysviz/pkg/config"
	"github.com/sysviz/sysviz/pkg/errors"
	"github.com/sysviz/sysviz/pkg/layout"
	"github.com/sysviz/sysviz/pkg/pipeline"
)

const testSource = `
part def DroneSystem {
    part Drone;
    part GroundStation;
}
actor def DroneOperator;

connect Drone to DroneOperator;
connect GroundStation to Drone;
`

func newTestServer(t *testing.T) (*httptest.Server, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	runner := pipeline.NewRunner(nil, nil, nil)
	t.Cleanup(func() { runner.Close() })

	srv := NewServer(store, runner, config.Default(), nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, store
}

func createDiagram(t *testing.T, ts *httptest.Server, req CreateRequest) Diagram {
	t.Helper()
	body, _ := json.Marshal(req)
	resp, err := http.Post(ts.URL+"/v1/diagrams", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var d Diagram
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return d
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	defer resp.Body.Close()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestCreateAndGetDiagram(t *testing.T) {
	ts, store := newTestServer(t)

	d := createDiagram(t, ts, CreateRequest{Source: testSource, Name: "drone ops"})

	if d.ID == "" {
		t.Fatal("diagram ID not assigned")
	}
	if d.SystemBoundary != "DroneSystem" {
		t.Errorf("boundary = %q", d.SystemBoundary)
	}
	if d.ModelHash == "" {
		t.Error("model hash missing")
	}
	// Full diagram plus one focused diagram per relationship.
	if len(d.Layouts) != 3 {
		t.Errorf("layouts = %d, want 3", len(d.Layouts))
	}
	if d.Layout(layout.FullUnitID) == nil {
		t.Error("full layout missing")
	}

	resp, err := http.Get(ts.URL + "/v1/diagrams/" + d.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got Diagram
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != d.ID || got.Name != "drone ops" {
		t.Errorf("got id=%s name=%q", got.ID, got.Name)
	}

	if _, err := store.Get(context.Background(), d.ID); err != nil {
		t.Errorf("diagram not in store: %v", err)
	}
}

func TestCreateFullOnly(t *testing.T) {
	ts, _ := newTestServer(t)

	d := createDiagram(t, ts, CreateRequest{Source: testSource, FullOnly: true})
	if len(d.Layouts) != 1 || d.Layouts[0].UnitID != layout.FullUnitID {
		t.Errorf("full-only layouts = %d", len(d.Layouts))
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"empty source", `{"source": ""}`, string(errors.ErrCodeInvalidInput)},
		{"malformed json", `{not json`, string(errors.ErrCodeInvalidInput)},
		{"no model elements", `{"source": "just a comment"}`, string(errors.ErrCodeInvalidModel)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/diagrams", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("post failed: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if e := decodeError(t, resp); e.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", e.Code, tt.wantCode)
			}
		})
	}
}

func TestListDiagrams(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/diagrams")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	var summaries []Summary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if len(summaries) != 0 {
		t.Fatalf("expected empty list, got %d", len(summaries))
	}

	d := createDiagram(t, ts, CreateRequest{Source: testSource})

	resp, err = http.Get(ts.URL + "/v1/diagrams")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != d.ID {
		t.Fatalf("summaries = %+v", summaries)
	}
	if summaries[0].ElementCount != 4 || summaries[0].UnitCount != 3 {
		t.Errorf("counts = %d/%d", summaries[0].ElementCount, summaries[0].UnitCount)
	}
}

func TestGetMissingDiagram(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/diagrams/no-such-id")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Code != string(errors.ErrCodeDiagramNotFound) {
		t.Errorf("code = %s", e.Code)
	}
}

func TestPatchElementPosition(t *testing.T) {
	ts, store := newTestServer(t)
	d := createDiagram(t, ts, CreateRequest{Source: testSource})

	body := `{"center_x": 123, "center_y": 456}`
	req, _ := http.NewRequest(http.MethodPatch,
		ts.URL+"/v1/diagrams/"+d.ID+"/elements/Drone", strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var updated Diagram
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	placed := updated.Layout(layout.FullUnitID).Placed["Drone"]
	if placed.CenterX != 123 || placed.CenterY != 456 {
		t.Errorf("placed at %g,%g", placed.CenterX, placed.CenterY)
	}

	// The override persists.
	stored, err := store.Get(context.Background(), d.ID)
	if err != nil {
		t.Fatal(err)
	}
	placed = stored.Layout(layout.FullUnitID).Placed["Drone"]
	if placed.CenterX != 123 || placed.CenterY != 456 {
		t.Errorf("stored at %g,%g", placed.CenterX, placed.CenterY)
	}
}

func TestPatchElementLeavesPriorReadsUntouched(t *testing.T) {
	ts, store := newTestServer(t)
	d := createDiagram(t, ts, CreateRequest{Source: testSource})

	before, err := store.Get(context.Background(), d.ID)
	if err != nil {
		t.Fatal(err)
	}
	orig := *before.Layout(layout.FullUnitID).Placed["Drone"]

	body := `{"center_x": 123, "center_y": 456}`
	req, _ := http.NewRequest(http.MethodPatch,
		ts.URL+"/v1/diagrams/"+d.ID+"/elements/Drone", strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	// The diagram fetched before the patch must keep its old coordinates;
	// the handler writes a clone, never the shared value.
	got := *before.Layout(layout.FullUnitID).Placed["Drone"]
	if got != orig {
		t.Errorf("prior read changed: %+v, want %+v", got, orig)
	}
	after, err := store.Get(context.Background(), d.ID)
	if err != nil {
		t.Fatal(err)
	}
	placed := after.Layout(layout.FullUnitID).Placed["Drone"]
	if placed.CenterX != 123 || placed.CenterY != 456 {
		t.Errorf("stored at %g,%g, want 123,456", placed.CenterX, placed.CenterY)
	}
}

// Exercises concurrent repositioning and reads of the same diagram; run
// with -race to catch handlers mutating shared store state.
func TestPatchElementConcurrentWithReads(t *testing.T) {
	ts, _ := newTestServer(t)
	d := createDiagram(t, ts, CreateRequest{Source: testSource})

	const iterations = 200
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			body := fmt.Sprintf(`{"center_x": %d, "center_y": %d}`, i, i)
			req, _ := http.NewRequest(http.MethodPatch,
				ts.URL+"/v1/diagrams/"+d.ID+"/elements/Drone", strings.NewReader(body))
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Errorf("patch failed: %v", err)
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("patch status = %d, want 200", resp.StatusCode)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			resp, err := http.Get(ts.URL + "/v1/diagrams/" + d.ID)
			if err != nil {
				t.Errorf("get failed: %v", err)
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("get status = %d, want 200", resp.StatusCode)
				return
			}
		}
	}()

	wg.Wait()
}

func TestPatchElementErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	d := createDiagram(t, ts, CreateRequest{Source: testSource})

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			"unknown diagram",
			"/v1/diagrams/nope/elements/Drone",
			`{"center_x": 1, "center_y": 1}`,
			http.StatusNotFound, string(errors.ErrCodeDiagramNotFound),
		},
		{
			"unknown element",
			"/v1/diagrams/" + d.ID + "/elements/Nope",
			`{"center_x": 1, "center_y": 1}`,
			http.StatusNotFound, string(errors.ErrCodeElementNotFound),
		},
		{
			"unknown unit",
			"/v1/diagrams/" + d.ID + "/elements/Drone",
			`{"unit_id": "nope", "center_x": 1, "center_y": 1}`,
			http.StatusNotFound, string(errors.ErrCodeNotFound),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPatch, ts.URL+tt.path, strings.NewReader(tt.body))
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("patch failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if e := decodeError(t, resp); e.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", e.Code, tt.wantCode)
			}
		})
	}
}

func TestDeleteDiagram(t *testing.T) {
	ts, _ := newTestServer(t)
	d := createDiagram(t, ts, CreateRequest{Source: testSource})

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/diagrams/"+d.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	getResp, err := http.Get(ts.URL + "/v1/diagrams/" + d.ID)
	if err != nil {
		t.Fatal(err)
	}
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("status after delete = %d", getResp.StatusCode)
	}

	// Deleting again is idempotent.
	resp, err = http.DefaultClient.Do(req.Clone(context.Background()))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("repeat delete status = %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
