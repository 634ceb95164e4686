// Package pkg provides the core libraries for sysviz diagram layout.
//
// # Overview
//
// Sysviz turns SysML structural models into collision-free 2D diagram
// layouts. The typical data flow:
//
//	SysML source
//	     ↓
//	[sysml] package (parse into a typed element graph)
//	     ↓
//	[model] package (graph structure + serialization)
//	     ↓
//	[layout] package (unit splitting + placement strategies)
//	     ↓
//	JSON layout output
//
// # Quick Start
//
// Parse a model and compute its layouts:
//
//	import "github.com/sysviz/sysviz/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SourcePath: "drone.sysml",
//	})
//	for i, unit := range result.Units {
//	    fmt.Println(unit.ID, len(result.Layouts[i].Placed))
//	}
//
// # Main Packages
//
// [sysml] - Parser for the SysML textual subset: part definitions with
// nested parts, actor and use case definitions, doc blocks, and connections.
//
// [model] - Typed element graph (parts, actors, use cases, system
// boundaries) with deterministic iteration and JSON serialization.
//
// [layout] - Placement engine. Splits a model into diagram units (the full
// combined diagram plus one focused diagram per connection) and places each
// with a strategy chosen by unit shape: fixed zones, hierarchical bands,
// symmetric rows, or force-directed. Overlap resolution and canvas fitting
// run on every result.
//
// [pipeline] - Orchestration (parse → split → layout) used by the CLI and
// the HTTP API, with content-addressed caching of models and layouts.
//
// [cache] - Cache backends (file, Redis, null) and key derivation. Layouts
// are deterministic, so cached entries never go stale.
//
// [config] - TOML configuration with environment overrides for connection
// URLs.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hook interfaces for pipeline, cache, and HTTP
// instrumentation.
//
// [sysml]: https://pkg.go.dev/github.com/sysviz/sysviz/pkg/sysml
// [model]: https://pkg.go.dev/github.com/sysviz/sysviz/pkg/model
// [layout]: https://pkg.go.dev/github.com/sysviz/sysviz/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/sysviz/sysviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/sysviz/sysviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/sysviz/sysviz/pkg/config
// [errors]: https://pkg.go.dev/github.com/sysviz/sysviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/sysviz/sysviz/pkg/observability
package pkg
