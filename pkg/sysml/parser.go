// Package sysml extracts a model graph from SysML v2 style text.
//
// The parser is deliberately shallow: it recognizes the handful of
// constructs the layout pipeline needs (part definitions, nested parts,
// use case and actor definitions, doc comments, connect statements) with
// regular expressions rather than a full grammar. Anything it does not
// recognize is ignored, and connection endpoints that were never declared
// are materialized by the model package with an inferred kind, so messy
// real-world files still produce a usable graph.
package sysml

import (
	"os"
	"regexp"
	"strings"

	"github.com/sysviz/sysviz/pkg/errors"
	"github.com/sysviz/sysviz/pkg/model"
)

var (
	partDefRE    = regexp.MustCompile(`part\s+def\s+['"]?(\w+)['"]?\s*\{`)
	nestedPartRE = regexp.MustCompile(`part\s+['"]?(\w+)['"]?\s*;`)
	useCaseDefRE = regexp.MustCompile(`use\s+case\s+def\s+['"]?(\w+)['"]?`)
	actorDefRE   = regexp.MustCompile(`actor\s+def\s+['"]?(\w+)['"]?`)
	docRE        = regexp.MustCompile(`(?s)part\s+def\s+['"]?(\w+)['"]?\s*\{[^}]*?doc\s+/\*\s*(.*?)\s*\*/`)
	connectRE    = regexp.MustCompile(`connect\s+(\w+)\s+to\s+(\w+)\s*;?`)
)

// ParseFile reads a SysML file and parses it into a model graph.
func ParseFile(path string) (*model.Graph, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "model file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return Parse(string(content))
}

// Parse extracts parts, use cases, actors, docs, and connections from SysML
// source text.
//
// The first part definition names the system boundary and becomes the graph's
// system element; later part definitions and nested part usages become
// structural parts. Duplicate declarations are ignored, first wins.
func Parse(content string) (*model.Graph, error) {
	defs := partDefRE.FindAllStringSubmatchIndex(content, -1)

	boundary := ""
	if len(defs) > 0 {
		boundary = content[defs[0][2]:defs[0][3]]
	}
	g := model.New(boundary)

	if boundary != "" {
		// The boundary is an element too: the full layout draws it as the
		// enclosing frame rather than a positioned shape.
		if err := g.AddElement(model.Element{ID: boundary, Kind: model.KindSystem}); err != nil {
			return nil, err
		}
	}

	addOnce := func(e model.Element) {
		if _, exists := g.Element(e.ID); !exists {
			_ = g.AddElement(e)
		}
	}

	// Later part defs are structural parts inside the boundary.
	for _, def := range defs[min(1, len(defs)):] {
		addOnce(model.Element{ID: content[def[2]:def[3]], Kind: model.KindPart})
	}

	// Nested part usages. Each def's block runs to the next def (or EOF);
	// brace matching is overkill for the flat files this tool sees.
	for i, def := range defs {
		end := len(content)
		if i+1 < len(defs) {
			end = defs[i+1][0]
		}
		block := content[def[1]:end]
		for _, m := range nestedPartRE.FindAllStringSubmatch(block, -1) {
			addOnce(model.Element{ID: m[1], Kind: model.KindPart})
		}
	}

	for _, m := range useCaseDefRE.FindAllStringSubmatch(content, -1) {
		addOnce(model.Element{ID: m[1], Kind: model.KindUseCase})
	}
	for _, m := range actorDefRE.FindAllStringSubmatch(content, -1) {
		addOnce(model.Element{ID: m[1], Kind: model.KindActor})
	}

	attachDocs(g, content)

	for _, m := range connectRE.FindAllStringSubmatch(content, -1) {
		if err := g.AddRelationship(model.Relationship{From: m[1], To: m[2]}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "connect %s to %s", m[1], m[2])
		}
	}

	if g.ElementCount() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidModel, "no recognizable SysML definitions in input")
	}
	return g, nil
}

// attachDocs copies doc comment bodies onto their elements. Multi-line docs
// are collapsed to single-space separation.
func attachDocs(g *model.Graph, content string) {
	for _, m := range docRE.FindAllStringSubmatch(content, -1) {
		e, ok := g.Element(m[1])
		if !ok {
			continue
		}
		e.Doc = strings.Join(strings.Fields(m[2]), " ")
	}
}
