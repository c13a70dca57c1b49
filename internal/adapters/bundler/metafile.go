package bundler

import (
	"encoding/json"
	"maps"
	"slices"
)

// Metafile is the part of the esbuild metafile ngbuild reads.
type Metafile struct {
	Inputs  map[string]MetafileInput  `json:"inputs"`
	Outputs map[string]MetafileOutput `json:"outputs"`
}

// MetafileInput is one source file of a build.
type MetafileInput struct {
	Bytes int `json:"bytes"`
}

// MetafileOutput is one file written by a build.
type MetafileOutput struct {
	Bytes      int    `json:"bytes"`
	EntryPoint string `json:"entryPoint,omitempty"`
	// CSSBundle is the stylesheet generated next to a JavaScript entry point.
	CSSBundle string `json:"cssBundle,omitempty"`
}

func parseMetafile(raw string) (*Metafile, error) {
	var m Metafile
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Metafile) inputPaths() []string {
	return slices.Sorted(maps.Keys(m.Inputs))
}

func (m *Metafile) outputPaths() []string {
	return slices.Sorted(maps.Keys(m.Outputs))
}

// outputsFor returns the outputs generated for entryPoint, sorted by path.
func (m *Metafile) outputsFor(entryPoint string) []string {
	var paths []string
	for _, path := range m.outputPaths() {
		if m.Outputs[path].EntryPoint == entryPoint {
			paths = append(paths, path)
		}
	}
	return paths
}
