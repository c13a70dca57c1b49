package domain

import (
	"path/filepath"
	"strings"
)

// DefaultEsbuildTarget is used when the project file does not set esbuildTarget.
const DefaultEsbuildTarget = "es2022"

// Serve defaults.
const (
	DefaultServeHost = "localhost"
	DefaultServePort = 4200
)

// Project is the resolved configuration of one Angular application.
type Project struct {
	Name string
	// Root is the absolute directory containing the project file.
	Root          string
	EsbuildTarget string
	Build         BuildOptions
	Serve         ServeOptions
	Telemetry     TelemetryOptions
}

// BuildOptions mirrors the browser builder options ngbuild understands.
type BuildOptions struct {
	Main              string
	Index             string
	OutputPath        string
	TsConfig          string
	WebWorkerTsConfig string
	Polyfills         []string
	Scripts           []string
	Styles            []string
	Assets            []Asset
	// FileReplacements maps absolute source paths to absolute replacement paths.
	FileReplacements map[string]string
	IncludePaths     []string
	AOT              bool
}

// ServeOptions configures the dev server.
type ServeOptions struct {
	Host       string
	Port       int
	Open       bool
	LiveReload bool
}

// TelemetryOptions configures trace export.
type TelemetryOptions struct {
	Enabled  bool
	Endpoint string
}

// Asset describes files copied verbatim into the output directory.
type Asset struct {
	Glob   string
	Input  string
	Output string
	Ignore []string
}

// Abs resolves p against the project root.
func (p *Project) Abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// OutputDir returns the absolute output directory.
func (p *Project) OutputDir() string {
	return p.Abs(p.Build.OutputPath)
}

// WorkersEnabled reports whether worker bundling is configured.
func (p *Project) WorkersEnabled() bool {
	return p.Build.WebWorkerTsConfig != ""
}

// RelativeImport turns a project-relative path into an import specifier.
// Paths that already start with a dot are returned unchanged.
func RelativeImport(path string) string {
	path = filepath.ToSlash(path)
	if strings.HasPrefix(path, ".") {
		return path
	}
	return "./" + path
}

// AssetCopy is one file copied verbatim into the output directory.
type AssetCopy struct {
	Source string
	Dest   string
}
