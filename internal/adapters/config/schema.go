package config

import (
	"gopkg.in/yaml.v3"
)

// Projectfile represents the structure of the ngbuild.yaml configuration file.
type Projectfile struct {
	Project        string                      `yaml:"project"`
	EsbuildTarget  string                      `yaml:"esbuildTarget"`
	Build          BuildDTO                    `yaml:"build"`
	Serve          ServeDTO                    `yaml:"serve"`
	Telemetry      TelemetryDTO                `yaml:"telemetry"`
	Configurations map[string]ConfigurationDTO `yaml:"configurations"`
}

// ConfigurationDTO is a named overlay applied on top of the base options.
type ConfigurationDTO struct {
	EsbuildTarget string   `yaml:"esbuildTarget"`
	Build         BuildDTO `yaml:"build"`
	Serve         ServeDTO `yaml:"serve"`
}

// BuildDTO represents the build options in the configuration.
type BuildDTO struct {
	Main                     string                  `yaml:"main"`
	Index                    string                  `yaml:"index"`
	OutputPath               string                  `yaml:"outputPath"`
	TsConfig                 string                  `yaml:"tsConfig"`
	WebWorkerTsConfig        string                  `yaml:"webWorkerTsConfig"`
	Polyfills                []string                `yaml:"polyfills"`
	Scripts                  []EntryDTO              `yaml:"scripts"`
	Styles                   []EntryDTO              `yaml:"styles"`
	Assets                   []AssetDTO              `yaml:"assets"`
	FileReplacements         []FileReplacementDTO    `yaml:"fileReplacements"`
	StylePreprocessorOptions StylePreprocessorOptDTO `yaml:"stylePreprocessorOptions"`
	AOT                      *bool                   `yaml:"aot"`
}

// ServeDTO represents the dev server options in the configuration.
type ServeDTO struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Open       *bool  `yaml:"open"`
	LiveReload *bool  `yaml:"liveReload"`
}

// TelemetryDTO represents the trace export options in the configuration.
type TelemetryDTO struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// StylePreprocessorOptDTO holds the Sass options.
type StylePreprocessorOptDTO struct {
	IncludePaths []string `yaml:"includePaths"`
}

// FileReplacementDTO swaps one source file for another.
type FileReplacementDTO struct {
	Replace string `yaml:"replace"`
	With    string `yaml:"with"`
}

// EntryDTO is a script or style entry, written either as a path or as an
// object with an input.
type EntryDTO struct {
	Input      string `yaml:"input"`
	BundleName string `yaml:"bundleName"`
	Inject     *bool  `yaml:"inject"`
}

// UnmarshalYAML accepts both the string and the object form.
func (e *EntryDTO) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&e.Input)
	}
	type plain EntryDTO
	return value.Decode((*plain)(e))
}

// AssetDTO is an asset entry, written either as a path or as a glob object.
type AssetDTO struct {
	Glob   string   `yaml:"glob"`
	Input  string   `yaml:"input"`
	Output string   `yaml:"output"`
	Ignore []string `yaml:"ignore"`
}

// UnmarshalYAML accepts both the string and the object form.
func (a *AssetDTO) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&a.Input)
	}
	type plain AssetDTO
	return value.Decode((*plain)(a))
}
