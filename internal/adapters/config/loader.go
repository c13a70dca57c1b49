// Package config provides the project file loader for ngbuild.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultTelemetryEndpoint is the OTLP/gRPC collector used when telemetry is
// enabled without an endpoint.
const DefaultTelemetryEndpoint = "localhost:4317"

var validProjectNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot walks up from cwd to find the directory containing ngbuild.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

// Load reads the project file found from cwd and applies the named configuration.
func (l *Loader) Load(cwd, configuration string) (*domain.Project, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var file Projectfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if err := validateProjectName(file.Project); err != nil {
		return nil, err
	}

	if configuration != "" {
		overlay, ok := file.Configurations[configuration]
		if !ok {
			return nil, zerr.With(domain.ErrUnknownConfiguration, "configuration", configuration)
		}
		file.applyOverlay(&overlay)
	}

	return l.toProject(filepath.Dir(configPath), &file)
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ProjectFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) toProject(root string, file *Projectfile) (*domain.Project, error) {
	build := &file.Build
	required := []struct{ option, value string }{
		{"main", build.Main},
		{"index", build.Index},
		{"outputPath", build.OutputPath},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, zerr.With(domain.ErrMissingBuildOption, "option", r.option)
		}
	}

	replacements, err := resolveFileReplacements(root, build.FileReplacements)
	if err != nil {
		return nil, err
	}

	scripts, err := entryInputs(build.Scripts)
	if err != nil {
		return nil, zerr.With(err, "option", "scripts")
	}
	styles, err := entryInputs(build.Styles)
	if err != nil {
		return nil, zerr.With(err, "option", "styles")
	}

	assets := make([]domain.Asset, 0, len(build.Assets))
	for _, a := range build.Assets {
		if a.Input == "" {
			return nil, zerr.With(domain.ErrInvalidAsset, "glob", a.Glob)
		}
		assets = append(assets, domain.Asset{Glob: a.Glob, Input: a.Input, Output: a.Output, Ignore: a.Ignore})
	}

	includePaths := make([]string, 0, len(build.StylePreprocessorOptions.IncludePaths))
	for _, p := range build.StylePreprocessorOptions.IncludePaths {
		abs := resolvePath(root, p)
		if _, err := os.Stat(abs); err != nil {
			l.Logger.Warn(fmt.Sprintf("style include path %s does not exist", p))
		}
		includePaths = append(includePaths, abs)
	}

	project := &domain.Project{
		Name:          file.Project,
		Root:          root,
		EsbuildTarget: valueOr(file.EsbuildTarget, domain.DefaultEsbuildTarget),
		Build: domain.BuildOptions{
			Main:              build.Main,
			Index:             build.Index,
			OutputPath:        build.OutputPath,
			TsConfig:          build.TsConfig,
			WebWorkerTsConfig: build.WebWorkerTsConfig,
			Polyfills:         build.Polyfills,
			Scripts:           scripts,
			Styles:            styles,
			Assets:            assets,
			FileReplacements:  replacements,
			IncludePaths:      includePaths,
			AOT:               boolOr(build.AOT, false),
		},
		Serve: domain.ServeOptions{
			Host:       valueOr(file.Serve.Host, domain.DefaultServeHost),
			Port:       file.Serve.Port,
			Open:       boolOr(file.Serve.Open, false),
			LiveReload: boolOr(file.Serve.LiveReload, true),
		},
		Telemetry: domain.TelemetryOptions{
			Enabled:  file.Telemetry.Enabled,
			Endpoint: valueOr(file.Telemetry.Endpoint, DefaultTelemetryEndpoint),
		},
	}
	if project.Serve.Port == 0 {
		project.Serve.Port = domain.DefaultServePort
	}

	return project, nil
}

// applyOverlay copies the non-zero fields of overlay over the base options.
// Lists replace the base list as a whole.
func (f *Projectfile) applyOverlay(overlay *ConfigurationDTO) {
	f.EsbuildTarget = valueOr(overlay.EsbuildTarget, f.EsbuildTarget)

	b, o := &f.Build, &overlay.Build
	b.Main = valueOr(o.Main, b.Main)
	b.Index = valueOr(o.Index, b.Index)
	b.OutputPath = valueOr(o.OutputPath, b.OutputPath)
	b.TsConfig = valueOr(o.TsConfig, b.TsConfig)
	b.WebWorkerTsConfig = valueOr(o.WebWorkerTsConfig, b.WebWorkerTsConfig)
	b.Polyfills = listOr(o.Polyfills, b.Polyfills)
	b.Scripts = listOr(o.Scripts, b.Scripts)
	b.Styles = listOr(o.Styles, b.Styles)
	b.Assets = listOr(o.Assets, b.Assets)
	b.FileReplacements = listOr(o.FileReplacements, b.FileReplacements)
	b.StylePreprocessorOptions.IncludePaths = listOr(
		o.StylePreprocessorOptions.IncludePaths, b.StylePreprocessorOptions.IncludePaths,
	)
	if o.AOT != nil {
		b.AOT = o.AOT
	}

	s, so := &f.Serve, &overlay.Serve
	s.Host = valueOr(so.Host, s.Host)
	if so.Port != 0 {
		s.Port = so.Port
	}
	if so.Open != nil {
		s.Open = so.Open
	}
	if so.LiveReload != nil {
		s.LiveReload = so.LiveReload
	}
}

func validateProjectName(name string) error {
	if name == "" {
		return domain.ErrMissingProjectName
	}
	if !validProjectNameRegex.MatchString(name) {
		return zerr.With(domain.ErrInvalidProjectName, "project_name", name)
	}
	return nil
}

func resolveFileReplacements(root string, dtos []FileReplacementDTO) (map[string]string, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	replacements := make(map[string]string, len(dtos))
	for _, r := range dtos {
		if r.Replace == "" || r.With == "" {
			err := zerr.With(domain.ErrInvalidFileReplacement, "replace", r.Replace)
			return nil, zerr.With(err, "with", r.With)
		}
		replacements[resolvePath(root, r.Replace)] = resolvePath(root, r.With)
	}
	return replacements, nil
}

func entryInputs(entries []EntryDTO) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	inputs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Input == "" {
			return nil, zerr.With(domain.ErrInvalidEntry, "bundle_name", e.BundleName)
		}
		inputs = append(inputs, e.Input)
	}
	return inputs, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func listOr[T any](value, fallback []T) []T {
	if len(value) == 0 {
		return fallback
	}
	return value
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
