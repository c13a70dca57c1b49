package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no ngbuild.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find ngbuild.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingProjectName is returned when the project file does not name its project.
	ErrMissingProjectName = zerr.New("missing project name")

	// ErrInvalidProjectName is returned when a project name is invalid.
	ErrInvalidProjectName = zerr.New("project name can only contain alphanumeric characters, hyphens and underscores")

	// ErrMissingBuildOption is returned when a required build option is not set.
	ErrMissingBuildOption = zerr.New("missing required build option")

	// ErrUnknownConfiguration is returned when a named configuration does not exist.
	ErrUnknownConfiguration = zerr.New("unknown configuration")

	// ErrInvalidFileReplacement is returned when a file replacement lacks a replace or with path.
	ErrInvalidFileReplacement = zerr.New("file replacement requires both 'replace' and 'with'")

	// ErrInvalidAsset is returned when an asset entry cannot be interpreted.
	ErrInvalidAsset = zerr.New("invalid asset entry")

	// ErrInvalidEntry is returned when a script or style entry has no input.
	ErrInvalidEntry = zerr.New("invalid script or style entry")

	// ErrParseFailed is returned when the syntax tree for a source file cannot be built.
	ErrParseFailed = zerr.New("failed to parse source file")

	// ErrTransformFailed is returned when a matched transform finds an unsupported syntax shape.
	ErrTransformFailed = zerr.New("failed to transform source file")

	// ErrConflictingEdits is returned when two transforms rewrite overlapping ranges.
	ErrConflictingEdits = zerr.New("conflicting source edits")

	// ErrFileReadFailed is returned when a source file cannot be read.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrUnknownModule is returned when a load request cannot be mapped to a module kind.
	ErrUnknownModule = zerr.New("unknown module")

	// ErrResolveFailed is returned when an annotated path cannot be mapped to a real file.
	ErrResolveFailed = zerr.New("failed to resolve module")

	// ErrSubBuildFailed is returned when a nested build reports errors.
	ErrSubBuildFailed = zerr.New("nested build failed")

	// ErrUnexpectedOutputCount is returned when a nested build does not yield exactly one output file.
	ErrUnexpectedOutputCount = zerr.New("expected exactly one output file")

	// ErrStyleCompileFailed is returned when a stylesheet cannot be compiled.
	ErrStyleCompileFailed = zerr.New("failed to compile stylesheet")

	// ErrInvalidTarget is returned when esbuildTarget names no known esbuild target.
	ErrInvalidTarget = zerr.New("unknown esbuild target")

	// ErrBuildFailed is returned when the bundler reports errors.
	ErrBuildFailed = zerr.New("build failed")

	// ErrContextCreateFailed is returned when the incremental build context cannot be created.
	ErrContextCreateFailed = zerr.New("failed to create build context")

	// ErrIndexHTMLFailed is returned when index.html cannot be generated.
	ErrIndexHTMLFailed = zerr.New("failed to generate index.html")

	// ErrAssetCopyFailed is returned when an asset cannot be copied to the output directory.
	ErrAssetCopyFailed = zerr.New("failed to copy asset")

	// ErrOutputCleanFailed is returned when the output directory cannot be removed.
	ErrOutputCleanFailed = zerr.New("failed to clean output directory")

	// ErrServerStartFailed is returned when the dev server cannot listen.
	ErrServerStartFailed = zerr.New("failed to start dev server")

	// ErrWatcherStartFailed is returned when file watching cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrStoreCreateFailed is returned when the transform store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create transform store directory")

	// ErrStoreReadFailed is returned when a stored transform result cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read stored transform result")

	// ErrStoreUnmarshalFailed is returned when a stored transform result cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal stored transform result")

	// ErrStoreMarshalFailed is returned when a transform result cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal transform result")

	// ErrStoreWriteFailed is returned when a transform result cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write transform result")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrTelemetryInitFailed is returned when the trace exporter cannot be created.
	ErrTelemetryInitFailed = zerr.New("failed to initialize telemetry")
)
