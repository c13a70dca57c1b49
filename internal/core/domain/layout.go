package domain

import "path/filepath"

const (
	// NgbuildDirName is the name of the internal workspace directory.
	NgbuildDirName = ".ngbuild"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// TransformsDirName is the name of the persistent transform store directory.
	TransformsDirName = "transforms"

	// ProjectFileName is the name of the project configuration file.
	ProjectFileName = "ngbuild.yaml"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// IndexHTMLFile is the name of the generated index file in the output directory.
	IndexHTMLFile = "index.html"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultNgbuildPath returns the default root directory for ngbuild metadata.
func DefaultNgbuildPath() string {
	return NgbuildDirName
}

// DefaultCachePath returns the default path for all persistent caches.
// It joins .ngbuild and cache.
func DefaultCachePath() string {
	return filepath.Join(NgbuildDirName, CacheDirName)
}

// DefaultTransformStorePath returns the default path for the transform store.
// It joins .ngbuild, cache, and transforms.
func DefaultTransformStorePath() string {
	return filepath.Join(NgbuildDirName, CacheDirName, TransformsDirName)
}

// DefaultDebugLogPath returns the default path for the debug log.
func DefaultDebugLogPath() string {
	return filepath.Join(NgbuildDirName, DebugLogFile)
}
