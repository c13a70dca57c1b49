package domain

import (
	"path/filepath"
	"strings"
)

// Reserved query suffixes appended to real paths.
const (
	// ResourceSuffix marks an import of a component template or stylesheet.
	ResourceSuffix = "?ng-template"
	// WorkerSuffix marks an import of a web worker entry point.
	WorkerSuffix = "?worker-url"
)

// Namespaces owned by ngbuild inside the bundler.
const (
	NamespaceFile         = "file"
	NamespaceGlobalScript = "global-scripts"
	NamespaceGlobalStyle  = "global-styles"
	NamespacePolyfills    = "polyfills"
	NamespaceWorker       = "worker"
)

// GlobalStylePrefix prefixes paths imported by the synthetic global styles module.
const GlobalStylePrefix = "angular:global-styles:"

// ModuleKind discriminates ModuleRef.
type ModuleKind uint8

const (
	// ModuleRealFile is a source file loaded from disk.
	ModuleRealFile ModuleKind = iota
	// ModuleSyntheticConcat is a generated module that imports a list of files.
	ModuleSyntheticConcat
	// ModuleAnnotatedResource is a real file imported with ResourceSuffix.
	ModuleAnnotatedResource
	// ModuleGlobalStyle is a stylesheet imported by the synthetic global styles module.
	ModuleGlobalStyle
	// ModuleWorkerBundle is a worker entry point bundled by a nested build.
	ModuleWorkerBundle
	// ModuleUnknown is anything ngbuild does not own.
	ModuleUnknown
)

// ResourceKind distinguishes the two kinds of annotated component resources.
type ResourceKind uint8

const (
	// ResourceTemplate is an HTML component template.
	ResourceTemplate ResourceKind = iota
	// ResourceStyle is a component stylesheet.
	ResourceStyle
)

// ModuleRef is a classified load request.
type ModuleRef struct {
	Kind ModuleKind
	// Path is the real file path, or the virtual filename for synthetic modules.
	Path string
	// Namespace is the namespace of a synthetic module.
	Namespace string
	// Resource is set for ModuleAnnotatedResource.
	Resource ResourceKind
}

// StyleExtensions lists the stylesheet extensions understood by the style pipeline.
var StyleExtensions = []string{".css", ".scss", ".sass"}

// IsStylePath reports whether path has a stylesheet extension.
func IsStylePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range StyleExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ClassifyModule maps a bundler load request to a ModuleRef.
// suffix is the query suffix the bundler split off the path, if any.
func ClassifyModule(namespace, path, suffix string) ModuleRef {
	switch namespace {
	case NamespaceGlobalScript, NamespacePolyfills:
		return ModuleRef{Kind: ModuleSyntheticConcat, Path: path, Namespace: namespace}
	case NamespaceGlobalStyle:
		if strings.HasPrefix(path, GlobalStylePrefix) {
			return ModuleRef{
				Kind:      ModuleGlobalStyle,
				Path:      strings.TrimPrefix(path, GlobalStylePrefix),
				Namespace: namespace,
			}
		}
		return ModuleRef{Kind: ModuleSyntheticConcat, Path: path, Namespace: namespace}
	case NamespaceWorker:
		return ModuleRef{Kind: ModuleWorkerBundle, Path: path, Namespace: namespace}
	case NamespaceFile, "":
	default:
		return ModuleRef{Kind: ModuleUnknown, Path: path, Namespace: namespace}
	}

	if suffix == ResourceSuffix {
		if strings.EqualFold(filepath.Ext(path), ".html") {
			return ModuleRef{Kind: ModuleAnnotatedResource, Path: path, Resource: ResourceTemplate}
		}
		if IsStylePath(path) {
			return ModuleRef{Kind: ModuleAnnotatedResource, Path: path, Resource: ResourceStyle}
		}
		return ModuleRef{Kind: ModuleUnknown, Path: path}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx":
		return ModuleRef{Kind: ModuleRealFile, Path: path}
	default:
		return ModuleRef{Kind: ModuleUnknown, Path: path}
	}
}
