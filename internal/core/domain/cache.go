package domain

// Loader tells the bundler how to interpret the contents returned for a module.
type Loader uint8

const (
	// LoaderTS parses contents as TypeScript.
	LoaderTS Loader = iota
	// LoaderTSX parses contents as TypeScript with JSX.
	LoaderTSX
	// LoaderJS parses contents as JavaScript.
	LoaderJS
	// LoaderCSS parses contents as CSS.
	LoaderCSS
	// LoaderText exports contents as a string.
	LoaderText
	// LoaderFile emits contents as a separate file and exports its URL.
	LoaderFile
)

var loaderNames = [...]string{"ts", "tsx", "js", "css", "text", "file"}

func (l Loader) String() string {
	if int(l) < len(loaderNames) {
		return loaderNames[l]
	}
	return "unknown"
}

// Diagnostic is a located message produced while transforming a source file.
type Diagnostic struct {
	Text   string `json:"text"`
	File   string `json:"file"`
	Line   int    `json:"line"`   // 1-based
	Column int    `json:"column"` // 0-based, in bytes
	// LineText is the full source line the diagnostic points at.
	LineText string `json:"lineText,omitempty"`
}

// TransformResult is the output handed back to the bundler for a loaded file.
// A nil *TransformResult means the file passes through unchanged.
type TransformResult struct {
	Contents string       `json:"contents"`
	Loader   Loader       `json:"loader"`
	Warnings []Diagnostic `json:"warnings,omitempty"`
}

// CacheEntry memoizes the transform output of one file.
type CacheEntry struct {
	Key    string
	Input  string
	Output *TransformResult
	// Mtime is the modification time of the file when Input was read, in UnixNano.
	Mtime int64
}
