package ports

import "context"

// StyleSyntax identifies the source language of a stylesheet.
type StyleSyntax uint8

const (
	// SyntaxSCSS is the brace-based Sass syntax.
	SyntaxSCSS StyleSyntax = iota
	// SyntaxSass is the indented Sass syntax.
	SyntaxSass
	// SyntaxCSS is plain CSS.
	SyntaxCSS
)

// StyleRequest describes one stylesheet compilation.
type StyleRequest struct {
	Source       string
	Path         string
	Syntax       StyleSyntax
	IncludePaths []string
}

// StyleCompiler compiles Sass sources to CSS.
//
//go:generate mockgen -source=style_compiler.go -destination=mocks/mock_style_compiler.go -package=mocks
type StyleCompiler interface {
	Compile(ctx context.Context, req StyleRequest) (string, error)
	Close() error
}
