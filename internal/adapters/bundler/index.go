package bundler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/adapters/htmldoc"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// indexHTMLPlugin writes index.html with a tag for every output of the entry
// points once a pass succeeds.
func (s *session) indexHTMLPlugin() api.Plugin {
	return api.Plugin{
		Name: "index-html",
		Setup: func(build api.PluginBuild) {
			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				if len(result.Errors) > 0 {
					return api.OnEndResult{}, nil
				}
				if err := s.writeIndex(result.Metafile); err != nil {
					return api.OnEndResult{Errors: []api.Message{{Text: err.Error()}}}, nil
				}
				return api.OnEndResult{}, nil
			})
		},
	}
}

func (s *session) writeIndex(rawMeta string) error {
	src := s.project.Abs(s.project.Build.Index)
	//nolint:gosec // The index path comes from the project file.
	template, err := os.ReadFile(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexHTMLFailed.Error()), "path", src)
	}

	meta, err := parseMetafile(rawMeta)
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexHTMLFailed.Error())
	}

	doc, err := htmldoc.Parse(template)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexHTMLFailed.Error()), "path", src)
	}

	for _, tag := range s.indexTags(meta) {
		if strings.HasSuffix(tag, ".css") {
			doc.AppendStylesheet(tag)
		} else {
			doc.AppendScript(tag, "module")
		}
	}

	rendered, err := doc.Render()
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexHTMLFailed.Error())
	}
	dest := filepath.Join(s.project.OutputDir(), domain.IndexHTMLFile)
	//nolint:gosec // index.html is served to browsers.
	if err := os.WriteFile(dest, rendered, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrIndexHTMLFailed.Error()), "path", dest)
	}
	return nil
}

// indexTags returns the output files index.html references, relative to the
// output directory, in entry point order.
func (s *session) indexTags(meta *Metafile) []string {
	var tags []string
	seen := make(map[string]bool)
	add := func(out string) {
		if seen[out] {
			return
		}
		seen[out] = true
		ext := filepath.Ext(out)
		if ext != ".js" && ext != ".css" {
			return
		}
		rel, err := filepath.Rel(s.project.OutputDir(), s.abs(out))
		if err != nil {
			return
		}
		tags = append(tags, filepath.ToSlash(rel))
	}

	for _, entry := range s.htmlEntryPoints() {
		for _, out := range meta.outputsFor(entry) {
			add(out)
			if css := meta.Outputs[out].CSSBundle; css != "" {
				add(css)
			}
		}
	}
	return tags
}
