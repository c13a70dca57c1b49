package bundler

import (
	"errors"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// messageFor turns a load failure into an esbuild message. Errors carrying
// file, line and column metadata are located; others point at path.
func messageFor(err error, path string) api.Message {
	msg := api.Message{Text: err.Error(), Location: &api.Location{File: path}}

	for e := err; e != nil; e = errors.Unwrap(e) {
		z, ok := e.(*zerr.Error) //nolint:errorlint // The chain is walked one link at a time.
		if !ok {
			continue
		}
		meta := z.Metadata()
		line, ok := meta["line"].(int)
		if !ok {
			continue
		}
		if file, ok := meta["file"].(string); ok {
			msg.Location.File = file
		}
		msg.Location.Line = line
		msg.Location.Column, _ = meta["column"].(int)
		if text := z.Message(); text != "" {
			msg.Text = text
		}
		break
	}
	return msg
}

func diagnosticMessages(diags []domain.Diagnostic) []api.Message {
	if len(diags) == 0 {
		return nil
	}
	msgs := make([]api.Message, len(diags))
	for i, d := range diags {
		msgs[i] = api.Message{
			Text: d.Text,
			Location: &api.Location{
				File:     d.File,
				Line:     d.Line,
				Column:   d.Column,
				LineText: d.LineText,
			},
		}
	}
	return msgs
}
