package devserver

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed client.ts
var clientSource string

// BundleClient compiles the live reload client for target.
func BundleClient(target api.Target) (string, error) {
	result := api.Build(api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   clientSource,
			Sourcefile: "live-reload-client.ts",
			Loader:     api.LoaderTS,
		},
		Bundle:   true,
		Write:    false,
		Target:   target,
		LogLevel: api.LogLevelSilent,
		Define: map[string]string{
			"NGBUILD_WEBSOCKET_PATH":          strconv.Quote(SocketPath),
			"NGBUILD_RECONNECT_POLL_INTERVAL": strconv.FormatInt(ReconnectPollInterval.Milliseconds(), 10),
		},
	})
	if len(result.Errors) > 0 {
		msgs := api.FormatMessages(result.Errors, api.FormatMessagesOptions{Kind: api.ErrorMessage})
		return "", zerr.With(domain.ErrSubBuildFailed, "errors", strings.Join(msgs, "\n"))
	}
	if len(result.OutputFiles) != 1 {
		return "", zerr.With(domain.ErrUnexpectedOutputCount, "outputs", len(result.OutputFiles))
	}
	return string(result.OutputFiles[0].Contents), nil
}
