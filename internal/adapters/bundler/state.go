package bundler

import (
	"fmt"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/zerr"
)

const watchingSuffix = ", watching for changes..."

type statePlugins struct {
	start api.Plugin
	end   api.Plugin
}

// buildState reports the progress of each pass through the logger.
type buildState struct {
	mu     sync.Mutex
	passes int
	start  time.Time
}

// buildStatePlugins returns a pair of plugins that go first and last in the
// plugin list, so the end plugin sees the messages added by the others.
func (s *session) buildStatePlugins() statePlugins {
	state := &buildState{}
	return statePlugins{
		start: api.Plugin{
			Name: "build-state-start",
			Setup: func(build api.PluginBuild) {
				build.OnStart(func() (api.OnStartResult, error) {
					state.mu.Lock()
					state.passes++
					state.start = time.Now()
					first := state.passes == 1
					state.mu.Unlock()

					if s.opts.Watch && !first {
						s.logger.Info("Rebuild started")
					} else {
						s.logger.Info("Build started")
					}
					return api.OnStartResult{}, nil
				})
			},
		},
		end: api.Plugin{
			Name: "build-state-end",
			Setup: func(build api.PluginBuild) {
				build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
					state.mu.Lock()
					took := time.Since(state.start)
					state.mu.Unlock()
					s.report(result, took)
					return api.OnEndResult{}, nil
				})
				build.OnDispose(func() {
					state.mu.Lock()
					passes := state.passes
					state.mu.Unlock()
					s.logger.Debug(fmt.Sprintf("build context disposed after %d %s", passes, plural(passes, "build")))
				})
			},
		},
	}
}

func (s *session) report(result *api.BuildResult, took time.Duration) {
	for _, w := range formatMessages(result.Warnings, api.WarningMessage) {
		s.logger.Warn(w)
	}
	for _, e := range formatMessages(result.Errors, api.ErrorMessage) {
		s.logger.Error(zerr.New(e))
	}

	suffix := ""
	if s.opts.Watch {
		suffix = watchingSuffix
	}
	if len(result.Errors) == 0 {
		s.logger.Info(fmt.Sprintf("Build succeeded in %s%s", formatDuration(took), suffix))
		return
	}
	s.logger.Warn(fmt.Sprintf("Build failed in %s with %d %s%s",
		formatDuration(took), len(result.Errors), plural(len(result.Errors), "error"), suffix))
}

// formatDuration prints durations under a second in milliseconds and longer
// ones in seconds with one decimal.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
