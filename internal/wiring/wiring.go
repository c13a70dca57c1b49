// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ngbuild/internal/adapters/bundler"
	_ "go.trai.ch/ngbuild/internal/adapters/cache"
	_ "go.trai.ch/ngbuild/internal/adapters/config"
	_ "go.trai.ch/ngbuild/internal/adapters/devserver"
	_ "go.trai.ch/ngbuild/internal/adapters/fs"
	_ "go.trai.ch/ngbuild/internal/adapters/logger"
	_ "go.trai.ch/ngbuild/internal/adapters/sass"
	_ "go.trai.ch/ngbuild/internal/adapters/telemetry"
	_ "go.trai.ch/ngbuild/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/ngbuild/internal/app"
)
