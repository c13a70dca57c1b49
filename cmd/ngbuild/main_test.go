package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ngbuild/internal/app"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/ngbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func provide(t *testing.T, loader ports.ConfigLoader, log ports.Logger) ComponentProvider {
	t.Helper()
	ctrl := gomock.NewController(t)
	a := app.New(
		loader,
		log,
		mocks.NewMockBundler(ctrl),
		mocks.NewMockWatcher(ctrl),
		mocks.NewMockDevServerFactory(ctrl),
		mocks.NewMockTracer(ctrl),
	).WithWorkDir(t.TempDir())
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: log}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provide(t, mocks.NewMockConfigLoader(ctrl), mockLogger))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when a command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLoader.EXPECT().Load(gomock.Any(), "").Return(nil, domain.ErrConfigNotFound)
	mockLogger.EXPECT().Error(gomock.Any())

	exitCode := run(context.Background(), []string{"build"}, new(bytes.Buffer), provide(t, mockLoader, mockLogger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_BuildFailed verifies that a failed build exits with 1 without logging again.
func TestRun_BuildFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockBundler := mocks.NewMockBundler(ctrl)

	project := &domain.Project{Name: "app", Root: t.TempDir()}
	mockLoader.EXPECT().Load(gomock.Any(), "").Return(project, nil)
	mockBundler.EXPECT().Build(gomock.Any(), project, gomock.Any()).
		Return(&ports.BuildOutcome{Errors: []string{"boom"}}, nil)

	a := app.New(mockLoader, mockLogger, mockBundler, mocks.NewMockWatcher(ctrl),
		mocks.NewMockDevServerFactory(ctrl), mocks.NewMockTracer(ctrl)).WithWorkDir(t.TempDir())
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: mockLogger}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"build"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
