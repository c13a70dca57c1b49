package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/cmd/ngbuild/commands"
	"go.trai.ch/ngbuild/internal/app"
	"go.trai.ch/ngbuild/internal/build"
)

type mockApp struct {
	build *app.BuildOptions
	serve *app.ServeOptions
	clean *app.CleanOptions
	err   error
}

func (m *mockApp) Build(_ context.Context, opts app.BuildOptions) error {
	m.build = &opts
	return m.err
}

func (m *mockApp) Serve(_ context.Context, opts app.ServeOptions) error {
	m.serve = &opts
	return m.err
}

func (m *mockApp) Clean(_ context.Context, opts app.CleanOptions) error {
	m.clean = &opts
	return m.err
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "build", "-c", "production", "--no-cache", "--json")
		require.NoError(t, err)
		require.NotNil(t, m.build)
		assert.Equal(t, app.BuildOptions{Configuration: "production", NoCache: true, JSON: true}, *m.build)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("NGBUILD_CONFIGURATION", "staging")
		t.Setenv("NGBUILD_NO_CACHE", "true")

		m := &mockApp{}
		_, err := execute(t, m, "build")
		require.NoError(t, err)
		require.NotNil(t, m.build)
		assert.Equal(t, "staging", m.build.Configuration)
		assert.True(t, m.build.NoCache)
	})

	t.Run("flags win over environment", func(t *testing.T) {
		t.Setenv("NGBUILD_CONFIGURATION", "staging")

		m := &mockApp{}
		_, err := execute(t, m, "build", "--configuration", "production")
		require.NoError(t, err)
		assert.Equal(t, "production", m.build.Configuration)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "build")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects arguments", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "build", "extra")
		require.Error(t, err)
		assert.Nil(t, m.build)
	})
}

func TestCommands_Serve(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "serve", "--host", "0.0.0.0", "-p", "4300", "--open", "--debug")
		require.NoError(t, err)
		require.NotNil(t, m.serve)
		assert.Equal(t, "0.0.0.0", m.serve.Host)
		assert.Equal(t, 4300, m.serve.Port)
		assert.True(t, m.serve.Open)
		assert.True(t, m.serve.Debug)
		assert.False(t, m.serve.NoCache)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("NGBUILD_PORT", "4400")
		t.Setenv("NGBUILD_OPEN", "true")

		m := &mockApp{}
		_, err := execute(t, m, "serve")
		require.NoError(t, err)
		assert.Equal(t, 4400, m.serve.Port)
		assert.True(t, m.serve.Open)
		assert.Empty(t, m.serve.Host)
	})
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "default", args: []string{"clean"}, want: app.CleanOptions{Cache: true, Output: true}},
		{name: "cache", args: []string{"clean", "--cache"}, want: app.CleanOptions{Cache: true}},
		{name: "output", args: []string{"clean", "--output", "-c", "production"}, want: app.CleanOptions{Configuration: "production", Output: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			require.NotNil(t, m.clean)
			assert.Equal(t, tt.want, *m.clean)
		})
	}

	t.Run("cache and output are exclusive", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "clean", "--cache", "--output")
		require.Error(t, err)
		assert.Nil(t, m.clean)
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
