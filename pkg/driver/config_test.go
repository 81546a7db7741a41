package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"slang/interpreter-go/pkg/interpreter"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
stage: 8
scheduler: Preemptive
steps: 50
max_ticks: 4
max_array_length: 4096
externals:
  - draw
  - sound
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Stage)
	require.Equal(t, interpreter.SchedulerPreemptive, cfg.Scheduler)
	require.Equal(t, []string{"draw", "sound"}, cfg.Externals)

	opts := cfg.Options(nil)
	require.Equal(t, 50, opts.Steps)
	require.Equal(t, 4, opts.MaxTicks)
	require.Equal(t, 4096, opts.MaxArrayLength)
}

func TestLoadConfigDefaultsAndScalarExternals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "externals: draw\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, DefaultStage, cfg.Stage)
	require.Equal(t, interpreter.SchedulerAsync, cfg.Scheduler)
	require.Equal(t, []string{"draw"}, cfg.Externals)
}

func TestLoadConfigReportsEveryIssue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
stage: 12
scheduler: threads
steps: -1
externals: [draw, draw]
`)
	_, err := LoadConfig(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected a ValidationError, got %v", err)
	require.Len(t, verr.Issues, 4)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "stgae: 3\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "stage: 5\n")
	program := filepath.Join(root, "lessons", "week1", "main.js")
	writeFile(t, program, "1;")

	found, err := FindConfig(program)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ConfigFileName), found)

	cfg, err := ResolveConfig(program, nil)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Stage)
}
