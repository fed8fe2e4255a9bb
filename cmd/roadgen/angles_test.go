package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/host"
)

func defaultSnapshot(t *testing.T) *host.Snapshot {
	t.Helper()
	snap, err := host.Generate(config.Default(), nil)
	require.NoError(t, err)
	return snap
}

func TestPreviewSketchUsesSketchPath(t *testing.T) {
	snap := defaultSnapshot(t)
	out := config.Default().Output
	out.SketchPath = filepath.Join(t.TempDir(), "sketches", "road.png")

	var shown []string
	path, err := previewSketch(snap, out, func(p string) { shown = append(shown, p) })
	require.NoError(t, err)
	assert.Equal(t, out.SketchPath, path)
	assert.Equal(t, []string{out.SketchPath}, shown)
	assert.FileExists(t, out.SketchPath, "a configured sketch is kept")
}

func TestPreviewSketchTempFile(t *testing.T) {
	snap := defaultSnapshot(t)
	out := config.Default().Output
	out.SketchPath = ""

	var size int64
	path, err := previewSketch(snap, out, func(p string) {
		info, err := os.Stat(p)
		require.NoError(t, err)
		size = info.Size()
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".png"))
	assert.Greater(t, size, int64(0), "sketch is written before it is shown")
	assert.NoFileExists(t, path, "temporary sketch is removed afterwards")
}
