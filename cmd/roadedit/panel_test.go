package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-road/internal/config"
	"github.com/Faultbox/midgard-road/internal/host"
)

func TestSummary(t *testing.T) {
	cfg := config.Default()
	snap, err := host.Generate(cfg, nil)
	require.NoError(t, err)

	s := summary(cfg, snap)
	assert.Contains(t, s, "(open, xyz)")
	assert.Contains(t, s, "flagged > 120 deg")
	assert.NotContains(t, s, "simplified")

	cfg.Boundary.Simplify = true
	snap, err = host.Generate(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, snap.Simplified)
	assert.Contains(t, summary(cfg, snap), "simplified to")
}

func TestPresetName(t *testing.T) {
	name := presetName()
	assert.True(t, strings.HasPrefix(name, "road-"))
	assert.Len(t, strings.Split(name, "-"), 3)
}
