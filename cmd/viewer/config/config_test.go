package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	doc := `
[window]
title = "rig"
width = 640

[renderer]
msaa = 1
present_mode = "uncapped"

[scene]
quads = 2
specular = true
diffuse_color = [0.0, 1.0, 0.0, 1.0]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rig", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.Equal(t, "uncapped", cfg.Renderer.PresentMode)
	assert.Equal(t, 2, cfg.Scene.Quads)
	assert.True(t, cfg.Scene.Specular)
	assert.True(t, cfg.Scene.Textured)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, cfg.Scene.DiffuseColor)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestParseRejectsMalformedTOML(t *testing.T) {
	_, err := Parse([]byte("[window\n"), Default())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateJoinsFailures(t *testing.T) {
	_, err := Parse([]byte("[renderer]\nmsaa = 2\npresent_mode = \"tearing\"\n[scene]\nopacity = 2.0\n"), Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "msaa 2")
	assert.Contains(t, err.Error(), `present_mode "tearing"`)
	assert.Contains(t, err.Error(), "opacity 2")
}
