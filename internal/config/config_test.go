package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula-wallpaper/internal/nebula"
	"nebula-wallpaper/internal/utils"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	utils.SetOutput(&buf)
	t.Cleanup(func() { utils.SetOutput(os.Stderr) })
	return &buf
}

func TestDefaultsAreValid(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())

	cfg, err := s.Nebula()
	require.NoError(t, err)
	want := nebula.DefaultConfig()
	assert.Equal(t, want.Particles, cfg.Particles)
	assert.Equal(t, want.Background, cfg.Background)
	assert.Equal(t, want.ParticleField, cfg.ParticleField)
	assert.Equal(t, want.BlobField, cfg.BlobField)
	assert.Equal(t, want.TrailCap, cfg.TrailCap)
	assert.True(t, cfg.Interactive)
}

func TestLoadCreatesMissingFile(t *testing.T) {
	captureLogs(t)
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"trail_cap": 40`)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"particles": 150, "background": "#102030"}`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 150, s.Particles)
	assert.Equal(t, "#102030", s.Background)
	assert.Equal(t, Defaults().TrailDecay, s.TrailDecay)
	assert.Equal(t, PointerWindow, s.Pointer)
}

func TestLoadWarnsOnUnknownKeys(t *testing.T) {
	logs := captureLogs(t)
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"particles": 10, "sparkle": true}`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Particles)
	assert.Contains(t, logs.String(), "'sparkle'")
	assert.NotContains(t, logs.String(), "'particles'")
}

func TestLoadFallsBackOnMalformedFile(t *testing.T) {
	logs := captureLogs(t)
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"particles": `), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Contains(t, logs.String(), "Invalid settings file")
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"particles": 150, "fps": 30}`), 0o644))
	t.Setenv("NEBULA_PARTICLES", "99")
	t.Setenv("NEBULA_POINTER", "x11")
	t.Setenv("NEBULA_REDUCED_MOTION", "true")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 99, s.Particles)
	assert.Equal(t, 30, s.FPS, "unset variables keep the file value")
	assert.Equal(t, PointerX11, s.Pointer)
	assert.True(t, s.ReducedMotion)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("NEBULA_FPS", "fast")

	s := Defaults()
	err := ParseEnv(&s)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"))
}

func TestValidateReportsEveryField(t *testing.T) {
	s := Defaults()
	s.Particles = -1
	s.TrailDecay = 0
	s.Pointer = "wayland"
	s.Background = "purple"

	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	for _, field := range []string{"particles", "trail_decay", "pointer", "background"} {
		assert.Contains(t, err.Error(), field)
	}
	assert.NotContains(t, err.Error(), "fps")

	_, err = s.Nebula()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestNebulaConversion(t *testing.T) {
	s := Defaults()
	s.Particles = 12
	s.Interactive = false
	s.Seed = 77
	s.ParticleStrength = 4
	s.Background = "#fff"

	cfg, err := s.Nebula()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Particles)
	assert.False(t, cfg.Interactive)
	assert.Equal(t, uint64(77), cfg.Seed)
	assert.Equal(t, 4.0, cfg.ParticleField.Strength)
	assert.Equal(t, nebula.RGB(255, 255, 255), cfg.Background)
	assert.Len(t, cfg.Blobs, 8)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#0a0a14")
	require.NoError(t, err)
	assert.Equal(t, nebula.DefaultBackground, c)

	_, err = ParseColor("0a0a14")
	assert.Error(t, err)
}
