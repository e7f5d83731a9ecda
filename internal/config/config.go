package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"nebula-wallpaper/internal/nebula"
	"nebula-wallpaper/internal/utils"
)

// ErrInvalid marks every validation failure.
var ErrInvalid = errors.New("invalid setting")

const (
	PointerWindow = "window"
	PointerX11    = "x11"
)

// Settings is the user-facing configuration. Values come from defaults, then
// the settings file, then NEBULA_* environment variables, then CLI flags.
type Settings struct {
	Particles     int     `json:"particles" env:"NEBULA_PARTICLES"`
	TrailCap      int     `json:"trail_cap" env:"NEBULA_TRAIL_CAP"`
	TrailDecay    float64 `json:"trail_decay" env:"NEBULA_TRAIL_DECAY"`
	Interactive   bool    `json:"interactive" env:"NEBULA_INTERACTIVE"`
	ReducedMotion bool    `json:"reduced_motion" env:"NEBULA_REDUCED_MOTION"`
	Background    string  `json:"background" env:"NEBULA_BACKGROUND"`
	FPS           int     `json:"fps" env:"NEBULA_FPS"`
	Seed          uint64  `json:"seed" env:"NEBULA_SEED"`

	ParticleCutoff   float64 `json:"particle_cutoff" env:"NEBULA_PARTICLE_CUTOFF"`
	ParticleStrength float64 `json:"particle_strength" env:"NEBULA_PARTICLE_STRENGTH"`
	BlobCutoff       float64 `json:"blob_cutoff" env:"NEBULA_BLOB_CUTOFF"`
	BlobStrength     float64 `json:"blob_strength" env:"NEBULA_BLOB_STRENGTH"`

	// Pointer selects where pointer positions come from: "window" for the
	// window's own mouse events, "x11" for the global X pointer.
	Pointer    string `json:"pointer" env:"NEBULA_POINTER"`
	Fullscreen bool   `json:"fullscreen" env:"NEBULA_FULLSCREEN"`
	// Width and Height of the window. Zero uses the monitor size.
	Width  int `json:"width" env:"NEBULA_WIDTH"`
	Height int `json:"height" env:"NEBULA_HEIGHT"`

	LogLevel string `json:"log_level" env:"NEBULA_LOG_LEVEL"`
}

func Defaults() Settings {
	d := nebula.DefaultConfig()
	return Settings{
		Particles:        d.Particles,
		TrailCap:         d.TrailCap,
		TrailDecay:       d.TrailDecay,
		Interactive:      d.Interactive,
		Background:       "#0a0a14",
		FPS:              60,
		ParticleCutoff:   d.ParticleField.Cutoff,
		ParticleStrength: d.ParticleField.Strength,
		BlobCutoff:       d.BlobField.Cutoff,
		BlobStrength:     d.BlobField.Strength,
		Pointer:          PointerWindow,
		Width:            1280,
		Height:           720,
		LogLevel:         "warn",
	}
}

func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "nebula-wallpaper", "settings.json"), nil
}

// Load reads the settings file at path and applies environment overrides.
// A missing file is created with the defaults. A malformed file is reported
// and ignored.
func Load(path string) (Settings, error) {
	settings, err := loadFile(path)
	if err != nil {
		return Settings{}, err
	}
	if err := ParseEnv(&settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func loadFile(path string) (Settings, error) {
	defaults := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			utils.Info("Creating default settings file at %s", path)
			if err := Save(path, defaults); err != nil {
				utils.Warn("Failed to create default settings file: %v", err)
			}
			return defaults, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		utils.Warn("Invalid settings file %s, using defaults: %v", path, err)
		return defaults, nil
	}

	known := knownKeys(Settings{})
	for key := range raw {
		if !known[key] {
			utils.Warn("Unrecognised setting key '%s' in %s", key, path)
		}
	}

	// Keys missing from the file keep their defaults.
	settings := defaults
	if err := json.Unmarshal(data, &settings); err != nil {
		utils.Warn("Invalid settings file %s, using defaults: %v", path, err)
		return defaults, nil
	}
	return settings, nil
}

// Save writes s as indented JSON, creating the parent directory.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func knownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("json"); tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name != "-" {
				keys[name] = true
			}
		}
	}
	return keys
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if s.Particles < 0 {
		bad("particles must be >= 0, got %d", s.Particles)
	}
	if s.TrailCap < 1 {
		bad("trail_cap must be >= 1, got %d", s.TrailCap)
	}
	if s.TrailDecay <= 0 || s.TrailDecay > 1 {
		bad("trail_decay must be in (0, 1], got %g", s.TrailDecay)
	}
	if s.FPS < 1 {
		bad("fps must be >= 1, got %d", s.FPS)
	}
	if s.ParticleCutoff < 0 || s.BlobCutoff < 0 {
		bad("cutoffs must be >= 0, got %g and %g", s.ParticleCutoff, s.BlobCutoff)
	}
	if _, err := ParseColor(s.Background); err != nil {
		bad("background: %v", err)
	}
	if s.Pointer != PointerWindow && s.Pointer != PointerX11 {
		bad("pointer must be %q or %q, got %q", PointerWindow, PointerX11, s.Pointer)
	}
	if s.Width < 0 || s.Height < 0 {
		bad("window size must be >= 0, got %dx%d", s.Width, s.Height)
	}
	if _, err := utils.ParseLogLevel(s.LogLevel); err != nil {
		bad("log_level: %v", err)
	}

	return errors.Join(errs...)
}

// Nebula converts the settings into a background configuration.
func (s Settings) Nebula() (nebula.Config, error) {
	if err := s.Validate(); err != nil {
		return nebula.Config{}, err
	}
	bg, _ := ParseColor(s.Background)

	cfg := nebula.DefaultConfig()
	cfg.Particles = s.Particles
	cfg.Background = bg
	cfg.Interactive = s.Interactive
	cfg.ReducedMotion = s.ReducedMotion
	cfg.TrailCap = s.TrailCap
	cfg.TrailDecay = s.TrailDecay
	cfg.ParticleField = nebula.Field{Cutoff: s.ParticleCutoff, Strength: s.ParticleStrength}
	cfg.BlobField = nebula.Field{Cutoff: s.BlobCutoff, Strength: s.BlobStrength}
	cfg.Seed = s.Seed
	return cfg, nil
}

// ParseColor parses "#rrggbb" (or "#rgb") into an opaque colour.
func ParseColor(hex string) (nebula.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nebula.Color{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return nebula.RGB(r, g, b), nil
}
