package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"nebula-wallpaper/internal/config"
	"nebula-wallpaper/internal/utils"
)

func init() {
	// raylib must stay on the main thread.
	runtime.LockOSThread()
}

var (
	// Global flags
	configPath    string
	debugFlag     bool
	logLevel      string
	particles     int
	seed          uint64
	background    string
	reducedMotion bool
	interactive   bool

	// Effective settings, loaded before any subcommand runs.
	settings config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "nebula-wallpaper",
	Short: "Procedural nebula background for desktops and terminals",
	Long: `nebula-wallpaper draws a drifting field of twinkling particles and glowing
nebula clouds that bend away from the pointer.

Settings are read from ~/.config/nebula-wallpaper/settings.json, then from
NEBULA_* environment variables, then from flags.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Settings file (default ~/.config/nebula-wallpaper/settings.json)")
	flags.BoolVar(&debugFlag, "debug", false, "Enable debug logging and the debug overlay")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.IntVar(&particles, "particles", 0, "Number of particles")
	flags.Uint64Var(&seed, "seed", 0, "Random seed, 0 for a random layout")
	flags.StringVar(&background, "background", "", "Background colour as #rrggbb")
	flags.BoolVar(&reducedMotion, "reduced-motion", false, "Draw a single static frame")
	flags.BoolVar(&interactive, "interactive", true, "React to the pointer")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(terminalCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}

// loadSettings resolves the settings file, environment and flags, in that
// order, and configures logging.
func loadSettings(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return fmt.Errorf("resolve settings path: %w", err)
		}
	}

	s, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s.LogLevel = logLevel
	}
	if debugFlag {
		s.LogLevel = "debug"
		utils.ShowDebugUI = true
	}
	if flags.Changed("particles") {
		s.Particles = particles
	}
	if flags.Changed("seed") {
		s.Seed = seed
	}
	if flags.Changed("background") {
		s.Background = background
	}
	if flags.Changed("reduced-motion") {
		s.ReducedMotion = reducedMotion
	}
	if flags.Changed("interactive") {
		s.Interactive = interactive
	}
	applyCommandFlags(cmd, &s)

	if err := s.Validate(); err != nil {
		return err
	}
	level, err := utils.ParseLogLevel(s.LogLevel)
	if err != nil {
		return err
	}
	utils.CurrentLevel = level

	utils.Debug("Settings loaded from %s", path)
	settings = s
	return nil
}

// applyCommandFlags copies the window flags shared by several subcommands.
func applyCommandFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Lookup("width") != nil && flags.Changed("width") {
		s.Width, _ = flags.GetInt("width")
	}
	if flags.Lookup("height") != nil && flags.Changed("height") {
		s.Height, _ = flags.GetInt("height")
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		s.FPS, _ = flags.GetInt("fps")
	}
	if flags.Lookup("fullscreen") != nil && flags.Changed("fullscreen") {
		s.Fullscreen, _ = flags.GetBool("fullscreen")
	}
	if flags.Lookup("pointer") != nil && flags.Changed("pointer") {
		s.Pointer, _ = flags.GetString("pointer")
	}
}
