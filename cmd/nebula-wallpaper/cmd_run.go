package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nebula-wallpaper/internal/config"
	"nebula-wallpaper/internal/engine2D"
	"nebula-wallpaper/internal/nebula"
	"nebula-wallpaper/internal/utils"
)

// runCmd opens the raylib window
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the background in a window",
	Long: `Opens a window and animates the background in it.

With --fullscreen the window is undecorated and covers the current monitor,
suitable as a desktop wallpaper. Such a window usually never receives mouse
input, so combine it with --pointer x11 to follow the global X pointer.

Press F8 to toggle the performance overlay.`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	runCmd.Flags().Int("width", 0, "Window width, 0 for the monitor width")
	runCmd.Flags().Int("height", 0, "Window height, 0 for the monitor height")
	runCmd.Flags().Int("fps", 0, "Target frame rate")
	runCmd.Flags().Bool("fullscreen", false, "Undecorated window covering the monitor")
	runCmd.Flags().String("pointer", "", "Pointer source: window or x11")
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Nebula()
	if err != nil {
		return err
	}

	opts := engine2D.WindowOptions{
		Title:      "Nebula Wallpaper",
		Width:      settings.Width,
		Height:     settings.Height,
		Fullscreen: settings.Fullscreen,
		FPS:        settings.FPS,
	}

	if settings.Pointer == config.PointerX11 {
		pointer, err := utils.NewX11Pointer()
		if err != nil {
			utils.Warn("X11 pointer unavailable, using the window mouse: %v", err)
		} else {
			defer pointer.Close()
			opts.Pointer = pointer
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	window := engine2D.OpenWindow(opts)
	defer window.Close()

	background := nebula.Mount(window, cfg)
	defer background.Unmount()

	utils.Info("Starting render loop...")
	window.Run(ctx, background.Stats)
	utils.Info("Render loop stopped after %d frames", window.Clock().Frames())
	return nil
}
