package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"nebula-wallpaper/internal/nebula"
	"nebula-wallpaper/internal/terminal"
	"nebula-wallpaper/internal/utils"
)

var terminalLogFile string

var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Show the background in the terminal",
	Long: `Animates the background in the current terminal using half-block
characters and 24-bit colour. The mouse pushes the particles around.

Keys: q or Esc quits, d or F8 toggles the status line.`,
	Args: cobra.NoArgs,
	RunE: runTerminal,
}

func init() {
	terminalCmd.Flags().Int("fps", 0, "Target frame rate")
	terminalCmd.Flags().StringVar(&terminalLogFile, "log-file", "", "Write log output to this file instead of discarding it")
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Nebula()
	if err != nil {
		return err
	}

	// Log lines would corrupt the screen.
	var logOut io.Writer = io.Discard
	if terminalLogFile != "" {
		f, err := os.OpenFile(terminalLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
		utils.PlainLogs = true
	}
	utils.SetOutput(logOut)
	defer utils.SetOutput(os.Stderr)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := terminal.New(screen, settings.FPS)
	background := nebula.Mount(h, cfg)
	defer background.Unmount()

	utils.Info("Terminal renderer started")
	return h.Run(ctx, background.Stats)
}
