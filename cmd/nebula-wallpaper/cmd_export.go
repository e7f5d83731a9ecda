package main

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"nebula-wallpaper/internal/capture"
	"nebula-wallpaper/internal/config"
	"nebula-wallpaper/internal/nebula"
	"nebula-wallpaper/internal/raster"
	"nebula-wallpaper/internal/utils"
)

var (
	exportFrames int
	recordFrames int
	pointerAt    string
)

var exportCmd = &cobra.Command{
	Use:   "export [output.png]",
	Short: "Render a still frame to a PNG file",
	Long: `Renders the background headlessly and writes the last frame as a PNG.

--frames controls how far the animation runs before the frame is taken.
--pointer-at holds the pointer at a point for every frame, e.g. 640,360.

Example:
  nebula-wallpaper export --width 1920 --height 1080 --frames 300 wallpaper.png`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var recordCmd = &cobra.Command{
	Use:   "record [output.nbfr]",
	Short: "Capture frames to an LZ4 compressed frame file",
	Long: `Renders the background headlessly and stores every frame in an NBFR
capture file. Each frame is an LZ4 block of RGBA pixels.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	for _, c := range []*cobra.Command{exportCmd, recordCmd} {
		c.Flags().Int("width", 1280, "Image width")
		c.Flags().Int("height", 720, "Image height")
		c.Flags().StringVar(&pointerAt, "pointer-at", "", "Hold the pointer at x,y")
	}
	exportCmd.Flags().IntVar(&exportFrames, "frames", 120, "Frames to run before the capture")
	recordCmd.Flags().IntVar(&recordFrames, "frames", 60, "Frames to record")
}

func runExport(cmd *cobra.Command, args []string) error {
	width, height := headlessSize(cmd)
	img, err := renderHeadless(settings, width, height, exportFrames, pointerAt, nil)
	if err != nil {
		return err
	}
	return capture.ExportPNG(args[0], img)
}

func runRecord(cmd *cobra.Command, args []string) error {
	width, height := headlessSize(cmd)
	frames, err := recordTo(args[0], settings, width, height, recordFrames, pointerAt)
	if err != nil {
		return err
	}
	utils.Info("Recorded %d frames to %s", frames, args[0])
	return nil
}

// recordTo writes a capture of frames frames to path and returns how many
// were stored. The file is closed exactly once and a failed close is
// reported.
func recordTo(path string, s config.Settings, width, height, frames int, pointer string) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create capture: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close capture: %w", cerr)
		}
	}()

	rec, err := capture.NewRecorder(f, width, height)
	if err != nil {
		return 0, err
	}
	if _, err := renderHeadless(s, width, height, frames, pointer, rec.WriteFrame); err != nil {
		return rec.Frames(), err
	}
	return rec.Frames(), nil
}

func headlessSize(cmd *cobra.Command) (int, int) {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	return width, height
}

// renderHeadless runs frames on an offscreen canvas. onFrame, when set, sees
// every frame. The final frame is returned.
func renderHeadless(s config.Settings, width, height, frames int, pointer string, onFrame func(*image.RGBA) error) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	if frames < 1 {
		return nil, fmt.Errorf("frames must be >= 1, got %d", frames)
	}
	cfg, err := s.Nebula()
	if err != nil {
		return nil, err
	}

	var px, py float64
	hold := pointer != ""
	if hold {
		if px, py, err = parsePoint(pointer); err != nil {
			return nil, err
		}
	}

	o := raster.NewOffscreen(width, height)
	background := nebula.Mount(o, cfg)
	defer background.Unmount()

	for i := 0; i < frames; i++ {
		if hold {
			o.EmitPointerMove(px, py)
		}
		if o.Advance(1) == 0 {
			// Reduced motion: the static frame is already drawn.
			break
		}
		if onFrame != nil {
			if err := onFrame(o.Canvas().Image()); err != nil {
				return nil, err
			}
		}
	}

	st := background.Stats()
	utils.Debug("Rendered %d frames at %dx%d, trail %d", st.Frame, st.Width, st.Height, st.TrailLen)
	return o.Canvas().Image(), nil
}

func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}
