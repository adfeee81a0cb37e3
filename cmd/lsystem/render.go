package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/lsystem"
	"github.com/gogpu/lsystem/canvas"
	"github.com/gogpu/lsystem/internal/config"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render figures to PNG or SVG files",
		Long: `Render grows one figure per --at point, or replays a session file, and
writes the canvas to every --output file. The format follows the extension
(.png or .svg).`,
		Example: `  lsystem render --family lichtenberg --at 400,300 -o lightning.png
  lsystem render --session garden.yaml -o garden.png -o garden.svg`,
		RunE: runRender,
	}
	f := cmd.Flags()
	f.String("session", "", "Session file (YAML or JSON) to replay")
	f.StringSliceP("output", "o", []string{"lsystem.png"}, "Output file(s), .png or .svg")
	f.StringArray("at", nil, "Press point x,y (repeatable)")
	f.String("family", "original", "Figure family")
	f.String("color", "black", "Stroke colour, name or hex")
	f.String("background", "white", "Background colour, name or hex")
	f.Int("size", lsystem.DefaultStrokeSize, "Stroke size, 1 to 10")
	f.Int("width", config.DefaultWidth, "Canvas width")
	f.Int("height", config.DefaultHeight, "Canvas height")
	f.Uint64("seed", 0, "Random seed; 0 picks a random one")
	f.Duration("time-unit", 0, "Animation time unit; 0 draws without animating")
	f.Int("max-nodes", lsystem.DefaultMaxNodes, "Node budget per figure")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	sess, err := renderSession(cmd)
	if err != nil {
		return err
	}
	outputs, _ := cmd.Flags().GetStringSlice("output")

	var (
		surfaces canvas.Multi
		raster   *canvas.Raster
		vector   *canvas.SVG
	)
	for _, out := range outputs {
		switch strings.ToLower(filepath.Ext(out)) {
		case ".png":
			if raster == nil {
				raster = canvas.NewRaster(sess.Canvas.Width, sess.Canvas.Height, sess.Background())
				defer raster.Close()
				surfaces = append(surfaces, raster)
			}
		case ".svg":
			if vector == nil {
				vector = canvas.NewSVG(sess.Canvas.Width, sess.Canvas.Height, sess.Background())
				surfaces = append(surfaces, vector)
			}
		default:
			return fmt.Errorf("output %q: unsupported format, want .png or .svg", out)
		}
	}

	engine, err := lsystem.New(surfaces, sess.Options()...)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := sess.Play(ctx, engine); err != nil {
		return err
	}
	slog.Info("session rendered", "events", len(sess.Events), "figures", engine.Figures(), "elapsed", time.Since(start))

	for _, out := range outputs {
		if err := writeOutput(out, raster, vector); err != nil {
			return err
		}
		slog.Info("wrote image", "path", out)
	}
	if raster != nil && raster.Err() != nil {
		slog.Warn("some strokes failed to rasterize", "err", raster.Err())
	}
	return nil
}

// renderSession loads --session or builds a one-shot session from flags.
func renderSession(cmd *cobra.Command) (*config.Session, error) {
	flags := cmd.Flags()
	if path, _ := flags.GetString("session"); path != "" {
		return config.Load(path)
	}

	sess := &config.Session{}
	sess.Canvas.Width, _ = flags.GetInt("width")
	sess.Canvas.Height, _ = flags.GetInt("height")
	sess.Canvas.Background, _ = flags.GetString("background")
	sess.Family, _ = flags.GetString("family")
	sess.Color, _ = flags.GetString("color")
	sess.StrokeSize, _ = flags.GetInt("size")
	sess.MaxNodes, _ = flags.GetInt("max-nodes")
	sess.TimeUnit.Duration, _ = flags.GetDuration("time-unit")
	if seed, _ := flags.GetUint64("seed"); seed != 0 {
		sess.Seed = &seed
	}

	points, _ := flags.GetStringArray("at")
	if len(points) == 0 {
		w, h := sess.Canvas.Width, sess.Canvas.Height
		if w == 0 || h == 0 {
			w, h = config.DefaultWidth, config.DefaultHeight
		}
		points = []string{fmt.Sprintf("%d,%d", w/2, h/2)}
	}
	for _, p := range points {
		pt, err := parsePoint(p)
		if err != nil {
			return nil, err
		}
		sess.Events = append(sess.Events, config.Event{Press: &pt})
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return sess, nil
}

func parsePoint(s string) (config.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return config.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return config.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return config.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return config.Point{X: x, Y: y}, nil
}

func writeOutput(path string, raster *canvas.Raster, vector *canvas.SVG) error {
	if strings.ToLower(filepath.Ext(path)) == ".png" {
		return raster.SavePNG(path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := vector.Encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
