package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/gogpu/lsystem"
	"github.com/gogpu/lsystem/canvas"
	"github.com/gogpu/lsystem/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP drawing server",
		Long: `Starts an engine on an in-memory canvas and exposes it over HTTP:
press and release figures, change the configuration, and fetch the canvas
as PNG or SVG. Prometheus metrics are served on /metrics.`,
		RunE: runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "Address to listen on")
	f.Int("width", 800, "Canvas width")
	f.Int("height", 600, "Canvas height")
	f.String("background", "white", "Background colour, name or hex")
	f.Uint64("seed", 0, "Random seed; 0 picks a random one")
	f.Duration("time-unit", time.Millisecond, "Animation time unit")
	f.Int("workers", 0, "Paint workers; 0 uses GOMAXPROCS")
	f.Int("history", 0, "Figures kept for erasing; 0 is unlimited")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	addr, _ := flags.GetString("addr")
	width, _ := flags.GetInt("width")
	height, _ := flags.GetInt("height")
	bgName, _ := flags.GetString("background")
	seed, _ := flags.GetUint64("seed")
	unit, _ := flags.GetDuration("time-unit")
	workers, _ := flags.GetInt("workers")
	history, _ := flags.GetInt("history")

	bg, err := lsystem.ParseColor(bgName)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	raster := canvas.NewRaster(width, height, bg)
	defer raster.Close()
	vector := canvas.NewSVG(width, height, bg)

	opts := []lsystem.Option{
		lsystem.WithBackground(bg),
		lsystem.WithTimeUnit(unit),
		lsystem.WithWorkers(workers),
		lsystem.WithHistoryLimit(history),
		lsystem.WithRegisterer(reg),
	}
	if seed != 0 {
		opts = append(opts, lsystem.WithSeed(seed))
	}
	engine, err := lsystem.New(canvas.Multi{raster, vector}, opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	snapshot := func(encode func(io.Writer) error) server.Snapshot {
		return func(w io.Writer) error {
			var err error
			engine.Exclusive(func(lsystem.Canvas) { err = encode(w) })
			return err
		}
	}
	handler := server.NewHandler(engine, server.Options{
		PNG:      snapshot(raster.EncodePNG),
		SVG:      snapshot(vector.Encode),
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting lsystem server", "addr", srv.Addr, "width", width, "height", height)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("killing server: %w", err)
			}
		}
		slog.Info("lsystem server stopped")
	}
	return nil
}
