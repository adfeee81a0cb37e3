// Package server exposes an engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gogpu/gg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/lsystem"
)

// Engine is the part of lsystem.Engine the server drives.
type Engine interface {
	Config() lsystem.Config
	SetFamily(lsystem.Family) error
	SetColor(gg.RGBA)
	SetStrokeSize(int) error
	Press(ctx context.Context, x, y float64) (*lsystem.Figure, error)
	Release(ctx context.Context) bool
	Clear()
	Figures() int
}

// Snapshot writes the current canvas to w in one image format.
type Snapshot func(w io.Writer) error

// Options configures the handler. PNG and SVG may be nil, in which case the
// matching endpoint answers 404. Gatherer defaults to the global registry.
type Options struct {
	PNG      Snapshot
	SVG      Snapshot
	Gatherer prometheus.Gatherer
}

// Server handles the HTTP API.
type Server struct {
	Engine Engine
	opts   Options
}

// NewHandler creates the HTTP handler for engine.
func NewHandler(engine Engine, opts Options) http.Handler {
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{Engine: engine, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/families", s.families)
	r.Get("/config", s.getConfig)
	r.Put("/config", s.putConfig)
	r.Post("/press", s.press)
	r.Post("/release", s.release)
	r.Post("/clear", s.clear)
	r.Get("/canvas.png", s.snapshot(opts.PNG, "image/png"))
	r.Get("/canvas.svg", s.snapshot(opts.SVG, "image/svg+xml"))
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// ConfigBody is the wire form of lsystem.Config. On PUT, empty fields are
// left unchanged.
type ConfigBody struct {
	Family     string `json:"family,omitempty"`
	Color      string `json:"color,omitempty"`
	StrokeSize int    `json:"stroke_size,omitempty"`
}

// FamilyBody describes one family.
type FamilyBody struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// PressBody is the body of POST /press.
type PressBody struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FigureBody reports the outcome of a press.
type FigureBody struct {
	Family  string `json:"family"`
	Nodes   int    `json:"nodes"`
	Strokes int    `json:"strokes"`
	Aborted bool   `json:"aborted"`
	Reason  string `json:"reason,omitempty"`
	Figures int    `json:"figures"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) families(w http.ResponseWriter, r *http.Request) {
	out := make([]FamilyBody, 0, len(lsystem.Families()))
	for _, f := range lsystem.Families() {
		out = append(out, FamilyBody{Name: f.String(), Title: f.Title()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configBody(s.Engine.Config()))
}

func (s *Server) putConfig(w http.ResponseWriter, r *http.Request) {
	var body ConfigBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Parse everything first so a bad field changes nothing.
	var (
		family lsystem.Family
		color  gg.RGBA
		err    error
	)
	if body.Family != "" {
		if family, err = lsystem.ParseFamily(body.Family); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if body.Color != "" {
		if color, err = lsystem.ParseColor(body.Color); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if body.StrokeSize != 0 && (body.StrokeSize < lsystem.MinStrokeSize || body.StrokeSize > lsystem.MaxStrokeSize) {
		http.Error(w, fmt.Sprintf("%v: %d", lsystem.ErrStrokeSize, body.StrokeSize), http.StatusBadRequest)
		return
	}

	if body.Family != "" {
		if err := s.Engine.SetFamily(family); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if body.Color != "" {
		s.Engine.SetColor(color)
	}
	if body.StrokeSize != 0 {
		if err := s.Engine.SetStrokeSize(body.StrokeSize); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	writeJSON(w, http.StatusOK, configBody(s.Engine.Config()))
}

func (s *Server) press(w http.ResponseWriter, r *http.Request) {
	var body PressBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fig, err := s.Engine.Press(r.Context(), body.X, body.Y)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, lsystem.ErrClosed) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, fmt.Sprintf("Press error: %v", err), status)
		return
	}

	resp := FigureBody{
		Family:  fig.Family.String(),
		Nodes:   fig.Nodes,
		Strokes: fig.Strokes,
		Aborted: fig.Aborted,
		Figures: s.Engine.Figures(),
	}
	if fig.Err != nil {
		resp.Reason = fig.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) release(w http.ResponseWriter, r *http.Request) {
	erased := s.Engine.Release(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"erased":  erased,
		"figures": s.Engine.Figures(),
	})
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	s.Engine.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) snapshot(snap Snapshot, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if snap == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		if err := snap(w); err != nil {
			lsystem.Logger().Error("server: snapshot failed", "content_type", contentType, "err", err)
		}
	}
}

func configBody(c lsystem.Config) ConfigBody {
	return ConfigBody{
		Family:     c.Family.String(),
		Color:      lsystem.FormatColor(c.Color),
		StrokeSize: c.StrokeSize,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		lsystem.Logger().Warn("server: encode response", "err", err)
	}
}
