// Package config loads drawing sessions: the canvas, engine settings and a
// scripted list of events replayed against an engine.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/lsystem"
)

// Defaults applied to fields left empty.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Duration is a time.Duration written as "250us", "1ms" and so on.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Canvas describes the drawing surface.
type Canvas struct {
	Width      int    `yaml:"width" json:"width"`
	Height     int    `yaml:"height" json:"height"`
	Background string `yaml:"background" json:"background"`
}

// Point is a press location.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Event is one scripted user action. Exactly one field must be set.
type Event struct {
	Family  string `yaml:"family,omitempty" json:"family,omitempty"`
	Color   string `yaml:"color,omitempty" json:"color,omitempty"`
	Size    int    `yaml:"size,omitempty" json:"size,omitempty"`
	Press   *Point `yaml:"press,omitempty" json:"press,omitempty"`
	Release bool   `yaml:"release,omitempty" json:"release,omitempty"`
	Clear   bool   `yaml:"clear,omitempty" json:"clear,omitempty"`
	Wait    bool   `yaml:"wait,omitempty" json:"wait,omitempty"`

	family lsystem.Family
	color  gg.RGBA
}

// Session is a complete drawing session file.
type Session struct {
	Canvas       Canvas   `yaml:"canvas" json:"canvas"`
	Seed         *uint64  `yaml:"seed,omitempty" json:"seed,omitempty"`
	TimeUnit     Duration `yaml:"time_unit" json:"time_unit"`
	HistoryLimit int      `yaml:"history_limit" json:"history_limit"`
	MaxNodes     int      `yaml:"max_nodes" json:"max_nodes"`
	Family       string   `yaml:"family" json:"family"`
	Color        string   `yaml:"color" json:"color"`
	StrokeSize   int      `yaml:"stroke_size" json:"stroke_size"`
	Events       []Event  `yaml:"events" json:"events"`

	background gg.RGBA
	family     lsystem.Family
	color      gg.RGBA
}

// Load reads a session from a YAML or JSON file, chosen by extension, and
// validates it.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
}

// Parse decodes and validates a session. YAML is assumed unless isJSON.
func Parse(data []byte, isJSON bool) (*Session, error) {
	var s Session
	if isJSON {
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse session json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse session yaml: %w", err)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate fills in defaults and checks every field and event.
func (s *Session) Validate() error {
	if s.Canvas.Width == 0 {
		s.Canvas.Width = DefaultWidth
	}
	if s.Canvas.Height == 0 {
		s.Canvas.Height = DefaultHeight
	}
	if s.Canvas.Width < 0 || s.Canvas.Height < 0 {
		return fmt.Errorf("canvas size %dx%d is negative", s.Canvas.Width, s.Canvas.Height)
	}
	if s.TimeUnit.Duration < 0 {
		return fmt.Errorf("time_unit %v is negative", s.TimeUnit)
	}
	if s.HistoryLimit < 0 || s.MaxNodes < 0 {
		return errors.New("history_limit and max_nodes must not be negative")
	}

	s.background = lsystem.DefaultBackground
	if s.Canvas.Background != "" {
		c, err := lsystem.ParseColor(s.Canvas.Background)
		if err != nil {
			return fmt.Errorf("canvas background: %w", err)
		}
		s.background = c
	}

	s.family = lsystem.Original
	if s.Family != "" {
		f, err := lsystem.ParseFamily(s.Family)
		if err != nil {
			return err
		}
		s.family = f
	}
	s.color = lsystem.DefaultColor
	if s.Color != "" {
		c, err := lsystem.ParseColor(s.Color)
		if err != nil {
			return err
		}
		s.color = c
	}
	if s.StrokeSize == 0 {
		s.StrokeSize = lsystem.DefaultStrokeSize
	}
	if s.StrokeSize < lsystem.MinStrokeSize || s.StrokeSize > lsystem.MaxStrokeSize {
		return fmt.Errorf("%w: %d", lsystem.ErrStrokeSize, s.StrokeSize)
	}

	for i := range s.Events {
		if err := s.Events[i].validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

func (e *Event) validate() error {
	set := 0
	for _, ok := range []bool{e.Family != "", e.Color != "", e.Size != 0, e.Press != nil, e.Release, e.Clear, e.Wait} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("want exactly one action, got %d", set)
	}

	switch {
	case e.Family != "":
		f, err := lsystem.ParseFamily(e.Family)
		if err != nil {
			return err
		}
		e.family = f
	case e.Color != "":
		c, err := lsystem.ParseColor(e.Color)
		if err != nil {
			return err
		}
		e.color = c
	case e.Size != 0:
		if e.Size < lsystem.MinStrokeSize || e.Size > lsystem.MaxStrokeSize {
			return fmt.Errorf("%w: %d", lsystem.ErrStrokeSize, e.Size)
		}
	}
	return nil
}

// Background returns the parsed canvas background.
func (s *Session) Background() gg.RGBA {
	return s.background
}

// Options converts the session settings into engine options.
func (s *Session) Options() []lsystem.Option {
	opts := []lsystem.Option{
		lsystem.WithBackground(s.background),
		lsystem.WithTimeUnit(s.TimeUnit.Duration),
		lsystem.WithHistoryLimit(s.HistoryLimit),
		lsystem.WithMaxNodes(s.MaxNodes),
		lsystem.WithFamily(s.family),
		lsystem.WithColor(s.color),
		lsystem.WithStrokeSize(s.StrokeSize),
	}
	if s.Seed != nil {
		opts = append(opts, lsystem.WithSeed(*s.Seed))
	}
	return opts
}

// Player is the part of an engine a session drives.
type Player interface {
	SetFamily(lsystem.Family) error
	SetColor(gg.RGBA)
	SetStrokeSize(int) error
	Press(ctx context.Context, x, y float64) (*lsystem.Figure, error)
	Release(ctx context.Context) bool
	Clear()
	Wait()
}

// Play replays the session's events against p in order and waits for the
// last animation before returning.
func (s *Session) Play(ctx context.Context, p Player) error {
	log := lsystem.Logger()
	for i, e := range s.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch {
		case e.Family != "":
			if err := p.SetFamily(e.family); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
		case e.Color != "":
			p.SetColor(e.color)
		case e.Size != 0:
			if err := p.SetStrokeSize(e.Size); err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
		case e.Press != nil:
			fig, err := p.Press(ctx, e.Press.X, e.Press.Y)
			if err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			log.Debug("session: press", "event", i, "family", fig.Family, "strokes", fig.Strokes)
		case e.Release:
			if !p.Release(ctx) {
				log.Debug("session: release with nothing to erase", "event", i)
			}
		case e.Clear:
			p.Clear()
		case e.Wait:
			p.Wait()
		}
	}
	p.Wait()
	return nil
}
