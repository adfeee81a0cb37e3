package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/lsystem"
	"github.com/gogpu/lsystem/canvas"
)

const sessionYAML = `
canvas:
  width: 320
  height: 240
  background: "#101010"
seed: 99
time_unit: 0s
history_limit: 4
family: lichtenberg
stroke_size: 3
events:
  - press: {x: 100, y: 120}
  - family: Cracked Earth
  - color: red
  - size: 7
  - press: {x: 200, y: 60}
  - release: true
  - clear: true
  - wait: true
`

func TestParse_YAML(t *testing.T) {
	s, err := Parse([]byte(sessionYAML), false)
	require.NoError(t, err)

	assert.Equal(t, 320, s.Canvas.Width)
	assert.Equal(t, 240, s.Canvas.Height)
	require.NotNil(t, s.Seed)
	assert.Equal(t, uint64(99), *s.Seed)
	assert.Equal(t, time.Duration(0), s.TimeUnit.Duration)
	assert.Equal(t, 3, s.StrokeSize)
	assert.Len(t, s.Events, 8)
	assert.Equal(t, lsystem.CrackedEarth, s.Events[1].family)
	assert.Equal(t, gg.RGBA{R: 1, A: 1}, s.Events[2].color)
	assert.InDelta(t, 16.0/255, s.Background().R, 1e-9)
}

func TestParse_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	data := `{"time_unit": "2ms", "events": [{"press": {"x": 1, "y": 2}}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Millisecond, s.TimeUnit.Duration)
	assert.Equal(t, DefaultWidth, s.Canvas.Width)
	assert.Equal(t, DefaultHeight, s.Canvas.Height)
	assert.Equal(t, lsystem.DefaultStrokeSize, s.StrokeSize)
	assert.Nil(t, s.Seed)
	require.Len(t, s.Events, 1)
	assert.Equal(t, Point{X: 1, Y: 2}, *s.Events[0].Press)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"two actions":     "events:\n  - release: true\n    clear: true\n",
		"no action":       "events:\n  - {}\n",
		"bad family":      "family: koch\n",
		"bad event size":  "events:\n  - size: 11\n",
		"bad stroke size": "stroke_size: 12\n",
		"bad colour":      "events:\n  - color: '#12'\n",
		"bad background":  "canvas: {background: nope}\n",
		"negative width":  "canvas: {width: -1}\n",
		"bad duration":    "time_unit: soon\n",
		"negative limit":  "history_limit: -2\n",
		"not yaml":        "events: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), false)
			assert.Error(t, err)
		})
	}
}

func TestSession_PlayAgainstEngine(t *testing.T) {
	s, err := Parse([]byte(sessionYAML), false)
	require.NoError(t, err)

	rec := canvas.NewRecorder()
	e, err := lsystem.New(rec, s.Options()...)
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, s.Play(context.Background(), e))

	cfg := e.Config()
	assert.Equal(t, lsystem.CrackedEarth, cfg.Family)
	assert.Equal(t, 7, cfg.StrokeSize)
	assert.Equal(t, gg.RGBA{R: 1, A: 1}, cfg.Color)
	assert.Equal(t, 1, e.Figures(), "second figure was released")

	cmds := rec.Commands()
	require.NotEmpty(t, cmds)
	last := cmds[len(cmds)-1]
	assert.Equal(t, canvas.OpFill, last.Op)
	assert.Equal(t, s.Background(), last.Color)
	assert.NotEmpty(t, rec.Lines(gg.RGBA{R: 1, A: 1}), "red figure drawn")
}

func TestSession_PlayCancelled(t *testing.T) {
	s, err := Parse([]byte(sessionYAML), false)
	require.NoError(t, err)

	e, err := lsystem.New(canvas.NewRecorder(), s.Options()...)
	require.NoError(t, err)
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Play(ctx, e), context.Canceled)
	assert.Equal(t, 0, e.Figures())
}
