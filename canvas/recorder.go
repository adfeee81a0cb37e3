package canvas

import (
	"sync"

	"github.com/gogpu/gg"
)

// Op identifies a recorded paint command.
type Op uint8

const (
	// OpLine is a StrokeLine call.
	OpLine Op = iota
	// OpFill is a Fill call.
	OpFill
)

// Command is one recorded paint call. From, To and Width are zero for fills.
type Command struct {
	Op       Op
	From, To gg.Point
	Color    gg.RGBA
	Width    float64
}

// Recorder logs paint commands in call order. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// StrokeLine records a line command.
func (r *Recorder) StrokeLine(from, to gg.Point, c gg.RGBA, width float64) {
	r.mu.Lock()
	r.commands = append(r.commands, Command{Op: OpLine, From: from, To: to, Color: c, Width: width})
	r.mu.Unlock()
}

// Fill records a fill command.
func (r *Recorder) Fill(c gg.RGBA) {
	r.mu.Lock()
	r.commands = append(r.commands, Command{Op: OpFill, Color: c})
	r.mu.Unlock()
}

// Commands returns a copy of everything recorded so far.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Lines returns the recorded line commands painted in colour c.
func (r *Recorder) Lines(c gg.RGBA) []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Command
	for _, cmd := range r.commands {
		if cmd.Op == OpLine && cmd.Color == c {
			out = append(out, cmd)
		}
	}
	return out
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.commands)
}

// Reset forgets every recorded command.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.commands = r.commands[:0]
	r.mu.Unlock()
}
