package lsystem

import "errors"

var (
	// ErrUnknownFamily is returned for a family tag outside the six known ones.
	ErrUnknownFamily = errors.New("lsystem: unknown family")

	// ErrStrokeSize is returned for a stroke size outside [MinStrokeSize, MaxStrokeSize].
	ErrStrokeSize = errors.New("lsystem: stroke size out of range")

	// ErrColor is returned when a colour string cannot be parsed.
	ErrColor = errors.New("lsystem: invalid color")

	// ErrNodeBudget aborts a generation run that produced more nodes than allowed.
	ErrNodeBudget = errors.New("lsystem: node budget exceeded")

	// ErrUnbalancedBracket aborts a fractal plant run that pops an empty stack.
	ErrUnbalancedBracket = errors.New("lsystem: unbalanced bracket")

	// ErrClosed is returned by an Engine after Close.
	ErrClosed = errors.New("lsystem: engine closed")
)
