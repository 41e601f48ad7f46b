package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnknownWidget is returned when a layout leaf resolves to no widget the
	// renderer can drive.
	ErrUnknownWidget = errors.New("tui: unknown widget")
)
