//go:build !windows

package testutil

import (
	"github.com/frudas24/convertible-couch/internal/display"
	"github.com/frudas24/convertible-couch/internal/monitor"
)

// stagedChange holds the submitted position.
type stagedChange struct {
	pos monitor.Position
}

// stage records settings for devicePath.
func stage(_ string, s display.Settings) (stagedChange, error) {
	return stagedChange{pos: s.Position}, nil
}

// position returns the staged anchor.
func (c stagedChange) position() monitor.Position {
	return c.pos
}
