//go:build windows

package testutil

import (
	"github.com/lxn/win"

	"github.com/frudas24/convertible-couch/internal/display"
	"github.com/frudas24/convertible-couch/internal/monitor"
)

// stagedChange holds settings in the DEVMODE form a Windows adapter submits.
type stagedChange struct {
	mode win.DEVMODE
}

// stage converts settings for devicePath into a DEVMODE.
func stage(devicePath string, s display.Settings) (stagedChange, error) {
	dm, err := s.DevMode(devicePath)
	if err != nil {
		return stagedChange{}, err
	}
	return stagedChange{mode: dm}, nil
}

// position reads the staged anchor back from the DEVMODE.
func (c stagedChange) position() monitor.Position {
	x, y := display.PositionOf(&c.mode)
	return monitor.Position{X: x, Y: y}
}
