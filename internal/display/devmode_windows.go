//go:build windows

package display

import (
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// DevMode converts staged settings into the DEVMODE passed to ChangeDisplaySettingsEx.
func (s Settings) DevMode(devicePath string) (win.DEVMODE, error) {
	var dm win.DEVMODE
	dm.DmSize = uint16(unsafe.Sizeof(dm))
	dm.DmFields = win.DM_POSITION

	name, err := windows.UTF16FromString(devicePath)
	if err != nil {
		return win.DEVMODE{}, err
	}
	if len(name) > len(dm.DmDeviceName) {
		name = name[:len(dm.DmDeviceName)]
		name[len(name)-1] = 0
	}
	copy(dm.DmDeviceName[:], name)

	// dmPosition shares its storage with the printer orientation fields.
	pos := (*win.POINT)(unsafe.Pointer(&dm.DmOrientation))
	pos.X = int32(s.Position.X)
	pos.Y = int32(s.Position.Y)
	return dm, nil
}

// PositionOf reads the display position stored in a DEVMODE.
func PositionOf(dm *win.DEVMODE) (x, y int) {
	pos := (*win.POINT)(unsafe.Pointer(&dm.DmOrientation))
	return int(pos.X), int(pos.Y)
}
