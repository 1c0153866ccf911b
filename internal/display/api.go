// Package display defines the display-configuration API consumed by the primary swap.
package display

import (
	"errors"
	"fmt"

	"github.com/frudas24/convertible-couch/internal/monitor"
)

// ErrPrimaryMonitorName indicates the friendly name of the primary monitor could not be read.
var ErrPrimaryMonitorName = errors.New("display: cannot get the primary monitor name")

// ErrQueryDisplayConfig indicates the display configuration of the primary monitor could not be queried.
var ErrQueryDisplayConfig = errors.New("display: cannot query the display config of the primary monitor")

// ErrUnknownDevice indicates a device path that no video output exposes.
var ErrUnknownDevice = errors.New("display: unknown device path")

// MonitorInfo describes the monitor attached to a video output.
type MonitorInfo struct {
	Name     string `json:"name" yaml:"name"`
	DeviceID string `json:"deviceId" yaml:"device_id"`
	Primary  bool   `json:"primary" yaml:"primary"`
}

// VideoOutput is one display-adapter output, optionally populated with a monitor.
type VideoOutput struct {
	DevicePath string       `json:"devicePath" yaml:"device_path"`
	Monitor    *MonitorInfo `json:"monitor,omitempty" yaml:"monitor,omitempty"`
}

// Plugged reports whether a monitor is attached.
func (v VideoOutput) Plugged() bool {
	return v.Monitor != nil
}

// PathInfo is the display-config view of an active monitor path.
type PathInfo struct {
	DevicePath       string             `json:"devicePath" yaml:"device_path"`
	DeviceID         string             `json:"deviceId" yaml:"device_id"`
	ConfigModeInfoID uint32             `json:"configModeInfoId" yaml:"config_mode_info_id"`
	Position         monitor.Position   `json:"position" yaml:"position"`
	Resolution       monitor.Resolution `json:"resolution" yaml:"resolution"`
}

// Settings is a staged display-settings change for one device path.
type Settings struct {
	Position monitor.Position
	// SetPrimary requests the device to become the primary display. The primary is
	// whichever monitor is anchored at the origin, so it requires Position to be the origin.
	SetPrimary bool
}

// ChangeError reports a DISP_CHANGE failure, optionally bound to a device path.
type ChangeError struct {
	DevicePath string
	Code       DispChange
}

// Error implements error.
func (e *ChangeError) Error() string {
	if e.DevicePath == "" {
		return fmt.Sprintf("display: committing the display changes failed: %s", e.Code)
	}
	return fmt.Sprintf("display: changing the display settings of %s failed: %s", e.DevicePath, e.Code)
}

// API defines the display operations used by the primary swap.
type API interface {
	VideoOutputs() ([]VideoOutput, error)
	DisplayConfig() ([]PathInfo, error)
	PrimaryMonitorName() (string, error)
	PrimaryDisplayConfig() (PathInfo, error)
	ChangeDisplaySettings(devicePath string, settings Settings) error
	CommitDisplaySettings() (restartRequired bool, err error)
}
