// Package testutil provides test doubles for the display API.
package testutil

import (
	"fmt"

	"github.com/frudas24/convertible-couch/internal/display"
	"github.com/frudas24/convertible-couch/internal/monitor"
)

// FakeMonitor is a monitor attached to a fake video output.
type FakeMonitor struct {
	Name             string
	DeviceID         string
	ConfigModeInfoID uint32
	Position         monitor.Position
	Resolution       monitor.Resolution
}

// FakeOutput is a fake video output, unplugged when Monitor is nil.
type FakeOutput struct {
	DevicePath string
	Monitor    *FakeMonitor
}

// FakeDisplayConfig configures a FakeDisplay and the failures it reports.
type FakeDisplayConfig struct {
	Outputs []FakeOutput
	// CommitError is returned by CommitDisplaySettings when set.
	CommitError *display.DispChange
	// ChangeErrors maps device paths to the code ChangeDisplaySettings returns for them.
	ChangeErrors              map[string]display.DispChange
	PrimaryMonitorNameFails   bool
	PrimaryDisplayConfigFails bool
}

// Call records a single display API call.
type Call struct {
	Name       string
	DevicePath string
	Settings   display.Settings
}

// FakeDisplay implements display.API over an in-memory topology and records calls for tests.
type FakeDisplay struct {
	Calls []Call

	cfg     FakeDisplayConfig
	outputs []FakeOutput
	pending map[string]stagedChange
	order   []string
}

// Ensure FakeDisplay implements the interface.
var _ display.API = (*FakeDisplay)(nil)

// NewFakeDisplay returns a fake over a private copy of cfg.Outputs.
func NewFakeDisplay(cfg FakeDisplayConfig) *FakeDisplay {
	outputs := make([]FakeOutput, len(cfg.Outputs))
	for i, o := range cfg.Outputs {
		outputs[i] = FakeOutput{DevicePath: o.DevicePath}
		if o.Monitor != nil {
			m := *o.Monitor
			outputs[i].Monitor = &m
		}
	}
	return &FakeDisplay{
		cfg:     cfg,
		outputs: outputs,
		pending: map[string]stagedChange{},
	}
}

// VideoOutputs lists every output with its monitor, if any.
func (f *FakeDisplay) VideoOutputs() ([]display.VideoOutput, error) {
	f.Calls = append(f.Calls, Call{Name: "VideoOutputs"})
	out := make([]display.VideoOutput, len(f.outputs))
	for i, o := range f.outputs {
		out[i] = display.VideoOutput{DevicePath: o.DevicePath}
		if o.Monitor != nil {
			out[i].Monitor = &display.MonitorInfo{
				Name:     o.Monitor.Name,
				DeviceID: o.Monitor.DeviceID,
				Primary:  o.Monitor.Position.IsOrigin(),
			}
		}
	}
	return out, nil
}

// DisplayConfig lists the active paths of plugged outputs.
func (f *FakeDisplay) DisplayConfig() ([]display.PathInfo, error) {
	f.Calls = append(f.Calls, Call{Name: "DisplayConfig"})
	var out []display.PathInfo
	for _, o := range f.outputs {
		if o.Monitor != nil {
			out = append(out, pathInfo(o))
		}
	}
	return out, nil
}

// PrimaryMonitorName returns the name of the monitor at the origin.
func (f *FakeDisplay) PrimaryMonitorName() (string, error) {
	f.Calls = append(f.Calls, Call{Name: "PrimaryMonitorName"})
	if f.cfg.PrimaryMonitorNameFails {
		return "", display.ErrPrimaryMonitorName
	}
	o, ok := f.primary()
	if !ok {
		return "", fmt.Errorf("%w: no monitor at the origin", display.ErrPrimaryMonitorName)
	}
	return o.Monitor.Name, nil
}

// PrimaryDisplayConfig returns the active path of the monitor at the origin.
func (f *FakeDisplay) PrimaryDisplayConfig() (display.PathInfo, error) {
	f.Calls = append(f.Calls, Call{Name: "PrimaryDisplayConfig"})
	if f.cfg.PrimaryDisplayConfigFails {
		return display.PathInfo{}, display.ErrQueryDisplayConfig
	}
	o, ok := f.primary()
	if !ok {
		return display.PathInfo{}, fmt.Errorf("%w: no monitor at the origin", display.ErrQueryDisplayConfig)
	}
	return pathInfo(o), nil
}

// ChangeDisplaySettings stages settings for devicePath unless a failure is configured for it.
// SetPrimary away from the origin is rejected with DispChangeBadParam.
func (f *FakeDisplay) ChangeDisplaySettings(devicePath string, settings display.Settings) error {
	f.Calls = append(f.Calls, Call{Name: "ChangeDisplaySettings", DevicePath: devicePath, Settings: settings})
	if !f.plugged(devicePath) {
		return fmt.Errorf("%w: %s", display.ErrUnknownDevice, devicePath)
	}
	if code, ok := f.cfg.ChangeErrors[devicePath]; ok {
		return &display.ChangeError{DevicePath: devicePath, Code: code}
	}
	if settings.SetPrimary && !settings.Position.IsOrigin() {
		return &display.ChangeError{DevicePath: devicePath, Code: display.DispChangeBadParam}
	}
	change, err := stage(devicePath, settings)
	if err != nil {
		return fmt.Errorf("stage %s: %w", devicePath, err)
	}
	if _, staged := f.pending[devicePath]; !staged {
		f.order = append(f.order, devicePath)
	}
	f.pending[devicePath] = change
	return nil
}

// CommitDisplaySettings applies staged positions unless a commit failure is configured.
// The monitor left at the origin becomes the primary.
// A configured restart code applies them and reports that a restart is required.
func (f *FakeDisplay) CommitDisplaySettings() (bool, error) {
	f.Calls = append(f.Calls, Call{Name: "CommitDisplaySettings"})
	defer f.resetPending()
	if code := f.cfg.CommitError; code != nil && *code != display.DispChangeRestart {
		return false, &display.ChangeError{Code: *code}
	}
	for _, path := range f.order {
		for i := range f.outputs {
			if f.outputs[i].DevicePath == path && f.outputs[i].Monitor != nil {
				f.outputs[i].Monitor.Position = f.pending[path].position()
			}
		}
	}
	return f.cfg.CommitError != nil, nil
}

// CallNames returns the names of recorded calls in order.
func (f *FakeDisplay) CallNames() []string {
	names := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		names[i] = c.Name
	}
	return names
}

// resetPending drops staged settings.
func (f *FakeDisplay) resetPending() {
	f.pending = map[string]stagedChange{}
	f.order = nil
}

// primary returns the output whose monitor sits at the origin.
func (f *FakeDisplay) primary() (FakeOutput, bool) {
	var plugged []FakeOutput
	var anchors []monitor.PositionedResolution
	for _, o := range f.outputs {
		if o.Monitor != nil {
			plugged = append(plugged, o)
			anchors = append(anchors, monitor.PositionedResolution{Position: o.Monitor.Position, Resolution: o.Monitor.Resolution})
		}
	}
	i, ok := monitor.FindPrimary(anchors)
	if !ok {
		return FakeOutput{}, false
	}
	return plugged[i], true
}

// plugged reports whether devicePath names an output with a monitor.
func (f *FakeDisplay) plugged(devicePath string) bool {
	for _, o := range f.outputs {
		if o.DevicePath == devicePath {
			return o.Monitor != nil
		}
	}
	return false
}

// pathInfo converts a plugged output to its display-config view.
func pathInfo(o FakeOutput) display.PathInfo {
	return display.PathInfo{
		DevicePath:       o.DevicePath,
		DeviceID:         o.Monitor.DeviceID,
		ConfigModeInfoID: o.Monitor.ConfigModeInfoID,
		Position:         o.Monitor.Position,
		Resolution:       o.Monitor.Resolution,
	}
}
