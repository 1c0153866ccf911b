package fuzzing

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/frudas24/convertible-couch/internal/display"
	"github.com/frudas24/convertible-couch/internal/testutil"
)

// Placeholders reported when no plugged monitor holds the role.
const (
	PrimarySentinel   = "<primary>"
	SecondarySentinel = "<secondary>"
)

// ErrInvalidConfig wraps every configuration error reported by Build.
var ErrInvalidConfig = errors.New("fuzzing: invalid computer configuration")

// FailureInjection lists the failures the fake display API reports.
type FailureInjection struct {
	Commit               *display.DispChange           `json:"commit,omitempty" yaml:"commit,omitempty"`
	PerMonitor           map[string]display.DispChange `json:"perMonitor,omitempty" yaml:"per_monitor,omitempty"`
	PrimaryMonitorName   bool                          `json:"primaryMonitorName,omitempty" yaml:"primary_monitor_name,omitempty"`
	PrimaryDisplayConfig bool                          `json:"primaryDisplayConfig,omitempty" yaml:"primary_display_config,omitempty"`
}

// FuzzedComputer is one generated topology and the fake API serving it.
type FuzzedComputer struct {
	ID               uuid.UUID           `json:"id" yaml:"id"`
	Seed             uint64              `json:"seed" yaml:"seed"`
	VideoOutputs     []FuzzedVideoOutput `json:"videoOutputs" yaml:"video_outputs"`
	PrimaryMonitor   string              `json:"primaryMonitor" yaml:"primary_monitor"`
	SecondaryMonitor string              `json:"secondaryMonitor" yaml:"secondary_monitor"`
	Monitors         []string            `json:"monitors" yaml:"monitors"`
	Failures         FailureInjection    `json:"failures" yaml:"failures"`

	Display *testutil.FakeDisplay `json:"-" yaml:"-"`
}

// PluggedDevicePaths returns the device paths of outputs with a monitor, in output order.
func (c FuzzedComputer) PluggedDevicePaths() []string {
	return pluggedDevicePaths(c.VideoOutputs)
}

// ComputerFuzzer configures and builds FuzzedComputers. Configuration methods
// return the receiver so calls chain; the first configuration error is kept and returned by Build.
type ComputerFuzzer struct {
	seed uint64
	err  error

	minMonitors          int
	maxMonitors          int
	exclusions           Exclusions
	hasAnInternalDisplay bool

	commitError                 *display.DispChange
	perMonitorError             *display.DispChange
	gettingPrimaryNameFails     bool
	queryingPrimaryDisplayFails bool
}

// NewComputerFuzzer returns a fuzzer whose topologies are fully determined by seed and its configuration.
func NewComputerFuzzer(seed uint64) *ComputerFuzzer {
	return &ComputerFuzzer{seed: seed}
}

// Seed returns the seed the fuzzer builds from.
func (f *ComputerFuzzer) Seed() uint64 {
	return f.seed
}

// WithNMonitors builds exactly n monitors on exactly n video outputs.
func (f *ComputerFuzzer) WithNMonitors(n int) *ComputerFuzzer {
	return f.WithARangeOfMonitors(n, n)
}

// WithTwoMonitorsOrMore builds between 2 and MaxVideoOutputs monitors.
func (f *ComputerFuzzer) WithTwoMonitorsOrMore() *ComputerFuzzer {
	return f.WithARangeOfMonitors(2, MaxVideoOutputs)
}

// WithTwoMonitorsOrMoreWithNamesDifferentThan builds two monitors or more, none named after names.
func (f *ComputerFuzzer) WithTwoMonitorsOrMoreWithNamesDifferentThan(names ...string) *ComputerFuzzer {
	f.exclusions.Names = setOf(names)
	return f.WithTwoMonitorsOrMore()
}

// WithTwoMonitorsOrMoreWithDeviceIDsDifferentThan builds two monitors or more, none using deviceIDs.
func (f *ComputerFuzzer) WithTwoMonitorsOrMoreWithDeviceIDsDifferentThan(deviceIDs ...string) *ComputerFuzzer {
	f.exclusions.DeviceIDs = setOf(deviceIDs)
	return f.WithTwoMonitorsOrMore()
}

// WithAnInternalDisplayAndAtLeastOneMoreMonitor makes the primary an unnamed internal panel next to other monitors.
func (f *ComputerFuzzer) WithAnInternalDisplayAndAtLeastOneMoreMonitor() *ComputerFuzzer {
	f.hasAnInternalDisplay = true
	return f.WithTwoMonitorsOrMore()
}

// WithAnInternalDisplay makes the primary monitor an unnamed internal panel without touching the counts.
func (f *ComputerFuzzer) WithAnInternalDisplay() *ComputerFuzzer {
	f.hasAnInternalDisplay = true
	return f
}

// WithARangeOfMonitors draws the video output count in [minimum, maximum] and the monitor count in
// [minimum, outputs].
func (f *ComputerFuzzer) WithARangeOfMonitors(minimum, maximum int) *ComputerFuzzer {
	switch {
	case minimum < 0:
		f.fail("minimum monitor count %d is negative", minimum)
	case minimum > maximum:
		f.fail("minimum monitor count %d exceeds maximum %d", minimum, maximum)
	case maximum > MaxVideoOutputs:
		f.fail("maximum monitor count %d exceeds the %d video outputs the pixel budget allows", maximum, MaxVideoOutputs)
	default:
		f.minMonitors = minimum
		f.maxMonitors = maximum
	}
	return f
}

// WithNamesDifferentThan forbids names without touching the counts.
func (f *ComputerFuzzer) WithNamesDifferentThan(names ...string) *ComputerFuzzer {
	f.exclusions.Names = setOf(names)
	return f
}

// WithDeviceIDsDifferentThan forbids device ids without touching the counts.
func (f *ComputerFuzzer) WithDeviceIDsDifferentThan(deviceIDs ...string) *ComputerFuzzer {
	f.exclusions.DeviceIDs = setOf(deviceIDs)
	return f
}

// ForWhichCommittingTheDisplayChangesFailsWith makes the commit return code.
// DispChangeRestart commits and reports a required restart instead of failing.
func (f *ComputerFuzzer) ForWhichCommittingTheDisplayChangesFailsWith(code display.DispChange) *ComputerFuzzer {
	if !code.Known() || code == display.DispChangeSuccessful {
		f.fail("commit code %s does not fail the commit", code)
		return f
	}
	f.commitError = &code
	return f
}

// ForWhichChangingTheDisplaySettingsFailsForSomeMonitors makes a random non-empty strict subset of the
// plugged outputs reject settings changes with code.
func (f *ComputerFuzzer) ForWhichChangingTheDisplaySettingsFailsForSomeMonitors(code display.DispChange) *ComputerFuzzer {
	if !code.Known() || !code.IsFailure() {
		f.fail("per-monitor code %s is not a failure", code)
		return f
	}
	f.perMonitorError = &code
	return f
}

// ForWhichGettingThePrimaryMonitorFails makes PrimaryMonitorName fail.
func (f *ComputerFuzzer) ForWhichGettingThePrimaryMonitorFails() *ComputerFuzzer {
	f.gettingPrimaryNameFails = true
	return f
}

// ForWhichQueryingTheDisplayConfigOfThePrimaryMonitorFails makes PrimaryDisplayConfig fail.
func (f *ComputerFuzzer) ForWhichQueryingTheDisplayConfigOfThePrimaryMonitorFails() *ComputerFuzzer {
	f.queryingPrimaryDisplayFails = true
	return f
}

// Err returns the first configuration error, if any.
func (f *ComputerFuzzer) Err() error {
	return f.err
}

// fail records the first configuration error.
func (f *ComputerFuzzer) fail(format string, args ...any) {
	if f.err == nil {
		f.err = fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
}

// Build generates the computer. It does not mutate the fuzzer, so repeated calls return identical topologies.
func (f *ComputerFuzzer) Build() (FuzzedComputer, error) {
	if f.err != nil {
		return FuzzedComputer{}, f.err
	}
	if f.perMonitorError != nil && f.minMonitors < 2 {
		return FuzzedComputer{}, fmt.Errorf("%w: per-monitor failures need at least 2 monitors, the minimum is %d", ErrInvalidConfig, f.minMonitors)
	}

	src := newSource(f.seed)
	monitorFuzzer := NewMonitorFuzzer(src.Uint64())
	positionFuzzer := NewPositionFuzzer(src.Uint64())
	deviceIDFuzzer := NewDeviceIDFuzzer(src.Uint64())
	id, err := uuid.NewRandomFromReader(src.child())
	if err != nil {
		return FuzzedComputer{}, fmt.Errorf("fuzzing: computer id: %w", err)
	}

	nVideoOutputs := src.between(f.minMonitors, f.maxMonitors)
	nMonitors := src.between(f.minMonitors, nVideoOutputs)

	positioned := positionFuzzer.GenerateSeveral(nMonitors)
	monitors := monitorFuzzer.GenerateSeveral(deviceIDFuzzer.GenerateCommonParts(), f.hasAnInternalDisplay, positioned, f.exclusions)
	videoOutputs := VideoOutputFuzzer{}.GenerateSeveral(nVideoOutputs)

	pluggedIndexes := src.sample(nVideoOutputs, nMonitors)
	slices.Sort(pluggedIndexes)
	for monitorIndex, outputIndex := range pluggedIndexes {
		videoOutputs[outputIndex] = videoOutputs[outputIndex].PlugMonitor(monitors[monitorIndex])
	}

	failures := FailureInjection{
		Commit:               f.commitError,
		PrimaryMonitorName:   f.gettingPrimaryNameFails,
		PrimaryDisplayConfig: f.queryingPrimaryDisplayFails,
	}
	if f.perMonitorError != nil {
		failures.PerMonitor = pickFailingDevices(src, videoOutputs, *f.perMonitorError)
	}

	primary := monitorName(videoOutputs, true)
	secondary := monitorName(videoOutputs, false)
	if primary == secondary {
		panic("fuzzing: primary and secondary monitors are the same")
	}

	names := make([]string, 0, nMonitors)
	for _, o := range videoOutputs {
		if o.Monitor != nil {
			names = append(names, o.Monitor.Name)
		}
	}
	slices.Sort(names)

	return FuzzedComputer{
		ID:               id,
		Seed:             f.seed,
		VideoOutputs:     videoOutputs,
		PrimaryMonitor:   primary,
		SecondaryMonitor: secondary,
		Monitors:         names,
		Failures:         failures,
		Display:          newFakeDisplay(videoOutputs, failures),
	}, nil
}

// pickFailingDevices assigns code to k plugged device paths, k uniform in [1, plugged-1].
func pickFailingDevices(src *source, videoOutputs []FuzzedVideoOutput, code display.DispChange) map[string]display.DispChange {
	paths := pluggedDevicePaths(videoOutputs)
	if len(paths) < 2 {
		panic("fuzzing: per-monitor failures need at least 2 plugged monitors")
	}
	k := src.between(1, len(paths)-1)
	out := make(map[string]display.DispChange, k)
	for _, i := range src.sample(len(paths), k) {
		out[paths[i]] = code
	}
	return out
}

// pluggedDevicePaths lists the paths of outputs with a monitor.
func pluggedDevicePaths(videoOutputs []FuzzedVideoOutput) []string {
	var paths []string
	for _, o := range videoOutputs {
		if o.Monitor != nil {
			paths = append(paths, o.DevicePath)
		}
	}
	return paths
}

// monitorName returns the first plugged monitor whose primary flag matches, or the role placeholder.
func monitorName(videoOutputs []FuzzedVideoOutput, primary bool) string {
	for _, o := range videoOutputs {
		if o.Monitor != nil && o.Monitor.Primary == primary {
			return o.Monitor.Name
		}
	}
	if primary {
		return PrimarySentinel
	}
	return SecondarySentinel
}

// newFakeDisplay serves the topology through the display API fake.
func newFakeDisplay(videoOutputs []FuzzedVideoOutput, failures FailureInjection) *testutil.FakeDisplay {
	outputs := make([]testutil.FakeOutput, len(videoOutputs))
	for i, o := range videoOutputs {
		outputs[i] = testutil.FakeOutput{DevicePath: o.DevicePath}
		if m := o.Monitor; m != nil {
			outputs[i].Monitor = &testutil.FakeMonitor{
				Name:             m.Name,
				DeviceID:         m.DeviceID,
				ConfigModeInfoID: m.ConfigModeInfoID,
				Position:         m.Position,
				Resolution:       m.Resolution,
			}
		}
	}
	return testutil.NewFakeDisplay(testutil.FakeDisplayConfig{
		Outputs:                   outputs,
		CommitError:               failures.Commit,
		ChangeErrors:              failures.PerMonitor,
		PrimaryMonitorNameFails:   failures.PrimaryMonitorName,
		PrimaryDisplayConfigFails: failures.PrimaryDisplayConfig,
	})
}
