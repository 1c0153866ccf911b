package fuzzing

import "github.com/frudas24/convertible-couch/internal/monitor"

// FuzzedMonitor is a generated monitor.
type FuzzedMonitor struct {
	Name             string             `json:"name" yaml:"name"`
	Primary          bool               `json:"primary" yaml:"primary"`
	ConfigModeInfoID uint32             `json:"configModeInfoId" yaml:"config_mode_info_id"`
	DeviceID         string             `json:"deviceId" yaml:"device_id"`
	Resolution       monitor.Resolution `json:"resolution" yaml:"resolution"`
	Position         monitor.Position   `json:"position" yaml:"position"`
}

// Exclusions lists values generated monitors must not use.
type Exclusions struct {
	Names     map[string]struct{}
	DeviceIDs map[string]struct{}
}

// MonitorFuzzer composes leaf values and a positioned resolution into monitors.
type MonitorFuzzer struct {
	names             *NameFuzzer
	configModeInfoIDs *ConfigModeInfoIDFuzzer
	gsmIDs            *GsmIDFuzzer
}

// NewMonitorFuzzer returns a MonitorFuzzer whose leaf fuzzers draw from independent streams.
func NewMonitorFuzzer(seed uint64) *MonitorFuzzer {
	src := newSource(seed)
	return &MonitorFuzzer{
		names:             NewNameFuzzer(src.Uint64()),
		configModeInfoIDs: NewConfigModeInfoIDFuzzer(src.Uint64()),
		gsmIDs:            NewGsmIDFuzzer(src.Uint64()),
	}
}

// monitorBatch tracks values already handed out within one batch.
type monitorBatch struct {
	names             map[string]struct{}
	deviceIDs         map[string]struct{}
	configModeInfoIDs map[uint32]struct{}
	gsmIDs            map[string]struct{}
	exclusions        Exclusions
}

// newMonitorBatch returns empty bookkeeping for a batch.
func newMonitorBatch(exclusions Exclusions) *monitorBatch {
	return &monitorBatch{
		names:             map[string]struct{}{},
		deviceIDs:         map[string]struct{}{},
		configModeInfoIDs: map[uint32]struct{}{},
		gsmIDs:            map[string]struct{}{},
		exclusions:        exclusions,
	}
}

// Generate returns one monitor. The primary flag follows the position; a primary
// internal display reports no friendly name.
func (f *MonitorFuzzer) Generate(common CommonParts, hasAnInternalDisplay bool, pr monitor.PositionedResolution) FuzzedMonitor {
	return f.generate(common, hasAnInternalDisplay, pr, newMonitorBatch(Exclusions{}))
}

// GenerateSeveral returns one monitor per positioned resolution with distinct names
// and device ids outside exclusions. It panics unless a non-empty batch holds exactly one primary.
func (f *MonitorFuzzer) GenerateSeveral(common CommonParts, hasAnInternalDisplay bool, positioned []monitor.PositionedResolution, exclusions Exclusions) []FuzzedMonitor {
	batch := newMonitorBatch(exclusions)
	out := make([]FuzzedMonitor, len(positioned))
	primaries := 0
	for i, pr := range positioned {
		out[i] = f.generate(common, hasAnInternalDisplay, pr, batch)
		if out[i].Primary {
			primaries++
		}
	}
	if len(out) > 0 && primaries != 1 {
		panic("fuzzing: a monitor batch must hold exactly one primary monitor")
	}
	return out
}

// generate draws the leaf values of one monitor against the batch bookkeeping.
func (f *MonitorFuzzer) generate(common CommonParts, hasAnInternalDisplay bool, pr monitor.PositionedResolution, batch *monitorBatch) FuzzedMonitor {
	primary := pr.Position.IsOrigin()
	name := f.names.next(batch.names, batch.exclusions.Names)
	if hasAnInternalDisplay && primary {
		name = ""
	}

	gsmID := f.gsmIDs.next(batch.gsmIDs)
	var configModeInfoID uint32
	deviceID := drawUnique("device id", batch.deviceIDs, batch.exclusions.DeviceIDs, func() string {
		configModeInfoID = f.configModeInfoIDs.next(batch.configModeInfoIDs)
		return FormatDeviceID(DeviceIDParts{GsmID: gsmID, Common: common, ConfigModeInfoID: configModeInfoID})
	})

	return FuzzedMonitor{
		Name:             name,
		Primary:          primary,
		ConfigModeInfoID: configModeInfoID,
		DeviceID:         deviceID,
		Resolution:       pr.Resolution,
		Position:         pr.Position,
	}
}
