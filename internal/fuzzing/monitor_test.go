package fuzzing

import (
	"testing"

	"github.com/frudas24/convertible-couch/internal/monitor"
)

// testCommon is a fixed set of device id common parts.
var testCommon = CommonParts{Part1: 4, Part2: "1a2b3c4d", Part3: 0}

// TestMonitorFuzzer_PrimaryFollowsPosition verifies primary is derived from the origin anchor.
func TestMonitorFuzzer_PrimaryFollowsPosition(t *testing.T) {
	f := NewMonitorFuzzer(1)
	at := func(x int) monitor.PositionedResolution {
		return monitor.PositionedResolution{Position: monitor.Position{X: x}, Resolution: monitor.Resolution{Width: 1920, Height: 1080}}
	}
	if m := f.Generate(testCommon, false, at(0)); !m.Primary || m.Name == "" {
		t.Fatalf("expected named primary, got %+v", m)
	}
	if m := f.Generate(testCommon, false, at(1920)); m.Primary {
		t.Fatalf("expected secondary, got %+v", m)
	}
}

// TestMonitorFuzzer_InternalDisplay verifies only a primary internal display loses its name.
func TestMonitorFuzzer_InternalDisplay(t *testing.T) {
	positioned := NewPositionFuzzer(2).GenerateSeveral(4)
	monitors := NewMonitorFuzzer(2).GenerateSeveral(testCommon, true, positioned, Exclusions{})
	for _, m := range monitors {
		if m.Primary && m.Name != "" {
			t.Fatalf("expected unnamed primary, got %q", m.Name)
		}
		if !m.Primary && m.Name == "" {
			t.Fatalf("expected named secondary")
		}
	}
}

// TestMonitorFuzzer_DeviceIDFromParts verifies device ids decompose into the monitor's parts.
func TestMonitorFuzzer_DeviceIDFromParts(t *testing.T) {
	positioned := NewPositionFuzzer(3).GenerateSeveral(6)
	monitors := NewMonitorFuzzer(3).GenerateSeveral(testCommon, false, positioned, Exclusions{})
	seen := map[string]bool{}
	for _, m := range monitors {
		parts, err := ParseDeviceID(m.DeviceID)
		if err != nil {
			t.Fatalf("ParseDeviceID failed: %v", err)
		}
		if parts.Common != testCommon || parts.ConfigModeInfoID != m.ConfigModeInfoID {
			t.Fatalf("unexpected parts %+v for %+v", parts, m)
		}
		if seen[m.DeviceID] {
			t.Fatalf("duplicate device id %s", m.DeviceID)
		}
		seen[m.DeviceID] = true
	}
}

// TestMonitorFuzzer_ExcludedDeviceIDs verifies forbidden device ids are skipped.
func TestMonitorFuzzer_ExcludedDeviceIDs(t *testing.T) {
	positioned := NewPositionFuzzer(5).GenerateSeveral(8)
	first := NewMonitorFuzzer(5).GenerateSeveral(testCommon, false, positioned, Exclusions{})
	var ids []string
	for _, m := range first {
		ids = append(ids, m.DeviceID)
	}
	forbidden := setOf(ids)
	again := NewMonitorFuzzer(5).GenerateSeveral(testCommon, false, positioned, Exclusions{DeviceIDs: forbidden})
	for _, m := range again {
		if _, banned := forbidden[m.DeviceID]; banned {
			t.Fatalf("forbidden device id %s was generated", m.DeviceID)
		}
	}
}

// TestMonitorFuzzer_TwoPrimariesPanics verifies the batch self-check.
func TestMonitorFuzzer_TwoPrimariesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	positioned := []monitor.PositionedResolution{{}, {}}
	NewMonitorFuzzer(1).GenerateSeveral(testCommon, false, positioned, Exclusions{})
}

// TestMonitorFuzzer_NoPrimaryPanics verifies a non-empty batch without primary is rejected.
func TestMonitorFuzzer_NoPrimaryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	positioned := []monitor.PositionedResolution{{Position: monitor.Position{X: 10}}}
	NewMonitorFuzzer(1).GenerateSeveral(testCommon, false, positioned, Exclusions{})
}

// TestVideoOutputFuzzer_Paths verifies distinct unplugged outputs.
func TestVideoOutputFuzzer_Paths(t *testing.T) {
	outputs := VideoOutputFuzzer{}.GenerateSeveral(3)
	want := []string{`\\.\DISPLAY1`, `\\.\DISPLAY2`, `\\.\DISPLAY3`}
	for i, o := range outputs {
		if o.DevicePath != want[i] || o.Monitor != nil {
			t.Fatalf("unexpected output %d: %+v", i, o)
		}
	}
	plugged := outputs[1].PlugMonitor(FuzzedMonitor{Name: "LG 27GL850"})
	if plugged.Monitor == nil || outputs[1].Monitor != nil {
		t.Fatalf("expected PlugMonitor to return a plugged copy")
	}
}
