package testutil

import (
	"errors"
	"slices"
	"testing"

	"github.com/frudas24/convertible-couch/internal/display"
	"github.com/frudas24/convertible-couch/internal/monitor"
)

// desk is a two-monitor topology with DISPLAY2 unplugged.
func desk() FakeDisplayConfig {
	return FakeDisplayConfig{
		Outputs: []FakeOutput{
			{DevicePath: `\\.\DISPLAY1`, Monitor: &FakeMonitor{
				Name: "DELL U2720Q", DeviceID: "id-1", ConfigModeInfoID: 4353,
				Position: monitor.Origin, Resolution: monitor.Resolution{Width: 2560, Height: 1440},
			}},
			{DevicePath: `\\.\DISPLAY2`},
			{DevicePath: `\\.\DISPLAY3`, Monitor: &FakeMonitor{
				Name: "SAMSUNG Q80T", DeviceID: "id-3", ConfigModeInfoID: 4354,
				Position: monitor.Position{X: 2560}, Resolution: monitor.Resolution{Width: 3840, Height: 2160},
			}},
		},
	}
}

// swapTo moves target to the origin and shifts the other monitors, like the primary swap does.
func swapTo(api display.API, target string) (bool, error) {
	outputs, err := api.VideoOutputs()
	if err != nil {
		return false, err
	}
	paths, err := api.DisplayConfig()
	if err != nil {
		return false, err
	}
	var offset monitor.Position
	for i, o := range outputs {
		if o.Monitor != nil && o.Monitor.Name == target {
			for _, p := range paths {
				if p.DevicePath == outputs[i].DevicePath {
					offset = p.Position
				}
			}
		}
	}
	for _, p := range paths {
		next := monitor.Position{X: p.Position.X - offset.X, Y: p.Position.Y - offset.Y}
		if err := api.ChangeDisplaySettings(p.DevicePath, display.Settings{Position: next, SetPrimary: next.IsOrigin()}); err != nil {
			return false, err
		}
	}
	return api.CommitDisplaySettings()
}

// TestFakeDisplay_Enumerates verifies outputs and display-config paths.
func TestFakeDisplay_Enumerates(t *testing.T) {
	f := NewFakeDisplay(desk())
	outputs, err := f.VideoOutputs()
	if err != nil || len(outputs) != 3 {
		t.Fatalf("unexpected outputs %v, %v", outputs, err)
	}
	if outputs[1].Plugged() || !outputs[0].Monitor.Primary || outputs[2].Monitor.Primary {
		t.Fatalf("unexpected outputs %+v", outputs)
	}
	paths, err := f.DisplayConfig()
	if err != nil || len(paths) != 2 || paths[1].ConfigModeInfoID != 4354 {
		t.Fatalf("unexpected paths %+v, %v", paths, err)
	}
}

// TestFakeDisplay_SwapCommits verifies staged positions apply on commit.
func TestFakeDisplay_SwapCommits(t *testing.T) {
	f := NewFakeDisplay(desk())
	restart, err := swapTo(f, "SAMSUNG Q80T")
	if err != nil || restart {
		t.Fatalf("unexpected commit result restart=%v err=%v", restart, err)
	}
	name, err := f.PrimaryMonitorName()
	if err != nil || name != "SAMSUNG Q80T" {
		t.Fatalf("expected new primary, got %q, %v", name, err)
	}
	cfg, err := f.PrimaryDisplayConfig()
	if err != nil || cfg.DevicePath != `\\.\DISPLAY3` {
		t.Fatalf("unexpected primary config %+v, %v", cfg, err)
	}
	want := []string{"VideoOutputs", "DisplayConfig", "ChangeDisplaySettings", "ChangeDisplaySettings", "CommitDisplaySettings", "PrimaryMonitorName", "PrimaryDisplayConfig"}
	if !slices.Equal(f.CallNames(), want) {
		t.Fatalf("unexpected calls %v", f.CallNames())
	}
}

// TestFakeDisplay_PerDeviceFailure verifies configured device failures and no state change.
func TestFakeDisplay_PerDeviceFailure(t *testing.T) {
	cfg := desk()
	cfg.ChangeErrors = map[string]display.DispChange{`\\.\DISPLAY3`: display.DispChangeBadMode}
	f := NewFakeDisplay(cfg)
	_, err := swapTo(f, "SAMSUNG Q80T")
	var ce *display.ChangeError
	if !errors.As(err, &ce) || ce.DevicePath != `\\.\DISPLAY3` || ce.Code != display.DispChangeBadMode {
		t.Fatalf("expected bad_mode on DISPLAY3, got %v", err)
	}
	if name, _ := f.PrimaryMonitorName(); name != "DELL U2720Q" {
		t.Fatalf("expected primary unchanged, got %q", name)
	}
}

// TestFakeDisplay_CommitFailure verifies commit codes discard staged changes.
func TestFakeDisplay_CommitFailure(t *testing.T) {
	cfg := desk()
	code := display.DispChangeNotUpdated
	cfg.CommitError = &code
	f := NewFakeDisplay(cfg)
	_, err := swapTo(f, "SAMSUNG Q80T")
	var ce *display.ChangeError
	if !errors.As(err, &ce) || ce.Code != display.DispChangeNotUpdated || ce.DevicePath != "" {
		t.Fatalf("expected commit failure, got %v", err)
	}
	if name, _ := f.PrimaryMonitorName(); name != "DELL U2720Q" {
		t.Fatalf("expected primary unchanged, got %q", name)
	}
}

// TestFakeDisplay_CommitRestart verifies a restart code applies changes and asks for a restart.
func TestFakeDisplay_CommitRestart(t *testing.T) {
	cfg := desk()
	code := display.DispChangeRestart
	cfg.CommitError = &code
	f := NewFakeDisplay(cfg)
	restart, err := swapTo(f, "SAMSUNG Q80T")
	if err != nil || !restart {
		t.Fatalf("expected restart, got restart=%v err=%v", restart, err)
	}
	if name, _ := f.PrimaryMonitorName(); name != "SAMSUNG Q80T" {
		t.Fatalf("expected new primary, got %q", name)
	}
}

// TestFakeDisplay_UnknownDevice verifies unplugged and unknown paths are rejected.
func TestFakeDisplay_UnknownDevice(t *testing.T) {
	f := NewFakeDisplay(desk())
	for _, path := range []string{`\\.\DISPLAY2`, `\\.\DISPLAY9`} {
		if err := f.ChangeDisplaySettings(path, display.Settings{}); !errors.Is(err, display.ErrUnknownDevice) {
			t.Fatalf("%s: expected ErrUnknownDevice, got %v", path, err)
		}
	}
}

// TestFakeDisplay_PrimaryFailures verifies configured primary lookups fail.
func TestFakeDisplay_PrimaryFailures(t *testing.T) {
	cfg := desk()
	cfg.PrimaryMonitorNameFails = true
	cfg.PrimaryDisplayConfigFails = true
	f := NewFakeDisplay(cfg)
	if _, err := f.PrimaryMonitorName(); !errors.Is(err, display.ErrPrimaryMonitorName) {
		t.Fatalf("expected ErrPrimaryMonitorName, got %v", err)
	}
	if _, err := f.PrimaryDisplayConfig(); !errors.Is(err, display.ErrQueryDisplayConfig) {
		t.Fatalf("expected ErrQueryDisplayConfig, got %v", err)
	}
}

// TestFakeDisplay_CopiesOutputs verifies commits never touch the caller's config.
func TestFakeDisplay_CopiesOutputs(t *testing.T) {
	cfg := desk()
	f := NewFakeDisplay(cfg)
	if _, err := swapTo(f, "SAMSUNG Q80T"); err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if !cfg.Outputs[0].Monitor.Position.IsOrigin() {
		t.Fatalf("expected caller config untouched")
	}
}

// TestFakeDisplay_SetPrimaryAwayFromOrigin verifies SetPrimary needs the origin and stages nothing otherwise.
func TestFakeDisplay_SetPrimaryAwayFromOrigin(t *testing.T) {
	f := NewFakeDisplay(desk())
	err := f.ChangeDisplaySettings(`\\.\DISPLAY3`, display.Settings{Position: monitor.Position{X: 10}, SetPrimary: true})
	var changeErr *display.ChangeError
	if !errors.As(err, &changeErr) || changeErr.Code != display.DispChangeBadParam || changeErr.DevicePath != `\\.\DISPLAY3` {
		t.Fatalf("expected bad_param change error, got %v", err)
	}
	if _, err := f.CommitDisplaySettings(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	name, err := f.PrimaryMonitorName()
	if err != nil || name != "DELL U2720Q" {
		t.Fatalf("expected primary unchanged, got %q, %v", name, err)
	}
}

// TestFakeDisplay_OriginDecidesPrimary verifies the monitor committed at the origin becomes primary.
func TestFakeDisplay_OriginDecidesPrimary(t *testing.T) {
	f := NewFakeDisplay(desk())
	if err := f.ChangeDisplaySettings(`\\.\DISPLAY1`, display.Settings{Position: monitor.Position{X: -2560}}); err != nil {
		t.Fatalf("change failed: %v", err)
	}
	if err := f.ChangeDisplaySettings(`\\.\DISPLAY3`, display.Settings{Position: monitor.Origin, SetPrimary: true}); err != nil {
		t.Fatalf("change failed: %v", err)
	}
	if _, err := f.CommitDisplaySettings(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	cfg, err := f.PrimaryDisplayConfig()
	if err != nil || cfg.DevicePath != `\\.\DISPLAY3` || cfg.Position != monitor.Origin {
		t.Fatalf("expected DISPLAY3 at the origin, got %+v, %v", cfg, err)
	}
	paths, err := f.DisplayConfig()
	if err != nil || paths[0].Position != (monitor.Position{X: -2560}) {
		t.Fatalf("expected DISPLAY1 moved left, got %+v, %v", paths, err)
	}
}
