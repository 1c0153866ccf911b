package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/frudas24/convertible-couch/internal/display"
	"github.com/frudas24/convertible-couch/internal/fuzzing"
)

// Profile describes the computers to generate as a YAML document.
type Profile struct {
	Monitors MonitorsProfile `yaml:"monitors" json:"monitors"`
	Failures FailuresProfile `yaml:"failures" json:"failures"`
}

// MonitorsProfile constrains monitor counts and values.
type MonitorsProfile struct {
	// Exact pins both the monitor and the video output count.
	Exact              *int     `yaml:"exact,omitempty" json:"exact,omitempty"`
	Min                *int     `yaml:"min,omitempty" json:"min,omitempty"`
	Max                *int     `yaml:"max,omitempty" json:"max,omitempty"`
	InternalDisplay    bool     `yaml:"internal_display,omitempty" json:"internalDisplay,omitempty"`
	ForbiddenNames     []string `yaml:"forbidden_names,omitempty" json:"forbiddenNames,omitempty"`
	ForbiddenDeviceIDs []string `yaml:"forbidden_device_ids,omitempty" json:"forbiddenDeviceIds,omitempty"`
}

// FailuresProfile lists the failures injected into the fake display API.
type FailuresProfile struct {
	Commit               *display.DispChange `yaml:"commit,omitempty" json:"commit,omitempty"`
	PerMonitor           *display.DispChange `yaml:"per_monitor,omitempty" json:"perMonitor,omitempty"`
	PrimaryMonitorName   bool                `yaml:"primary_monitor_name,omitempty" json:"primaryMonitorName,omitempty"`
	PrimaryDisplayConfig bool                `yaml:"primary_display_config,omitempty" json:"primaryDisplayConfig,omitempty"`
}

// LoadProfile reads a profile from path. An empty path yields the zero profile (two monitors or more).
func LoadProfile(path string) (Profile, error) {
	var p Profile
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Validate rejects contradictory count settings.
func (p Profile) Validate() error {
	m := p.Monitors
	if m.Exact != nil && (m.Min != nil || m.Max != nil) {
		return errors.New("monitors.exact cannot be combined with monitors.min or monitors.max")
	}
	if m.Exact != nil && *m.Exact < 0 {
		return errors.New("monitors.exact must be >= 0")
	}
	lo, hi := p.countRange()
	if lo > hi {
		return fmt.Errorf("monitors.min (%d) exceeds monitors.max (%d)", lo, hi)
	}
	return nil
}

// countRange resolves the monitor count bounds, defaulting to two monitors or more.
func (p Profile) countRange() (int, int) {
	m := p.Monitors
	if m.Exact != nil {
		return *m.Exact, *m.Exact
	}
	lo, hi := 2, fuzzing.MaxVideoOutputs
	if m.Min != nil {
		lo = *m.Min
	}
	if m.Max != nil {
		hi = *m.Max
	}
	return lo, hi
}

// Apply configures f from the profile and returns it.
func (p Profile) Apply(f *fuzzing.ComputerFuzzer) *fuzzing.ComputerFuzzer {
	lo, hi := p.countRange()
	f.WithARangeOfMonitors(lo, hi)
	if p.Monitors.InternalDisplay {
		f.WithAnInternalDisplay()
	}
	if len(p.Monitors.ForbiddenNames) > 0 {
		f.WithNamesDifferentThan(p.Monitors.ForbiddenNames...)
	}
	if len(p.Monitors.ForbiddenDeviceIDs) > 0 {
		f.WithDeviceIDsDifferentThan(p.Monitors.ForbiddenDeviceIDs...)
	}
	if code := p.Failures.Commit; code != nil {
		f.ForWhichCommittingTheDisplayChangesFailsWith(*code)
	}
	if code := p.Failures.PerMonitor; code != nil {
		f.ForWhichChangingTheDisplaySettingsFailsForSomeMonitors(*code)
	}
	if p.Failures.PrimaryMonitorName {
		f.ForWhichGettingThePrimaryMonitorFails()
	}
	if p.Failures.PrimaryDisplayConfig {
		f.ForWhichQueryingTheDisplayConfigOfThePrimaryMonitorFails()
	}
	return f
}

// Build generates the computer described by the profile for seed.
func (p Profile) Build(seed uint64) (fuzzing.FuzzedComputer, error) {
	return p.Apply(fuzzing.NewComputerFuzzer(seed)).Build()
}
