package fuzzing

import "fmt"

// FuzzedVideoOutput is a generated adapter output, optionally populated with a monitor.
type FuzzedVideoOutput struct {
	DevicePath string         `json:"devicePath" yaml:"device_path"`
	Monitor    *FuzzedMonitor `json:"monitor,omitempty" yaml:"monitor,omitempty"`
}

// PlugMonitor returns a copy of the output with m attached.
func (v FuzzedVideoOutput) PlugMonitor(m FuzzedMonitor) FuzzedVideoOutput {
	v.Monitor = &m
	return v
}

// VideoOutputFuzzer generates unplugged adapter outputs.
type VideoOutputFuzzer struct{}

// GenerateSeveral returns n unplugged outputs named like GDI display devices.
func (VideoOutputFuzzer) GenerateSeveral(n int) []FuzzedVideoOutput {
	out := make([]FuzzedVideoOutput, n)
	for i := range out {
		out[i] = FuzzedVideoOutput{DevicePath: fmt.Sprintf(`\\.\DISPLAY%d`, i+1)}
	}
	return out
}
