package fuzzing

import "github.com/frudas24/convertible-couch/internal/monitor"

// MaxTotalPixels is the desktop pixel budget Windows enforces across all displays.
const MaxTotalPixels = 128_000_000

// MaxVideoOutputs is how many displays fit the pixel budget at the smallest supported mode.
const MaxVideoOutputs = MaxTotalPixels / (1024 * 768)

// resolutions is sorted by pixel count; the first entry is the smallest supported mode.
var resolutions = []monitor.Resolution{
	{Width: 1024, Height: 768},
	{Width: 1280, Height: 720},
	{Width: 1366, Height: 768},
	{Width: 1440, Height: 900},
	{Width: 1280, Height: 1024},
	{Width: 1600, Height: 900},
	{Width: 1680, Height: 1050},
	{Width: 1920, Height: 1080},
	{Width: 1920, Height: 1200},
	{Width: 2560, Height: 1080},
	{Width: 2560, Height: 1440},
	{Width: 3440, Height: 1440},
	{Width: 3840, Height: 2160},
}

// ResolutionFuzzer draws display modes within the desktop pixel budget.
type ResolutionFuzzer struct {
	src *source
}

// NewResolutionFuzzer returns a ResolutionFuzzer seeded with seed.
func NewResolutionFuzzer(seed uint64) *ResolutionFuzzer {
	return &ResolutionFuzzer{src: newSource(seed)}
}

// GenerateSeveral returns n resolutions whose pixels sum to at most MaxTotalPixels.
// Each draw keeps enough budget for the remaining displays at the smallest mode.
func (f *ResolutionFuzzer) GenerateSeveral(n int) []monitor.Resolution {
	if n > MaxVideoOutputs {
		panic("fuzzing: more displays requested than the pixel budget allows")
	}
	smallest := resolutions[0].Pixels()
	budget := MaxTotalPixels
	out := make([]monitor.Resolution, n)
	for i := range out {
		allowed := budget - (n-i-1)*smallest
		fitting := 0
		for fitting < len(resolutions) && resolutions[fitting].Pixels() <= allowed {
			fitting++
		}
		out[i] = resolutions[f.src.IntN(fitting)]
		budget -= out[i].Pixels()
	}
	return out
}
