package fuzzing

import "github.com/frudas24/convertible-couch/internal/monitor"

// PositionFuzzer lays out displays around a primary anchored at the origin.
type PositionFuzzer struct {
	src         *source
	resolutions *ResolutionFuzzer
}

// NewPositionFuzzer returns a PositionFuzzer seeded with seed.
func NewPositionFuzzer(seed uint64) *PositionFuzzer {
	src := newSource(seed)
	return &PositionFuzzer{
		src:         src,
		resolutions: NewResolutionFuzzer(src.Uint64()),
	}
}

// GenerateSeveral returns n positioned resolutions, exactly one at the origin.
// Secondary displays extend a single row to the right or the left of the primary
// with a vertical offset of at most a quarter of their height, so no two anchors coincide.
func (f *PositionFuzzer) GenerateSeveral(n int) []monitor.PositionedResolution {
	res := f.resolutions.GenerateSeveral(n)
	out := make([]monitor.PositionedResolution, n)
	if n == 0 {
		return out
	}

	out[0] = monitor.PositionedResolution{Position: monitor.Origin, Resolution: res[0]}
	right := res[0].Width
	left := 0
	for i := 1; i < n; i++ {
		r := res[i]
		y := f.src.between(-r.Height/4, r.Height/4)
		var x int
		if f.src.IntN(2) == 0 {
			x = right
			right += r.Width
		} else {
			left -= r.Width
			x = left
		}
		out[i] = monitor.PositionedResolution{Position: monitor.Position{X: x, Y: y}, Resolution: r}
	}

	f.src.Shuffle(n, func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
