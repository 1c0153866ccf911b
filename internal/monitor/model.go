// Package monitor describes display geometry.
package monitor

// Position is the top-left anchor of a display in desktop coordinates.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Origin is the anchor of the primary display.
var Origin = Position{}

// IsOrigin reports whether the position is the desktop origin.
func (p Position) IsOrigin() bool {
	return p == Origin
}

// Resolution is a display mode size in pixels.
type Resolution struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Pixels returns the pixel count of the resolution.
func (r Resolution) Pixels() int {
	return r.Width * r.Height
}

// PositionedResolution pairs a display anchor with its resolution.
type PositionedResolution struct {
	Position   Position   `json:"position" yaml:"position"`
	Resolution Resolution `json:"resolution" yaml:"resolution"`
}

// Bounds describes a display rectangle using top-left origin and size.
type Bounds struct {
	X int
	Y int
	W int
	H int
}

// Bounds returns the desktop rectangle covered by the display.
func (p PositionedResolution) Bounds() Bounds {
	return Bounds{X: p.Position.X, Y: p.Position.Y, W: p.Resolution.Width, H: p.Resolution.Height}
}

// Overlaps reports whether two rectangles share any pixel.
func Overlaps(a, b Bounds) bool {
	if a.W <= 0 || a.H <= 0 || b.W <= 0 || b.H <= 0 {
		return false
	}
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// FindPrimary returns the index of the first entry anchored at the origin.
func FindPrimary(list []PositionedResolution) (int, bool) {
	for i, p := range list {
		if p.Position.IsOrigin() {
			return i, true
		}
	}
	return -1, false
}
