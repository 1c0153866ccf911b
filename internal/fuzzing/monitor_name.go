package fuzzing

import "strings"

var monitorVendors = []string{
	"ACER", "AOC", "ASUS", "BenQ", "DELL", "Gigabyte", "HP", "LG", "MSI", "Philips", "SAMSUNG", "ViewSonic",
}

const (
	modelLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	modelDigits  = "0123456789"
)

// NameFuzzer generates monitor friendly names such as "DELL U2720Q".
type NameFuzzer struct {
	src *source
}

// NewNameFuzzer returns a NameFuzzer seeded with seed.
func NewNameFuzzer(seed uint64) *NameFuzzer {
	return &NameFuzzer{src: newSource(seed)}
}

// GenerateSeveral returns n distinct non-empty names, none of them in forbidden.
func (f *NameFuzzer) GenerateSeveral(n int, forbidden map[string]struct{}) []string {
	used := make(map[string]struct{}, n)
	out := make([]string, n)
	for i := range out {
		out[i] = f.next(used, forbidden)
	}
	return out
}

// next draws one name absent from used and forbidden.
func (f *NameFuzzer) next(used, forbidden map[string]struct{}) string {
	return drawUnique("monitor name", used, forbidden, f.draw)
}

// draw builds a vendor plus a model code like U2720Q or 27GL850.
func (f *NameFuzzer) draw() string {
	var b strings.Builder
	b.WriteString(monitorVendors[f.src.IntN(len(monitorVendors))])
	b.WriteByte(' ')
	if f.src.IntN(2) == 0 {
		b.WriteByte(modelLetters[f.src.IntN(len(modelLetters))])
	}
	for i := f.src.between(3, 4); i > 0; i-- {
		b.WriteByte(modelDigits[f.src.IntN(len(modelDigits))])
	}
	for i := f.src.between(0, 2); i > 0; i-- {
		b.WriteByte(modelLetters[f.src.IntN(len(modelLetters))])
	}
	return b.String()
}
