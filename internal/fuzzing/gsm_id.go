package fuzzing

import "fmt"

// PNP manufacturer ids as found at the start of monitor hardware ids.
var pnpVendorIDs = []string{"ACI", "ACR", "AOC", "BNQ", "DEL", "GBT", "GSM", "HWP", "MSI", "PHL", "SAM", "VSC"}

// GsmIDFuzzer generates the hardware-id part of a device id, such as GSM5B09.
type GsmIDFuzzer struct {
	src *source
}

// NewGsmIDFuzzer returns a GsmIDFuzzer seeded with seed.
func NewGsmIDFuzzer(seed uint64) *GsmIDFuzzer {
	return &GsmIDFuzzer{src: newSource(seed)}
}

// GenerateSeveral returns n distinct hardware-id parts.
func (f *GsmIDFuzzer) GenerateSeveral(n int) []string {
	used := make(map[string]struct{}, n)
	out := make([]string, n)
	for i := range out {
		out[i] = f.next(used)
	}
	return out
}

// next draws one hardware-id part absent from used.
func (f *GsmIDFuzzer) next(used map[string]struct{}) string {
	return drawUnique("gsm id", used, nil, func() string {
		return fmt.Sprintf("%s%04X", pnpVendorIDs[f.src.IntN(len(pnpVendorIDs))], f.src.IntN(0x10000))
	})
}
