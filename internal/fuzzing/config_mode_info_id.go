package fuzzing

const (
	minConfigModeInfoID = 256
	maxConfigModeInfoID = 1<<24 - 1
)

// ConfigModeInfoIDFuzzer generates DISPLAYCONFIG mode-info ids, which also end device ids as UID<n>.
type ConfigModeInfoIDFuzzer struct {
	src *source
}

// NewConfigModeInfoIDFuzzer returns a ConfigModeInfoIDFuzzer seeded with seed.
func NewConfigModeInfoIDFuzzer(seed uint64) *ConfigModeInfoIDFuzzer {
	return &ConfigModeInfoIDFuzzer{src: newSource(seed)}
}

// GenerateSeveral returns n distinct ids.
func (f *ConfigModeInfoIDFuzzer) GenerateSeveral(n int) []uint32 {
	used := make(map[uint32]struct{}, n)
	out := make([]uint32, n)
	for i := range out {
		out[i] = f.next(used)
	}
	return out
}

// next draws one id absent from used.
func (f *ConfigModeInfoIDFuzzer) next(used map[uint32]struct{}) uint32 {
	return drawUnique("config mode info id", used, nil, func() uint32 {
		return uint32(f.src.between(minConfigModeInfoID, maxConfigModeInfoID))
	})
}
