package fuzzing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MonitorInterfaceGUID is GUID_DEVINTERFACE_MONITOR, the class suffix of every monitor device id.
var MonitorInterfaceGUID = uuid.MustParse("e6f07b5f-ee97-4a90-b076-33f57bf4eaa7")

const (
	deviceIDPrefix = `\\?\DISPLAY#`
	deviceIDUID    = "UID"
)

// CommonParts are the instance-path parts shared by all monitors of one computer.
type CommonParts struct {
	Part1 int    `json:"part1" yaml:"part1"`
	Part2 string `json:"part2" yaml:"part2"`
	Part3 int    `json:"part3" yaml:"part3"`
}

// DeviceIDParts is the decomposed form of a monitor device id.
type DeviceIDParts struct {
	GsmID            string
	Common           CommonParts
	ConfigModeInfoID uint32
}

// FormatDeviceID renders parts as
// \\?\DISPLAY#<gsm>#<part1>&<part2>&<part3>&UID<config mode info id>#{<monitor interface guid>}.
func FormatDeviceID(p DeviceIDParts) string {
	return fmt.Sprintf("%s%s#%d&%s&%d&%s%d#{%s}",
		deviceIDPrefix, p.GsmID, p.Common.Part1, p.Common.Part2, p.Common.Part3,
		deviceIDUID, p.ConfigModeInfoID, MonitorInterfaceGUID)
}

// ParseDeviceID decomposes a device id rendered by FormatDeviceID.
func ParseDeviceID(id string) (DeviceIDParts, error) {
	rest, ok := strings.CutPrefix(id, deviceIDPrefix)
	if !ok {
		return DeviceIDParts{}, fmt.Errorf("device id %q: missing %s prefix", id, deviceIDPrefix)
	}
	fields := strings.Split(rest, "#")
	if len(fields) != 3 {
		return DeviceIDParts{}, fmt.Errorf("device id %q: expected 3 '#' separated fields, got %d", id, len(fields))
	}
	guid, err := uuid.Parse(strings.Trim(fields[2], "{}"))
	if err != nil {
		return DeviceIDParts{}, fmt.Errorf("device id %q: %w", id, err)
	}
	if guid != MonitorInterfaceGUID {
		return DeviceIDParts{}, fmt.Errorf("device id %q: unexpected interface class %s", id, guid)
	}
	instance := strings.Split(fields[1], "&")
	if len(instance) != 4 {
		return DeviceIDParts{}, fmt.Errorf("device id %q: expected 4 '&' separated instance parts, got %d", id, len(instance))
	}
	part1, err := strconv.Atoi(instance[0])
	if err != nil {
		return DeviceIDParts{}, fmt.Errorf("device id %q: part 1: %w", id, err)
	}
	part3, err := strconv.Atoi(instance[2])
	if err != nil {
		return DeviceIDParts{}, fmt.Errorf("device id %q: part 3: %w", id, err)
	}
	uid, ok := strings.CutPrefix(instance[3], deviceIDUID)
	if !ok {
		return DeviceIDParts{}, fmt.Errorf("device id %q: missing %s prefix", id, deviceIDUID)
	}
	configModeInfoID, err := strconv.ParseUint(uid, 10, 32)
	if err != nil {
		return DeviceIDParts{}, fmt.Errorf("device id %q: config mode info id: %w", id, err)
	}
	return DeviceIDParts{
		GsmID:            fields[0],
		Common:           CommonParts{Part1: part1, Part2: instance[1], Part3: part3},
		ConfigModeInfoID: uint32(configModeInfoID),
	}, nil
}

// DeviceIDFuzzer generates the instance parts shared by the monitors of one computer.
type DeviceIDFuzzer struct {
	src *source
}

// NewDeviceIDFuzzer returns a DeviceIDFuzzer seeded with seed.
func NewDeviceIDFuzzer(seed uint64) *DeviceIDFuzzer {
	return &DeviceIDFuzzer{src: newSource(seed)}
}

// GenerateCommonParts draws one set of common parts, e.g. 5&2c03a83e&0.
func (f *DeviceIDFuzzer) GenerateCommonParts() CommonParts {
	return CommonParts{
		Part1: f.src.between(1, 9),
		Part2: strconv.FormatUint(uint64(f.src.Uint32()), 16),
		Part3: f.src.between(0, 9),
	}
}
