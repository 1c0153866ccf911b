package display

import (
	"fmt"
	"strconv"
	"strings"
)

// DispChange mirrors the Win32 DISP_CHANGE_* result codes.
type DispChange int32

// DISP_CHANGE_* values as returned by ChangeDisplaySettingsEx.
const (
	DispChangeSuccessful  DispChange = 0
	DispChangeRestart     DispChange = 1
	DispChangeFailed      DispChange = -1
	DispChangeBadMode     DispChange = -2
	DispChangeNotUpdated  DispChange = -3
	DispChangeBadFlags    DispChange = -4
	DispChangeBadParam    DispChange = -5
	DispChangeBadDualView DispChange = -6
)

var dispChangeNames = map[DispChange]string{
	DispChangeSuccessful:  "successful",
	DispChangeRestart:     "restart",
	DispChangeFailed:      "failed",
	DispChangeBadMode:     "bad_mode",
	DispChangeNotUpdated:  "not_updated",
	DispChangeBadFlags:    "bad_flags",
	DispChangeBadParam:    "bad_param",
	DispChangeBadDualView: "bad_dual_view",
}

// String returns the short lower-case name of the code.
func (c DispChange) String() string {
	if name, ok := dispChangeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("disp_change(%d)", int32(c))
}

// Known reports whether the code is one of the documented DISP_CHANGE values.
func (c DispChange) Known() bool {
	_, ok := dispChangeNames[c]
	return ok
}

// IsFailure reports whether the code makes a change or commit fail.
func (c DispChange) IsFailure() bool {
	return c != DispChangeSuccessful && c != DispChangeRestart
}

// ParseDispChange accepts a code name ("bad_mode", "DISP_CHANGE_BADMODE") or its numeric value.
func ParseDispChange(value string) (DispChange, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimPrefix(v, "disp_change_")
	for code, name := range dispChangeNames {
		if v == name || v == strings.ReplaceAll(name, "_", "") {
			return code, nil
		}
	}
	if n, err := strconv.ParseInt(v, 10, 32); err == nil && DispChange(n).Known() {
		return DispChange(n), nil
	}
	return 0, fmt.Errorf("unknown DISP_CHANGE code %q", value)
}

// MarshalText implements encoding.TextMarshaler.
func (c DispChange) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *DispChange) UnmarshalText(text []byte) error {
	parsed, err := ParseDispChange(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
