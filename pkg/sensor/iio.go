package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// IIO reads raw samples from a Linux industrial I/O sysfs attribute,
// e.g. /sys/bus/iio/devices/iio:device0/in_voltage1_raw.
type IIO struct {
	Path string
}

// Read implements ADC.
func (d *IIO) Read() (int32, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", d.Path, err)
	}
	val, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", d.Path, err)
	}
	return int32(val), nil
}
