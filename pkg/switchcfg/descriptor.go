// Package switchcfg reads the runtime hardware switch descriptor and decides
// whether an interface belongs to a hardware switch.
package switchcfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/unknwon/goconfig"
)

const (
	DefaultPath = "/run/vyatta/switch.conf"

	hardwareSection = "Hardware"
	countKey        = "hwSwitchCount"
)

// Descriptor is a snapshot of the [Hardware] section. Option names are
// matched case-insensitively. All accessors are safe on a nil Descriptor.
type Descriptor struct {
	values map[string]string
}

type Switch struct {
	Index      int
	ID         int
	HasID      bool
	Interfaces []string
}

// LoadDescriptor returns false on any read or parse failure. A file with no
// [Hardware] section is a valid descriptor with no switches.
func LoadDescriptor(path string) (*Descriptor, bool) {
	d, err := loadDescriptor(path)
	if err != nil {
		return nil, false
	}
	return d, true
}

func loadDescriptor(path string) (*Descriptor, error) {
	cfg, err := goconfig.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("load switch descriptor %s: %w", path, err)
	}

	section, err := cfg.GetSection(hardwareSection)
	if err != nil {
		section = map[string]string{}
	}

	return NewDescriptor(section), nil
}

// NewDescriptor builds a descriptor from raw [Hardware] key/value pairs.
func NewDescriptor(values map[string]string) *Descriptor {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[strings.ToLower(k)] = v
	}
	return &Descriptor{values: copied}
}

func (d *Descriptor) value(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.values[strings.ToLower(key)]
	return v, ok
}

func (d *Descriptor) SwitchCount() int {
	raw, ok := d.value(countKey)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (d *Descriptor) SwitchID(index int) (int, bool) {
	raw, ok := d.value(switchKey(index, "id"))
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return id, true
}

func (d *Descriptor) SwitchInterfaces(index int) ([]string, bool) {
	raw, ok := d.value(switchKey(index, "intfs"))
	if !ok {
		return nil, false
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

// Switches lists switches 0..SwitchCount()-1.
func (d *Descriptor) Switches() []Switch {
	count := d.SwitchCount()
	result := make([]Switch, 0, count)
	for i := 0; i < count; i++ {
		sw := Switch{Index: i}
		sw.ID, sw.HasID = d.SwitchID(i)
		sw.Interfaces, _ = d.SwitchInterfaces(i)
		result = append(result, sw)
	}
	return result
}

func switchKey(index int, field string) string {
	return fmt.Sprintf("hwSwitch%d.%s", index, field)
}
