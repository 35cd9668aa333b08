package switchcfg

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/veesix-networks/netcfg/pkg/logger"
	"github.com/veesix-networks/netcfg/pkg/metrics"
)

// subPortPattern matches breakout names such as dp0ce0p1.
var subPortPattern = regexp.MustCompile(`p[0-9]+$`)

func IsSubPortName(name string) bool {
	return subPortPattern.MatchString(name)
}

// IsSwitchPort reports whether name is one of the configured switch
// interfaces. Sub-port shaped names match any configured interface they
// start with; other names must match exactly. The prefix match does not
// require the remainder to start at a "p" boundary.
func (d *Descriptor) IsSwitchPort(name string) bool {
	subPort := IsSubPortName(name)

	for i := 0; i < d.SwitchCount(); i++ {
		intfs, ok := d.SwitchInterfaces(i)
		if !ok {
			continue
		}
		for _, intf := range intfs {
			if intf == "" {
				continue
			}
			if subPort {
				if strings.HasPrefix(name, intf) {
					return true
				}
			} else if name == intf {
				return true
			}
		}
	}
	return false
}

// Classifier re-reads the descriptor on every call so it always reflects
// the file on disk.
type Classifier struct {
	Path    string
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func NewClassifier(path string, m *metrics.Metrics) *Classifier {
	if path == "" {
		path = DefaultPath
	}
	return &Classifier{
		Path:    path,
		Logger:  logger.Component(logger.SwitchCfg),
		Metrics: m,
	}
}

func (c *Classifier) Descriptor() (*Descriptor, bool) {
	d, err := loadDescriptor(c.Path)
	c.Metrics.DescriptorLoad(err == nil)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Debug("Switch descriptor unavailable", "path", c.Path, "error", err)
		}
		return nil, false
	}
	return d, true
}

func (c *Classifier) IsSwitchPort(name string) bool {
	d, ok := c.Descriptor()
	if !ok {
		return false
	}

	result := d.IsSwitchPort(name)
	c.Metrics.Classification(IsSubPortName(name), result)
	if c.Logger != nil {
		c.Logger.Debug("Classified interface", "interface", name, "switch_port", result)
	}
	return result
}

// IsSwitchPort classifies name against the descriptor at DefaultPath.
func IsSwitchPort(name string) bool {
	return NewClassifier(DefaultPath, nil).IsSwitchPort(name)
}
