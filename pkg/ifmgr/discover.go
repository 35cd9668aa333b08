package ifmgr

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"

	"github.com/veesix-networks/netcfg/pkg/logger"
	"github.com/veesix-networks/netcfg/pkg/switchcfg"
)

type LinkLister interface {
	LinkList() ([]netlink.Link, error)
}

// PortClassifier decides switch-port membership for a link name.
type PortClassifier interface {
	IsSwitchPort(name string) bool
}

type NetlinkLister struct{}

func (NetlinkLister) LinkList() ([]netlink.Link, error) {
	return netlink.LinkList()
}

// Discover builds an inventory from the kernel's links. A nil classifier
// leaves every SwitchPort false.
func Discover(lister LinkLister, classifier PortClassifier) (*Manager, error) {
	if lister == nil {
		lister = NetlinkLister{}
	}

	links, err := lister.LinkList()
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}

	log := logger.Component(logger.IfMgr)
	m := New()

	for _, link := range links {
		if link == nil {
			continue
		}
		attrs := link.Attrs()
		if attrs == nil || attrs.Name == "" {
			continue
		}

		iface := &Interface{
			Index:     attrs.Index,
			Name:      attrs.Name,
			Type:      link.Type(),
			AdminUp:   attrs.Flags&net.FlagUp != 0,
			LinkUp:    attrs.OperState == netlink.OperUp,
			MTU:       attrs.MTU,
			MAC:       attrs.HardwareAddr,
			ParentIdx: attrs.ParentIndex,
			SubPort:   switchcfg.IsSubPortName(attrs.Name),
		}
		if classifier != nil {
			iface.SwitchPort = classifier.IsSwitchPort(attrs.Name)
		}

		logger.WithInterface(log, iface.Name).Debug("Discovered link", "index", iface.Index, "type", iface.Type, "switch_port", iface.SwitchPort)
		m.Add(iface)
	}

	log.Debug("Discovered links", "count", m.Len(), "switch_ports", len(m.SwitchPorts()))
	return m, nil
}

// DescriptorClassifier loads the descriptor once and classifies every link
// against that snapshot; a missing descriptor classifies nothing.
func DescriptorClassifier(path string) PortClassifier {
	d, _ := switchcfg.LoadDescriptor(path)
	return d
}
