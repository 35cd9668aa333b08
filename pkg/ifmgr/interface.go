package ifmgr

import "net"

type Interface struct {
	Index      int
	Name       string
	Type       string
	AdminUp    bool
	LinkUp     bool
	MTU        int
	MAC        net.HardwareAddr
	ParentIdx  int
	SwitchPort bool
	SubPort    bool
}

func (i *Interface) HasParent() bool {
	return i.ParentIdx != 0 && i.ParentIdx != i.Index
}
