package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/veesix-networks/netcfg/pkg/dscp"
	"github.com/veesix-networks/netcfg/pkg/ifconfig"
	"github.com/veesix-networks/netcfg/pkg/ifmgr"
	"github.com/veesix-networks/netcfg/pkg/switchcfg"
)

// lister is swapped out in tests.
var lister ifmgr.LinkLister = ifmgr.NetlinkLister{}

func cmdDSCP(e *env, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(e.stderr, "usage: netcfg dscp <value>...")
		return exitError
	}

	code := exitOK
	for _, arg := range args {
		v, err := dscp.Parse(arg)
		e.metrics.DSCPConversion("parse", err)
		if err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			code = exitError
			continue
		}
		fmt.Fprintln(e.stdout, v)
	}
	return code
}

func cmdDSCPRange(e *env, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(e.stderr, "usage: netcfg dscp-range <list>")
		return exitError
	}

	values, err := dscp.ExpandRanges(args[0])
	e.metrics.DSCPConversion("range", err)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprintln(e.stdout, dscp.ValueList(values))
	return exitOK
}

func cmdDSCPNames(e *env, args []string) int {
	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	for _, name := range dscp.Names() {
		v, _ := dscp.Lookup(name)
		fmt.Fprintf(tw, "%s\t%d\n", name, v)
	}
	tw.Flush()
	return exitOK
}

func cmdSwitchPort(e *env, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(e.stderr, "usage: netcfg switchport <interface>")
		return exitError
	}

	c := switchcfg.NewClassifier(e.cfg.Switch.DescriptorPath, e.metrics)
	if c.IsSwitchPort(args[0]) {
		fmt.Fprintln(e.stdout, "true")
		return exitOK
	}
	fmt.Fprintln(e.stdout, "false")
	return exitFalse
}

func cmdSwitches(e *env, args []string) int {
	c := switchcfg.NewClassifier(e.cfg.Switch.DescriptorPath, e.metrics)
	d, ok := c.Descriptor()
	if !ok {
		fmt.Fprintf(e.stdout, "no switch descriptor at %s\n", c.Path)
		return exitOK
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tID\tINTERFACES")
	for _, sw := range d.Switches() {
		id := "-"
		if sw.HasID {
			id = fmt.Sprint(sw.ID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", sw.Index, id, strings.Join(sw.Interfaces, ","))
	}
	tw.Flush()
	return exitOK
}

func cmdLinks(e *env, args []string) int {
	fs := flag.NewFlagSet("links", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	switchOnly := fs.Bool("switch-only", false, "only show switch ports")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	m, err := ifmgr.Discover(lister, ifmgr.DescriptorClassifier(e.cfg.Switch.DescriptorPath))
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitError
	}

	ifaces := m.List()
	if *switchOnly {
		ifaces = m.SwitchPorts()
	}
	e.metrics.SetSwitchPorts(len(m.SwitchPorts()))

	if fs.NArg() > 0 {
		ifaces = nil
		for _, name := range fs.Args() {
			iface := m.GetByName(name)
			if iface == nil {
				fmt.Fprintf(e.stderr, "Error: no such link %q\n", name)
				return exitError
			}
			if *switchOnly && !iface.SwitchPort {
				continue
			}
			ifaces = append(ifaces, iface)
		}
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINDEX\tTYPE\tSTATE\tPARENT\tSWITCH")
	for _, iface := range ifaces {
		state := "down"
		if iface.AdminUp {
			state = "up"
		}
		parent := "-"
		if iface.HasParent() {
			if p := m.Get(iface.ParentIdx); p != nil {
				parent = p.Name
			} else {
				parent = fmt.Sprint(iface.ParentIdx)
			}
		}
		switchCol := "-"
		if iface.SwitchPort {
			switchCol = "yes"
			if iface.SubPort {
				switchCol = "sub-port"
			}
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", iface.Name, iface.Index, iface.Type, state, parent, switchCol)
	}
	tw.Flush()
	return exitOK
}

func cmdInterfaces(e *env, args []string) int {
	fs := flag.NewFlagSet("interfaces", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Configd.Timeout)
	defer cancel()

	result, err := ifconfig.GetInterfaceConfig(ctx, ifconfig.HTTPDialer(e.cfg.Configd.URL, e.cfg.Configd.Timeout))
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitError
	}

	if *asJSON {
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tKEY")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, result[name].Type, result[name].Key)
	}
	tw.Flush()
	return exitOK
}
