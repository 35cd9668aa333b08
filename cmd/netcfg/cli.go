package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/veesix-networks/netcfg/pkg/config"
	"github.com/veesix-networks/netcfg/pkg/logger"
	"github.com/veesix-networks/netcfg/pkg/metrics"
	"github.com/veesix-networks/netcfg/pkg/version"
)

const (
	exitOK    = 0
	exitFalse = 1
	exitError = 2
)

type env struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	log     *slog.Logger
	stdout  io.Writer
	stderr  io.Writer
}

type command struct {
	usage string
	help  string
	run   func(e *env, args []string) int
}

var commands = map[string]command{
	"dscp":       {"dscp <value>...", "convert DSCP names or literals to numbers", cmdDSCP},
	"dscp-range": {"dscp-range <list>", "expand a DSCP range list such as 1,af11-af13", cmdDSCPRange},
	"dscp-names": {"dscp-names", "list symbolic DSCP names", cmdDSCPNames},
	"switchport": {"switchport <interface>", "exit 0 if the interface is a hardware switch port", cmdSwitchPort},
	"switches":   {"switches", "show the hardware switch descriptor", cmdSwitches},
	"links":      {"links [-switch-only] [name...]", "list kernel links with their switch membership", cmdLinks},
	"interfaces": {"interfaces [-json]", "list interfaces configured in configd", cmdInterfaces},
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("netcfg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultPath, "Path to configuration file")
	descriptor := fs.String("switch-conf", "", "Override the switch descriptor path")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() { usage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *showVersion {
		fmt.Fprintln(stdout, version.String("netcfg"))
		return exitOK
	}
	if fs.NArg() == 0 {
		usage(fs, stderr)
		return exitError
	}

	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		usage(fs, stderr)
		return exitError
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitError
	}
	if *descriptor != "" {
		cfg.Switch.DescriptorPath = *descriptor
	}

	logger.SetOutput(stderr)
	logger.Configure(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Components)

	e := &env{
		cfg:     cfg,
		metrics: metrics.New(),
		log:     logger.Component(logger.Main),
		stdout:  stdout,
		stderr:  stderr,
	}

	code := cmd.run(e, fs.Args()[1:])

	if err := e.metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		e.log.Warn("Failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
	}
	return code
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "usage: netcfg [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-24s %s\n", commands[name].usage, commands[name].help)
	}

	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}
