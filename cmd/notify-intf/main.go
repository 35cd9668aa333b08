package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/veesix-networks/netcfg/pkg/config"
	"github.com/veesix-networks/netcfg/pkg/logger"
	"github.com/veesix-networks/netcfg/pkg/notify"
)

// newEmitter is swapped out in tests.
var newEmitter = func(cfg *config.Config) notify.Emitter {
	return notify.NewHTTPEmitter(cfg.Notify.URL, cfg.Notify.Timeout)
}

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stderr))
}

func run(args []string, getenv func(string) string, stderr io.Writer) int {
	fs := flag.NewFlagSet("notify-intf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultPath, "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "usage %s [-config path]\n", fs.Name())
		return 1
	}

	state, err := notify.FromEnv(getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	logger.SetOutput(stderr)
	logger.Configure(cfg.Logging.Format, cfg.Logging.Level, cfg.Logging.Components)
	log := logger.WithInterface(logger.Component(logger.Notify), state.Interface.Name)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Notify.Timeout)
	defer cancel()

	err = notify.EmitInterfaceState(ctx, newEmitter(cfg), state)

	// udev may run us before the bus is up
	var unreachable *notify.UnreachableError
	if errors.As(err, &unreachable) {
		log.Debug("Notification bus not reachable, skipping", "error", err)
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	log.Debug("Emitted interface state", "state", state.Interface.State)
	return 0
}
