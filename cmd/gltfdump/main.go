package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/dump"
)

func main() {
	// Create config with defaults
	config := dump.NewConfig()

	configPath := flag.String("config", "", "TOML config file; flags override its values")
	logLevel := flag.String("log-level", config.LogLevel, "Log level: debug, info, warn or error")
	chunkSize := flag.Int("chunk-size", config.ChunkSize, "Bytes fed to the parser per call")
	strict := flag.Bool("strict", false, "Fail on enumerated values that match no keyword")
	workers := flag.Int("workers", 0, "Files parsed at once (0 picks a default)")
	watch := flag.Bool("watch", false, "Re-print files when they change")
	backend := flag.String("backend", config.Backend, "Feeding strategy: scanner or whole")
	profile := flag.Bool("profile", false, "Log parse throughput and memory statistics")
	sections := flag.String("sections", "", "Comma-separated list of sections to print (empty means all)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file.gltf|file.glb...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			config.LogLevel = *logLevel
		case "chunk-size":
			config.ChunkSize = *chunkSize
		case "strict":
			config.StrictKeywords = *strict
		case "workers":
			config.Workers = *workers
		case "watch":
			config.Watch = *watch
		case "backend":
			config.Backend = *backend
		case "profile":
			config.Profile = *profile
		case "sections":
			config.SetSections(*sections)
		}
	})

	// Validate configuration
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	common.SetLogLevel(config.LogLevel)

	d, err := dump.NewDumper(config, os.Stdout)
	if err != nil {
		common.LogError("%s", err.Error())
		os.Exit(1)
	}

	runErr := d.Run(flag.Args())
	if runErr != nil {
		common.LogError("%s", runErr.Error())
	}

	if config.Watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := d.Watch(ctx, flag.Args()); err != nil {
			common.LogError("%s", err.Error())
			os.Exit(1)
		}
		return
	}

	if runErr != nil {
		os.Exit(1)
	}
}
