package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jetkvm/remote"
	"github.com/prometheus/common/version"
)

// defaultVersion is used when the build does not stamp one with -ldflags.
const defaultVersion = "0.1.0"

func main() {
	var (
		configPath  = flag.String("config", "/userdata/remote/config.yaml", "Path to the YAML config file (empty for defaults)")
		logLevel    = flag.String("log-level", "", "Log level: trace, debug, info, warn, error (overrides the config file)")
		serialPort  = flag.String("serial", "", "Controller bridge serial port (overrides the config file)")
		debugListen = flag.String("debug-listen", "", "Address for the /status and /metrics endpoints, e.g. 127.0.0.1:8080")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if version.Version == "" {
		version.Version = defaultVersion
	}
	if *showVersion {
		fmt.Println(version.Print("featherremote"))
		return
	}

	path := *configPath
	if _, err := os.Stat(path); path != "" && os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "config %s not found, using defaults\n", path)
		path = ""
	}

	cfg, err := remote.LoadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *serialPort != "" {
		cfg.Serial.Port = *serialPort
	}
	if *debugListen != "" {
		cfg.DebugListen = *debugListen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := remote.Run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
