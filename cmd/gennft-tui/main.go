package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/SaeeDawod/gen-nft-app/internal/config"
	"github.com/SaeeDawod/gen-nft-app/internal/tui"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to config file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
