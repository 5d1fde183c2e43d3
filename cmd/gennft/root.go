package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SaeeDawod/gen-nft-app/internal/config"
	"github.com/SaeeDawod/gen-nft-app/internal/contract"
	"github.com/SaeeDawod/gen-nft-app/internal/generator"
	"github.com/SaeeDawod/gen-nft-app/internal/mint"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gennft",
	Short: "Generate NFT collection art and mint it through the contract service",
	Long: `gennft composites layered token art, writes ERC-721 metadata
sidecars, uploads the results to object storage and drives mint and
admin transactions through the smart contract service.

For interactive mode, use: gennft-tui`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadSettings() (*config.Settings, error) {
	return config.Load(configPath)
}

// newManager loads settings and builds the mint manager with a stdout
// progress printer.
func newManager() (*mint.Manager, *config.Settings, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	manager, err := mint.NewManager(settings, printProgress)
	if err != nil {
		return nil, nil, err
	}
	return manager, settings, nil
}

// contractClient builds a bare contract service client for commands that
// only talk to the contract.
func contractClient() (*contract.Client, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if !settings.ContractConfigured() {
		return nil, fmt.Errorf("contract service is not configured")
	}
	addr, err := contract.ParseAddress(settings.ContractAddress)
	if err != nil {
		return nil, err
	}
	return contract.NewClient(settings.ContractServiceURL, addr, settings.ContractServiceToken), nil
}

// signalContext returns a context cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

func printProgress(event generator.ProgressEvent) {
	if event.Level == generator.LevelVerbose && !verbose {
		return
	}

	prefix := ""
	switch event.Level {
	case generator.LevelError:
		prefix = "❌ "
	case generator.LevelWarning:
		prefix = "⚠️  "
	case generator.LevelSuccess:
		prefix = "✅ "
	case generator.LevelInfo:
		prefix = "ℹ️  "
	default:
		prefix = "   "
	}

	fmt.Println(prefix + event.Message)
}
