package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Show the collection's on-chain total supply",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		client, err := contractClient()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		supply, err := client.TotalSupply(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d minted\n", settings.CollectionName, supply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(supplyCmd)
}
