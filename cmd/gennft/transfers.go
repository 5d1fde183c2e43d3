package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SaeeDawod/gen-nft-app/internal/indexer"
)

var transfersLimit int

var transfersCmd = &cobra.Command{
	Use:   "transfers",
	Short: "Show recent token transfers from the indexer",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if settings.IndexerURL == "" {
			return fmt.Errorf("indexer is not configured")
		}
		client := indexer.NewClient(settings.IndexerURL)

		ctx, cancel := signalContext()
		defer cancel()

		transfers, err := client.Transfers(ctx, transfersLimit)
		if err != nil {
			return err
		}
		if len(transfers) == 0 {
			fmt.Println("No transfers found")
			return nil
		}

		for _, t := range transfers {
			kind := "transfer"
			if t.IsMint() {
				kind = "mint"
			}
			fmt.Printf("%s  %-8s  #%-5d  %s → %s  %s\n",
				t.Timestamp.Format(time.RFC3339),
				kind,
				t.TokenID,
				t.ShortFrom(),
				t.ShortTo(),
				t.TxHash,
			)
		}
		return nil
	},
}

func init() {
	transfersCmd.Flags().IntVarP(&transfersLimit, "limit", "n", 0, "Maximum number of transfers to show")
	rootCmd.AddCommand(transfersCmd)
}
