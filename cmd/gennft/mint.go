package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SaeeDawod/gen-nft-app/internal/contract"
)

var mintTo string

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a token on chain and generate its art",
	RunE: func(cmd *cobra.Command, args []string) error {
		recipient, err := contract.ParseAddress(mintTo)
		if err != nil {
			return err
		}

		manager, _, err := newManager()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		result, err := manager.MintAndGenerate(ctx, recipient)
		if err != nil {
			return err
		}

		name := manager.Generator().Collection().TokenName(result.Token.ID)
		location := result.Token.ImagePath
		if result.ImageURL != "" {
			location = result.ImageURL
		}

		fmt.Println()
		fmt.Printf("Token:   %s\n", name)
		fmt.Printf("Tx hash: %s\n", result.TxHash)
		fmt.Printf("Image:   %s\n", location)
		return nil
	},
}

func init() {
	mintCmd.Flags().StringVar(&mintTo, "to", "", "Recipient address (0x...)")
	mintCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(mintCmd)
}
