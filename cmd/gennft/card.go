package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	ioutils "github.com/SaeeDawod/gen-nft-app/internal/io"
)

var cardOut string

var cardCmd = &cobra.Command{
	Use:   "card <id>",
	Short: "Render a shareable promo card for a generated token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid token id %q", args[0])
		}

		manager, _, err := newManager()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		card, err := manager.Generator().ShareCard(ctx, id)
		if err != nil {
			return err
		}

		out := cardOut
		if out == "" {
			cardsDir := manager.Generator().Collection().CardsDir()
			if err := ioutils.EnsureDir(cardsDir); err != nil {
				return err
			}
			out = filepath.Join(cardsDir, fmt.Sprintf("%d.png", id))
		}
		if err := imaging.Save(card, out); err != nil {
			return err
		}

		fmt.Printf("Card saved to %s\n", out)
		return nil
	},
}

func init() {
	cardCmd.Flags().StringVarP(&cardOut, "out", "o", "", "Output file path (default <output>/cards/<id>.png)")
	rootCmd.AddCommand(cardCmd)
}
