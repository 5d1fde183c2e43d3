package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [count]",
	Short: "Generate token images and metadata locally",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("count must be a positive number, got %q", args[0])
			}
			count = n
		}

		manager, _, err := newManager()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		startID, err := manager.NextTokenID(ctx)
		if err != nil {
			return err
		}

		generated, err := manager.GenerateBatch(ctx, startID, count)
		if err != nil {
			return err
		}

		fmt.Printf("\nGenerated %d token(s) starting at #%d\n", generated, startID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
