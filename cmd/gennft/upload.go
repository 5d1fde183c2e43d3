package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [id...]",
	Short: "Upload generated tokens to object storage",
	Long: `Upload pushes image/metadata pairs from the output directory to the
configured bucket. With no arguments every generated token is uploaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, _, err := newManager()
		if err != nil {
			return err
		}

		var ids []uint64
		for _, arg := range args {
			id, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid token id %q", arg)
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			ids, err = manager.ExistingTokenIDs()
			if err != nil {
				return err
			}
		}
		if len(ids) == 0 {
			return fmt.Errorf("no generated tokens found")
		}

		ctx, cancel := signalContext()
		defer cancel()

		return manager.UploadExisting(ctx, ids)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
