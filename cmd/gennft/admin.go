package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SaeeDawod/gen-nft-app/internal/contract"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative contract operations",
}

var collectReservesCmd = &cobra.Command{
	Use:   "collect-reserves",
	Short: "Withdraw reserved funds to the owner wallet",
	RunE:  adminTxRunE((*contract.Client).CollectReserves),
}

var startSaleCmd = &cobra.Command{
	Use:   "start-sale",
	Short: "Open the public sale",
	RunE:  adminTxRunE((*contract.Client).StartPublicSale),
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the contract",
	RunE:  adminTxRunE((*contract.Client).Pause),
}

var unpauseCmd = &cobra.Command{
	Use:   "unpause",
	Short: "Unpause the contract",
	RunE:  adminTxRunE((*contract.Client).Unpause),
}

var setBaseURICmd = &cobra.Command{
	Use:   "set-base-uri <uri>",
	Short: "Point the contract's token URIs at a new base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := contractClient()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		txHash, err := client.SetBaseURI(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Tx hash: %s\n", txHash)
		return nil
	},
}

// adminTxRunE wraps a no-argument contract verb into a cobra handler.
func adminTxRunE(call func(*contract.Client, context.Context) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := contractClient()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		txHash, err := call(client, ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Tx hash: %s\n", txHash)
		return nil
	}
}

func init() {
	adminCmd.AddCommand(collectReservesCmd, startSaleCmd, pauseCmd, unpauseCmd, setBaseURICmd)
	rootCmd.AddCommand(adminCmd)
}
