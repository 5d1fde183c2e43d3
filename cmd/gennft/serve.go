package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/SaeeDawod/gen-nft-app/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, settings, err := newManager()
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = settings.ServerAddress
		}

		r := gin.Default()
		api.RegisterRoutes(r, api.NewServer(settings, manager))

		fmt.Printf("Serving %s on %s\n", settings.CollectionName, addr)
		return r.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
