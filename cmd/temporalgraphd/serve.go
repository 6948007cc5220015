package main

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/go-temporalgraph/go-temporalgraph/httpapi"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := httpapi.DefaultConfig()
		if serveConfigPath != "" {
			loaded, err := httpapi.LoadConfig(serveConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		logger := cfg.Log.NewLogger()
		logger.Info("Serving temporal-graph analysis API",
			slog.String("address", cfg.Address),
		)
		return http.ListenAndServe(cfg.Address, httpapi.New(logger, cfg.AllowedOrigins))
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to a TOML configuration file")
	rootCmd.AddCommand(serveCmd)
}
