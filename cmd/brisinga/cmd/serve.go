/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/brisinga/pkg/api"
	"github.com/ssargent/brisinga/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the Brisinga REST API server.

Configuration is read from the config file when one exists; flags
override it. When no API key is configured a random one is generated
and printed at startup.

Examples:
  brisinga serve --api-key=mysecretkey --port=8090
  brisinga serve --config ./brisinga.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		apiKey, _ := cmd.Flags().GetString("api-key")
		configPath, _ := cmd.Flags().GetString("config")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := container.LoadConfig(configPath)
			if err != nil {
				cmd.Printf("Error loading config: %v\n", err)
				return err
			}
			cfg = loaded
			cmd.Printf("Loaded configuration from %s\n", configPath)
		}

		if port != 0 {
			cfg.Port = port
		}
		if apiKey != "" {
			cfg.Security.APIKey = apiKey
		}
		if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
			generated, err := config.GenerateSecureKey(32)
			if err != nil {
				cmd.Printf("Error generating API key: %v\n", err)
				return err
			}
			cfg.Security.APIKey = generated
			cmd.Printf("Generated API key: %s\n", generated)
		}

		buffers, ok := storeFromContext(cmd)
		if !ok {
			cmd.Println("Error: store not found in context")
			return nil
		}

		return api.StartServer(buffers, api.ServerConfig{
			Port:   cfg.Port,
			APIKey: cfg.Security.APIKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().String("api-key", "", "API key for authentication (overrides config)")
	serveCmd.Flags().String("config", "", "Path to the config file")
}
