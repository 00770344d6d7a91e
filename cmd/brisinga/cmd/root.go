/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/brisinga/pkg/di"
	"github.com/ssargent/brisinga/pkg/storage"
)

var container *di.Container

// SetContainer injects the dependency container used by all commands.
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brisinga",
	Short: "Brisinga - Packed Vector Store",
	Long: `Brisinga stores sorted collections of fixed-width records packed
into fixed-capacity byte buffers, persisted in an embedded store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			container = di.NewContainer()
		}
		dataDir, _ := cmd.Flags().GetString("data-dir")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		buffers, err := container.OpenStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), "store", buffers))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if buffers, ok := cmd.Context().Value("store").(*storage.BufferStore); ok {
			return buffers.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global data directory flag
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the store")
}

// storeFromContext pulls the buffer store placed in the context by the
// root command's pre-run.
func storeFromContext(cmd *cobra.Command) (*storage.BufferStore, bool) {
	buffers, ok := cmd.Context().Value("store").(*storage.BufferStore)
	return buffers, ok
}
