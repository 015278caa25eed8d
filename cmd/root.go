package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vocalforge/voice-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voice-api",
	Short: "Voice Clone API server",
	Long: `Voice Clone API - a voice cloning and text-to-speech API

Users upload a short audio sample, the service clones the voice through a
remote provider, tracks the model lifecycle locally, and synthesizes speech
against ready models.

Features:
  • Voice model creation from uploaded audio samples
  • Text-to-speech synthesis against cloned voices
  • Generated audio playback with range request support
  • Local/remote consistency reporting for debugging`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// loadConfig loads the configuration when a command needs it.
// Version and help never touch config so they work in bare environments.
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
