package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vocalforge/voice-api/internal/database"
	"github.com/vocalforge/voice-api/internal/models"
	"github.com/vocalforge/voice-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply the database schema for the Voice Clone API.

Runs GORM auto-migration for the voice model and synthesis history tables
against the configured database backend.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("dry-run", false, "show what would be migrated without making changes")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "Dry run mode - no changes will be made")
		fmt.Fprintf(cmd.OutOrStdout(), "Would migrate tables: %s, %s\n",
			models.VoiceModel{}.TableName(), models.SynthesisRecord{}.TableName())
		return nil
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.VoiceModel{}, &models.SynthesisRecord{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migration complete")
	return nil
}
