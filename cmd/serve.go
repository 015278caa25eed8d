package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vocalforge/voice-api/api"
	"github.com/vocalforge/voice-api/api/types"
	"github.com/vocalforge/voice-api/internal/database"
	"github.com/vocalforge/voice-api/internal/models"
	"github.com/vocalforge/voice-api/internal/services/reconcile"
	"github.com/vocalforge/voice-api/internal/services/storage"
	"github.com/vocalforge/voice-api/internal/services/synthesis"
	"github.com/vocalforge/voice-api/internal/services/tempfiles"
	"github.com/vocalforge/voice-api/internal/services/voiceclone"
	"github.com/vocalforge/voice-api/internal/services/voicemodels"
	"github.com/vocalforge/voice-api/pkg/config"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Voice Clone API server with the configured settings.

The server exposes voice model management, text-to-speech synthesis, and
generated audio playback over HTTP.

Example:
  voice-api serve
  voice-api serve --port 9090
  voice-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	// Initialize database and migrate schema
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("[WARN] Failed to close database: %v", err)
		}
	}()

	if err := db.AutoMigrate(&models.VoiceModel{}, &models.SynthesisRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	deps, err := buildDependencies(cfg, db)
	if err != nil {
		return err
	}

	// Background sweep of abandoned temp files
	sweeper := tempfiles.NewSweeper(cfg.Storage.TempDir, cfg.Storage.MaxTempAge, cfg.Storage.CleanupInterval)
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper.Start(sweepCtx)
	defer stopSweeper()

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Voice Clone API listening at %s:%d", serverHost, serverPort)

	select {
	case <-stop:
		log.Println("[INFO] Shutting down server...")
	case err := <-serverErr:
		log.Printf("[ERROR] %v", err)
		log.Println("[INFO] Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] Server forced to shutdown: %v", err)
		return err
	}

	log.Println("[INFO] Server gracefully stopped")
	return nil
}

// buildDependencies wires every service the handlers need.
func buildDependencies(cfg *config.Config, db *database.DB) (*types.Dependencies, error) {
	voiceClient := voiceclone.NewClient(voiceclone.Config{
		APIKey:           cfg.VoiceService.APIKey,
		BaseURL:          cfg.VoiceService.BaseURL,
		CreateTimeout:    cfg.VoiceService.CreateTimeout,
		SynthesisTimeout: cfg.VoiceService.SynthesisTimeout,
		ListTimeout:      cfg.VoiceService.ListTimeout,
	})

	audioStore, err := storage.NewFilesystemStorage(cfg.Storage.AudioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio storage: %w", err)
	}

	uploadStore, err := storage.NewFilesystemStorage(cfg.Storage.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	staging := tempfiles.NewManager(cfg.Storage.TempDir)
	modelRepo := voicemodels.NewRepository(db.DB)
	synthesisRepo := synthesis.NewRepository(db.DB)

	return &types.Dependencies{
		DB:               db,
		VoiceClient:      voiceClient,
		ModelService:     voicemodels.NewService(modelRepo, voiceClient, staging),
		SynthesisService: synthesis.NewService(synthesisRepo, modelRepo, voiceClient, audioStore),
		ReconcileService: reconcile.NewService(modelRepo, voiceClient),
		AudioStore:       audioStore,
		UploadStore:      uploadStore,
		MaxUploadBytes:   cfg.Storage.MaxUploadSize,
	}, nil
}
