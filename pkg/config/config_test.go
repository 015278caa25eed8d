package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setDefaults()

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/voice.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Second, cfg.VoiceService.CreateTimeout)
	assert.Equal(t, 60*time.Second, cfg.VoiceService.SynthesisTimeout)
	assert.Equal(t, int64(50*1024*1024), cfg.Storage.MaxUploadSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			setup:   func() {},
			wantErr: false,
		},
		{
			name: "invalid port",
			setup: func() {
				viper.Set("server.port", -1)
			},
			wantErr: true,
		},
		{
			name: "unknown database driver",
			setup: func() {
				viper.Set("database.driver", "mongodb")
			},
			wantErr: true,
		},
		{
			name: "postgres requires dsn",
			setup: func() {
				viper.Set("database.driver", "postgres")
				viper.Set("database.dsn", "")
			},
			wantErr: true,
		},
		{
			name: "postgres with dsn",
			setup: func() {
				viper.Set("database.driver", "postgres")
				viper.Set("database.dsn", "host=localhost user=voice dbname=voice")
			},
			wantErr: false,
		},
		{
			name: "nonsense timeout corrected",
			setup: func() {
				viper.Set("voice_service.create_timeout", "-5s")
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			setDefaults()
			tt.setup()

			err := validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Positive(t, GetDuration("voice_service.create_timeout"))
			}
		})
	}
}

func TestEnvironmentOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	setDefaults()

	t.Setenv("VOICEAPI_SERVER_PORT", "9090")
	viper.SetEnvPrefix("VOICEAPI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	assert.Equal(t, 9090, GetInt("server.port"))
}

func TestConfigStructValidate(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30*time.Second, cfg.VoiceService.CreateTimeout)
	assert.Equal(t, 60*time.Second, cfg.VoiceService.SynthesisTimeout)

	bad := &Config{Server: ServerConfig{Port: 0}}
	assert.Error(t, bad.Validate())
}
