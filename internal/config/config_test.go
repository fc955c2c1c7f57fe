package config

import (
	"mars-photos/internal/controller"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "HTTP_ADDR",
	"PHOTOS_BASE_URL", "PHOTOS_TIMEOUT", "PHOTOS_DECODE_ERROR_POLICY",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_CHANNEL",
	"KAFKA_SEEDS", "KAFKA_TOPIC", "KAFKA_USERNAME", "KAFKA_PASSWORD",
	"OTLP_ENDPOINT",
}

// clearEnv unsets every key for the duration of the test; t.Setenv restores the old values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, "https://android-kotlin-fun-mars-server.appspot.com", cfg.Photos.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Photos.Timeout)
	assert.Equal(t, "photos:state", cfg.Redis.Channel)
	assert.Equal(t, "photos-state", cfg.Kafka.Topic)

	policy, err := cfg.DecodePolicy()
	require.NoError(t, err)
	assert.Equal(t, controller.FoldIntoError, policy)

	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.TracingEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PHOTOS_BASE_URL", "mars.example.com/api")
	t.Setenv("PHOTOS_TIMEOUT", "5s")
	t.Setenv("PHOTOS_DECODE_ERROR_POLICY", "propagate")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("KAFKA_SEEDS", "k1:9092,k2:9092")
	t.Setenv("OTLP_ENDPOINT", "localhost:4318")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDev())
	assert.Equal(t, ":9090", cfg.App.HTTPAddr)
	assert.Equal(t, "https://mars.example.com/api", cfg.Photos.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Photos.Timeout)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Seeds)

	policy, err := cfg.DecodePolicy()
	require.NoError(t, err)
	assert.Equal(t, controller.Propagate, policy)

	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.KafkaEnabled())
	assert.True(t, cfg.TracingEnabled())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "unknown policy", key: "PHOTOS_DECODE_ERROR_POLICY", value: "retry", wantErr: controller.ErrUnknownPolicy},
		{name: "zero timeout", key: "PHOTOS_TIMEOUT", value: "0s", wantErr: ErrInvalidTimeout},
		{name: "control character in base url", key: "PHOTOS_BASE_URL", value: "mars\x7f.example.com", wantErr: ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_UnparsableDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("PHOTOS_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
