package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-H", ":8081", "-d", "memory", "-s", "secret", "-t", "5",
				"-w", "doc@example.com, nurse@example.com", "-l", "zap", "-v", "debug",
				"-R", "localhost:6379", "-x", "events",
				"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
			},
			expected: &Config{
				EndpointAddrGRPC:            "127.0.0.1:9090",
				EndpointAddrHTTP:            ":8081",
				DatabaseDSN:                 "memory",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 5 * time.Minute,
				AllowedCallers:              []string{"doc@example.com", "nurse@example.com"},
				LogBackend:                  "zap",
				LogLevel:                    "debug",
				RedisAddr:                   "localhost:6379",
				EventsStream:                "events",
				S3RootUser:                  "user",
				S3RootPassword:              "password",
				S3Bucket:                    "bucket",
				S3Region:                    "us-west-1",
				S3BaseEndpoint:              "http://endpoint",
			},
		},
		{
			name: "config flag and unknown flags are ignored",
			args: []string{"cmd", "-c", "cfg.json", "-z", "-a", ":1"},
			expected: &Config{
				EndpointAddrGRPC: ":1",
				AllowedCallers:   []string{},
			},
		},
		{
			name:        "bad int panics",
			args:        []string{"cmd", "-t", "soon"},
			expectPanic: true,
		},
	}

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
