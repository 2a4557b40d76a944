package config

import (
	"testing"
	"time"

	"github.com/saeidalz13/battleship-fleet/api"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name              string
		env               map[string]string
		expectedErr       bool
		expectedTransport string
		expectedTimeout   time.Duration
	}{
		{
			name: "http defaults",
			env: map[string]string{
				"API_URL":      "http://localhost:3000",
				"ACCESS_TOKEN": "token",
				"GAME_ID":      "g1",
			},
			expectedTransport: api.TransportHTTP,
			expectedTimeout:   defaultSubmitTimeout,
		},
		{
			name: "websocket with timeout",
			env: map[string]string{
				"STAGE":          StageProd,
				"TRANSPORT":      "ws",
				"WS_URL":         "ws://localhost:8000/battleship",
				"ACCESS_TOKEN":   "token",
				"GAME_ID":        "g1",
				"SUBMIT_TIMEOUT": "3s",
			},
			expectedTransport: api.TransportWs,
			expectedTimeout:   time.Second * 3,
		},
		{
			name:        "invalid stage",
			env:         map[string]string{"STAGE": "qa", "API_URL": "http://x", "ACCESS_TOKEN": "t", "GAME_ID": "g"},
			expectedErr: true,
		},
		{
			name:        "invalid transport",
			env:         map[string]string{"TRANSPORT": "carrier-pigeon", "API_URL": "http://x", "ACCESS_TOKEN": "t", "GAME_ID": "g"},
			expectedErr: true,
		},
		{
			name:        "missing game id",
			env:         map[string]string{"API_URL": "http://x", "ACCESS_TOKEN": "t"},
			expectedErr: true,
		},
		{
			name:        "ws without url",
			env:         map[string]string{"TRANSPORT": "ws", "ACCESS_TOKEN": "t", "GAME_ID": "g"},
			expectedErr: true,
		},
		{
			name:        "bad timeout",
			env:         map[string]string{"SUBMIT_TIMEOUT": "soon", "API_URL": "http://x", "ACCESS_TOKEN": "t", "GAME_ID": "g"},
			expectedErr: true,
		},
	}

	keys := []string{"STAGE", "TRANSPORT", "API_URL", "WS_URL", "ACCESS_TOKEN", "GAME_ID", "SUBMIT_TIMEOUT", "DATABASE_URL", "LOG_LEVEL"}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, key := range keys {
				t.Setenv(key, test.env[key])
			}

			cfg, err := FromEnv()
			if test.expectedErr {
				if err == nil {
					t.Fatalf("expected error\tgot config: %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Transport != test.expectedTransport {
				t.Fatalf("expected transport: %s\tgot: %s", test.expectedTransport, cfg.Transport)
			}
			if cfg.SubmitTimeout != test.expectedTimeout {
				t.Fatalf("expected timeout: %s\tgot: %s", test.expectedTimeout, cfg.SubmitTimeout)
			}
			if cfg.LogLevel != "info" {
				t.Fatalf("expected log level: %s\tgot: %s", "info", cfg.LogLevel)
			}
		})
	}
}
