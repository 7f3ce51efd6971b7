package infra

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintBanner(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		key      string
		wantMode string
		wantWarn bool
	}{
		{"https", "https://api.example.org", "k", "TLS", false},
		{"loopback", "http://localhost:3000", "k", "LOCAL", false},
		{"plain http with key", "http://10.0.0.5:3000", "k", "UNENCRYPTED", true},
		{"plain http without key", "http://10.0.0.5:3000", "", "UNENCRYPTED", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.API.Host = tt.host
			cfg.API.Key = tt.key

			var buf bytes.Buffer
			PrintBanner(&buf, cfg)
			out := buf.String()

			if !strings.Contains(out, tt.wantMode) {
				t.Errorf("expected mode %s in banner:\n%s", tt.wantMode, out)
			}
			if got := strings.Contains(out, "WARNING"); got != tt.wantWarn {
				t.Errorf("warning shown = %v, want %v", got, tt.wantWarn)
			}
			if tt.key != "" && strings.Contains(out, tt.key+" ") {
				t.Error("banner must not print the key")
			}
		})
	}
}
