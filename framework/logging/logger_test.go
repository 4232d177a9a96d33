package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"", zapcore.InfoLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			if err != nil {
				t.Fatalf("ParseLevel(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	if _, err := logging.ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			logger, err := logging.New(
				config.AppConfig{Name: "test", Env: "testing"},
				config.LogConfig{Level: "warn", Format: format},
			)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if logger.Core().Enabled(zapcore.InfoLevel) {
				t.Error("info should be disabled at warn level")
			}
			if !logger.Core().Enabled(zapcore.ErrorLevel) {
				t.Error("error should be enabled at warn level")
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(config.AppConfig{}, config.LogConfig{Level: "loud"})
	if err == nil {
		t.Error("expected error for invalid level")
	}
}
