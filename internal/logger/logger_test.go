package logger_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/Anish-Chanda/bytesearch/internal/logger"
)

func TestNewLogger_ValidLevel(t *testing.T) {
	log := logger.New("debug")
	if log == nil {
		t.Fatal("Expected non-nil logger for valid level")
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug level to be enabled")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	log := logger.New("invalid-level")
	if log == nil {
		t.Fatal("Expected non-nil logger fallback for invalid level")
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected fallback to info level")
	}
}
