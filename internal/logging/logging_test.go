package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/graphmem/graphmem/internal/logging"
)

func TestNew_DefaultsToInfo(t *testing.T) {
	log, err := logging.New("")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer log.Sync()

	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at the default level")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be enabled at the default level")
	}
}

func TestNew_ParsesLevel(t *testing.T) {
	log, err := logging.New("debug")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer log.Sync()

	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be enabled when requested")
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := logging.New("shout"); err == nil {
		t.Error("expected error for unknown level")
	}
}
