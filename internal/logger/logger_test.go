package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		debugOn bool
		warnOn  bool
	}{
		{name: "production", env: "production", debugOn: false, warnOn: true},
		{name: "development", env: "development", debugOn: true, warnOn: true},
		{name: "local default", env: "local", debugOn: false, warnOn: true},
		{name: "empty", env: "", debugOn: false, warnOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.env)
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.env, err)
			}
			if got := log.Core().Enabled(zap.DebugLevel); got != tt.debugOn {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugOn)
			}
			if got := log.Core().Enabled(zap.WarnLevel); got != tt.warnOn {
				t.Errorf("warn enabled = %v, want %v", got, tt.warnOn)
			}
		})
	}
}
