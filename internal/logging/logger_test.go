package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		env     string
		want    zapcore.Level
		wantErr bool
	}{
		{"default level", "", "", zapcore.InfoLevel, false},
		{"debug production", "debug", "production", zapcore.DebugLevel, false},
		{"warn development", "WARN", "development", zapcore.WarnLevel, false},
		{"invalid", "loud", "", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !log.Core().Enabled(tt.want) {
				t.Errorf("logger should be enabled at %v", tt.want)
			}
			if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
				t.Errorf("logger should not be enabled below %v", tt.want)
			}
		})
	}
}
