package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextLogger_WithContext_ExtractsBusinessKeys(t *testing.T) {
	cl := NewContextLogger("reco-orchestrator")

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "u42")
	ctx = WithStage(ctx, "fusion")

	log := cl.WithContext(ctx)
	assert.NotNil(t, log)

	// An empty context still yields a usable logger.
	assert.NotNil(t, cl.WithContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"DEBUG", "DEBUG"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
		{"garbage", "INFO"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.input).String(), "input %q", tt.input)
	}
}
