package server_test

import (
	"testing"
	"time"

	"list-reconciler/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name string
		mb   int
		want int
	}{
		{"Default", 0, 8 << 20},
		{"Negative", -1, 8 << 20},
		{"Custom", 2, 2 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitMB: tt.mb}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}

func TestConfig_ShutdownTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, server.Config{}.ShutdownTimeout())
	assert.Equal(t, 3*time.Second, server.Config{ShutdownTimeoutSeconds: 3}.ShutdownTimeout())
}
