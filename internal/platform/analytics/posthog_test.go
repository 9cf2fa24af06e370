package analytics

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_DisabledWithoutKey(t *testing.T) {
	c := NewClient("", "", slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.False(t, c.Enabled())
	assert.NotPanics(t, func() {
		c.Enqueue("someone", "api_v1_transactions", map[string]any{"method": "POST"})
		c.Close()
	})
}

func TestNilClientIsDisabled(t *testing.T) {
	var c *Client
	assert.False(t, c.Enabled())
	assert.NotPanics(t, func() { c.Enqueue("someone", "event", nil) })
}
