package http_test

import (
	"testing"
	"time"

	shttp "github.com/fwojciec/htmlsitemap/http"
	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_Allow(t *testing.T) {
	t.Parallel()

	t.Run("limits each client separately", func(t *testing.T) {
		t.Parallel()

		l := shttp.NewClientLimiter(0.001, 1)

		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
		assert.True(t, l.Allow("b"))
	})

	t.Run("drops limiters of idle clients", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		l := shttp.NewClientLimiter(0.001, 1)
		l.IdleTimeout = time.Minute
		l.Now = func() time.Time { return now }

		l.Allow("idle")
		l.Allow("busy")
		assert.Equal(t, 2, l.Len())

		now = now.Add(30 * time.Second)
		l.Allow("busy")
		assert.Equal(t, 2, l.Len())

		now = now.Add(45 * time.Second)
		l.Allow("busy")
		assert.Equal(t, 1, l.Len())
	})

	t.Run("a returning client starts with a fresh bucket", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		l := shttp.NewClientLimiter(0.0001, 1)
		l.IdleTimeout = time.Minute
		l.Now = func() time.Time { return now }

		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))

		now = now.Add(2 * time.Minute)
		assert.True(t, l.Allow("a"))
	})
}
