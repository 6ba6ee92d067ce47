package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.Zero(t, Distance(48.8566, 2.3522, 48.8566, 2.3522))

	// Paris to Lyon is roughly 392 km.
	d := Distance(48.8566, 2.3522, 45.7640, 4.8357)
	assert.InDelta(t, 392, d, 2)
	assert.InDelta(t, d, Distance(45.7640, 4.8357, 48.8566, 2.3522), 1e-9)
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 1.2, RoundKm(1.24))
	assert.Equal(t, 1.3, RoundKm(1.25))
	assert.Equal(t, 0.0, RoundKm(0.04))
}
