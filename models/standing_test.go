package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolStandingLess(t *testing.T) {
	base := func() *PoolStanding {
		return &PoolStanding{TeamName: "M", Points: 4, SetDiff: 2, GameDiff: 5}
	}

	t.Run("points decide first", func(t *testing.T) {
		a, b := base(), base()
		a.Points = 5
		a.SetDiff = -10
		assert.True(t, a.Less(b))
		assert.False(t, b.Less(a))
	})

	t.Run("set difference breaks point ties", func(t *testing.T) {
		a, b := base(), base()
		a.SetDiff = 3
		a.GameDiff = -20
		assert.True(t, a.Less(b))
	})

	t.Run("game difference breaks set ties", func(t *testing.T) {
		a, b := base(), base()
		a.GameDiff = 6
		assert.True(t, a.Less(b))
	})

	t.Run("name ascending as last resort", func(t *testing.T) {
		a, b := base(), base()
		a.TeamName = "Alpha"
		b.TeamName = "Beta"
		assert.True(t, a.Less(b))
		assert.False(t, b.Less(a))
	})

	t.Run("fully equal is not less", func(t *testing.T) {
		a, b := base(), base()
		assert.False(t, a.Less(b))
		assert.False(t, b.Less(a))
	})
}
