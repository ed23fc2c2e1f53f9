package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_BeginAssignsRunID(t *testing.T) {
	ctx := NewContext()
	assert.Empty(t, ctx.ID())
	assert.Equal(t, "No farm loaded", ctx.FarmName())

	s := ctx.Begin("Sunrise Farm", 1, 12, []string{"scythe"})
	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, s.ID, ctx.ID())
	assert.Equal(t, "Sunrise Farm", ctx.FarmName())
	assert.False(t, s.StartedAt.IsZero())
	assert.True(t, s.EndedAt.IsZero())
}

func TestContext_BeginGeneratesFreshIDs(t *testing.T) {
	ctx := NewContext()
	first := ctx.Begin("A", 1, 12, nil)
	second := ctx.Begin("B", 2, 24, nil)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, second.ID, ctx.ID())
}

func TestContext_EndStampsTime(t *testing.T) {
	ctx := NewContext()
	ctx.Begin("A", 1, 12, nil)
	ctx.End()
	assert.False(t, ctx.Get().EndedAt.IsZero())
}
