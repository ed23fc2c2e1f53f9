package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karlo195/StardewMods/internal/game"
)

func TestUintFromFloat(t *testing.T) {
	v, err := UintFromFloat("32")
	require.NoError(t, err)
	assert.Equal(t, uint64(32), v)

	v, err = UintFromFloat("32.00")
	require.NoError(t, err)
	assert.Equal(t, uint64(32), v)

	_, err = UintFromFloat("-1")
	assert.Error(t, err)

	_, err = UintFromFloat("12.5")
	assert.Error(t, err)
}

func TestIntFromFloat(t *testing.T) {
	v, err := IntFromFloat("-7")
	require.NoError(t, err)
	assert.Equal(t, int64(-7), v)

	v, err = IntFromFloat("-7.00")
	require.NoError(t, err)
	assert.Equal(t, int64(-7), v)

	_, err = IntFromFloat("nope")
	assert.Error(t, err)
}

func TestTile(t *testing.T) {
	tile, err := Tile("5,4")
	require.NoError(t, err)
	assert.Equal(t, game.Tile{X: 5, Y: 4}, tile)

	tile, err = Tile(`"12, -3"`)
	require.NoError(t, err)
	assert.Equal(t, game.Tile{X: 12, Y: -3}, tile)

	tile, err = Tile("8.00,9.00")
	require.NoError(t, err)
	assert.Equal(t, game.Tile{X: 8, Y: 9}, tile)

	tile, err = Tile(`"(2,3)"`)
	require.NoError(t, err)
	assert.Equal(t, game.Tile{X: 2, Y: 3}, tile)

	_, err = Tile("5")
	assert.Error(t, err)

	_, err = Tile("a,b")
	assert.Error(t, err)
}

func TestStringArray(t *testing.T) {
	keys, err := StringArray(`["scythe","axe"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"scythe", "axe"}, keys)

	keys, err = StringArray(`[ "LeftShift" ]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"LeftShift"}, keys)

	keys, err = StringArray("[]")
	require.NoError(t, err)
	assert.Nil(t, keys)

	_, err = StringArray("scythe,axe")
	assert.Error(t, err)
}
