package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLevelsLoad(t *testing.T) {
	names := Names()
	require.Equal(t, []string{"cabin", "room"}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := LoadLevelFromFS(name)
			require.NoError(t, err)
			assert.Equal(t, name, lvl.Name)

			tracked := 0
			lvl.EachTile(func(tile Tile) {
				if tile.Glyph == TileTrackedLava {
					tracked++
				}
			})
			assert.Positive(t, tracked, "a bridge needs tracked lava")
		})
	}
}

func TestLoadMissingLevel(t *testing.T) {
	_, err := LoadLevelFromFS("attic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "levels: read attic.json")
}

func TestValidate(t *testing.T) {
	player := []Entity{{Type: "player"}}
	tests := []struct {
		name    string
		level   Level
		wantErr string
	}{
		{name: "ok", level: Level{TileSize: 16, Tiles: []string{"#.", "lL"}, Entities: player}},
		{name: "no tile size", level: Level{Tiles: []string{"#"}, Entities: player}, wantErr: "tile_size"},
		{name: "ragged", level: Level{TileSize: 16, Tiles: []string{"##", "#"}, Entities: player}, wantErr: "row 1"},
		{name: "bad glyph", level: Level{TileSize: 16, Tiles: []string{"#x"}, Entities: player}, wantErr: "unknown tile"},
		{name: "no player", level: Level{TileSize: 16, Tiles: []string{"#"}}, wantErr: "found 0"},
		{name: "two players", level: Level{TileSize: 16, Tiles: []string{"#"}, Entities: append(player, player...)}, wantErr: "found 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.level.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEachTileCentresAndBounds(t *testing.T) {
	lvl := Level{TileSize: 10, Tiles: []string{"#..", "..L"}}
	var tiles []Tile
	lvl.EachTile(func(tile Tile) { tiles = append(tiles, tile) })

	require.Len(t, tiles, 2)
	assert.Equal(t, Tile{Glyph: TileWall, Col: 0, Row: 0, X: 5, Y: 5}, tiles[0])
	assert.Equal(t, Tile{Glyph: TileTrackedLava, Col: 2, Row: 1, X: 25, Y: 15}, tiles[1])

	w, h := lvl.Bounds()
	assert.Equal(t, 30.0, w)
	assert.Equal(t, 20.0, h)
}
