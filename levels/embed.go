package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Tile glyphs used in Level.Tiles.
const (
	TileEmpty       = '.'
	TileWall        = '#'
	TileLava        = 'l'
	TileTrackedLava = 'L'
)

// Level is one room. Tiles is a row-major glyph grid; entity positions are
// world pixels.
type Level struct {
	Name     string         `json:"name"`
	TileSize float64        `json:"tile_size"`
	Tiles    []string       `json:"tiles"`
	Entities []Entity       `json:"entities,omitempty"`
	Tuning   map[string]any `json:"tuning,omitempty"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Tile is one non-empty grid cell, positioned at its centre.
type Tile struct {
	Glyph byte
	Col   int
	Row   int
	X     float64
	Y     float64
}

func LoadLevelFromFS(name string) (*Level, error) {
	if path.Ext(name) == "" {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

// Names lists the embedded levels without extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(out)
	return out
}

// Validate checks the grid is rectangular with known glyphs and that exactly
// one player is placed.
func (l *Level) Validate() error {
	if l.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive")
	}
	width := -1
	for r, row := range l.Tiles {
		if width >= 0 && len(row) != width {
			return fmt.Errorf("row %d has %d tiles, want %d", r, len(row), width)
		}
		width = len(row)
		for c := 0; c < len(row); c++ {
			switch row[c] {
			case TileEmpty, TileWall, TileLava, TileTrackedLava:
			default:
				return fmt.Errorf("row %d col %d: unknown tile %q", r, c, row[c])
			}
		}
	}
	players := 0
	for _, e := range l.Entities {
		if e.Type == "player" {
			players++
		}
	}
	if players != 1 {
		return fmt.Errorf("want exactly one player, found %d", players)
	}
	return nil
}

// Bounds returns the world size in pixels.
func (l *Level) Bounds() (w, h float64) {
	if len(l.Tiles) == 0 {
		return 0, 0
	}
	return float64(len(l.Tiles[0])) * l.TileSize, float64(len(l.Tiles)) * l.TileSize
}

// EachTile calls fn for every non-empty cell in row-major order.
func (l *Level) EachTile(fn func(Tile)) {
	for r, row := range l.Tiles {
		for c := 0; c < len(row); c++ {
			if row[c] == TileEmpty {
				continue
			}
			fn(Tile{
				Glyph: row[c],
				Col:   c,
				Row:   r,
				X:     (float64(c) + 0.5) * l.TileSize,
				Y:     (float64(r) + 0.5) * l.TileSize,
			})
		}
	}
}
