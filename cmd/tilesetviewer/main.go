// Package main is the tileset viewer: it renders a map (or a generated demo
// map) with the terrain sprite layer in an SDL/OpenGL window.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/emberfall-mod/emberfall/internal/config"
	"github.com/emberfall-mod/emberfall/internal/engine/atlas"
	"github.com/emberfall-mod/emberfall/internal/engine/palette"
	"github.com/emberfall-mod/emberfall/internal/engine/render"
	"github.com/emberfall-mod/emberfall/internal/engine/terrain"
	"github.com/emberfall-mod/emberfall/internal/engine/tilemap"
	"github.com/emberfall-mod/emberfall/internal/engine/tiles"
	"github.com/emberfall-mod/emberfall/internal/engine/window"
	"github.com/emberfall-mod/emberfall/internal/logger"
	"github.com/emberfall-mod/emberfall/pkg/geom"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ts, err := terrain.LoadFile(cfg.Data.Tileset)
	if err != nil {
		return err
	}

	provider, err := atlas.LoadFile(cfg.Data.Atlas)
	if err != nil {
		return err
	}

	cache, err := tiles.New(ts, provider)
	if err != nil {
		return err
	}

	// Bad sprites draw as the placeholder; report them but keep going.
	for _, msg := range cache.Report().Errors {
		logger.Warn(msg)
	}

	m, err := loadMap(cfg, ts)
	if err != nil {
		return err
	}

	layer := tiles.NewLayer(m, cache, palette.NewRegistry("terrain"))

	sheets, err := atlas.LoadSheets(provider, cfg.Data.AssetDir)
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{
		Title:      "Emberfall Tileset Viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	renderer, err := render.New(sheets)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	for !win.PollQuit() {
		w, h := win.GetSize()
		renderer.Resize(w, h)
		renderer.Clear()
		renderer.Draw(layer.Entries(), mapCamera(m, w, h))
		win.SwapBuffers()
		time.Sleep(16 * time.Millisecond)
	}

	return nil
}

// loadMap loads the configured map or generates a demo map covering every
// template in the tileset.
func loadMap(cfg *config.Config, ts *terrain.TileSet) (*tilemap.Map, error) {
	if cfg.Data.Map != "" {
		return tilemap.LoadFile(cfg.Data.Map, ts)
	}

	ids := ts.TemplateIDs()
	if len(ids) == 0 {
		return nil, fmt.Errorf("tileset %s has no templates for the demo map", ts.TerrainName())
	}

	m := tilemap.New(16, 16, ts.Grid)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			id := ids[(x+y*3)%len(ids)]
			m.SetTile(tilemap.Cell{X: x, Y: y}, terrain.TerrainTile{Template: id})
		}
	}
	return m, nil
}

// mapCamera centers the map in the window.
func mapCamera(m *tilemap.Map, width, height int) geom.Vec2 {
	u, v := m.Grid.Project(m.Width/2, m.Height/2)
	center := geom.Vec2{X: u * m.Grid.TileSize.X, Y: v * m.Grid.TileSize.Y}
	return center.Sub(geom.Vec2{X: float32(width) / 2, Y: float32(height) / 2})
}
