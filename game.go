package main

import (
	"fmt"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/jamfest/common"
	"github.com/milk9111/jamfest/config"
	"github.com/milk9111/jamfest/ecs"
	"github.com/milk9111/jamfest/ecs/entity"
	"github.com/milk9111/jamfest/ecs/system"
	"github.com/milk9111/jamfest/levels"
	"github.com/milk9111/jamfest/logger"
	"github.com/milk9111/jamfest/prefabs"
	"github.com/milk9111/jamfest/puzzle"
	"github.com/milk9111/jamfest/speech"
)

type Game struct {
	cfg *config.Config
	log *slog.Logger

	level   *levels.Level
	tuning  puzzle.Tuning
	builder *entity.Builder
	queue   *speech.Queue

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	puzzle    *system.PuzzleSystem
	render    *RenderSystem

	watcher *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(cfg *config.Config, log *slog.Logger, queue *speech.Queue, observers ...puzzle.Observer) (*Game, error) {
	spec, err := prefabs.LoadEntitiesSpec(prefabs.EntitiesFile)
	if err != nil {
		return nil, err
	}
	tuning, err := prefabs.LoadTuning(prefabs.TuningFile, puzzle.DefaultTuning())
	if err != nil {
		return nil, err
	}
	lvl, err := levels.LoadLevelFromFS(cfg.Level)
	if err != nil {
		return nil, err
	}
	levelTuning, err := prefabs.OverlayTuning(tuning, lvl.Tuning)
	if err != nil {
		return nil, fmt.Errorf("game: level %s: %w", cfg.Level, err)
	}

	step := 1.0 / float64(ebiten.TPS())
	physics := system.NewPhysicsSystem(step)
	builder := entity.NewBuilder(spec)
	puzzleSys := system.NewPuzzleSystem(puzzle.NewDriver(levelTuning, observers...), builder, queue, physics, step)

	g := &Game{
		cfg:     cfg,
		log:     log,
		level:   lvl,
		tuning:  tuning,
		builder: builder,
		queue:   queue,
		physics: physics,
		puzzle:  puzzleSys,
		render:  NewRenderSystem(cfg.Debug),
	}
	g.scheduler = ecs.NewScheduler(
		NewInputSystem(queue, cfg.Debug),
		system.NewPlayerControllerSystem(),
		physics,
		puzzleSys,
		system.NewCameraSystem(common.BaseWidth, common.BaseHeight),
	)
	g.pauseUI = NewPauseUI(g)

	if err := g.loadWorld(); err != nil {
		return nil, err
	}

	for _, name := range []string{prefabs.TuningFile, prefabs.EntitiesFile} {
		if mod, ok := prefabs.ModTime(name); ok {
			log.Info("using prefab override from disk", "file", name, "modified", mod)
		}
	}

	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.WithError(log, err).Warn("prefab hot reload disabled")
		} else {
			g.watcher = w
			log.Info("watching prefabs for changes", "dir", prefabs.Dir)
		}
	}
	return g, nil
}

func (g *Game) loadWorld() error {
	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, g.level, g.builder); err != nil {
		return fmt.Errorf("game: load level %s: %w", g.level.Name, err)
	}
	g.world = w
	return nil
}

// Restart reloads the level and forgets all puzzle progress.
func (g *Game) Restart() {
	g.physics.Reset()
	g.puzzle.Driver().Reset()
	g.queue.Drain()
	if err := g.loadWorld(); err != nil {
		panic(err)
	}
	g.paused = false
	g.log.Info("level restarted", "level", g.level.Name)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()
	g.scheduler.Update(g.world)
	return nil
}

// pollWatcher applies prefab edits without blocking the frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Debug("prefab changed", "file", change.File, "modified", change.ModTime)
			g.reloadPrefab(change.File)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			logger.WithError(g.log, err).Warn("prefab watcher error")
		default:
			return
		}
	}
}

func (g *Game) reloadPrefab(name string) {
	switch name {
	case prefabs.TuningFile:
		tuning, err := prefabs.LoadTuning(prefabs.TuningFile, puzzle.DefaultTuning())
		if err == nil {
			tuning, err = prefabs.OverlayTuning(tuning, g.level.Tuning)
		}
		if err != nil {
			logger.WithError(g.log, err).Warn("tuning reload rejected")
			return
		}
		g.tuning = tuning
		g.puzzle.Driver().SetTuning(tuning)
		g.log.Info("tuning reloaded")
	case prefabs.EntitiesFile:
		spec, err := prefabs.LoadEntitiesSpec(prefabs.EntitiesFile)
		if err != nil {
			logger.WithError(g.log, err).Warn("entities reload rejected")
			return
		}
		g.builder.Spec = spec
		g.log.Info("entity looks reloaded; restart the level to apply them")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.render.DrawDebug(screen, g.puzzle.Driver().State())
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
