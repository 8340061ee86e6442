package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/jamfest/common"
	"github.com/milk9111/jamfest/config"
	"github.com/milk9111/jamfest/logger"
	"github.com/milk9111/jamfest/metrics"
	"github.com/milk9111/jamfest/puzzle"
	"github.com/milk9111/jamfest/speech"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}

	lg, session := logger.WithSession(logger.Setup(cfg))
	lg.Info("starting jamfest", "level", cfg.Level, "env", cfg.Environment, "session", session)

	observers := []puzzle.Observer{logger.NewPuzzleObserver(lg)}
	if cfg.MetricsAddr != "" {
		collector, err := metrics.NewPuzzleCollector(nil)
		if err != nil {
			logger.WithError(lg, err).Error("metrics disabled")
		} else {
			observers = append(observers, collector)
			if srv := metrics.Serve(cfg.MetricsAddr, collector, lg); srv != nil {
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = srv.Shutdown(ctx)
				}()
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := speech.NewQueue()
	if src, closeFn, err := openTranscript(cfg.Transcript, queue, lg); err != nil {
		logger.WithError(lg, err).Warn("speech input disabled")
	} else if src != nil {
		defer closeFn()
		src.Start(ctx)
	}

	game, err := NewGame(cfg, lg, queue, observers...)
	if err != nil {
		logger.WithError(lg, err).Error("failed to start game")
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth*2, common.BaseHeight*2)
	ebiten.SetWindowTitle("jamfest")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.WithError(lg, err).Error("game exited")
		os.Exit(1)
	}
}
