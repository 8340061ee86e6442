package logger

import (
	"context"
	"log/slog"

	"github.com/milk9111/jamfest/puzzle"
)

// PuzzleObserver logs puzzle progress: flag changes and heard tokens at
// info, dropped tokens and effects at debug.
type PuzzleObserver struct {
	log *slog.Logger
}

func NewPuzzleObserver(log *slog.Logger) *PuzzleObserver {
	if log == nil {
		log = slog.Default()
	}
	return &PuzzleObserver{log: log.With("component", "puzzle")}
}

func (o *PuzzleObserver) ObserveTick(r puzzle.Report) {
	for _, tr := range r.Transitions {
		o.log.Info("puzzle flag changed", "tick", r.Tick, "flag", tr.Flag.String(), "value", tr.Value)
	}
	for _, tok := range r.Consumed {
		o.log.Info("speech token used", "tick", r.Tick, "token", tok.String())
	}
	for _, tok := range r.Dropped {
		o.log.Debug("speech token dropped", "tick", r.Tick, "token", tok.String())
	}
	if r.Prev.SignText != r.Next.SignText && r.Next.SignText != "" {
		o.log.Debug("sign shown", "tick", r.Tick, "text", r.Next.SignText)
	}
	if len(r.Effects) > 0 && o.log.Enabled(context.Background(), slog.LevelDebug) {
		for _, eff := range r.Effects {
			if eff.Kind == puzzle.EffectSetVelocity {
				continue
			}
			o.log.Debug("puzzle effect", "tick", r.Tick, "effect", eff.String())
		}
	}
}
