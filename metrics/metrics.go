// Package metrics exports puzzle progress as Prometheus metrics.
package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/milk9111/jamfest/puzzle"
)

// PuzzleCollector records flag transitions, token outcomes, effects and
// tick durations. It implements puzzle.Observer.
type PuzzleCollector struct {
	gatherer prometheus.Gatherer

	Transitions  *prometheus.CounterVec
	Tokens       *prometheus.CounterVec
	Effects      *prometheus.CounterVec
	TickDuration prometheus.Histogram
}

// NewPuzzleCollector registers puzzle metrics against the provided registerer.
func NewPuzzleCollector(reg prometheus.Registerer) (*PuzzleCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	transitions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jamfest_puzzle_transitions_total",
		Help: "Puzzle flag changes by flag.",
	}, []string{"flag"}), "jamfest_puzzle_transitions_total")
	if err != nil {
		return nil, err
	}

	tokens, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jamfest_speech_tokens_total",
		Help: "Speech tokens drained per tick by outcome (consumed or dropped).",
	}, []string{"token", "outcome"}), "jamfest_speech_tokens_total")
	if err != nil {
		return nil, err
	}

	effects, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jamfest_effects_total",
		Help: "Effects emitted by puzzle handlers by kind.",
	}, []string{"kind"}), "jamfest_effects_total")
	if err != nil {
		return nil, err
	}

	tick, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "jamfest_tick_duration_seconds",
		Help:    "Time spent running puzzle handlers per tick.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	}), "jamfest_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &PuzzleCollector{
		gatherer:     gatherer,
		Transitions:  transitions,
		Tokens:       tokens,
		Effects:      effects,
		TickDuration: tick,
	}, nil
}

func (c *PuzzleCollector) ObserveTick(r puzzle.Report) {
	if c == nil {
		return
	}
	for _, tr := range r.Transitions {
		c.Transitions.WithLabelValues(tr.Flag.String()).Inc()
	}
	for _, tok := range r.Consumed {
		c.Tokens.WithLabelValues(tok.String(), "consumed").Inc()
	}
	for _, tok := range r.Dropped {
		c.Tokens.WithLabelValues(tok.String(), "dropped").Inc()
	}
	for _, eff := range r.Effects {
		c.Effects.WithLabelValues(eff.Kind.String()).Inc()
	}
	c.TickDuration.Observe(r.Duration.Seconds())
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PuzzleCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Serve starts a /metrics endpoint on addr in the background. Shut the
// returned server down on exit.
func Serve(addr string, c *PuzzleCollector, log *slog.Logger) *http.Server {
	if c == nil || addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server exited", "error", err)
		}
	}()

	log.Info("serving Prometheus metrics", "addr", addr)
	return srv
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
