package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/milk9111/jamfest/speech"
)

// openTranscript opens the configured transcript stream. An empty path
// means no speech input.
func openTranscript(path string, q *speech.Queue, log *slog.Logger) (*speech.TranscriptSource, func(), error) {
	switch path {
	case "":
		return nil, func() {}, nil
	case "-":
		return speech.NewTranscriptSource(os.Stdin, q, log), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("speech: open transcript %s: %w", path, err)
	}
	log.Info("reading speech transcript", "path", path)
	return speech.NewTranscriptSource(f, q, log), func() { _ = f.Close() }, nil
}
