package speech

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// maxLine bounds one transcript message.
const maxLine = 64 * 1024

// TranscriptSource reads transcript messages, one per line, from an external
// recogniser and pushes the tokens they contain onto a Queue.
type TranscriptSource struct {
	r     io.Reader
	queue *Queue
	log   *slog.Logger
}

func NewTranscriptSource(r io.Reader, q *Queue, log *slog.Logger) *TranscriptSource {
	if log == nil {
		log = slog.Default()
	}
	return &TranscriptSource{r: r, queue: q, log: log}
}

// Run reads until EOF, a read error or ctx is cancelled. Lines without a
// keyword are ignored. A failing transport only ends the stream; the game
// keeps running with no tokens.
func (s *TranscriptSource) Run(ctx context.Context) error {
	if s == nil || s.r == nil {
		return errors.New("speech: nil transcript reader")
	}
	sc := bufio.NewScanner(s.r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		tokens := Match(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		for _, tok := range tokens {
			s.log.Info("speech token heard", "token", tok.String())
		}
		s.queue.Push(tokens...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("speech: read transcript: %w", err)
	}
	return nil
}

// Start runs the source on its own goroutine and logs how it ended.
func (s *TranscriptSource) Start(ctx context.Context) {
	go func() {
		err := s.Run(ctx)
		switch {
		case err == nil:
			s.log.Info("speech transcript closed")
		case errors.Is(err, context.Canceled):
		default:
			s.log.Warn("speech transcript failed", "error", err)
		}
	}()
}
