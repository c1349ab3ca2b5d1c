package decorator

import (
	"context"
	"time"

	"github.com/programme-lv/contest/logger"
)

type loggingHandler[P any, R any] struct {
	name string
	base interface {
		Handle(ctx context.Context, p P) (R, error)
	}
}

func (h loggingHandler[P, R]) Handle(ctx context.Context, p P) (R, error) {
	ctx = logger.With(ctx, "handler", h.name)
	log := logger.FromContext(ctx)
	start := time.Now()

	res, err := h.base.Handle(ctx, p)
	if err != nil {
		log.Info("handler failed", "took", time.Since(start), "error", err)
		return res, err
	}
	log.Debug("handler finished", "took", time.Since(start))
	return res, nil
}

// WithLoggingCmd logs the duration and outcome of every command.
func WithLoggingCmd[P any, R any](name string, h CmdResultHandler[P, R]) CmdResultHandler[P, R] {
	return loggingHandler[P, R]{name: name, base: h}
}

// WithLoggingQuery logs the duration and outcome of every query.
func WithLoggingQuery[Q any, R any](name string, h QueryHandler[Q, R]) QueryHandler[Q, R] {
	return loggingHandler[Q, R]{name: name, base: h}
}
