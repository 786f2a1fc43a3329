package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/bizbook/internal/domain"
)

// Outcome classifies how a use case ended.
type Outcome string

const (
	// OutcomeOK means the change was applied and saved.
	OutcomeOK Outcome = "ok"
	// OutcomeRejected means nothing changed: bad input, a missing record or
	// a broken reference.
	OutcomeRejected Outcome = "rejected"
	// OutcomeUnsaved means the change is live but could not be persisted.
	OutcomeUnsaved Outcome = "unsaved"
)

// OutcomeOf maps a use-case error to its Outcome.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrPersistence):
		return OutcomeUnsaved
	default:
		return OutcomeRejected
	}
}

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Outcome   Outcome
	Err       error
	Fields    map[string]any
}

// UseCaseObserver receives an event after every service call.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver drops events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes events to logger: successes at debug level,
// rejections at info and unsaved changes at warn.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger.With("component", "service")}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("use_case", event.Name),
		slog.String("outcome", string(event.Outcome)),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
	}
	for k, v := range event.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}

	level := slog.LevelDebug
	switch event.Outcome {
	case OutcomeRejected:
		level = slog.LevelInfo
	case OutcomeUnsaved:
		level = slog.LevelWarn
	}
	o.logger.LogAttrs(ctx, level, "use case finished", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
