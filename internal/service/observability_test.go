package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeOK, OutcomeOf(nil))
	assert.Equal(t, OutcomeUnsaved, OutcomeOf(fmt.Errorf("%w: saving state: %w", domain.ErrPersistence, errors.New("disk full"))))
	assert.Equal(t, OutcomeRejected, OutcomeOf(fmt.Errorf("%w: client %q", domain.ErrNotFound, "c1")))
	assert.Equal(t, OutcomeRejected, OutcomeOf(domain.ErrReferentialIntegrity))
}

func TestLogUseCaseObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLogUseCaseObserver(logger)
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "create-client",
		Duration: 3 * time.Millisecond,
		Outcome:  OutcomeOK,
		Fields:   map[string]any{"id": "c1"},
	})
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "component=service")
	assert.Contains(t, out, "use_case=create-client")
	assert.Contains(t, out, "outcome=ok")
	assert.Contains(t, out, "id=c1")

	buf.Reset()
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "delete-client", Outcome: OutcomeRejected, Err: errors.New("in use")})
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), `error="in use"`)

	buf.Reset()
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "move-opportunity", Outcome: OutcomeUnsaved, Err: errors.New("disk full")})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "outcome=unsaved")
}

func TestLogUseCaseObserver_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	obs := NewLogUseCaseObserver(logger)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "list-transactions", Outcome: OutcomeOK})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "create-client", Outcome: OutcomeRejected})
	assert.Empty(t, buf.String())
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
}
