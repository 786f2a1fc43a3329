package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/google/uuid"
)

func newID() string {
	return uuid.New().String()
}

// committed reports whether an Apply error still left the change in place.
// Only a persistence failure does.
func committed(err error) bool {
	return err == nil || errors.Is(err, domain.ErrPersistence)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// track reports a finished use case.
func track(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Outcome:   OutcomeOf(err),
		Err:       err,
		Fields:    fields,
	})
}
