package utils

import (
	"context"
	"time"
)

type TimeServiceInterface interface {
	Sleep(ctx context.Context, duration time.Duration) error
	Now() time.Time
}

type TimeHelper struct {
}

// Sleep returns early with the context error when ctx is done first.
func (t *TimeHelper) Sleep(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (t *TimeHelper) Now() time.Time {
	return time.Now()
}
