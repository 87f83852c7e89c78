// Package sink pushes denormalized ranking snapshots to external consumers after a
// recompute. Publishing is best effort: callers log and count failures, never surface them.
package sink

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

type Sink interface {
	// Name labels the sink in logs and metrics.
	Name() string
	Publish(ctx context.Context, snapshot Snapshot) error
	Close() error
}

type GroupRank struct {
	MMRScore int    `json:"mmr_score"`
	RankTier string `json:"rank_tier"`
}

// Snapshot is the full ranking state of one user after a recompute.
type Snapshot struct {
	EventID      string               `json:"event_id"`
	UserID       int                  `json:"user_id"`
	MuscleGroups map[string]GroupRank `json:"muscle_groups"`
	Timestamp    time.Time            `json:"timestamp"`
}

func NewSnapshot(userID int, groups map[string]GroupRank, timestamp time.Time) Snapshot {
	return Snapshot{
		EventID:      uuid.NewString(),
		UserID:       userID,
		MuscleGroups: groups,
		Timestamp:    timestamp.UTC(),
	}
}

// PublishError tags a failure with the sink that produced it.
type PublishError struct {
	Sink string
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("sink %s: %s", e.Sink, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

type Noop struct{}

func (Noop) Name() string                            { return "noop" }
func (Noop) Publish(context.Context, Snapshot) error { return nil }
func (Noop) Close() error                            { return nil }

// Multi fans a snapshot out to several sinks concurrently. Its error combines one
// *PublishError per failed sink.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{
		sinks: sinks,
	}
}

func (m *Multi) Name() string {
	names := make([]string, 0, len(m.sinks))
	for _, s := range m.sinks {
		names = append(names, s.Name())
	}
	return "multi(" + strings.Join(names, ",") + ")"
}

func (m *Multi) Publish(ctx context.Context, snapshot Snapshot) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for _, s := range m.sinks {
		wg.Add(1)
		go func(s Sink) {
			defer wg.Done()
			if err := s.Publish(ctx, snapshot); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, &PublishError{Sink: s.Name(), Err: err})
				mu.Unlock()
			}
		}(s)
	}
	wg.Wait()
	return errs
}

func (m *Multi) Close() error {
	var errs error
	for _, s := range m.sinks {
		errs = multierr.Append(errs, s.Close())
	}
	return errs
}
