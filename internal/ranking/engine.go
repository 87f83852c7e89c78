package ranking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/ranking/sink"
	"github.com/2beens/evolvx/internal/telemetry/metrics"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=ranking_test

const DefaultSinkTimeout = 2 * time.Second

type ledger interface {
	ListForUser(ctx context.Context, userID int, since *time.Time) ([]workouts.Workout, error)
}

type rankingsStore interface {
	Upsert(ctx context.Context, userID int, rankings []Ranking) error
	ListForUser(ctx context.Context, userID int) ([]Ranking, error)
}

type userDirectory interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type EngineParams struct {
	Ledger  ledger
	Store   rankingsStore
	Users   userDirectory
	Metrics *metrics.Manager

	// SinkEnabled is fixed at construction; a disabled engine never touches Sink.
	SinkEnabled bool
	Sink        sink.Sink
	SinkTimeout time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Engine recomputes the per muscle group MMR of a user from the full workout history.
// Recomputes of one user are serialized; different users run in parallel.
type Engine struct {
	ledger  ledger
	store   rankingsStore
	users   userDirectory
	metrics *metrics.Manager

	sink        sink.Sink
	sinkEnabled bool
	sinkTimeout time.Duration
	snapshots   *snapshotQueue

	locks *userLocks
	now   func() time.Time
}

func NewEngine(params EngineParams) *Engine {
	s := params.Sink
	enabled := params.SinkEnabled && s != nil
	if !enabled {
		s = sink.Noop{}
	}
	timeout := params.SinkTimeout
	if timeout <= 0 {
		timeout = DefaultSinkTimeout
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}

	e := &Engine{
		ledger:      params.Ledger,
		store:       params.Store,
		users:       params.Users,
		metrics:     params.Metrics,
		sink:        s,
		sinkEnabled: enabled,
		sinkTimeout: timeout,
		locks:       newUserLocks(),
		now:         now,
	}
	e.snapshots = newSnapshotQueue(e.publishSnapshot)
	return e
}

// Recompute rebuilds and persists all rankings of the user. A ledger failure aborts
// before anything is written. Muscle groups no longer in the history keep their rows.
func (e *Engine) Recompute(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ranking.engine.recompute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	unlock := e.locks.Lock(userID)
	defer unlock()

	begin := time.Now()
	defer func() {
		if e.metrics == nil {
			return
		}
		if err != nil {
			e.metrics.CounterRecomputeFailures.Inc()
			return
		}
		e.metrics.CounterRecomputes.Inc()
		e.metrics.HistRecomputeDuration.Observe(time.Since(begin).Seconds())
	}()

	history, err := e.ledger.ListForUser(ctx, userID, nil)
	if err != nil {
		return wrapDependency(fmt.Sprintf("fetch workout history of user %d", userID), err)
	}

	rankings := FromVolumes(userID, Aggregate(history), e.now().UTC())
	span.SetAttributes(attribute.Int("rankings.count", len(rankings)))
	if len(rankings) == 0 {
		log.Tracef("recompute user %d: no workout history, nothing to rank", userID)
		return nil
	}

	if err := e.store.Upsert(ctx, userID, rankings); err != nil {
		return wrapDependency(fmt.Sprintf("store rankings of user %d", userID), err)
	}
	log.Debugf("recomputed %d rankings for user %d", len(rankings), userID)

	e.publish(userID, rankings)
	return nil
}

func wrapDependency(op string, err error) error {
	if errors.Is(err, apperr.ErrDependency) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrDependency, err)
}

// publish queues the snapshot for background publishing. It runs under the user's
// lock, which keeps one user's snapshots in recompute order.
func (e *Engine) publish(userID int, rankings []Ranking) {
	if !e.sinkEnabled {
		return
	}
	groups := make(map[string]sink.GroupRank, len(rankings))
	for _, rk := range rankings {
		groups[rk.MuscleGroup] = sink.GroupRank{
			MMRScore: rk.MMRScore,
			RankTier: string(rk.RankTier),
		}
	}
	e.snapshots.Push(sink.NewSnapshot(userID, groups, e.now()))
}

// publishSnapshot is bounded by the sink timeout. Failures are logged and counted per sink.
func (e *Engine) publishSnapshot(snapshot sink.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), e.sinkTimeout)
	defer cancel()

	err := e.sink.Publish(ctx, snapshot)
	if err == nil {
		return
	}

	for _, publishErr := range multierr.Errors(err) {
		name := e.sink.Name()
		var pe *sink.PublishError
		if errors.As(publishErr, &pe) {
			name = pe.Sink
		}
		log.Warnf("publish ranking snapshot %s of user %d to %s: %s", snapshot.EventID, snapshot.UserID, name, publishErr)
		if e.metrics != nil {
			e.metrics.CounterSinkPublishFailures.WithLabelValues(name).Inc()
		}
	}
}

// Wait blocks until in-flight snapshot publishes are done.
func (e *Engine) Wait() {
	e.snapshots.Wait()
}

// UserRankings returns the stored rankings of an existing user, ordered by muscle group.
func (e *Engine) UserRankings(ctx context.Context, userID int) (_ []Ranking, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ranking.engine.user_rankings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	exists, err := e.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %d: %w", userID, apperr.ErrNotFound)
	}

	rankings, err := e.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rankings == nil {
		rankings = []Ranking{}
	}
	return rankings, nil
}
