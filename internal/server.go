package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/evolvx/internal/auth"
	"github.com/2beens/evolvx/internal/coaching"
	"github.com/2beens/evolvx/internal/config"
	"github.com/2beens/evolvx/internal/db"
	"github.com/2beens/evolvx/internal/leaderboard"
	"github.com/2beens/evolvx/internal/middleware"
	"github.com/2beens/evolvx/internal/ranking"
	"github.com/2beens/evolvx/internal/ranking/sink"
	"github.com/2beens/evolvx/internal/social"
	"github.com/2beens/evolvx/internal/telemetry/metrics"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/internal/users"
	"github.com/2beens/evolvx/internal/workouts"
	"github.com/2beens/evolvx/pkg"
)

// Workout payloads are the largest request bodies.
const maxRequestBodyBytes = 1 << 20

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	verifier    *auth.Verifier

	engine       *ranking.Engine
	snapshotSink sink.Sink

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	JWTSecret               string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	if params.JWTSecret == "" {
		return nil, errors.New("jwt secret not set")
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if params.Config.MigrateOnStart {
		if err := db.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("migrate db: %w", err)
		}
		log.Debugln("db schema migrated")
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(params.Config.Environment, pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "evolvx-backend", rdb)
	if err != nil {
		return nil, err
	}

	snapshotSink, err := newSnapshotSink(ctx, params.Config.Sink, rdb)
	if err != nil {
		return nil, fmt.Errorf("ranking snapshot sink: %w", err)
	}
	log.Debugf("ranking snapshot sink: %s (enabled: %t)", snapshotSink.Name(), params.Config.Sink.Enabled)

	engine := ranking.NewEngine(ranking.EngineParams{
		Ledger:      workouts.NewRepo(dbPool),
		Store:       ranking.NewRepo(dbPool),
		Users:       users.NewRepo(dbPool),
		Metrics:     metricsManager,
		SinkEnabled: params.Config.Sink.Enabled,
		Sink:        snapshotSink,
		SinkTimeout: params.Config.Sink.TimeoutParsed,
	})

	return &Server{
		config:       params.Config,
		dbPool:       dbPool,
		redisClient:  rdb,
		verifier:     auth.NewVerifier(params.JWTSecret, params.Config.JWTIssuer, rdb),
		engine:       engine,
		snapshotSink: snapshotSink,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// newSnapshotSink builds the configured sinks. A disabled config yields a noop sink.
func newSnapshotSink(ctx context.Context, cfg config.SinkConfig, rdb *redis.Client) (_ sink.Sink, err error) {
	if !cfg.Enabled || len(cfg.Types) == 0 {
		return sink.Noop{}, nil
	}

	sinks := make([]sink.Sink, 0, len(cfg.Types))
	defer func() {
		if err == nil {
			return
		}
		for _, s := range sinks {
			if closeErr := s.Close(); closeErr != nil {
				log.Errorf("close sink %s: %s", s.Name(), closeErr)
			}
		}
	}()

	for _, sinkType := range cfg.Types {
		switch sinkType {
		case config.SinkRedis:
			if rdb == nil {
				return nil, errors.New("redis sink: no redis client")
			}
			sinks = append(sinks, sink.NewRedis(rdb, cfg.RedisChannel))
		case config.SinkKafka:
			sinks = append(sinks, sink.NewKafka(sink.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)))
		case config.SinkFirestore:
			documents, err := sink.NewFirestoreDocuments(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, sink.NewFirestore(documents, cfg.FirestoreCollection))
		case config.SinkWebhook:
			sinks = append(sinks, sink.NewWebhook(cfg.WebhookURL))
		default:
			return nil, fmt.Errorf("unknown sink type: %s", sinkType)
		}
	}

	return sink.NewMulti(sinks...), nil
}

// RouterParams holds what the HTTP surface needs. A nil RateLimiter disables
// leaderboard rate limiting; a nil Now defaults to time.Now.
type RouterParams struct {
	DBPool         *pgxpool.Pool
	Engine         *ranking.Engine
	Verifier       middleware.TokenVerifier
	RateLimiter    middleware.RequestRateLimiter
	MetricsManager *metrics.Manager
	AllowedOrigins []string
	// LeaderboardRateLimitPerMinute of 0 disables leaderboard rate limiting.
	LeaderboardRateLimitPerMinute int
	Now                           func() time.Time
}

func NewRouter(params RouterParams) *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("evolvx-router"))

	workoutsRepo := workouts.NewRepo(params.DBPool)
	rankingRepo := ranking.NewRepo(params.DBPool)
	usersRepo := users.NewRepo(params.DBPool)
	socialRepo := social.NewRepo(params.DBPool)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	}).Methods("GET").Name("health")

	rankingHandler := ranking.NewHandler(params.Engine)
	r.HandleFunc("/api/rankings/user/{id}", rankingHandler.HandleUserRankings).Methods("GET", "OPTIONS").Name("user-rankings")
	r.HandleFunc("/api/rankings/user/{id}/recompute", rankingHandler.HandleRecompute).Methods("POST", "OPTIONS").Name("recompute-rankings")

	leaderboardHandler := leaderboard.NewHandler(
		leaderboard.NewService(leaderboard.NewRepo(params.DBPool), socialRepo, usersRepo, params.Now),
	)
	limited := func(h http.HandlerFunc) http.Handler {
		if params.RateLimiter == nil || params.LeaderboardRateLimitPerMinute <= 0 {
			return h
		}
		return middleware.RateLimit(
			params.RateLimiter,
			"leaderboard",
			params.LeaderboardRateLimitPerMinute,
			params.MetricsManager,
		)(h)
	}
	r.Handle("/api/rankings/leaderboard", limited(leaderboardHandler.HandleGlobal)).Methods("GET", "OPTIONS").Name("leaderboard")
	r.Handle("/api/rankings/leaderboard/friends", limited(leaderboardHandler.HandleFriends)).Methods("GET", "OPTIONS").Name("friends-leaderboard")

	coachingHandler := coaching.NewHandler(coaching.NewAdvisor(rankingRepo, workoutsRepo, params.Now))
	r.HandleFunc("/api/coaching/recommendations", coachingHandler.HandleRecommendations).Methods("GET", "OPTIONS").Name("recommendations")
	r.HandleFunc("/api/coaching/progress", coachingHandler.HandleProgress).Methods("GET", "OPTIONS").Name("progress")

	workoutsHandler := workouts.NewHandler(workoutsRepo, params.Engine)
	r.HandleFunc("/api/workouts", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/api/workouts", workoutsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/api/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/api/workouts/{id}", workoutsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-workout")
	r.HandleFunc("/api/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/api/exercises", workoutsHandler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")

	socialHandler := social.NewHandler(social.NewService(socialRepo, usersRepo))
	r.HandleFunc("/api/social/friends", socialHandler.HandleList).Methods("GET", "OPTIONS").Name("list-friends")
	r.HandleFunc("/api/social/friends/request", socialHandler.HandleSendRequest).Methods("POST", "OPTIONS").Name("send-friend-request")
	r.HandleFunc("/api/social/friends/request/{id}", socialHandler.HandleRespond).Methods("PUT", "OPTIONS").Name("respond-friend-request")

	sharedWorkoutsHandler := social.NewSharedWorkoutsHandler(social.NewSharedWorkouts(socialRepo, params.Now))
	r.HandleFunc("/api/social/shared-workouts", sharedWorkoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-shared-workouts")
	r.HandleFunc("/api/social/shared-workouts", sharedWorkoutsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-shared-workout")
	r.HandleFunc("/api/social/shared-workouts/{id}/join", sharedWorkoutsHandler.HandleJoin).Methods("POST", "OPTIONS").Name("join-shared-workout")

	authMiddleware := middleware.NewAuthMiddlewareHandler(params.Verifier)

	r.Use(middleware.PanicRecovery(params.MetricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(params.MetricsManager))
	r.Use(middleware.Cors(params.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	router := NewRouter(RouterParams{
		DBPool:                        s.dbPool,
		Engine:                        s.engine,
		Verifier:                      s.verifier,
		RateLimiter:                   redis_rate.NewLimiter(s.redisClient),
		MetricsManager:                s.metricsManager,
		AllowedOrigins:                s.config.AllowedOrigins,
		LeaderboardRateLimitPerMinute: s.config.LeaderboardRateLimitPerMinute,
	})

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops accepting requests first, then lets in-flight snapshot
// publishes finish before the sinks and stores are closed.
func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	s.engine.Wait()
	log.Trace("pending ranking snapshots published ...")
	if err := s.snapshotSink.Close(); err != nil {
		log.Errorf("failed to close ranking snapshot sink: %s", err)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
