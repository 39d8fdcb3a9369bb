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

	"github.com/2beens/aresprotocol/internal/ai"
	"github.com/2beens/aresprotocol/internal/auth"
	"github.com/2beens/aresprotocol/internal/config"
	"github.com/2beens/aresprotocol/internal/db"
	"github.com/2beens/aresprotocol/internal/gymstats/catalog"
	"github.com/2beens/aresprotocol/internal/gymstats/daily"
	"github.com/2beens/aresprotocol/internal/gymstats/events"
	"github.com/2beens/aresprotocol/internal/gymstats/exercises"
	"github.com/2beens/aresprotocol/internal/gymstats/warmup"
	"github.com/2beens/aresprotocol/internal/middleware"
	"github.com/2beens/aresprotocol/internal/protocol"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/metrics"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
	"github.com/2beens/aresprotocol/internal/vault"
	"github.com/2beens/aresprotocol/internal/wearable"
	"github.com/2beens/aresprotocol/pkg"
)

// physique uploads are the largest bodies the API takes
const maxRequestBodyBytes = 16 << 20

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient    *redis.Client
	sessionService *auth.SessionService
	stateService   *state.Service
	resetSweeper   *state.ResetSweeper

	aiService       *ai.Service
	catalog         *catalog.Catalog
	warmups         *warmup.Generator
	wearableService *wearable.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBUser                  string
	DBPassword              string
	RedisPassword           string
	HoneycombTracingEnabled bool
	// wraps the per user vault keys kept in postgres
	VaultMasterKey []byte
	GeminiAPIKey   string
	LocalAIAPIKey  string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbParams := db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.DBUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	}

	if params.Config.RunMigrations {
		if err := db.MigrateUp(dbParams); err != nil {
			return nil, fmt.Errorf("db migrations: %w", err)
		}
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("ares", "backend", promRegistry)
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

	sessionService := auth.NewSessionService(auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			sessionService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "ares-backend", rdb)
	if err != nil {
		return nil, err
	}

	keyStore, err := vault.NewWrappedKeyStore(params.VaultMasterKey, vault.NewPgKeyStore(dbPool))
	if err != nil {
		return nil, fmt.Errorf("vault key store: %w", err)
	}
	stateService := state.NewService(state.NewRepo(dbPool), vault.New(keyStore))

	aiProvider, err := ai.NewProvider(ctx, ai.ProviderConfig{
		Provider:      params.Config.AIProvider,
		GeminiAPIKey:  params.GeminiAPIKey,
		GeminiModel:   params.Config.GeminiModel,
		LocalEndpoint: params.Config.LocalAIEndpoint,
		LocalModel:    params.Config.LocalAIModel,
		LocalAPIKey:   params.LocalAIAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("ai provider: %w", err)
	}
	aiService := ai.NewService(
		aiProvider,
		params.Config.AIRequestsPerSecond,
		params.Config.AIRequestTimeoutDuration(),
		metricsManager,
	)
	if params.Config.UseProModel && aiProvider.Name() == ai.ProviderGemini {
		aiService.PlanModel = params.Config.GeminiProModel
	}
	log.Infof("ai provider: %s", aiService.ProviderName())

	exerciseCatalog, err := catalog.NewDefault()
	if err != nil {
		return nil, fmt.Errorf("load exercise catalog: %w", err)
	}
	warmups, err := warmup.NewDefaultGenerator()
	if err != nil {
		return nil, fmt.Errorf("load warm up library: %w", err)
	}

	wearableService := wearable.NewService(
		wearable.NewRegistry(wearable.DefaultProviders()...),
		params.Config.WearableCacheSizeMB,
		time.Duration(params.Config.WearableCacheTTLSeconds)*time.Second,
	)

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:    rdb,
		sessionService: sessionService,
		stateService:   stateService,
		resetSweeper:   state.NewResetSweeper(stateService, metricsManager),

		aiService:       aiService,
		catalog:         exerciseCatalog,
		warmups:         warmups,
		wearableService: wearableService,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "ares protocol")
	}).Methods("GET").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET", "OPTIONS").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	authHandler := auth.NewHandler(auth.NewAccountsRepo(s.dbPool), s.sessionService)
	authHandler.SetupRoutes(r, middleware.RateLimit(
		reqRateLimiter,
		"auth",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))

	stateHandler := state.NewHandler(s.stateService, s.metricsManager)
	stateHandler.SetupRoutes(r)

	setsRepo := exercises.NewRepo(s.dbPool)
	exercisesHandler := exercises.NewHandler(setsRepo, s.stateService)
	exercisesHandler.SetupRoutes(r)

	eventsService := events.NewService(events.NewRepo(s.dbPool))
	eventsHandler := events.NewHandler(eventsService)
	eventsHandler.SetupRoutes(r)

	protocolService := protocol.NewService(protocol.Deps{
		States:         s.stateService,
		Planner:        s.aiService,
		Catalog:        s.catalog,
		Sets:           setsRepo,
		Events:         eventsService,
		Daily:          daily.NewService(s.stateService, s.wearableService),
		Wearables:      s.wearableService,
		Warmups:        s.warmups,
		MetricsManager: s.metricsManager,
	})
	protocolHandler := protocol.NewHandler(protocolService)
	protocolHandler.SetupRoutes(r, middleware.RateLimit(
		reqRateLimiter,
		"ai",
		s.config.AIRateLimitAllowedPerMin,
		s.metricsManager,
	))
	protocolHandler.SetupPublicRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "PATCH", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessionService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r, nil
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// plan synthesis can take minutes
		WriteTimeout: s.config.AIRequestTimeoutDuration() + 30*time.Second,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
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

	if err := s.resetSweeper.Start(s.config.ResetSweepSchedule); err != nil {
		log.Errorf("daily reset sweeper not started: %s", err)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.resetSweeper.Stop()
	log.Trace("reset sweeper stopped ...")

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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, connState http.ConnState) {
	switch connState {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
