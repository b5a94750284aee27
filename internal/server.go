package internal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/gymcoach/internal/config"
	"github.com/2beens/gymcoach/internal/db"
	"github.com/2beens/gymcoach/internal/middleware"
	"github.com/2beens/gymcoach/internal/misc"
	"github.com/2beens/gymcoach/internal/profile"
	"github.com/2beens/gymcoach/internal/program"
	"github.com/2beens/gymcoach/internal/progression"
	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	metricsmiddleware "github.com/2beens/gymcoach/internal/telemetry/metrics/middleware"
	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/trainlog"
	"github.com/2beens/gymcoach/internal/trainlog/backup"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	iosAppSecret      string // shared secret of the gymcoach ios app
	versionInfo       string

	config          *config.Config
	dbPool          *pgxpool.Pool
	generatorClient *program.GeneratorClient
	quotesManager   *misc.QuotesManager

	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	GymCoachIOSAppSecret    string
	GeneratorAPIKey         string
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "gymcoach_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // will be set to 1 when all is set and ran

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
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymcoach-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	s := &Server{
		config:       params.Config,
		dbPool:       dbPool,
		iosAppSecret: params.GymCoachIOSAppSecret,
		generatorClient: program.NewGeneratorClient(
			params.Config.GeneratorBaseURL,
			params.GeneratorAPIKey,
			params.Config.GeneratorTimeout(),
			tracedHttpClient,
			metricsManager,
		),
		versionInfo: params.VersionInfo,

		redisClient: rdb,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	quotesCsvFile, err := os.Open(params.Config.QuotesCsvPath)
	if err != nil {
		return nil, fmt.Errorf("open quotes file: %w", err)
	}
	defer func() {
		if err := quotesCsvFile.Close(); err != nil {
			log.Warnf("close quotes csv file: %s", err)
		}
	}()

	s.quotesManager, err = misc.NewQuoteManager(csv.NewReader(quotesCsvFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create quote manager: %s", err)
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(s.quotesManager, s.versionInfo)
	miscHandler.SetupRoutes(r)

	trainlogRepo := trainlog.NewRepo(s.dbPool)
	exercisesCatalog := trainlog.NewCatalog(trainlogRepo)
	trainlogHandler := trainlog.NewHandler(
		trainlogRepo,
		exercisesCatalog,
		s.metricsManager,
		s.config.SummaryLookbackEntries,
	)
	r.HandleFunc("/trainlog", trainlogHandler.HandleNewEntry).Methods("POST", "OPTIONS").Name("new-training-entry")
	r.HandleFunc("/trainlog/user/{userID}/exercise/{exerciseID}/summary", trainlogHandler.HandleGetSummary).Methods("GET", "OPTIONS").Name("training-summary")
	r.HandleFunc("/trainlog/types", trainlogHandler.HandleUpsertType).Methods("POST", "OPTIONS").Name("upsert-exercise-type")
	r.HandleFunc("/trainlog/types", trainlogHandler.HandleListTypes).Methods("GET", "OPTIONS").Name("list-exercise-types")

	advisor := progression.NewAdvisor(
		trainlogHandler.Aggregator(),
		exercisesCatalog,
		progression.Tuning{
			CompoundIncrementKilos:  s.config.CompoundIncrementKilos,
			IsolationIncrementKilos: s.config.IsolationIncrementKilos,
			MaxEffortForIncrease:    s.config.MaxEffortForIncrease,
			NearFailureEffort:       s.config.NearFailureEffort,
			PlateauMissThreshold:    s.config.PlateauMissThreshold,
			DeloadFactor:            s.config.DeloadFactor,
			LookbackEntries:         s.config.SummaryLookbackEntries,
		},
	)
	progressionHandler := progression.NewHandler(advisor, s.metricsManager)
	r.HandleFunc("/progression/user/{userID}/exercise/{exerciseID}/suggestion", progressionHandler.HandleGetSuggestion).Methods("GET", "OPTIONS").Name("progression-suggestion")

	profileRepo := profile.NewRepo(s.dbPool)
	profileHandler := profile.NewHandler(profileRepo)
	r.HandleFunc("/profile/user/{userID}", profileHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile/user/{userID}", profileHandler.HandleUpsert).Methods("PUT", "OPTIONS").Name("upsert-profile")

	programRepo := program.NewRepo(s.dbPool)
	programService := program.NewService(program.NewServiceParams{
		Repo:     programRepo,
		Profiles: profileRepo,
		Checker: program.NewChecker(
			programRepo,
			profileRepo,
			time.Duration(s.config.RegenCooldownHours)*time.Hour,
			time.Duration(s.config.RegenMinProgramAgeDays)*24*time.Hour,
			s.config.RegenMinCompletedWorkouts,
		),
		History:               trainlogHandler.Aggregator(),
		Exercises:             trainlogRepo,
		Advisor:               advisor,
		Generator:             s.generatorClient,
		Fallback:              program.NewFallbackSynthesizer(s.config.FallbackProgramWeeks),
		Cache:                 program.NewCache(s.redisClient),
		Metrics:               s.metricsManager,
		RevertWindow:          time.Duration(s.config.RevertWindowHours) * time.Hour,
		RecommendPlateauCount: s.config.RecommendPlateauCount,
	})
	programHandler := program.NewHandler(programService)
	r.HandleFunc("/program/user/{userID}/active", programHandler.HandleGetActive).Methods("GET", "OPTIONS").Name("active-program")
	r.HandleFunc("/program/user/{userID}/regeneration/check", programHandler.HandleCheckRegeneration).Methods("GET", "OPTIONS").Name("regeneration-check")
	r.HandleFunc("/program/user/{userID}/regeneration/recommendations", programHandler.HandleGetRecommendations).Methods("GET", "OPTIONS").Name("regeneration-recommendations")
	r.HandleFunc("/program/user/{userID}", programHandler.HandleCreateInitial).Methods("POST", "OPTIONS").Name("new-program")
	r.HandleFunc("/program/user/{userID}/workout-complete", programHandler.HandleCompleteWorkout).Methods("POST", "OPTIONS").Name("workout-complete")
	r.HandleFunc("/program/user/{userID}/history", programHandler.HandleGetHistory).Methods("GET", "OPTIONS").Name("program-history")

	// regenerate and revert rewrite program history, keep a lid on how
	// often the app can fire them
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	programMutationsRouter := r.PathPrefix("/program/user/{userID}").Subrouter()
	programMutationsRouter.Use(middleware.RateLimit(
		reqRateLimiter,
		"program-mutations",
		s.config.RegenerateRateLimitAllowedPerMin,
		s.metricsManager,
	))
	programMutationsRouter.HandleFunc("/regenerate", programHandler.HandleRegenerate).Methods("POST", "OPTIONS").Name("regenerate-program")
	programMutationsRouter.HandleFunc("/revert", programHandler.HandleRevert).Methods("POST", "OPTIONS").Name("revert-program")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.iosAppSecret)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metricsmiddleware.
		New(s.promRegistry, nil).
		WrapHandler("/metrics", promhttp.HandlerFor(
			s.promRegistry,
			promhttp.HandlerOpts{}),
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

	s.metricsManager.GaugeLifeSignal.Set(1)

	// trainlog backup unix socket
	s.setTrainlogBackupUnixSocket(ctx)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

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

	log.Debugln("removing trainlog backup unix socket ...")
	if err := os.RemoveAll(s.config.TrainlogUnixSocketAddrDir); err != nil {
		log.Errorf("failed to cleanup trainlog backup unix socket dir: %s", err)
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

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

func (s *Server) setTrainlogBackupUnixSocket(ctx context.Context) {
	if err := os.MkdirAll(s.config.TrainlogUnixSocketAddrDir, os.ModePerm); err != nil {
		log.Errorf("failed to create trainlog backup unix socket dir: %s", err)
		return
	}

	if addr, err := backup.BackupUnixSocketListenerSetup(
		ctx,
		s.config.TrainlogUnixSocketAddrDir,
		s.config.TrainlogUnixSocketFileName,
		s.metricsManager,
	); err != nil {
		log.Errorf("failed to create trainlog backup unix socket: %s", err)
	} else {
		log.Debugf("trainlog backup unix socket: %s", addr)
	}
}
