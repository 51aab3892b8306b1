package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	_ "github.com/sbilibin2017/todo-tracker/docs"
	"github.com/sbilibin2017/todo-tracker/internal/handlers"
	"github.com/sbilibin2017/todo-tracker/internal/health"
	"github.com/sbilibin2017/todo-tracker/internal/jobs"
	"github.com/sbilibin2017/todo-tracker/internal/jwt"
	"github.com/sbilibin2017/todo-tracker/internal/logger"
	"github.com/sbilibin2017/todo-tracker/internal/middlewares"
	"github.com/sbilibin2017/todo-tracker/internal/repositories"
	"github.com/sbilibin2017/todo-tracker/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds application, database, Redis, Kafka, JWT and scheduling settings.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExpSecond    int

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey string
	JWTExpSecond int

	CORSAllowedOrigins []string
	ReconcileSchedule  string
	GRPCHealthPort     string
}

// @title todo-tracker API
// @version 1.0.0
// @description Personal task tracker: accounts, per-user todos and task counters
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the application configuration.
// Variables already set in the environment take precedence over the file.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return v, nil
	}
	getList := func(key, defaultValue string) []string {
		var out []string
		for _, s := range strings.Split(getEnv(key, defaultValue), ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisExpSecond, err = getInt("REDIS_EXP_SECOND", "60"); err != nil {
		return
	}

	// Kafka config; no brokers disables event publishing
	cfg.KafkaBrokers = getList("KAFKA_BROKERS", "")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "todo-events")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "86400"); err != nil {
		return
	}

	cfg.CORSAllowedOrigins = getList("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	cfg.GRPCHealthPort = getEnv("GRPC_HEALTH_PORT", "50051")

	// An explicitly empty schedule disables reconciliation.
	cfg.ReconcileSchedule = "@every 1h"
	if v, ok := os.LookupEnv("RECONCILE_SCHEDULE"); ok {
		cfg.ReconcileSchedule = strings.TrimSpace(v)
	}

	return
}

// app bundles the services the HTTP router is built from.
type app struct {
	auth  *services.AuthService
	todos *services.TodoService
	stats *services.StatsService
	jwt   *jwt.JWT
}

// newApp wires repositories and services on top of the given connections.
// rdb and kafkaWriter may be nil.
func newApp(db *sqlx.DB, rdb *redis.Client, kafkaWriter *kafka.Writer, jwtSecretKey string, jwtExp, cacheExp time.Duration) *app {
	tokens := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithExpiration(jwtExp),
	)

	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	todoReadRepo := repositories.NewTodoReadRepository(db)
	todoWriteRepo := repositories.NewTodoWriteRepository(db)

	// Interface values stay nil when the backing client is absent.
	var (
		invalidator services.CacheInvalidator
		countCache  services.CountCache
		publisher   services.KafkaWriter
	)
	if rdb != nil {
		cache := repositories.NewStatsCacheRepository(rdb, cacheExp)
		invalidator, countCache = cache, cache
	}
	if kafkaWriter != nil {
		publisher = kafkaWriter
	}

	return &app{
		auth:  services.NewAuthService(userReadRepo, userWriteRepo, tokens, invalidator),
		todos: services.NewTodoService(todoReadRepo, todoWriteRepo, userWriteRepo, invalidator, publisher),
		stats: services.NewStatsService(userReadRepo, todoReadRepo, countCache),
		jwt:   tokens,
	}
}

// newRouter builds the HTTP routes: public auth and stats endpoints, the
// token-protected todo and user endpoints, and the swagger UI.
func newRouter(a *app, allowedOrigins []string, swaggerURL string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(a.auth))
	r.Post("/login", handlers.NewLoginHandler(a.auth))
	r.Get("/get-user", handlers.NewUserCountHandler(a.stats))
	r.Get("/get-total-tasks", handlers.NewTaskCountHandler(a.stats))

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(a.jwt))
		r.Get("/todo", handlers.NewListTodosHandler(a.todos))
		r.Post("/todo", handlers.NewCreateTodoHandler(a.todos))
		r.Put("/todo/{id}", handlers.NewUpdateTodoHandler(a.todos))
		r.Delete("/todo/{id}", handlers.NewDeleteTodoHandler(a.todos))
		r.Get("/user-stats", handlers.NewUserStatsHandler(a.auth))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))
	r.NotFound(handlers.NewNotFoundHandler())

	return r
}

// run initializes the logger, database, Redis, Kafka, the reconciliation job,
// the HTTP server and the gRPC health server, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infow("logger initialized", "level", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka producer
	var kafkaWriter *kafka.Writer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaWriter = &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		}
		defer kafkaWriter.Close()
	} else {
		logger.Log.Warn("KAFKA_BROKERS not set, todo events will not be published")
	}

	a := newApp(db, rdb, kafkaWriter, cfg.JWTSecretKey,
		time.Duration(cfg.JWTExpSecond)*time.Second,
		time.Duration(cfg.RedisExpSecond)*time.Second,
	)

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Counter reconciliation
	if cfg.ReconcileSchedule != "" {
		reconciler := jobs.NewReconciler(repositories.NewUserWriteRepository(db), cfg.ReconcileSchedule)
		if err := reconciler.Start(ctxShutdown); err != nil {
			return fmt.Errorf("invalid RECONCILE_SCHEDULE: %w", err)
		}
		defer reconciler.Stop()
	}

	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: newRouter(a, cfg.CORSAllowedOrigins,
			fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	checker := health.NewChecker(
		health.Dependency{Name: "postgres", Ping: db.PingContext},
		health.Dependency{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)
	grpcServer := grpc.NewServer()
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.AppHost, cfg.GRPCHealthPort))
	if err != nil {
		return fmt.Errorf("gRPC health listener failed: %w", err)
	}

	g, gctx := errgroup.WithContext(ctxShutdown)

	g.Go(func() error {
		logger.Log.Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := checker.Serve(grpcServer, lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC health server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		checker.Run(gctx, 15*time.Second)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("shutdown signal received, stopping servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("HTTP server shutdown error", "error", err)
		}
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Log.Info("servers stopped gracefully")
	return nil
}
