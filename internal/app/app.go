package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/booking"
	"github.com/metinatakli/showtime-booking/internal/conversation"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/mailer"
	"github.com/metinatakli/showtime-booking/internal/notify"
	"github.com/metinatakli/showtime-booking/internal/repository"
	"github.com/metinatakli/showtime-booking/internal/seed"
	appvalidator "github.com/metinatakli/showtime-booking/internal/validator"
	"github.com/metinatakli/showtime-booking/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "showtime-booking-api"

const (
	InventoryPostgres = "postgres"
	InventoryRedis    = "redis"
	InventoryMemory   = "memory"
)

var (
	version = vcs.Version()

	_ api.ServerInterface = (*Application)(nil)
)

type Application struct {
	config        Config
	logger        *slog.Logger
	validator     *validator.Validate
	booker        *booking.Coordinator
	inventory     domain.InventoryStore
	catalog       domain.CatalogRepository
	conversations domain.ConversationRepository
	contacts      domain.ContactRepository
	notifier      notify.Notifier
	wg            sync.WaitGroup
}

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	AMQP             AMQPConfig
	Booking          BookingConfig
	Conversation     ConversationConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type AMQPConfig struct {
	URL string
}

type BookingConfig struct {
	// Inventory selects the store that owns seat availability: postgres,
	// redis or memory.
	Inventory   string
	Timeout     time.Duration
	LockTimeout time.Duration
}

type ConversationConfig struct {
	IdleTimeout time.Duration
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	inventory domain.InventoryStore,
	catalog domain.CatalogRepository,
	conversations domain.ConversationRepository,
	contacts domain.ContactRepository,
	notifier notify.Notifier) *Application {

	return &Application{
		config:        cfg,
		logger:        logger,
		validator:     validator,
		booker:        booking.NewCoordinator(inventory, logger, cfg.Booking.Timeout),
		inventory:     inventory,
		catalog:       catalog,
		conversations: conversations,
		contacts:      contacts,
		notifier:      notifier,
	}
}

func parseConfig() (Config, bool) {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", os.Getenv("SMTP_USERNAME"), "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", os.Getenv("SMTP_PASSWORD"), "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "Showtime <no-reply@showtime.local>", "SMTP sender")

	flag.StringVar(&cfg.AMQP.URL, "amqp-url", os.Getenv("AMQP_URL"), "RabbitMQ URL for booking events (disabled when empty)")

	flag.StringVar(&cfg.Booking.Inventory, "inventory", InventoryPostgres, "Seat inventory store (postgres|redis|memory)")
	flag.DurationVar(&cfg.Booking.Timeout, "booking-timeout", 5*time.Second, "Upper bound for a single booking")
	flag.DurationVar(&cfg.Booking.LockTimeout, "booking-lock-timeout", 2*time.Second, "PostgreSQL lock timeout inside a booking")

	flag.DurationVar(&cfg.Conversation.IdleTimeout, "conversation-idle-timeout", conversation.DefaultIdleTimeout, "Time after which an idle conversation is forgotten")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", os.Getenv("OTEL_COLLECTOR_URL"), "OpenTelemetry collector gRPC endpoint (disabled when empty)")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	return cfg, *displayVersion
}

func Run() error {
	envErr := godotenv.Load()

	cfg, displayVersion := parseConfig()

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	textHandler := slog.NewTextHandler(os.Stdout, nil)

	app := &Application{
		config: cfg,
		logger: slog.New(textHandler),
	}

	if envErr != nil {
		app.logger.Debug("no .env file loaded, using flags and environment", "error", envErr)
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(textHandler, otelslog.NewHandler(serviceName)))
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	inventory, err := NewInventoryStore(cfg, db, redisClient)
	if err != nil {
		return err
	}

	if memory, ok := inventory.(*repository.MemoryInventoryStore); ok {
		err = seed.Apply(context.Background(), nil, memory, seed.DefaultPlan())
		if err != nil {
			return err
		}
	}

	notifiers := notify.Fanout{
		notify.NewMailNotifier(mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)),
	}

	if cfg.AMQP.URL != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.AMQP.URL)
		if err != nil {
			return err
		}
		defer publisher.Close()

		notifiers = append(notifiers, publisher)
	}

	contacts := repository.NewPostgresContactRepository(db)

	application := NewApp(
		cfg,
		app.logger,
		appvalidator.NewValidator(),
		inventory,
		repository.NewPostgresCatalogRepository(db),
		NewConversationStore(cfg, redisClient, contacts),
		contacts,
		notifiers,
	)

	return application.serve()
}

// NewInventoryStore builds the store selected by cfg.Booking.Inventory.
func NewInventoryStore(cfg Config, db *pgxpool.Pool, redisClient redis.UniversalClient) (domain.InventoryStore, error) {
	switch cfg.Booking.Inventory {
	case InventoryPostgres, "":
		return repository.NewPostgresInventoryStore(db, cfg.Booking.LockTimeout), nil
	case InventoryRedis:
		return repository.NewRedisInventoryStore(redisClient), nil
	case InventoryMemory:
		return repository.NewMemoryInventoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown inventory store %q", cfg.Booking.Inventory)
	}
}

// NewConversationStore keeps conversations in Redis and prefills new ones from
// contacts.
func NewConversationStore(cfg Config, client *redis.Client, contacts domain.ContactRepository) *conversation.Store {
	return conversation.NewStore(goredisstore.NewWithPrefix(client, "conversation:"), contacts, cfg.Conversation.IdleTimeout)
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to instrument redis client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		app.logger.Info("completing background tasks", "addr", srv.Addr)

		app.wg.Wait()
		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "inventory", app.config.Booking.Inventory)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

// Wait blocks until every background task started by a request has finished.
func (app *Application) Wait() {
	app.wg.Wait()
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)

	api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: app.badRequestResponse,
	})

	return r
}
