package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/metinatakli/showtime-booking/internal/app"
	"github.com/metinatakli/showtime-booking/internal/repository"
	"github.com/metinatakli/showtime-booking/internal/seed"
	"github.com/redis/go-redis/v9"
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var (
		cfg   app.Config
		start string
		days  int
	)

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	flag.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("REDIS_URL"), "Redis address")
	flag.StringVar(&cfg.Booking.Inventory, "inventory", app.InventoryPostgres, "Seat inventory store (postgres|redis)")
	flag.StringVar(&start, "start", seed.DefaultStart.Format(time.DateOnly), "First day of the schedule")
	flag.IntVar(&days, "days", seed.DefaultDays, "Number of days to schedule")
	flag.Parse()

	cfg.DB.MaxOpenConns = 5
	cfg.DB.MaxIdleTime = time.Minute
	cfg.Redis.MaxOpenConns = 5
	cfg.Redis.MaxIdleConns = 5
	cfg.Redis.MaxIdleTime = time.Minute

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	startDay, err := time.ParseInLocation(time.DateOnly, start, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid start day %q: %w", start, err)
	}

	err = repository.MigrateUp(cfg.DB.DSN)
	if err != nil {
		return err
	}
	logger.Info("migrations applied")

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := openRedis(cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	inventory, err := app.NewInventoryStore(cfg, db, redisClient)
	if err != nil {
		return err
	}

	plan := seed.DefaultPlan()
	plan.Showtimes = seed.Showtimes(plan.Movies, plan.Screens, startDay, days)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	err = seed.Apply(ctx, repository.NewPostgresCatalogRepository(db), inventory, plan)
	if err != nil {
		return err
	}

	err = seed.ApplyContacts(ctx, repository.NewPostgresContactRepository(db), seed.Contacts)
	if err != nil {
		return err
	}

	logger.Info("seed data loaded",
		"inventory", cfg.Booking.Inventory,
		"movies", len(plan.Movies),
		"screens", len(plan.Screens),
		"showtimes", len(plan.Showtimes),
		"contacts", len(seed.Contacts))

	return nil
}

// openRedis connects only when the inventory lives in Redis.
func openRedis(cfg app.Config) (*redis.Client, error) {
	if cfg.Booking.Inventory != app.InventoryRedis {
		return nil, nil
	}

	client, err := app.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
