package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/app"
	"github.com/metinatakli/showtime-booking/internal/conversation"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/mailer"
	"github.com/metinatakli/showtime-booking/internal/notify"
	"github.com/metinatakli/showtime-booking/internal/repository"
	appvalidator "github.com/metinatakli/showtime-booking/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App           *app.Application
	DB            *pgxpool.Pool
	Redis         *redis.Client
	Mailer        *mailer.MockMailer
	Catalog       domain.CatalogRepository
	Inventory     domain.InventoryStore
	Conversations *conversation.Store
	Contacts      domain.ContactRepository
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	testMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	inventory, err := app.NewInventoryStore(cfg, db, redisClient)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	catalog := repository.NewPostgresCatalogRepository(db)
	contacts := repository.NewPostgresContactRepository(db)
	conversations := app.NewConversationStore(cfg, redisClient, contacts)

	application := app.NewApp(
		cfg,
		logger,
		validator,
		inventory,
		catalog,
		conversations,
		contacts,
		notify.Fanout{notify.NewMailNotifier(testMailer)},
	)

	return &TestApp{
		App:           application,
		DB:            db,
		Redis:         redisClient,
		Mailer:        testMailer,
		Catalog:       catalog,
		Inventory:     inventory,
		Conversations: conversations,
		Contacts:      contacts,
	}, nil
}
