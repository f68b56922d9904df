package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libercore/lending-catalog-go/catalog"
	"github.com/libercore/lending-catalog-go/catalog/memoryengine"
	"github.com/libercore/lending-catalog-go/catalog/oteladapters"
	"github.com/libercore/lending-catalog-go/catalog/postgresengine"
	"github.com/libercore/lending-catalog-go/identity"
	"github.com/libercore/lending-catalog-go/lending"
	"github.com/libercore/lending-catalog-go/seed"
	"github.com/libercore/lending-catalog-go/shell/config"
)

const (
	engineMemory   = "memory"
	enginePostgres = "postgres"
)

var errUnknownStoreEngine = errors.New("unknown store engine")

func run(ctx context.Context, demoConfig config.Demo) error {
	logger := buildLogger(demoConfig.LogLevel)

	books, users, cleanup, err := buildStores(ctx, demoConfig, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := seed.Load(ctx, books, users); err != nil {
		return err
	}

	service, err := lending.NewService(books, users, lending.WithLogger(logger))
	if err != nil {
		return err
	}

	provider, err := identity.NewStoreBackedProvider(users)
	if err != nil {
		return err
	}

	return runScenario(ctx, service, provider, logger)
}

// runScenario authenticates the seeded users and walks the catalog through
// create, borrow, return and a second borrow by a different user.
func runScenario(
	ctx context.Context,
	service *lending.Service,
	provider identity.Provider,
	logger *oteladapters.SlogBridgeLogger,
) error {

	curator, err := provider.Authenticate(ctx, "peter.parker@example.com", "parker")
	if err != nil {
		return err
	}

	wayne, err := provider.Authenticate(ctx, "bruce.wayne@example.com", "wayne")
	if err != nil {
		return err
	}

	banner, err := provider.Authenticate(ctx, "bruce.banner@example.com", "banner")
	if err != nil {
		return err
	}

	created, err := service.CreateOrUpdate(ctx, catalog.Book{
		ISBN:        "9780201633610",
		Title:       "Design Patterns",
		Description: "Elements of Reusable Object-Oriented Software",
		Authors:     []string{"Erich Gamma", "Richard Helm", "Ralph Johnson", "John Vlissides"},
	}, curator)
	if err != nil {
		return err
	}
	logger.Info("created book", "book_id", created.Identifier.String(), "title", created.Title)

	borrowed, err := service.Borrow(ctx, created.Identifier, wayne.Identifier, wayne)
	if err != nil {
		return err
	}
	if borrowed == nil {
		return fmt.Errorf("expected the first borrow to apply")
	}
	logger.Info("book borrowed", "book_id", created.Identifier.String(), "borrower", wayne.Identifier.String())

	// a second borrow attempt must yield the opaque absent outcome
	denied, err := service.Borrow(ctx, created.Identifier, banner.Identifier, banner)
	if err != nil {
		return err
	}
	if denied != nil {
		return fmt.Errorf("expected the second borrow not to apply")
	}
	logger.Info("second borrow did not apply, as expected")

	returned, err := service.Return(ctx, created.Identifier, wayne.Identifier, wayne)
	if err != nil {
		return err
	}
	if returned == nil {
		return fmt.Errorf("expected the return to apply")
	}
	logger.Info("book returned", "book_id", created.Identifier.String())

	reborrowed, err := service.Borrow(ctx, created.Identifier, banner.Identifier, banner)
	if err != nil {
		return err
	}
	if reborrowed == nil {
		return fmt.Errorf("expected the borrow after return to apply")
	}
	logger.Info("book borrowed by next reader", "book_id", created.Identifier.String(), "borrower", banner.Identifier.String())

	all, err := service.ListAll(ctx, wayne)
	if err != nil {
		return err
	}
	logger.Info("catalog listed", "book_count", len(all))

	return nil
}

func buildStores(ctx context.Context, demoConfig config.Demo, logger *oteladapters.SlogBridgeLogger) (
	catalog.BookStore,
	catalog.UserStore,
	func(),
	error,
) {

	switch demoConfig.StoreEngine {
	case engineMemory:
		return memoryengine.NewBookStore(), memoryengine.NewUserStore(), func() {}, nil

	case enginePostgres:
		postgresConfig, err := config.LoadPostgres()
		if err != nil {
			return nil, nil, nil, err
		}

		poolConfig, err := postgresConfig.PGXPoolConfig()
		if err != nil {
			return nil, nil, nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, nil, err
		}

		engine, err := postgresengine.NewEngineFromPGXPool(pool, postgresengine.WithLogger(logger))
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}

		return engine.Books(), engine.Users(), pool.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("%w: %s", errUnknownStoreEngine, demoConfig.StoreEngine)
	}
}

func buildLogger(level string) *oteladapters.SlogBridgeLogger {
	var slogLevel slog.Level

	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})

	return oteladapters.NewSlogBridgeLoggerWithHandler(handler)
}
