package storage

import (
	"context"
	"fmt"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/config"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/logging"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories/dynamo"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories/mongodb"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories/sqlite"
	"github.com/ArowuTest/bridgetunes-spin-wheel/pkg/mongodb"
	"github.com/sirupsen/logrus"
)

// Open connects the spin store selected by cfg.Driver and ensures its schema
func Open(ctx context.Context, cfg config.StorageConfig) (repositories.SpinRepository, error) {
	repo, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		_ = repo.Close(ctx)
		return nil, fmt.Errorf("failed to prepare %s schema: %w", cfg.Driver, err)
	}

	logging.Log.WithFields(logrus.Fields{"driver": cfg.Driver}).Info("Spin store ready")
	return repo, nil
}

func open(ctx context.Context, cfg config.StorageConfig) (repositories.SpinRepository, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLite.Path)

	case config.DriverMongoDB:
		client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		return mongorepo.NewSpinRepository(client.Database(cfg.MongoDB.Database), client.Disconnect), nil

	case config.DriverDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return &dynamo.SpinRepository{Client: client, TableName: cfg.DynamoDB.Table}, nil

	case config.DriverMemory:
		logging.Log.Warn("Using in-memory spin store, records are lost on restart")
		return memory.NewSpinRepository(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
