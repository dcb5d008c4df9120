package main

import (
	"context"
	"errors"
	"os"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/config"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/logging"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/storage"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/utils"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Imports spin history from a CSV file (as written by the admin export) into the configured store.
//
//	go run ./cmd/scripts spins.csv
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Log.Warnf("Failed to read .env file: %v", err)
	}

	if len(os.Args) < 2 {
		logging.Log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	cfg, err := config.Load(".")
	if err != nil {
		logging.Log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Bootstrap(cfg.LogLevel)

	ctx := context.Background()
	spinRepo, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logging.Log.Fatalf("Failed to open spin store: %v", err)
	}
	defer spinRepo.Close(ctx)

	file, err := os.Open(csvFilePath)
	if err != nil {
		logging.Log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	result, err := utils.NewSpinCSVImporter(spinRepo).Import(ctx, file)
	if err != nil {
		logging.Log.Errorf("Import stopped: %v", err)
	}
	if result != nil {
		for _, rowErr := range result.Errors {
			logging.Log.Warn(rowErr)
		}
		logging.Log.WithFields(logrus.Fields{
			"rows":       result.TotalRows,
			"created":    result.Created,
			"duplicates": result.Duplicates,
			"skipped":    len(result.Errors),
		}).Info("Spin import finished")
	}
}
