package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/accounter-io/accounter/internal/business"
	businessStore "github.com/accounter-io/accounter/internal/business/store"
	"github.com/accounter-io/accounter/internal/charge"
	chargeStore "github.com/accounter-io/accounter/internal/charge/store"
	"github.com/accounter-io/accounter/internal/config"
	"github.com/accounter-io/accounter/internal/database"
	accounterHttp "github.com/accounter-io/accounter/internal/http"
	chargeHandler "github.com/accounter-io/accounter/internal/http/charge"
	clientHandler "github.com/accounter-io/accounter/internal/http/client"
	importHandler "github.com/accounter-io/accounter/internal/http/importcsv"
	matchingHandler "github.com/accounter-io/accounter/internal/http/matching"
	"github.com/accounter-io/accounter/internal/importer"
	"github.com/accounter-io/accounter/internal/matching"
	matchingStore "github.com/accounter-io/accounter/internal/matching/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	auditStore := matchingStore.New(db)

	var (
		chargeService   = charge.NewService(chargeStore.New(db))
		businessService = business.NewService(businessStore.New(db))
		importService   = importer.NewService()
		matchingService = matching.NewService(
			chargeService,
			businessService,
			chargeService,
			matching.Config{
				AcceptThreshold: cfg.Matching.AcceptThreshold,
				ReviewThreshold: cfg.Matching.ReviewThreshold,
				Recorder:        auditStore,
			},
		)
	)

	var (
		chargesH  = chargeHandler.NewHandler(chargeService)
		clientsH  = clientHandler.NewHandler(businessService)
		matchingH = matchingHandler.NewHandler(matchingService, auditStore)
		importH   = importHandler.NewHandler(importService, chargeService)
	)

	router := accounterHttp.New(chargesH, clientsH, matchingH, importH, cfg.Auth.JWTSecret)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
