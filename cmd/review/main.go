package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/accounter-io/accounter/cmd/review/internal/view"
	"github.com/accounter-io/accounter/internal/business"
	businessStore "github.com/accounter-io/accounter/internal/business/store"
	"github.com/accounter-io/accounter/internal/charge"
	chargeStore "github.com/accounter-io/accounter/internal/charge/store"
	"github.com/accounter-io/accounter/internal/config"
	"github.com/accounter-io/accounter/internal/database"
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

	adminID, err := uuid.Parse(cfg.Matching.AdminBusinessID)
	if err != nil {
		slog.Error("ADMIN_BUSINESS_ID must be set to a valid uuid", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	chargeService := charge.NewService(chargeStore.New(db))
	businessService := business.NewService(businessStore.New(db))
	matchingService := matching.NewService(
		chargeService,
		businessService,
		chargeService,
		matching.Config{
			AcceptThreshold: cfg.Matching.AcceptThreshold,
			ReviewThreshold: cfg.Matching.ReviewThreshold,
			Recorder:        matchingStore.New(db),
		},
	)

	p := tea.NewProgram(view.NewProposalsModel(matchingService, adminID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running review: %v\n", err)
		os.Exit(1)
	}
}
