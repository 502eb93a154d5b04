// Package app orchestrates startup: config, logger, journal, board.
package app

import (
	"log/slog"
	"os"
	"time"

	"fx_orders/internal/board"
	"fx_orders/internal/infra"
	"fx_orders/internal/infra/storage"
	"fx_orders/internal/seed"
)

// Bootstrap wires the application together in dependency order
type Bootstrap struct {
	Config  *infra.Config
	Metrics *infra.Metrics
	Journal *storage.Journal
	Board   *board.Board
}

// NewBootstrap creates an empty Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration, installs the logger, opens the journal,
// and constructs the board with its seed state.
func (b *Bootstrap) Initialize(configPath string) error {
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	b.Metrics = infra.NewMetrics()

	var journal board.Journal
	if cfg.Journal.Enabled {
		j, err := storage.NewJournal(cfg.Journal.Path)
		if err != nil {
			return err
		}
		b.Journal = j
		journal = j
		slog.Info("action journal opened", slog.String("path", cfg.Journal.Path))
	}

	gen := seed.NewGenerator(cfg.Generator.Titles, cfg.Generator.MaxPrice, time.Now().UnixNano())

	brd, err := board.New(board.Config{
		SeedRates: cfg.SeedRates(),
		Generator: gen,
		Journal:   journal,
		Logger:    logger,
		Metrics:   b.Metrics,
	})
	if err != nil {
		return err
	}
	b.Board = brd
	slog.Info("board initialized",
		slog.String("base_currency", cfg.Market.BaseCurrency),
		slog.Int("currencies", len(cfg.Market.Rates)),
	)

	// Initial order lines so the board is not empty on first render.
	for i := 0; i < cfg.Generator.SeedOrders; i++ {
		brd.AddOrder()
	}

	return nil
}

// Shutdown tears the board down and dumps a final state snapshot for
// post-mortems.
func (b *Bootstrap) Shutdown() {
	if b.Board == nil {
		return
	}
	if err := b.Board.DumpState(os.Stdout); err != nil {
		slog.Error("state dump failed", slog.Any("error", err))
	}
	b.Board.Close()
	slog.Info("board closed",
		slog.Uint64("actions_processed", b.Metrics.ActionsProcessed()),
		slog.Uint64("errors_total", b.Metrics.ErrorsTotal()),
		slog.Duration("avg_latency", b.Metrics.AvgLatency()),
	)
}
