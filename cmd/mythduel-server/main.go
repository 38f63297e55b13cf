package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/mythduel/internal/config"
	"github.com/peterkuimelis/mythduel/internal/game"
	"github.com/peterkuimelis/mythduel/internal/log"
	"github.com/peterkuimelis/mythduel/internal/service"
	"github.com/peterkuimelis/mythduel/internal/store"
	"github.com/peterkuimelis/mythduel/internal/web"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address (default :8080)")
	catalogFile := flag.String("catalog", "", "path to a card catalog YAML (default: built-in)")
	dataDir := flag.String("data", "", "directory for persisted matches (default: in memory)")
	publicURL := flag.String("public-url", "", "externally reachable base URL for invites")
	shuffle := flag.Bool("shuffle", false, "shuffle decks before dealing")
	dev := flag.Bool("dev", false, "development logging")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg = config.FromEnv(cfg)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "catalog":
			cfg.Catalog = *catalogFile
		case "data":
			cfg.DataDir = *dataDir
		case "public-url":
			cfg.PublicURL = *publicURL
		case "shuffle":
			cfg.Shuffle = *shuffle
		case "dev":
			cfg.Dev = *dev
		}
	})

	logger, err := newLogger(cfg.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg config.Config, logger *zap.Logger) error {
	catalog, err := cfg.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var st store.MatchStore = store.NewMemoryStore()
	if cfg.DataDir != "" {
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		logger.Info("persisting matches", zap.String("path", fs.Path()))
		st = fs
	}

	ec := cfg.EngineConfig(catalog)
	ec.Logger = log.NewZapLogger(logger)
	svc := service.New(game.NewEngine(ec), st, logger)

	srv := web.NewServer(svc, catalog, web.Options{
		PublicURL: cfg.PublicURL,
		Dev:       cfg.Dev,
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, cfg.Addr)
}
