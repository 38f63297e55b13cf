package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/mythduel/internal/config"
	"github.com/peterkuimelis/mythduel/internal/game"
	mdmcp "github.com/peterkuimelis/mythduel/internal/mcp"
	"github.com/peterkuimelis/mythduel/internal/service"
	"github.com/peterkuimelis/mythduel/internal/store"
)

func main() {
	catalogFile := flag.String("catalog", "", "path to a card catalog YAML (default: built-in)")
	dataDir := flag.String("data", "", "directory for persisted matches (default: in memory)")
	shuffle := flag.Bool("shuffle", false, "shuffle decks before dealing")
	flag.Parse()

	cfg := config.FromEnv(config.Default())
	if *catalogFile != "" {
		cfg.Catalog = *catalogFile
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *shuffle {
		cfg.Shuffle = true
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	// stdout carries the MCP protocol; operational logs go to stderr.
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	logger, err := zcfg.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	catalog, err := cfg.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	var st store.MatchStore = store.NewMemoryStore()
	if cfg.DataDir != "" {
		if st, err = store.NewFileStore(cfg.DataDir); err != nil {
			return fmt.Errorf("open store: %w", err)
		}
	}

	feed := mdmcp.NewEventFeed(nil)
	ec := cfg.EngineConfig(catalog)
	ec.Logger = feed
	svc := service.New(game.NewEngine(ec), st, logger)

	s := server.NewMCPServer("mythduel", "1.0.0")
	mdmcp.NewTools(svc, catalog, feed).Register(s)
	return server.ServeStdio(s)
}
