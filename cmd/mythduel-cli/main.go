package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/peterkuimelis/mythduel/internal/config"
	"github.com/peterkuimelis/mythduel/internal/game"
	"github.com/peterkuimelis/mythduel/internal/log"
	mdnet "github.com/peterkuimelis/mythduel/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  mythduel play [--p1 NAME] [--p2 NAME] [--m1 MYTH] [--m2 MYTH] [--catalog FILE] [--shuffle]")
	fmt.Println("  mythduel join --server URL --match ID --player ID")
	fmt.Println("  mythduel join --url WS_URL")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a hot-seat match in this terminal")
	fmt.Println("  join    Take a seat in a match on a mythduel server")
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	p1 := fs.String("p1", "Player 1", "name of the first player")
	p2 := fs.String("p2", "Player 2", "name of the second player")
	m1 := fs.String("m1", "greek", "mythology of the first player's deck")
	m2 := fs.String("m2", "norse", "mythology of the second player's deck")
	catalogFile := fs.String("catalog", "", "path to a card catalog YAML (default: built-in)")
	shuffle := fs.Bool("shuffle", false, "shuffle decks before dealing")
	quiet := fs.Bool("quiet", false, "do not print match events")
	fs.Parse(args)

	cfg := config.Config{Catalog: *catalogFile, Shuffle: *shuffle}
	catalog, err := cfg.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	for _, m := range []string{*m1, *m2} {
		if len(catalog.Cards(m)) == 0 {
			return fmt.Errorf("unknown mythology %q (have %v)", m, catalog.Mythologies())
		}
	}

	ec := cfg.EngineConfig(catalog)
	if *quiet {
		ec.Logger = log.NewMemoryLogger()
	} else {
		ec.Logger = log.NewTextLogger(os.Stdout)
	}
	engine := game.NewEngine(ec)
	m := engine.CreateMatch(*p1, *p2, *m1, *m2)

	fmt.Println(mdnet.HelpText())
	return mdnet.PlayLocal(ctx, engine, m, os.Stdin, os.Stdout)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	server := fs.String("server", "http://localhost:8080", "mythduel server URL")
	match := fs.String("match", "", "match id")
	player := fs.String("player", "", "your player id")
	url := fs.String("url", "", "full seat URL, as encoded in an invite code")
	fs.Parse(args)

	if *url != "" {
		return mdnet.JoinURL(ctx, *url, os.Stdin, os.Stdout)
	}
	if *match == "" || *player == "" {
		return fmt.Errorf("join needs --match and --player, or --url")
	}
	return mdnet.Join(ctx, *server, *match, *player, os.Stdin, os.Stdout)
}
