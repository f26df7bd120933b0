package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nfarhana/kadstudi/internal/chat"
	"github.com/nfarhana/kadstudi/internal/config"
	"github.com/nfarhana/kadstudi/internal/deck"
	"github.com/nfarhana/kadstudi/internal/generate"
	"github.com/nfarhana/kadstudi/internal/provider"
	"github.com/nfarhana/kadstudi/internal/tui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	modelFlag := flag.String("model", "", "Gemini model name (overrides config)")
	storeFlag := flag.String("store", "", "Path to the flashcards JSON file (overrides config)")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")
	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("kadstudi %s\n", Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("Configuration error: %v", err)
	}
	if *modelFlag != "" {
		cfg.Provider.Model = *modelFlag
	}
	if *storeFlag != "" {
		cfg.Store.Path = *storeFlag
	}

	google := provider.NewGoogle(cfg.Provider.APIKey, cfg.Provider.Model, cfg.Provider.BaseURL)
	prov := provider.WithRetry(google, cfg.Provider.MaxRetries)

	app := &tui.App{
		Store:     deck.NewStore(cfg.Store.Path),
		Generator: generate.New(prov),
		Companion: chat.New(prov, cfg.Chat.MaxSentences),
		Rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		Version:   Version,
	}

	p := tea.NewProgram(tui.NewModel(app), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("Error running program: %v", err)
	}
}

func showHelp() {
	fmt.Println(`KadStudi - turn question papers and marking schemes into AI flashcards.

Usage:
  kadstudi [flags]

Flags:
  -model <name>    Gemini model to use (default from config)
  -store <path>    Flashcards JSON file (default from config)
  -version         Print version
  -h, -help        Show this help

Configuration:
  Reads config.yaml from the current directory or $XDG_CONFIG_HOME/kadstudi.
  The Gemini API key comes from provider.api_key (default: $GEMINI_API_KEY).`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
