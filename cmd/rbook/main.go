package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	apppkg "github.com/tailfold/rbook/internal/app"
	"github.com/tailfold/rbook/internal/config"
	"github.com/tailfold/rbook/internal/logger"
)

const version = "0.3.1"

func printHelp() {
	fmt.Print(`rbook - Terminal reader for plain-text books

USAGE:
    rbook [OPTIONS] [BOOKS_DIR]

BOOKS_DIR defaults to the current directory (or RBOOK_BOOKS_DIR).

OPTIONS:
    -h, --help       Show this help message and exit
    -v, --version    Print the version and exit
`)
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	// This ensures CJK and other Unicode characters display correctly
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	// Environment may come from a .env file next to the binary.
	_ = godotenv.Load()

	cfg := config.FromEnv()

	if len(os.Args) > 1 {
		arg := os.Args[1]
		switch {
		case arg == "-h" || arg == "--help":
			printHelp()
			os.Exit(0)
		case arg == "-v" || arg == "--version":
			fmt.Println("rbook " + version)
			os.Exit(0)
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n\n", arg)
			printHelp()
			os.Exit(2)
		default:
			cfg.BooksDir = arg
		}
	}

	if err := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		File:   cfg.LogFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	app, err := apppkg.NewApplication(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	log.Info().Str("books", cfg.BooksDir).Msg("rbook started")
	app.Run()
}
