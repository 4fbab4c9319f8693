// Command importer previews and commits bulk catalog and order exports and
// books supplier stock receipts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erp/bulkimport/internal/infrastructure/config"
	"github.com/erp/bulkimport/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	var (
		configPath string
		logLevel   string
	)
	fs.StringVar(&configPath, "config", "", "Path to config file (default: ./config.toml or /etc/bulkimport/config.toml)")
	fs.StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}
	command, commandArgs := rest[0], rest[1:]

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	base, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = base.Sync()
	}()

	ctx, log := logger.WithRunID(ctx, logger.Named(base, cfg.App.Name), uuid.NewString())
	log.Debug("Importer started", zap.String("command", command))

	a := newApp(cfg, log, stdout, stderr)
	defer a.close()

	var runErr error
	switch command {
	case "preview":
		runErr = a.preview(ctx, commandArgs)
	case "commit":
		runErr = a.commit(ctx, commandArgs)
	case "receive":
		runErr = a.receive(ctx, commandArgs)
	case "canonical":
		runErr = a.canonical(ctx, commandArgs)
	case "history":
		runErr = a.history(ctx, commandArgs)
	case "help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return 2
	}

	if runErr != nil {
		log.Error("Command failed", zap.String("command", command), zap.Error(runErr))
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		if errors.Is(runErr, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Bulk Import CLI

Usage:
  importer [flags] <command> [command flags] [args]

Commands:
  preview   -type products|orders [-seq n] <file>   Reconcile a file and print the preview
  commit    -type products|orders <file>            Reconcile a file and write every parent
  receive   <request.json>                          Book a supplier receipt as stock movements
  canonical <file>                                  Print a spreadsheet's first sheet as CSV
  history   [-type products|orders] [-limit n]      List recent imports
  history   show <id>                               Show one import
  history   errors [-o file] <id>                   Export the failed keys of an import as CSV

Flags:
  -config     Path to config file
  -log-level  Override the configured log level

Environment variables with the BULK_ prefix override the config file,
for example BULK_DATABASE_PATH=/tmp/import.db.
`)
}
