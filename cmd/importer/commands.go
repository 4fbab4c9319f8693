package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	importapp "github.com/erp/bulkimport/internal/application/import"
	inventoryapp "github.com/erp/bulkimport/internal/application/inventory"
	"github.com/erp/bulkimport/internal/domain/bulk"
	"github.com/erp/bulkimport/internal/infrastructure/config"
	csvimport "github.com/erp/bulkimport/internal/infrastructure/import"
	"github.com/erp/bulkimport/internal/infrastructure/logger"
	"github.com/erp/bulkimport/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errUsage = errors.New("invalid arguments")

// app wires configuration into services for a single command run. The
// database is opened on first use.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer
	db     *persistence.Database
}

func newApp(cfg *config.Config, log *zap.Logger, stdout, stderr io.Writer) *app {
	return &app{cfg: cfg, log: log, stdout: stdout, stderr: stderr}
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn("Failed to close database", zap.Error(err))
	}
}

func (a *app) database() (*persistence.Database, error) {
	if a.db != nil {
		return a.db, nil
	}
	sqlLogger := logger.NewGormLogger(a.log, logger.MapGormLogLevel(a.cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&a.cfg.Database, sqlLogger)
	if err != nil {
		return nil, err
	}
	a.log.Debug("Database connected",
		zap.String("driver", a.cfg.Database.Driver),
		zap.Bool("auto_migrate", a.cfg.Database.AutoMigrate),
	)
	a.db = db
	return db, nil
}

func (a *app) ingestor() *csvimport.Ingestor {
	return csvimport.NewIngestor(
		csvimport.WithMaxFileSize(a.cfg.Import.MaxFileSize),
		csvimport.WithFieldDelimiter(a.cfg.Import.DelimiterRune()),
		csvimport.WithLogger(a.log),
	)
}

func (a *app) previewService() *importapp.PreviewService {
	return importapp.NewPreviewService(a.ingestor(),
		importapp.WithDecodeTimeout(a.cfg.Import.DecodeTimeout),
		importapp.WithMaxDiagnostics(a.cfg.Import.MaxDiagnostics),
		importapp.WithPreviewLogger(a.log),
	)
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) preview(ctx context.Context, args []string) error {
	fs := a.newFlagSet("preview")
	entity := fs.String("type", string(bulk.EntityCatalog), "Entity type: products or orders")
	seq := fs.Int("seq", 0, "Synthetic SKU counter to continue from (orders only)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	entityType, err := parseEntityType(*entity)
	if err != nil {
		return err
	}
	path, data, err := readInput(fs.Args())
	if err != nil {
		return err
	}

	svc := a.previewService()
	name := filepath.Base(path)
	if entityType == bulk.EntityOrders {
		return a.writeJSON(svc.PreviewOrdersFrom(ctx, data, name, *seq))
	}
	return a.writeJSON(svc.PreviewCatalog(ctx, data, name))
}

func (a *app) commit(ctx context.Context, args []string) error {
	fs := a.newFlagSet("commit")
	entity := fs.String("type", string(bulk.EntityCatalog), "Entity type: products or orders")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	entityType, err := parseEntityType(*entity)
	if err != nil {
		return err
	}
	path, data, err := readInput(fs.Args())
	if err != nil {
		return err
	}

	db, err := a.database()
	if err != nil {
		return err
	}
	writer := persistence.NewGormCatalogRepository(db.DB)
	svc := importapp.NewCommitService(
		a.previewService(),
		writer,
		writer,
		persistence.NewGormImportHistoryRepository(db.DB),
		a.log,
	)

	result, err := svc.Commit(ctx, entityType, data, filepath.Base(path))
	if err != nil {
		return err
	}
	return a.writeJSON(result)
}

func (a *app) receive(ctx context.Context, args []string) error {
	fs := a.newFlagSet("receive")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	_, data, err := readInput(fs.Args())
	if err != nil {
		return err
	}

	var req inventoryapp.ReceiptRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to decode receipt request: %w", err)
	}

	db, err := a.database()
	if err != nil {
		return err
	}
	svc := inventoryapp.NewReceiptService(persistence.NewGormStockMovementRepository(db.DB), a.log)
	resp, err := svc.Receive(ctx, req)
	if err != nil {
		return err
	}
	return a.writeJSON(resp)
}

func (a *app) canonical(_ context.Context, args []string) error {
	fs := a.newFlagSet("canonical")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	path, data, err := readInput(fs.Args())
	if err != nil {
		return err
	}
	text, err := a.ingestor().ToCanonicalText(data, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.stdout, text)
	return err
}

func (a *app) history(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "show":
			return a.historyShow(ctx, args[1:])
		case "errors":
			return a.historyErrors(ctx, args[1:])
		}
	}

	fs := a.newFlagSet("history")
	entity := fs.String("type", "", "Only list imports of this entity type")
	limit := fs.Int("limit", 0, "Maximum number of imports to list (default 20)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	svc, err := a.historyService()
	if err != nil {
		return err
	}
	histories, err := svc.ListRecent(ctx, bulk.EntityType(*entity), *limit)
	if err != nil {
		return err
	}
	return a.writeJSON(histories)
}

func (a *app) historyShow(ctx context.Context, args []string) error {
	id, err := parseHistoryID(args)
	if err != nil {
		return err
	}
	svc, err := a.historyService()
	if err != nil {
		return err
	}
	history, err := svc.GetHistory(ctx, id)
	if err != nil {
		return err
	}
	return a.writeJSON(history)
}

func (a *app) historyErrors(ctx context.Context, args []string) error {
	fs := a.newFlagSet("history errors")
	out := fs.String("o", "", "Write the CSV to this file, or to the suggested name when set to '.'")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	id, err := parseHistoryID(fs.Args())
	if err != nil {
		return err
	}
	svc, err := a.historyService()
	if err != nil {
		return err
	}
	content, fileName, err := svc.GetErrorsCSV(ctx, id)
	if err != nil {
		return err
	}

	switch *out {
	case "":
		_, err = io.WriteString(a.stdout, content)
		return err
	case ".":
		*out = fileName
	}
	if err := os.WriteFile(*out, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}
	a.log.Info("Import errors exported", zap.String("file", *out))
	return nil
}

func (a *app) historyService() (*importapp.ImportHistoryService, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	return importapp.NewImportHistoryService(persistence.NewGormImportHistoryRepository(db.DB)), nil
}

func parseEntityType(s string) (bulk.EntityType, error) {
	entityType := bulk.EntityType(s)
	if !entityType.IsValid() {
		return "", fmt.Errorf("%w: unknown entity type %q (want %s or %s)",
			errUsage, s, bulk.EntityCatalog, bulk.EntityOrders)
	}
	return entityType, nil
}

func parseHistoryID(args []string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, fmt.Errorf("%w: expected one import ID", errUsage)
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid import ID %q", errUsage, args[0])
	}
	return id, nil
}

// readInput reads the single file argument of a command
func readInput(args []string) (string, []byte, error) {
	if len(args) != 1 {
		return "", nil, fmt.Errorf("%w: expected one input file", errUsage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("failed to read input: %w", err)
	}
	return args[0], data, nil
}
