package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/Xadero/slsd/internal/app"
	"github.com/Xadero/slsd/internal/config"
	"github.com/Xadero/slsd/internal/platform/logging"
	"github.com/Xadero/slsd/internal/usecase"
	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

func main() {
	var (
		dir     = flag.String("dir", "", "directory containing tournament snapshot *.json files")
		rebuild = flag.Bool("rebuild", true, "recompute the global ranking after importing")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewConsole(cfg.LogLevel).Named("import")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := run(ctx, cfg, logger, *dir, *rebuild)
	if err != nil {
		logger.Error("import failed", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if err := printResult(os.Stdout, result); err != nil {
		logger.Error("print result", "error", err)
		os.Exit(1)
	}
	if result.Failed > 0 {
		os.Exit(3)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, dir string, rebuild bool) (usecase.ImportResult, error) {
	docs, err := loadDocuments(dir)
	if err != nil {
		return usecase.ImportResult{}, err
	}
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("importing into memory storage; data is discarded on exit")
	}

	services, err := app.NewServices(ctx, cfg, logger)
	if err != nil {
		return usecase.ImportResult{}, crerr.Wrap(err, "build services")
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Warn("close storage failed", "error", err)
		}
	}()

	result, err := services.Import.Import(ctx, docs, rebuild)
	if err != nil {
		return result, crerr.Wrapf(err, "import %d document(s)", len(docs))
	}
	return result, nil
}

// loadDocuments reads every *.json file of dir in name order.
func loadDocuments(dir string) ([]usecase.ImportDocument, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, crerr.New("-dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, crerr.Wrapf(err, "read dir %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]usecase.ImportDocument, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, crerr.Wrapf(err, "read %s", path)
		}
		docs = append(docs, usecase.ImportDocument{Source: name, Data: data})
	}
	if len(docs) == 0 {
		return nil, crerr.Newf("no *.json files in %s", dir)
	}
	return docs, nil
}

func printResult(w io.Writer, result usecase.ImportResult) error {
	enc := sonic.ConfigDefault.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return crerr.Wrap(err, "encode result")
	}
	return nil
}
