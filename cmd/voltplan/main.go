package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/logutil"
	"github.com/doubaokun/voltdb/internal/ops"
	"github.com/doubaokun/voltdb/internal/stats"
)

const (
	DefaultCatalogPath  = "./catalog.json"
	DefaultFragmentPath = "./fragment.json"
	DefaultHostID       = 0
	DefaultLogLevel     = "info"
)

type Config struct {
	CatalogPath  string
	StatsPath    string
	FragmentPath string
	Compressed   bool
	HostID       uint32
	LogLevel     string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadConfig() (Config, error) {
	cfg := Config{
		CatalogPath:  getenv("VOLTPLAN_CATALOG", DefaultCatalogPath),
		StatsPath:    os.Getenv("VOLTPLAN_STATS"),
		FragmentPath: getenv("VOLTPLAN_FRAGMENT", DefaultFragmentPath),
		LogLevel:     getenv("VOLTPLAN_LOG_LEVEL", DefaultLogLevel),
		HostID:       DefaultHostID,
	}
	if v := os.Getenv("VOLTPLAN_COMPRESSED"); v != "" {
		compressed, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.Wrap(err, "VOLTPLAN_COMPRESSED")
		}
		cfg.Compressed = compressed
	}
	if v := os.Getenv("VOLTPLAN_HOST_ID"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return cfg, errors.Wrap(err, "VOLTPLAN_HOST_ID")
		}
		cfg.HostID = uint32(id)
	}
	return cfg, nil
}

func loadCatalog(path string) (*catalog.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog")
	}
	defer f.Close()
	return catalog.LoadDefinition(f)
}

func loadEstimates(path string) (*stats.DatabaseEstimates, error) {
	if path == "" {
		return stats.NewDatabaseEstimates(nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open statistics")
	}
	defer f.Close()
	return stats.LoadEstimates(f)
}

func newRegistrar(db *catalog.Database, est stats.Estimates) (*ops.Registrar, error) {
	return ops.NewRegistrar(map[ops.Selector]ops.AgentFactory{
		ops.SelectorExplain: func() (ops.Agent, error) { return ops.NewExplainAgent(db, est) },
		ops.SelectorCatalog: func() (ops.Agent, error) { return ops.NewCatalogAgent(db) },
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	db, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	est, err := loadEstimates(cfg.StatsPath)
	if err != nil {
		return err
	}
	fragment, err := os.ReadFile(cfg.FragmentPath)
	if err != nil {
		return errors.Wrap(err, "read fragment")
	}

	registrar, err := newRegistrar(db, est)
	if err != nil {
		return err
	}
	defer registrar.Shutdown(context.WithoutCancel(ctx))

	messenger := ops.NewLocalMessenger(cfg.HostID)
	if err := registrar.RegisterMailboxes(messenger); err != nil {
		return err
	}

	req, err := json.Marshal(ops.ExplainRequest{Fragment: fragment, Compressed: cfg.Compressed})
	if err != nil {
		return err
	}
	reply, err := messenger.Send(ctx, ops.SelectorExplain.Address(cfg.HostID), req)
	if err != nil {
		return err
	}
	var resp ops.ExplainResponse
	if err := json.Unmarshal(reply, &resp); err != nil {
		return errors.Wrap(err, "decode explain response")
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}

	fmt.Fprint(out, resp.Plan)
	fmt.Fprintf(out, "estimated output tuples: %d\n", resp.EstimatedOutputTupleCount)
	if !resp.OrderDeterministic {
		fmt.Fprintf(out, "order is nondeterministic: %s\n", resp.NondeterminismDetail)
	}
	return nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}
	logger, err := logutil.NewProduction(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	logutil.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("explaining fragment",
		zap.String("catalog", cfg.CatalogPath),
		zap.String("fragment", cfg.FragmentPath),
		zap.Uint32("host", cfg.HostID))
	if err := run(ctx, cfg, os.Stdout); err != nil {
		logger.Error("explain failed", zap.Error(err))
		stop()
		logger.Sync()
		os.Exit(1)
	}
}
