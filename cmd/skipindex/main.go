package main

import (
	"flag"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/metailurini/skipindex"
	"github.com/metailurini/skipindex/internal/config"
	"github.com/metailurini/skipindex/internal/shell"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		hclog.Default().Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "skipindex",
		Level:  hclog.LevelFromString(cfg.LogLevel),
		Output: os.Stderr,
	})

	opts := []skipindex.Option{skipindex.WithLockFreeReads(cfg.LockFreeReads)}
	if cfg.Seed != 0 {
		opts = append(opts, skipindex.WithSeed(cfg.Seed))
	}
	idx := skipindex.New[string, string](opts...)

	logger.Info("starting", "store_path", cfg.StorePath, "lock_free_reads", cfg.LockFreeReads)
	if err := shell.New(idx, cfg.StorePath, os.Stdout, logger).Run(os.Stdin); err != nil {
		logger.Error("failed to read commands", "error", err)
		os.Exit(1)
	}
}
