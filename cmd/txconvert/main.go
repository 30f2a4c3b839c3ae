package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wavesplatform/gowaves-transactions/pkg/logging"
)

func main() {
	cfg := new(config)
	if err := cfg.parse(afero.NewOsFs(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger, _ := zap.NewDevelopment()
		logger.Sugar().Fatalf("Invalid configuration: %v", err)
	}
	logger, log, err := logging.SetupLogger(os.Stderr, cfg.logLevel, cfg.logFilter)
	if err != nil {
		zap.S().Fatalf("Failed to setup logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Debugf("Converting %d input(s) from %s to %s", len(cfg.inputs), cfg.from, cfg.to)
	if err := newConverter(cfg, logger).run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Errorf("Conversion failed: %v", err)
		cancel()
		_ = logger.Sync()
		os.Exit(1)
	}
}
