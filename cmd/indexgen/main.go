// Package main is the entry point for the index generator.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/edusite/indexgen/internal/config"
	"github.com/edusite/indexgen/internal/generate"
	"github.com/edusite/indexgen/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "indexgen: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "indexgen: create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("indexgen - static index generator",
		zap.String("root", cfg.Root),
		zap.String("mode", cfg.Mode),
		zap.String("base_url", cfg.BaseURL))
	if cfg.ConfigFilePath() != "" {
		logger.Info("config loaded", zap.String("file", cfg.ConfigFilePath()))
	}

	gen, err := generate.New(cfg, logger)
	if err != nil {
		logger.Fatal("setup failed", zap.Error(err))
	}

	if err := gen.Run(); err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}

	if !cfg.Watch {
		return
	}

	w, err := watcher.New(cfg, gen.Root(), logger)
	if err != nil {
		logger.Fatal("create watcher", zap.Error(err))
	}
	w.OnChange(func() {
		if err := gen.Run(); err != nil {
			logger.Error("regeneration failed", zap.Error(err))
		}
	})
	if err := w.Start(); err != nil {
		logger.Fatal("start watcher", zap.Error(err))
	}
	defer func() { _ = w.Stop() }()

	logger.Info("watching for changes, interrupt to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info("stopping")
}
