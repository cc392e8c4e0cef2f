// Package main is the tileset validation tool: it resolves every template,
// tile and variant against the atlas manifest and reports everything that
// does not exist.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/emberfall-mod/emberfall/internal/config"
	"github.com/emberfall-mod/emberfall/internal/engine/atlas"
	"github.com/emberfall-mod/emberfall/internal/engine/terrain"
	"github.com/emberfall-mod/emberfall/internal/engine/tiles"
	"github.com/emberfall-mod/emberfall/internal/logger"
	"github.com/emberfall-mod/emberfall/internal/rules"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("validation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ts, err := terrain.LoadFile(cfg.Data.Tileset)
	if err != nil {
		return err
	}
	logger.Sugar.Infow("tileset loaded",
		"name", ts.TerrainName(),
		"templates", len(ts.TemplateIDs()),
		"grid", ts.Grid.Type.String(),
	)

	provider, err := atlas.LoadFile(cfg.Data.Atlas)
	if err != nil {
		return err
	}

	cache, err := tiles.New(ts, provider)
	if err != nil {
		return err
	}

	report := cache.Report()
	for _, msg := range report.Errors {
		logger.Error(msg)
	}
	total := len(report.Errors)

	if cfg.Data.Rules != "" {
		rs, err := rules.LoadFile(cfg.Data.Rules)
		if err != nil {
			return err
		}
		ruleErrs := rs.Validate()
		for _, msg := range ruleErrs {
			logger.Error(msg)
		}
		logger.Sugar.Infow("rules checked", "entities", len(rs.Names()), "errors", len(ruleErrs))
		total += len(ruleErrs)
	}

	if report.Failed || total > 0 {
		return fmt.Errorf("%d validation errors", total)
	}

	logger.Info("tileset is valid")
	return nil
}
