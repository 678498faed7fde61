package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/craftstats/mclogalyzer/internal/analyzer"
	"github.com/craftstats/mclogalyzer/internal/classify"
	"github.com/craftstats/mclogalyzer/internal/config"
	"github.com/craftstats/mclogalyzer/internal/domain"
	"github.com/craftstats/mclogalyzer/internal/logger"
	"github.com/craftstats/mclogalyzer/internal/report"
	"github.com/craftstats/mclogalyzer/internal/server"
	"github.com/craftstats/mclogalyzer/internal/stats"
	"github.com/craftstats/mclogalyzer/internal/whitelist"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	initLogger(cfg)
	ctx := logger.WithRunID(context.Background(), logger.GenerateRunID())

	if err := run(ctx, cfg); err != nil {
		logger.FromContext(ctx).Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.FromContext(ctx)

	var names []string
	if cfg.Whitelist != "" {
		var err error
		names, err = whitelist.Load(cfg.Whitelist)
		if err != nil {
			return err
		}
		log.Info("loaded whitelist", "file", cfg.Whitelist, "names", len(names))
	}

	classifier, err := classify.New(classify.Options{ChatPattern: cfg.ChatPattern, Logger: log})
	if err != nil {
		return err
	}

	svc := analyzer.NewService(classifier, analyzer.Options{
		Cutoff:    cfg.Cutoff,
		Whitelist: names,
	})
	result, err := svc.Analyze(ctx, cfg.LogDir)
	if err != nil {
		return err
	}

	data := report.Data{
		Users:                 stats.UserViews(result.Users),
		Server:                stats.ServerView{ServerStats: result.Server},
		AchievementsAvailable: domain.AchievementsAvailable,
		LastUpdate:            time.Now().Format("2006-01-02 15:04:05"),
	}
	if err := report.WriteFile(cfg.Output, cfg.Template, data); err != nil {
		return err
	}
	log.Info("report written", "output", cfg.Output, "players", len(result.Users))

	if cfg.ServeAddr != "" {
		return server.New(cfg.ServeAddr, cfg.Output).Start()
	}
	return nil
}
