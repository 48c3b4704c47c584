// Command leaderboard recomputes the daily leaderboards once and exits.
//
// Usage:
//
//	leaderboard [YYYY-MM-DD]
//
// With a date, every category is re-aggregated for that day. Without one it
// performs the same run as the in-process scheduler: yesterday, the day
// before, and the expired preview purge.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/config"
	"github.com/tbourn/phrase-craze-backend/internal/jobs"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
	"github.com/tbourn/phrase-craze-backend/internal/services"
	"github.com/tbourn/phrase-craze-backend/internal/sysutil"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [YYYY-MM-DD]\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		sysutil.ConfigureLogger("info", false, "phrase-craze-leaderboard")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.ConfigureLogger(cfg.LogLevel, cfg.LogPretty, "phrase-craze-leaderboard")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Arg(0)); err != nil {
		log.Fatal().Err(err).Msg("leaderboard refresh failed")
	}
}

func run(ctx context.Context, cfg config.Config, date string) error {
	dsn := cfg.DBPath
	if cfg.DBDriver == "postgres" {
		dsn = cfg.DatabaseURL
	}
	db, err := repo.Open(cfg.DBDriver, dsn)
	if err != nil {
		return err
	}
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}

	clk, err := clock.New(cfg.Game.TimeZone)
	if err != nil {
		return err
	}
	svc := &services.LeaderboardService{DB: db, LaunchDate: cfg.Game.LaunchDate, Limit: cfg.Game.LeaderboardN}

	if date == "" {
		job := &jobs.LeaderboardJob{Leaderboards: svc, DB: db, Clock: clk}
		return job.RunOnce(ctx)
	}

	if _, err := clock.ParseDay(date); err != nil {
		return err
	}
	if err := svc.UpdateAll(ctx, date); err != nil {
		return err
	}
	log.Info().Str("date", date).Msg("leaderboards refreshed")
	return nil
}
