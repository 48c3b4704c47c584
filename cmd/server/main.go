// Command server runs the Phrase Craze HTTP API.
//
// @title           Phrase Craze API
// @version         1.0
// @description     Daily phrase-writing challenges, scoring, voting, streaks and leaderboards.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/config"
	httpapi "github.com/tbourn/phrase-craze-backend/internal/http"
	"github.com/tbourn/phrase-craze-backend/internal/jobs"
	"github.com/tbourn/phrase-craze-backend/internal/observability"
	"github.com/tbourn/phrase-craze-backend/internal/oracle"
	"github.com/tbourn/phrase-craze-backend/internal/preview"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
	"github.com/tbourn/phrase-craze-backend/internal/services"
	"github.com/tbourn/phrase-craze-backend/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	_ = godotenv.Load() // .env is optional

	cfg, err := config.Load()
	if err != nil {
		sysutil.ConfigureLogger("info", false, "phrase-craze")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.ConfigureLogger(cfg.LogLevel, cfg.LogPretty, "phrase-craze")
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version,
		attribute.String("game.timezone", cfg.Game.TimeZone))
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DBDriver, dataSource(cfg))
	if err != nil {
		return err
	}
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}

	gem, err := oracle.NewGemini(ctx, cfg.Oracle.APIKey, cfg.Oracle.Model, cfg.Oracle.Timeout)
	if err != nil {
		return err
	}
	defer gem.Close()

	var previews preview.Store
	if cfg.Redis.Addr != "" {
		store, rdb, err := preview.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		previews = store
		log.Info().Str("addr", cfg.Redis.Addr).Msg("preview markers cached in redis")
	}

	clk, err := clock.New(cfg.Game.TimeZone)
	if err != nil {
		return err
	}

	r := gin.New()
	if err := httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:       db,
		Oracle:   gem,
		Previews: previews,
		Clock:    clk,
	}, cfg); err != nil {
		return err
	}

	if cfg.Scheduler.Enabled {
		hour, minute, err := config.ParseRunAt(cfg.Scheduler.RunAt)
		if err != nil {
			return err
		}
		job := &jobs.LeaderboardJob{
			Leaderboards: &services.LeaderboardService{DB: db, LaunchDate: cfg.Game.LaunchDate, Limit: cfg.Game.LeaderboardN},
			DB:           db,
			Clock:        clk,
			Hour:         hour,
			Minute:       minute,
		}
		go job.Run(ctx)

		// SIGHUP forces an immediate refresh.
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-hup:
					if !job.Trigger() {
						log.Warn().Msg("leaderboard job busy, refresh skipped")
					}
				}
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// dataSource picks the DSN matching the configured driver.
func dataSource(cfg config.Config) string {
	if cfg.DBDriver == "postgres" {
		return cfg.DatabaseURL
	}
	return cfg.DBPath
}
