package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/segyhp/loan-amortizer/internal/config"
	"github.com/segyhp/loan-amortizer/internal/repository"
	"github.com/segyhp/loan-amortizer/internal/service"
	"github.com/segyhp/loan-amortizer/pkg/logger"

	"github.com/robfig/cron/v3"
)

const purgeTimeout = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logger.Setup(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	log.Info().Msg("starting quote scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	// purging never touches the cache; cached quotes expire on their own TTL
	scheduleService := service.NewScheduleService(repository.NewQuoteRepository(db), nil, cfg)

	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.Location()))
	if err := setupCronJobs(c, cfg, scheduleService); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule jobs")
	}

	c.Start()
	log.Info().Msg("scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down scheduler")
	<-c.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, svc *service.ScheduleService) error {
	_, err := c.AddFunc(cfg.Scheduler.QuotePurgeSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()

		if _, err := svc.PurgeExpiredQuotes(ctx); err != nil {
			log.Error().Err(err).Msg("quote purge failed")
		}
	})
	if err != nil {
		return err
	}

	log.Info().Str("schedule", cfg.Scheduler.QuotePurgeSchedule).Msg("quote purge job scheduled")
	return nil
}
