package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"giata_content/internal/adapters/giata"
	"giata_content/internal/adapters/observability"
	redisad "giata_content/internal/adapters/redis"
	"giata_content/internal/app"
	"giata_content/internal/shared"
	mysqlrepo "giata_content/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "definitions-importer")

	observability.Serve()

	log.Info().
		Str("feed", cfg.DefinitionsURL).
		Str("schedule", cfg.CronSchedule).
		Msg("definitions importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	client := giata.NewClient(cfg.FetchRPS)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pipe := app.NewDefinitionsPipeline(client, repo, cache)

	run := func() {
		if err := pipe.Run(ctx, cfg.DefinitionsURL); err != nil {
			log.Error().Err(err).Msg("definitions import failed")
			return
		}
		log.Info().Msg("definitions import completed")
	}

	if cfg.CronSchedule == "" {
		run()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.CronSchedule, run); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.CronSchedule).Msg("invalid cron schedule")
	}
	log.Info().Str("schedule", cfg.CronSchedule).Msg("running on schedule")
	c.Run()
}
