package application

import (
	"context"
	"fmt"
	"time"

	"tweet-collector/models/constants"
	"tweet-collector/models/entities"
	"tweet-collector/pkg/xapi"
	"tweet-collector/pkg/xscraper"
	telegramRepo "tweet-collector/repositories/telegram"
	twitterRepo "tweet-collector/repositories/twitter"
	"tweet-collector/services/health"
	"tweet-collector/services/telegram"
	"tweet-collector/services/twitter"
	"tweet-collector/utils/databases"
	"tweet-collector/utils/insights"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

const apiTimeout = 30 * time.Second

func New(ctx context.Context, config Config) (*Impl, error) {
	db := databases.New(config.DatabaseURL)
	if errDB := db.Run(); errDB != nil {
		return nil, errDB
	}

	errMigration := db.GetDB().AutoMigrate(&entities.Tweet{}, &entities.TelegramUser{})
	if errMigration != nil {
		db.Shutdown()
		return nil, errMigration
	}

	app, err := wire(ctx, config, db)
	if err != nil {
		db.Shutdown()
		return nil, err
	}

	return app, nil
}

func wire(ctx context.Context, config Config, db databases.SqlConnection) (*Impl, error) {
	scheduler, errScheduler := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if errScheduler != nil {
		return nil, errScheduler
	}

	source, errSource := newSource(ctx, config)
	if errSource != nil {
		return nil, errSource
	}

	// Repositories
	tweetRepo := twitterRepo.New(db, config.Policy)

	twitterService, errTwitter := twitter.New(ctx, scheduler, tweetRepo, source, twitter.Options{
		Queries: config.Queries,
		Account: config.Account,
		CronTab: config.FetchCronTab,
	})
	if errTwitter != nil {
		return nil, errTwitter
	}

	app := Impl{
		config:         config,
		scheduler:      scheduler,
		twitterService: twitterService,
		db:             db,
	}

	if config.TelegramBotToken != "" {
		telegramService, errTg := telegram.New(config.TelegramBotToken, telegramRepo.New(db))
		if errTg != nil {
			return nil, errTg
		}
		twitterService.Register(telegramService)
		app.telegramService = telegramService
	}

	if config.Daemon() {
		healthService, errHealth := health.New(scheduler, config.HealthCronTab, tweetRepo)
		if errHealth != nil {
			return nil, errHealth
		}
		app.healthService = healthService

		metrics := insights.NewMetrics()
		twitterService.Register(metrics)
		app.probes = insights.NewProbes(config.ProbePort, db.IsConnected, metrics)
	}

	return &app, nil
}

func newSource(ctx context.Context, config Config) (twitter.Source, error) {
	switch config.Source {
	case constants.SourceScraper:
		source, err := xscraper.New(config.AuthToken, config.CSRFToken)
		if err != nil {
			return nil, fmt.Errorf("cannot create scraper source: %w", err)
		}
		return source, nil
	default:
		client, err := xapi.New(ctx, xapi.Config{
			BaseURL:           config.APIURL,
			BearerToken:       config.BearerToken,
			ConsumerKey:       config.ConsumerKey,
			ConsumerSecret:    config.ConsumerSecret,
			RequestsPerSecond: config.APIRPS,
			Timeout:           apiTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot create API client: %w", err)
		}
		return twitter.NewAPISource(client), nil
	}
}

// Run performs a single fetch cycle, or, with a fetch cron tab, starts the
// scheduled jobs and blocks until ctx is done.
func (app *Impl) Run(ctx context.Context) error {
	if !app.config.Daemon() {
		_, err := app.twitterService.FetchAndSaveTweets(ctx)
		return err
	}

	app.scheduler.Start()
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Str(constants.LogJob, job.Name()).Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	if app.telegramService != nil {
		go func() {
			if err := app.telegramService.ListenAndDispatch(); err != nil {
				log.Error().Err(err).Msg("Telegram bot is not listening")
			}
		}()
	}
	go app.probes.ListenAndServe()

	<-ctx.Done()
	return nil
}

func (app *Impl) Shutdown() {
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	if app.telegramService != nil {
		app.telegramService.Stop()
	}
	if app.probes != nil {
		app.probes.Shutdown()
	}
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
