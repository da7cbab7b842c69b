package application

import (
	"context"

	"tweet-collector/services/health"
	"tweet-collector/services/telegram"
	"tweet-collector/services/twitter"
	"tweet-collector/utils/databases"
	"tweet-collector/utils/insights"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run(ctx context.Context) error
	Shutdown()
}

type Impl struct {
	config          Config
	scheduler       gocron.Scheduler
	healthService   health.Service
	twitterService  twitter.Service
	telegramService telegram.Service
	db              databases.SqlConnection
	probes          insights.Probes
}
