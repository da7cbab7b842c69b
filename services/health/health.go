package health

import (
	"tweet-collector/models/constants"
	repo "tweet-collector/repositories/twitter"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

func New(scheduler gocron.Scheduler, cronTab string, repository repo.Repository) (*Impl, error) {
	service := Impl{repository: repository}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(cronTab, true),
		gocron.NewTask(func() { service.Echo() }),
		gocron.WithName("Check app running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) Echo() {
	stored := service.repository.Count()
	log.Info().
		Int64(constants.LogTweetNumber, stored).
		Msgf("Application is running, %s tweet(s) stored", humanize.Comma(stored))
}
