package twitter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tweet-collector/models/constants"
	"tweet-collector/models/entities"
	"tweet-collector/pkg/observer"
	"tweet-collector/pkg/xapi"
	repo "tweet-collector/repositories/twitter"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTweetCount = 5
	userCacheTTL      = 6 * time.Hour
)

// New builds the service. When opts.CronTab is set, a fetch cycle is
// scheduled on it and runs with ctx.
func New(ctx context.Context,
	scheduler gocron.Scheduler,
	repository repo.Repository,
	source Source,
	opts Options) (*Impl, error) {
	service := &Impl{
		source:     source,
		repository: repository,
		queries:    opts.Queries,
		account:    opts.Account,
		users:      cache.New(userCacheTTL, 2*userCacheTTL),
		observers:  map[observer.Observer]struct{}{},
	}

	if opts.CronTab == "" {
		return service, nil
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(opts.CronTab, true),
		gocron.NewTask(func() {
			if _, err := service.FetchAndSaveTweets(ctx); err != nil {
				log.Error().Err(err).Msg("Fetch cycle aborted")
			}
		}),
		gocron.WithName("Fetch tweets"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

func (service *Impl) Register(o observer.Observer) {
	service.observers[o] = struct{}{}
}

func (service *Impl) Notify(e observer.Event) {
	for o := range service.observers {
		o.OnNotify(e)
	}
}

// FetchAndSaveTweets runs one cycle: collect every query, then upsert the
// whole batch. Only a storage-level failure is returned as an error.
func (service *Impl) FetchAndSaveTweets(ctx context.Context) (entities.RunReport, error) {
	report := entities.RunReport{StartedAt: time.Now().UTC()}
	log.Info().Str(constants.LogSource, service.source.Name()).Msg("Start fetching tweets")

	tweets, outcomes := service.Collect(ctx, service.queries)
	report.Outcomes = outcomes
	report.Collected = len(tweets)

	if len(tweets) == 0 {
		log.Info().Msg("No tweets to store")
	} else {
		saved, err := service.repository.SaveAll(ctx, tweets)
		report.Saved = saved
		if err != nil {
			report.FinishedAt = time.Now().UTC()
			return report, fmt.Errorf("failed to store tweets: %w", err)
		}
	}

	report.FinishedAt = time.Now().UTC()
	log.Info().
		Int(constants.LogTweetNumber, report.Collected).
		Int(constants.LogInserted, report.Saved.Inserted).
		Int(constants.LogUpdated, report.Saved.Updated).
		Int(constants.LogIgnored, report.Saved.Ignored).
		Int(constants.LogFailed, report.Saved.Failed).
		Dur(constants.LogDuration, report.FinishedAt.Sub(report.StartedAt)).
		Msgf("Fetch completed, %s tweet(s) collected from %d source(s)",
			humanize.Comma(int64(report.Collected)), len(report.Outcomes))

	service.Notify(observer.NewRunEvent(report))
	return report, nil
}

// Collect runs every query in order. A failing query is logged and recorded
// in its outcome; it never stops the remaining ones.
func (service *Impl) Collect(ctx context.Context, queries []entities.Query) ([]entities.NormalizedTweet, []entities.QueryOutcome) {
	tweets := make([]entities.NormalizedTweet, 0)
	outcomes := make([]entities.QueryOutcome, 0, len(queries))

	for _, query := range queries {
		logger := log.With().
			Str(constants.LogQueryKind, string(query.Kind)).
			Str(constants.LogQuery, query.Value).
			Logger()
		logger.Info().Msg("Reading tweets...")

		fetched, err := service.collectQuery(ctx, query)
		outcomes = append(outcomes, entities.QueryOutcome{Query: query, Fetched: len(fetched), Err: err})

		switch {
		case errors.Is(err, ErrSourceNotFound):
			logger.Warn().Err(err).Msg("Source not found, ignored")
		case err != nil:
			logger.Error().Err(err).Msg("Cannot retrieve tweets, query ignored")
		case len(fetched) == 0:
			logger.Info().Msg("No tweets found")
		default:
			logger.Info().Int(constants.LogTweetNumber, len(fetched)).Msg("Tweets read")
		}

		tweets = append(tweets, fetched...)
	}

	return tweets, outcomes
}

func (service *Impl) collectQuery(ctx context.Context, query entities.Query) ([]entities.NormalizedTweet, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultTweetCount
	}

	origin := Origin{Kind: query.Kind, Value: query.Value, Source: service.source.Name(), Account: service.account}

	var resp xapi.TweetsResponse
	var err error
	switch query.Kind {
	case entities.QueryByHandle:
		resp, err = service.fetchUserTimeline(ctx, query.Value, limit)
	case entities.QueryByKeyword:
		resp, err = service.source.SearchRecent(ctx, query.Value, limit)
	default:
		return nil, fmt.Errorf("%s: %w", query.Kind, ErrUnknownQueryKind)
	}
	if err != nil {
		return nil, err
	}

	tweets := Normalize(resp, origin)
	if len(tweets) > limit {
		tweets = tweets[:limit]
	}

	return tweets, nil
}

func (service *Impl) fetchUserTimeline(ctx context.Context, handle string, limit int) (xapi.TweetsResponse, error) {
	user, err := service.lookupUser(ctx, handle)
	if err != nil {
		return xapi.TweetsResponse{}, err
	}

	log.Debug().
		Str(constants.LogTwitterName, user.Username).
		Str(constants.LogTwitterID, user.ID).
		Msg("User found")

	return service.source.GetUserTimeline(ctx, user, limit)
}

func (service *Impl) lookupUser(ctx context.Context, handle string) (xapi.User, error) {
	key := strings.ToLower(handle)
	if x, found := service.users.Get(key); found {
		return x.(xapi.User), nil
	}

	user, err := service.source.GetUserByUsername(ctx, handle)
	if err != nil {
		if errors.Is(err, xapi.ErrNotFound) || errors.Is(err, xapi.ErrEmptyHandle) {
			return xapi.User{}, fmt.Errorf("@%s: %w", handle, ErrSourceNotFound)
		}
		return xapi.User{}, err
	}

	service.users.SetDefault(key, user)
	return user, nil
}
