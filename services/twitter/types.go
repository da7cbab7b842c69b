package twitter

import (
	"context"
	"errors"

	"tweet-collector/models/entities"
	"tweet-collector/pkg/observer"
	"tweet-collector/pkg/xapi"
	repo "tweet-collector/repositories/twitter"

	"github.com/patrickmn/go-cache"
)

var (
	ErrSourceNotFound   = errors.New("source not found")
	ErrUnknownQueryKind = errors.New("unknown query kind")
)

// Source is the upstream tweet provider: X API v2 or the scraper.
type Source interface {
	Name() string
	GetUserByUsername(ctx context.Context, username string) (xapi.User, error)
	GetUserTimeline(ctx context.Context, user xapi.User, limit int) (xapi.TweetsResponse, error)
	SearchRecent(ctx context.Context, query string, limit int) (xapi.TweetsResponse, error)
}

type Service interface {
	observer.Notifier
	Collect(ctx context.Context, queries []entities.Query) ([]entities.NormalizedTweet, []entities.QueryOutcome)
	FetchAndSaveTweets(ctx context.Context) (entities.RunReport, error)
}

type Options struct {
	Queries []entities.Query
	// Account stamped into raw_data provenance.
	Account string
	// Empty disables the scheduled job.
	CronTab string
}

type Impl struct {
	source     Source
	repository repo.Repository
	queries    []entities.Query
	account    string
	users      *cache.Cache
	observers  map[observer.Observer]struct{}
}
