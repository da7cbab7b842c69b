package twitter

import (
	"context"
	"errors"
	"testing"

	"tweet-collector/models/entities"
	"tweet-collector/pkg/observer"
	"tweet-collector/pkg/xapi"
	repo "tweet-collector/repositories/twitter"
	"tweet-collector/utils/databases"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	users    map[string]xapi.User
	timeline map[string]xapi.TweetsResponse
	search   map[string]xapi.TweetsResponse
	errs     map[string]error
	lookups  int
}

func (f *fakeSource) Name() string { return "twitter_api" }

func (f *fakeSource) GetUserByUsername(ctx context.Context, username string) (xapi.User, error) {
	f.lookups++
	user, ok := f.users[username]
	if !ok {
		return xapi.User{}, xapi.ErrNotFound
	}
	return user, nil
}

func (f *fakeSource) GetUserTimeline(ctx context.Context, user xapi.User, limit int) (xapi.TweetsResponse, error) {
	if err := f.errs[user.Username]; err != nil {
		return xapi.TweetsResponse{}, err
	}
	return f.timeline[user.ID], nil
}

func (f *fakeSource) SearchRecent(ctx context.Context, query string, limit int) (xapi.TweetsResponse, error) {
	if err := f.errs[query]; err != nil {
		return xapi.TweetsResponse{}, err
	}
	return f.search[query], nil
}

type fakeRepository struct {
	saved  [][]entities.NormalizedTweet
	result entities.SaveResult
	err    error
}

func (f *fakeRepository) SaveAll(ctx context.Context, tweets []entities.NormalizedTweet) (entities.SaveResult, error) {
	f.saved = append(f.saved, tweets)
	return f.result, f.err
}

func (f *fakeRepository) FindByID(id string) (entities.Tweet, error) { return entities.Tweet{}, nil }

func (f *fakeRepository) Count() int64 { return 0 }

type recordingObserver struct {
	events []observer.Event
}

func (r *recordingObserver) OnNotify(e observer.Event) {
	r.events = append(r.events, e)
}

func samiaSearch() xapi.TweetsResponse {
	return xapi.TweetsResponse{
		Data: []xapi.Tweet{
			{ID: "11", Text: "Mama Samia", AuthorID: "7", PublicMetrics: xapi.PublicMetrics{"retweet_count": 1, "like_count": 3}},
			{ID: "12", Text: "RT @origin: Original sta…", AuthorID: "7", ReferencedTweets: []xapi.ReferencedTweet{{Type: "retweeted", ID: "100"}}},
			{ID: "13", Text: "Tanzania", AuthorID: "8"},
		},
		Includes: xapi.Includes{
			Users:  []xapi.User{{ID: "7", Username: "sourceuser"}},
			Tweets: []xapi.Tweet{{ID: "100", Text: "Original statement", AuthorID: "9"}},
		},
	}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		users: map[string]xapi.User{"MariaSTsehai": {ID: "42", Username: "MariaSTsehai"}},
		timeline: map[string]xapi.TweetsResponse{
			"42": {Data: []xapi.Tweet{{ID: "1", Text: "timeline one", AuthorID: "42"}, {ID: "2", Text: "timeline two", AuthorID: "42"}}},
		},
		search: map[string]xapi.TweetsResponse{"Samia Suluhu Hassan": samiaSearch()},
		errs:   map[string]error{},
	}
}

func newTestService(t *testing.T, source Source, repository repo.Repository, queries []entities.Query) *Impl {
	t.Helper()
	service, err := New(context.Background(), nil, repository, source, Options{Queries: queries, Account: "@collector"})
	require.NoError(t, err)
	return service
}

func TestCollectKeywordScenario(t *testing.T) {
	service := newTestService(t, newFakeSource(), &fakeRepository{}, nil)

	tweets, outcomes := service.Collect(context.Background(), []entities.Query{
		{Kind: entities.QueryByKeyword, Value: "Samia Suluhu Hassan", Limit: 5},
	})

	require.Len(t, tweets, 3)
	require.Equal(t, "RT @sourceuser: Original statement", tweets[1].Text)
	require.Equal(t, "user_8", tweets[2].AuthorUsername)
	require.Equal(t, []entities.QueryOutcome{{Query: entities.Query{Kind: entities.QueryByKeyword, Value: "Samia Suluhu Hassan", Limit: 5}, Fetched: 3}}, outcomes)
}

func TestCollectContinuesAfterFailingQueries(t *testing.T) {
	source := newFakeSource()
	source.errs["broken"] = &xapi.APIError{StatusCode: 503, Title: "Service Unavailable"}
	service := newTestService(t, source, &fakeRepository{}, nil)

	tweets, outcomes := service.Collect(context.Background(), []entities.Query{
		{Kind: entities.QueryByHandle, Value: "ghost", Limit: 5},
		{Kind: entities.QueryByHandle, Value: "MariaSTsehai", Limit: 5},
		{Kind: entities.QueryByKeyword, Value: "broken", Limit: 5},
		{Kind: entities.QueryByKeyword, Value: "nothing matches", Limit: 5},
		{Kind: entities.QueryByKeyword, Value: "Samia Suluhu Hassan", Limit: 5},
		{Kind: "by-hashtag", Value: "tz", Limit: 5},
	})

	ids := make([]string, 0, len(tweets))
	for _, tweet := range tweets {
		ids = append(ids, tweet.ID)
	}
	require.Equal(t, []string{"1", "2", "11", "12", "13"}, ids)
	require.Equal(t, "MariaSTsehai", tweets[0].AuthorUsername)
	require.Equal(t, "user_timeline", tweets[0].RawData[entities.RawFetchMethod])

	require.Len(t, outcomes, 6)
	require.ErrorIs(t, outcomes[0].Err, ErrSourceNotFound)
	require.NoError(t, outcomes[1].Err)
	var apiErr *xapi.APIError
	require.True(t, errors.As(outcomes[2].Err, &apiErr))
	require.NoError(t, outcomes[3].Err)
	require.Zero(t, outcomes[3].Fetched)
	require.Equal(t, 3, outcomes[4].Fetched)
	require.ErrorIs(t, outcomes[5].Err, ErrUnknownQueryKind)
}

func TestCollectTrimsToLimit(t *testing.T) {
	service := newTestService(t, newFakeSource(), &fakeRepository{}, nil)

	tweets, outcomes := service.Collect(context.Background(), []entities.Query{
		{Kind: entities.QueryByKeyword, Value: "Samia Suluhu Hassan", Limit: 2},
	})

	require.Len(t, tweets, 2)
	require.Equal(t, 2, outcomes[0].Fetched)
}

func TestCollectCachesUserLookups(t *testing.T) {
	source := newFakeSource()
	service := newTestService(t, source, &fakeRepository{}, nil)
	queries := []entities.Query{{Kind: entities.QueryByHandle, Value: "MariaSTsehai"}}

	service.Collect(context.Background(), queries)
	service.Collect(context.Background(), queries)

	require.Equal(t, 1, source.lookups)
}

func TestFetchAndSaveTweetsNotifiesObservers(t *testing.T) {
	repository := &fakeRepository{result: entities.SaveResult{Inserted: 3}}
	service := newTestService(t, newFakeSource(), repository, []entities.Query{
		{Kind: entities.QueryByHandle, Value: "ghost", Limit: 5},
		{Kind: entities.QueryByKeyword, Value: "Samia Suluhu Hassan", Limit: 5},
	})
	obs := &recordingObserver{}
	service.Register(obs)

	report, err := service.FetchAndSaveTweets(context.Background())
	require.NoError(t, err)

	require.Len(t, repository.saved, 1)
	require.Len(t, repository.saved[0], 3)
	require.Equal(t, 3, report.Collected)
	require.Equal(t, 1, report.FailedQueries())
	require.Equal(t, entities.SaveResult{Inserted: 3}, report.Saved)
	require.False(t, report.FinishedAt.Before(report.StartedAt))

	require.Len(t, obs.events, 1)
	require.Equal(t, observer.RunCompletedEvent, obs.events[0].E)
	require.Equal(t, report.Collected, obs.events[0].Report.Collected)
}

func TestFetchAndSaveTweetsSkipsStorageWhenNothingCollected(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(t, newFakeSource(), repository, []entities.Query{
		{Kind: entities.QueryByKeyword, Value: "nothing matches", Limit: 5},
	})

	report, err := service.FetchAndSaveTweets(context.Background())
	require.NoError(t, err)
	require.Zero(t, report.Collected)
	require.Empty(t, repository.saved)
}

func TestFetchAndSaveTweetsSurfacesStorageFailure(t *testing.T) {
	errConn := errors.New("connection reset")
	repository := &fakeRepository{err: errConn}
	service := newTestService(t, newFakeSource(), repository, []entities.Query{
		{Kind: entities.QueryByKeyword, Value: "Samia Suluhu Hassan", Limit: 5},
	})
	obs := &recordingObserver{}
	service.Register(obs)

	_, err := service.FetchAndSaveTweets(context.Background())
	require.ErrorIs(t, err, errConn)
	require.Empty(t, obs.events)
}

func TestFetchAndSaveTweetsTwiceIsIdempotent(t *testing.T) {
	conn := databases.New(":memory:")
	require.NoError(t, conn.Run())
	t.Cleanup(conn.Shutdown)
	require.NoError(t, conn.GetDB().AutoMigrate(&entities.Tweet{}))
	repository := repo.New(conn, repo.PolicyUpdate)

	service := newTestService(t, newFakeSource(), repository, []entities.Query{
		{Kind: entities.QueryByHandle, Value: "MariaSTsehai", Limit: 5},
		{Kind: entities.QueryByKeyword, Value: "Samia Suluhu Hassan", Limit: 5},
	})

	first, err := service.FetchAndSaveTweets(context.Background())
	require.NoError(t, err)
	require.Equal(t, entities.SaveResult{Inserted: 5}, first.Saved)

	second, err := service.FetchAndSaveTweets(context.Background())
	require.NoError(t, err)
	require.Equal(t, entities.SaveResult{Updated: 5}, second.Saved)
	require.Equal(t, int64(5), repository.Count())

	row, err := repository.FindByID("12")
	require.NoError(t, err)
	require.Equal(t, "RT @sourceuser: Original statement", row.Text)
}

func TestNewSchedulesFetchJob(t *testing.T) {
	scheduler, err := gocron.NewScheduler()
	require.NoError(t, err)
	t.Cleanup(func() { _ = scheduler.Shutdown() })

	_, err = New(context.Background(), scheduler, &fakeRepository{}, newFakeSource(), Options{CronTab: "*/15 * * * *"})
	require.NoError(t, err)
	require.Len(t, scheduler.Jobs(), 1)
	require.Equal(t, "Fetch tweets", scheduler.Jobs()[0].Name())

	_, err = New(context.Background(), scheduler, &fakeRepository{}, newFakeSource(), Options{CronTab: "not a cron"})
	require.Error(t, err)
}
