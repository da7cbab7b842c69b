package twitter

import (
	"context"

	"tweet-collector/pkg/xapi"
)

type APISource struct {
	client *xapi.Client
}

func NewAPISource(client *xapi.Client) *APISource {
	return &APISource{client: client}
}

func (s *APISource) Name() string {
	return "twitter_api"
}

func (s *APISource) GetUserByUsername(ctx context.Context, username string) (xapi.User, error) {
	return s.client.GetUserByUsername(ctx, username)
}

func (s *APISource) GetUserTimeline(ctx context.Context, user xapi.User, limit int) (xapi.TweetsResponse, error) {
	return s.client.GetUserTweets(ctx, user.ID, xapi.TimelineParams{
		MaxResults:  limit,
		TweetFields: xapi.DefaultTweetFields,
		Expansions:  []string{xapi.ExpansionReferencedTweets},
	})
}

func (s *APISource) SearchRecent(ctx context.Context, query string, limit int) (xapi.TweetsResponse, error) {
	return s.client.SearchRecent(ctx, query, xapi.SearchParams{
		MaxResults:  limit,
		TweetFields: xapi.DefaultTweetFields,
		Expansions:  []string{xapi.ExpansionAuthor, xapi.ExpansionReferencedTweets},
		UserFields:  xapi.DefaultUserFields,
	})
}
