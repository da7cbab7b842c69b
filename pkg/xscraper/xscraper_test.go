package xscraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"tweet-collector/pkg/xapi"

	twitterscraper "github.com/n0madic/twitter-scraper"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	ids      map[string]string
	timeline []*twitterscraper.Tweet
	search   []*twitterscraper.Tweet
	calls    []string
}

func (f *fakeScraper) GetUserIDByScreenName(screenName string) (string, error) {
	f.calls = append(f.calls, "lookup:"+screenName)
	id, ok := f.ids[screenName]
	if !ok {
		return "", errors.New("user not found")
	}
	return id, nil
}

func (f *fakeScraper) FetchTweets(user string, maxTweetsNbr int, cursor string) ([]*twitterscraper.Tweet, string, error) {
	f.calls = append(f.calls, "timeline:"+user)
	return f.timeline, "", nil
}

func (f *fakeScraper) FetchSearchTweets(query string, maxTweetsNbr int, cursor string) ([]*twitterscraper.Tweet, string, error) {
	f.calls = append(f.calls, "search:"+query)
	return f.search, "", nil
}

func TestToResponseMapsRetweets(t *testing.T) {
	created := time.Date(2026, time.January, 6, 9, 30, 0, 0, time.UTC)
	original := &twitterscraper.Tweet{ID: "100", Text: "Original statement", UserID: "9", Username: "origin"}
	tweets := []*twitterscraper.Tweet{
		{
			ID:                "1",
			Text:              "RT @origin: Original sta",
			UserID:            "7",
			Username:          "sourceuser",
			ConversationID:    "1",
			TimeParsed:        created,
			Retweets:          4,
			Likes:             2,
			IsRetweet:         true,
			RetweetedStatus:   original,
			RetweetedStatusID: "100",
		},
		{ID: "2", Text: "plain", UserID: "7", Username: "sourceuser", IsReply: true, InReplyToStatusID: "50"},
		nil,
	}

	resp := ToResponse(tweets)

	require.Len(t, resp.Data, 2)
	require.Equal(t, 2, resp.Meta.ResultCount)
	require.Equal(t, []xapi.ReferencedTweet{{Type: "retweeted", ID: "100"}}, resp.Data[0].ReferencedTweets)
	require.Equal(t, []xapi.ReferencedTweet{{Type: "replied_to", ID: "50"}}, resp.Data[1].ReferencedTweets)
	require.Equal(t, created, resp.Data[0].CreatedAt)
	require.Equal(t, 4, resp.Data[0].PublicMetrics.Get("retweet_count"))
	require.Equal(t, 0, resp.Data[0].PublicMetrics.Get("quote_count"))
	require.Equal(t, []xapi.User{{ID: "7", Username: "sourceuser"}}, resp.Includes.Users)
	require.Len(t, resp.Includes.Tweets, 1)
	require.Equal(t, "Original statement", resp.Includes.Tweets[0].Text)
}

func TestSourceLookupAndTimeline(t *testing.T) {
	fake := &fakeScraper{
		ids:      map[string]string{"MariaSTsehai": "42"},
		timeline: []*twitterscraper.Tweet{{ID: "1", Text: "hello", UserID: "42", Username: "MariaSTsehai"}},
	}
	src := &Source{scraper: fake}

	user, err := src.GetUserByUsername(context.Background(), "MariaSTsehai")
	require.NoError(t, err)
	require.Equal(t, "42", user.ID)

	resp, err := src.GetUserTimeline(context.Background(), user, 5)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	require.Equal(t, []string{"lookup:MariaSTsehai", "timeline:MariaSTsehai"}, fake.calls)
}

func TestSourceUnknownHandle(t *testing.T) {
	src := &Source{scraper: &fakeScraper{}}

	_, err := src.GetUserByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, xapi.ErrNotFound)
}

func TestSourceHonoursCancelledContext(t *testing.T) {
	fake := &fakeScraper{}
	src := &Source{scraper: fake}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.SearchRecent(ctx, "golang", 10)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, fake.calls)
}
