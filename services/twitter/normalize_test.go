package twitter

import (
	"strings"
	"testing"

	"tweet-collector/models/entities"
	"tweet-collector/pkg/xapi"

	"github.com/stretchr/testify/require"
)

func keywordOrigin(keyword string) Origin {
	return Origin{Kind: entities.QueryByKeyword, Value: keyword, Source: "twitter_api", Account: "@collector"}
}

func TestNormalizeRebuildsRetweetText(t *testing.T) {
	resp := xapi.TweetsResponse{
		Data: []xapi.Tweet{
			{ID: "1", Text: "first", AuthorID: "7", PublicMetrics: xapi.PublicMetrics{"retweet_count": 1, "like_count": 2}},
			{
				ID:               "2",
				Text:             "RT @origin: Original sta…",
				AuthorID:         "7",
				ReferencedTweets: []xapi.ReferencedTweet{{Type: "retweeted", ID: "100"}},
			},
			{ID: "3", Text: "third", AuthorID: "8"},
		},
		Includes: xapi.Includes{
			Users:  []xapi.User{{ID: "7", Username: "sourceuser"}, {ID: "8", Username: "other"}},
			Tweets: []xapi.Tweet{{ID: "100", Text: "Original statement", AuthorID: "9"}},
		},
	}

	tweets := Normalize(resp, keywordOrigin("Samia Suluhu Hassan"))

	require.Len(t, tweets, 3)
	require.Equal(t, []string{"1", "2", "3"}, []string{tweets[0].ID, tweets[1].ID, tweets[2].ID})

	retweet := tweets[1]
	require.True(t, retweet.IsRetweet)
	require.Equal(t, "RT @sourceuser: Original statement", retweet.Text)
	require.NotNil(t, retweet.OriginalTweetID)
	require.Equal(t, "100", *retweet.OriginalTweetID)
	require.True(t, strings.HasPrefix(retweet.Text, "RT @"))

	for _, tweet := range []entities.NormalizedTweet{tweets[0], tweets[2]} {
		require.False(t, tweet.IsRetweet)
		require.Nil(t, tweet.OriginalTweetID)
	}
	require.Equal(t, "other", tweets[2].AuthorUsername)
}

func TestNormalizeKeepsTruncatedTextWhenOriginalMissing(t *testing.T) {
	resp := xapi.TweetsResponse{
		Data: []xapi.Tweet{{
			ID:               "2",
			Text:             "RT @origin: Original sta…",
			AuthorID:         "7",
			ReferencedTweets: []xapi.ReferencedTweet{{Type: "retweeted", ID: "100"}},
		}},
	}

	tweets := Normalize(resp, keywordOrigin("golang"))

	require.True(t, tweets[0].IsRetweet)
	require.Equal(t, "100", *tweets[0].OriginalTweetID)
	require.Equal(t, "RT @origin: Original sta…", tweets[0].Text)
}

func TestNormalizeFallsBackToPlaceholderUsername(t *testing.T) {
	resp := xapi.TweetsResponse{Data: []xapi.Tweet{{ID: "1", Text: "hello", AuthorID: "999"}}}

	tweets := Normalize(resp, keywordOrigin("golang"))

	require.Equal(t, "user_999", tweets[0].AuthorUsername)
}

func TestNormalizeDefaultsMissingMetrics(t *testing.T) {
	resp := xapi.TweetsResponse{Data: []xapi.Tweet{{
		ID:            "1",
		Text:          "hello",
		AuthorID:      "7",
		PublicMetrics: xapi.PublicMetrics{"retweet_count": 4, "like_count": 8, "quote_count": 1},
	}}}

	tweets := Normalize(resp, keywordOrigin("golang"))

	require.Equal(t, 0, tweets[0].ReplyCount)
	require.Equal(t, 1, tweets[0].QuoteCount)
	require.Equal(t, 4, tweets[0].RetweetCount)
	require.Equal(t, 8, tweets[0].LikeCount)
}

func TestNormalizeUsesHandleForTimeline(t *testing.T) {
	resp := xapi.TweetsResponse{
		Data: []xapi.Tweet{{
			ID:               "1",
			Text:             "RT @someone: trunc…",
			AuthorID:         "42",
			Lang:             "sw",
			ConversationID:   "1",
			ReferencedTweets: []xapi.ReferencedTweet{{Type: "retweeted", ID: "100"}},
		}},
		Includes: xapi.Includes{
			Users:  []xapi.User{{ID: "42", Username: "ignored"}},
			Tweets: []xapi.Tweet{{ID: "100", Text: "full original"}},
		},
	}

	tweets := Normalize(resp, Origin{Kind: entities.QueryByHandle, Value: "MariaSTsehai", Source: "twitter_api", Account: "@collector"})

	tweet := tweets[0]
	require.Equal(t, "MariaSTsehai", tweet.AuthorUsername)
	require.Equal(t, "RT @MariaSTsehai: full original", tweet.Text)
	require.Equal(t, "1", tweet.ConversationID)
	require.Equal(t, map[string]any{
		entities.RawFetchMethod:    "user_timeline",
		entities.RawSourceUsername: "MariaSTsehai",
		entities.RawLanguage:       "sw",
		entities.RawIsMock:         false,
		entities.RawSource:         "twitter_api_user_timeline",
		entities.RawTwitterAccount: "@collector",
	}, tweet.RawData)
}

func TestNormalizeRetweetWinsOverOtherReferences(t *testing.T) {
	resp := xapi.TweetsResponse{
		Data: []xapi.Tweet{{
			ID:       "1",
			Text:     "trunc…",
			AuthorID: "7",
			ReferencedTweets: []xapi.ReferencedTweet{
				{Type: "replied_to", ID: "50"},
				{Type: "retweeted", ID: "100"},
				{Type: "quoted", ID: "60"},
				{Type: "retweeted", ID: "101"},
			},
		}},
		Includes: xapi.Includes{Tweets: []xapi.Tweet{{ID: "100", Text: "first original"}}},
	}

	tweets := Normalize(resp, keywordOrigin("golang"))

	require.True(t, tweets[0].IsRetweet)
	require.Equal(t, "101", *tweets[0].OriginalTweetID)
	require.Equal(t, "RT @user_7: first original", tweets[0].Text)
}

func TestNormalizeEmptyResponse(t *testing.T) {
	require.Empty(t, Normalize(xapi.TweetsResponse{}, keywordOrigin("nothing")))
}
