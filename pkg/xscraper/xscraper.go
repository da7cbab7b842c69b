package xscraper

import (
	"context"
	"errors"
	"fmt"

	"tweet-collector/pkg/xapi"

	twitterscraper "github.com/n0madic/twitter-scraper"
)

var ErrNotLoggedIn = errors.New("twitter scraper is not logged in")

// scraper is the subset of *twitterscraper.Scraper used here.
type scraper interface {
	GetUserIDByScreenName(screenName string) (string, error)
	FetchTweets(user string, maxTweetsNbr int, cursor string) ([]*twitterscraper.Tweet, string, error)
	FetchSearchTweets(query string, maxTweetsNbr int, cursor string) ([]*twitterscraper.Tweet, string, error)
}

// Source fetches tweets through the web scraper and returns them in the
// X API v2 page shape, so the collector normalizes both sources alike.
type Source struct {
	scraper scraper
}

func New(authToken, csrfToken string) (*Source, error) {
	s := twitterscraper.New()
	s.SetSearchMode(twitterscraper.SearchLatest)
	s.SetAuthToken(twitterscraper.AuthToken{Token: authToken, CSRFToken: csrfToken})
	if !s.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}

	return &Source{scraper: s}, nil
}

func (s *Source) Name() string {
	return "twitter_scraper"
}

func (s *Source) GetUserByUsername(ctx context.Context, username string) (xapi.User, error) {
	if err := ctx.Err(); err != nil {
		return xapi.User{}, err
	}
	if username == "" {
		return xapi.User{}, xapi.ErrEmptyHandle
	}

	id, err := s.scraper.GetUserIDByScreenName(username)
	if err != nil {
		return xapi.User{}, fmt.Errorf("%s: %w: %v", username, xapi.ErrNotFound, err)
	}

	return xapi.User{ID: id, Username: username}, nil
}

func (s *Source) GetUserTimeline(ctx context.Context, user xapi.User, limit int) (xapi.TweetsResponse, error) {
	if err := ctx.Err(); err != nil {
		return xapi.TweetsResponse{}, err
	}

	tweets, _, err := s.scraper.FetchTweets(user.Username, limit, "")
	if err != nil {
		return xapi.TweetsResponse{}, err
	}

	return ToResponse(tweets), nil
}

func (s *Source) SearchRecent(ctx context.Context, query string, limit int) (xapi.TweetsResponse, error) {
	if err := ctx.Err(); err != nil {
		return xapi.TweetsResponse{}, err
	}

	tweets, _, err := s.scraper.FetchSearchTweets(query, limit, "")
	if err != nil {
		return xapi.TweetsResponse{}, err
	}

	return ToResponse(tweets), nil
}

// ToResponse maps scraped tweets onto a v2 page: nested statuses become
// references, retweeted originals are side-loaded, authors become users.
func ToResponse(tweets []*twitterscraper.Tweet) xapi.TweetsResponse {
	resp := xapi.TweetsResponse{Data: make([]xapi.Tweet, 0, len(tweets))}
	seenUsers := map[string]struct{}{}
	seenTweets := map[string]struct{}{}

	addUser := func(t *twitterscraper.Tweet) {
		if t.UserID == "" || t.Username == "" {
			return
		}
		if _, ok := seenUsers[t.UserID]; ok {
			return
		}
		seenUsers[t.UserID] = struct{}{}
		resp.Includes.Users = append(resp.Includes.Users, xapi.User{ID: t.UserID, Name: t.Name, Username: t.Username})
	}

	for _, t := range tweets {
		if t == nil {
			continue
		}
		resp.Data = append(resp.Data, mapTweet(t))
		addUser(t)

		if t.RetweetedStatus != nil {
			if _, ok := seenTweets[t.RetweetedStatus.ID]; !ok {
				seenTweets[t.RetweetedStatus.ID] = struct{}{}
				resp.Includes.Tweets = append(resp.Includes.Tweets, mapTweet(t.RetweetedStatus))
			}
		}
	}

	resp.Meta.ResultCount = len(resp.Data)
	return resp
}

func mapTweet(t *twitterscraper.Tweet) xapi.Tweet {
	tweet := xapi.Tweet{
		ID:             t.ID,
		Text:           t.Text,
		AuthorID:       t.UserID,
		ConversationID: t.ConversationID,
		CreatedAt:      t.TimeParsed,
		PublicMetrics: xapi.PublicMetrics{
			"retweet_count": t.Retweets,
			"like_count":    t.Likes,
			"reply_count":   t.Replies,
		},
	}

	if t.IsReply && t.InReplyToStatusID != "" {
		tweet.ReferencedTweets = append(tweet.ReferencedTweets, xapi.ReferencedTweet{Type: xapi.ReferenceRepliedTo, ID: t.InReplyToStatusID})
	}
	if t.IsQuoted && t.QuotedStatusID != "" {
		tweet.ReferencedTweets = append(tweet.ReferencedTweets, xapi.ReferencedTweet{Type: xapi.ReferenceQuoted, ID: t.QuotedStatusID})
	}

	retweetedID := t.RetweetedStatusID
	if retweetedID == "" && t.RetweetedStatus != nil {
		retweetedID = t.RetweetedStatus.ID
	}
	if retweetedID != "" {
		tweet.ReferencedTweets = append(tweet.ReferencedTweets, xapi.ReferencedTweet{Type: xapi.ReferenceRetweeted, ID: retweetedID})
	}

	return tweet
}
