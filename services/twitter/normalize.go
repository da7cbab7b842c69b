package twitter

import (
	"fmt"

	"tweet-collector/models/constants"
	"tweet-collector/models/entities"
	"tweet-collector/pkg/xapi"
)

// Origin describes where a page of tweets came from.
type Origin struct {
	Kind    entities.QueryKind
	Value   string
	Source  string
	Account string
}

// Normalize flattens one page into records, in page order.
func Normalize(resp xapi.TweetsResponse, origin Origin) []entities.NormalizedTweet {
	referenced := make(map[string]xapi.Tweet, len(resp.Includes.Tweets))
	for _, tweet := range resp.Includes.Tweets {
		referenced[tweet.ID] = tweet
	}

	users := make(map[string]xapi.User, len(resp.Includes.Users))
	if origin.Kind == entities.QueryByKeyword {
		for _, user := range resp.Includes.Users {
			users[user.ID] = user
		}
	}

	result := make([]entities.NormalizedTweet, 0, len(resp.Data))
	for _, tweet := range resp.Data {
		result = append(result, normalizeTweet(tweet, origin, users, referenced))
	}

	return result
}

func normalizeTweet(tweet xapi.Tweet, origin Origin, users map[string]xapi.User, referenced map[string]xapi.Tweet) entities.NormalizedTweet {
	// The username must be known before a retweet text is rebuilt.
	username := resolveUsername(tweet, origin, users)

	text := tweet.Text
	isRetweet := false
	var originalTweetID *string
	for _, ref := range tweet.ReferencedTweets {
		if ref.Type != xapi.ReferenceRetweeted {
			continue
		}
		id := ref.ID
		isRetweet = true
		originalTweetID = &id
		if original, ok := referenced[ref.ID]; ok {
			text = fmt.Sprintf("RT @%s: %s", username, original.Text)
		}
	}

	return entities.NormalizedTweet{
		ID:              tweet.ID,
		Text:            text,
		AuthorUsername:  username,
		CreatedAt:       tweet.CreatedAt,
		RetweetCount:    tweet.PublicMetrics.Get("retweet_count"),
		LikeCount:       tweet.PublicMetrics.Get("like_count"),
		ReplyCount:      tweet.PublicMetrics.Get("reply_count"),
		QuoteCount:      tweet.PublicMetrics.Get("quote_count"),
		ConversationID:  tweet.ConversationID,
		IsRetweet:       isRetweet,
		OriginalTweetID: originalTweetID,
		RawData:         provenance(tweet, origin),
	}
}

func resolveUsername(tweet xapi.Tweet, origin Origin, users map[string]xapi.User) string {
	if origin.Kind == entities.QueryByHandle && origin.Value != "" {
		return origin.Value
	}
	if author, ok := users[tweet.AuthorID]; ok && author.Username != "" {
		return author.Username
	}
	return constants.UnknownUserPrefix + tweet.AuthorID
}

func provenance(tweet xapi.Tweet, origin Origin) map[string]any {
	method := origin.Kind.FetchMethod()
	raw := map[string]any{
		entities.RawFetchMethod:    method,
		entities.RawLanguage:       tweet.Lang,
		entities.RawIsMock:         false,
		entities.RawSource:         origin.Source + "_" + method,
		entities.RawTwitterAccount: origin.Account,
	}

	if origin.Kind == entities.QueryByHandle {
		raw[entities.RawSourceUsername] = origin.Value
	} else {
		raw[entities.RawSearchKeyword] = origin.Value
	}

	return raw
}
