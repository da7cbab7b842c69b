package entities

import "time"

// NormalizedTweet is the flat record built by the collector and handed to
// the repository. It is never mutated after construction.
type NormalizedTweet struct {
	ID              string
	Text            string
	AuthorUsername  string
	CreatedAt       time.Time
	RetweetCount    int
	LikeCount       int
	ReplyCount      int
	QuoteCount      int
	ConversationID  string
	IsRetweet       bool
	OriginalTweetID *string
	RawData         map[string]any
}

const (
	RawFetchMethod    = "fetch_method"
	RawSourceUsername = "source_username"
	RawSearchKeyword  = "search_keyword"
	RawLanguage       = "language"
	RawIsMock         = "is_mock"
	RawSource         = "source"
	RawTwitterAccount = "twitter_account"
)
