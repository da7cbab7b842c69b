package xapi

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound     = errors.New("x api resource not found")
	ErrEmptyHandle  = errors.New("x api handle is empty")
	ErrMissingCreds = errors.New("x api credentials are missing")
)

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Verified bool   `json:"verified"`
}

type ReferencedTweet struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// PublicMetrics is kept as a bag: the API omits counters it does not
// compute, and a missing key must read as zero.
type PublicMetrics map[string]int

func (m PublicMetrics) Get(key string) int {
	return m[key]
}

type Tweet struct {
	ID               string            `json:"id"`
	Text             string            `json:"text"`
	AuthorID         string            `json:"author_id,omitempty"`
	ConversationID   string            `json:"conversation_id,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Lang             string            `json:"lang,omitempty"`
	InReplyToUserID  string            `json:"in_reply_to_user_id,omitempty"`
	PublicMetrics    PublicMetrics     `json:"public_metrics,omitempty"`
	ReferencedTweets []ReferencedTweet `json:"referenced_tweets,omitempty"`
}

type Includes struct {
	Users  []User  `json:"users,omitempty"`
	Tweets []Tweet `json:"tweets,omitempty"`
}

type Meta struct {
	ResultCount int    `json:"result_count"`
	NewestID    string `json:"newest_id,omitempty"`
	OldestID    string `json:"oldest_id,omitempty"`
	NextToken   string `json:"next_token,omitempty"`
}

type Problem struct {
	Title        string `json:"title"`
	Detail       string `json:"detail"`
	Type         string `json:"type"`
	ResourceType string `json:"resource_type,omitempty"`
	Value        string `json:"value,omitempty"`
}

func (p Problem) isNotFound() bool {
	return strings.HasSuffix(p.Type, "/resource-not-found") || p.Title == "Not Found Error"
}

// TweetsResponse is one page of tweets plus the side-loaded entities
// requested through expansions.
type TweetsResponse struct {
	Data     []Tweet   `json:"data"`
	Includes Includes  `json:"includes"`
	Meta     Meta      `json:"meta"`
	Errors   []Problem `json:"errors,omitempty"`
}

type userResponse struct {
	Data   *User     `json:"data"`
	Errors []Problem `json:"errors,omitempty"`
}

// APIError is returned for non-2xx responses that are not a not-found.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("x api status %d: %s: %s", e.StatusCode, e.Title, e.Detail)
	}
	return fmt.Sprintf("x api status %d: %s", e.StatusCode, e.Title)
}

// TimelineParams and SearchParams carry what the collector asks for on
// each call.
type TimelineParams struct {
	MaxResults  int
	TweetFields []string
	Expansions  []string
}

type SearchParams struct {
	MaxResults  int
	TweetFields []string
	Expansions  []string
	UserFields  []string
}

var (
	DefaultTweetFields = []string{
		"created_at",
		"public_metrics",
		"lang",
		"author_id",
		"conversation_id",
		"referenced_tweets",
		"in_reply_to_user_id",
	}
	DefaultUserFields = []string{"id", "name", "username", "verified", "public_metrics"}
)

const (
	ReferenceRetweeted = "retweeted"
	ReferenceQuoted    = "quoted"
	ReferenceRepliedTo = "replied_to"

	ExpansionReferencedTweets = "referenced_tweets.id"
	ExpansionAuthor           = "author_id"
)
