package twitter

import (
	"context"
	"errors"

	"tweet-collector/models/entities"
	"tweet-collector/utils/databases"
)

// Policy decides what happens when a tweet id is already stored.
type Policy string

const (
	// PolicyUpdate overwrites text, retweet_count, like_count and raw_data.
	// created_at and author_username keep their first-seen values.
	PolicyUpdate Policy = "update"
	// PolicyIgnore leaves stored rows untouched.
	PolicyIgnore Policy = "ignore"
)

var ErrUnknownPolicy = errors.New("unknown upsert policy")

type Repository interface {
	SaveAll(ctx context.Context, tweets []entities.NormalizedTweet) (entities.SaveResult, error)
	FindByID(id string) (entities.Tweet, error)
	Count() int64
}

type Impl struct {
	db     databases.SqlConnection
	policy Policy
}
