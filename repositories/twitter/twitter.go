package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tweet-collector/models/constants"
	"tweet-collector/models/entities"
	"tweet-collector/utils/databases"
	"tweet-collector/utils/dates"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saveOutcome int

const (
	outcomeInserted saveOutcome = iota
	outcomeUpdated
	outcomeIgnored
)

var mutableColumns = []string{"text", "retweet_count", "like_count", "raw_data"}

func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case PolicyUpdate, "":
		return PolicyUpdate, nil
	case PolicyIgnore:
		return PolicyIgnore, nil
	default:
		return "", fmt.Errorf("%q: %w", value, ErrUnknownPolicy)
	}
}

func New(db databases.SqlConnection, policy Policy) *Impl {
	return &Impl{db: db, policy: policy}
}

// SaveAll upserts the batch in a single transaction. Each record runs behind
// its own savepoint: a record that fails to serialize or write is rolled
// back, logged and counted, and the batch goes on. Savepoint, context or
// commit failures abort the whole uncommitted batch.
func (repo *Impl) SaveAll(ctx context.Context, tweets []entities.NormalizedTweet) (entities.SaveResult, error) {
	var result entities.SaveResult
	log.Info().Int(constants.LogTweetNumber, len(tweets)).Msg("Storing tweets in database...")

	err := repo.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, tweet := range tweets {
			if err := ctx.Err(); err != nil {
				return err
			}

			savepoint := fmt.Sprintf("tweet_%d", i)
			if err := tx.SavePoint(savepoint).Error; err != nil {
				return fmt.Errorf("failed to create savepoint: %w", err)
			}

			outcome, err := repo.saveOne(tx, tweet)
			if err != nil {
				log.Error().Err(err).Str(constants.LogTweetID, tweet.ID).Msg("Cannot store tweet, ignored")
				result.Failed++
				if errRollback := tx.RollbackTo(savepoint).Error; errRollback != nil {
					return fmt.Errorf("failed to rollback tweet %s: %w", tweet.ID, errRollback)
				}
				continue
			}

			switch outcome {
			case outcomeInserted:
				result.Inserted++
			case outcomeUpdated:
				result.Updated++
			case outcomeIgnored:
				result.Ignored++
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	log.Info().
		Int(constants.LogInserted, result.Inserted).
		Int(constants.LogUpdated, result.Updated).
		Int(constants.LogIgnored, result.Ignored).
		Int(constants.LogFailed, result.Failed).
		Msg("Database operation complete")

	return result, nil
}

func (repo *Impl) saveOne(tx *gorm.DB, tweet entities.NormalizedTweet) (saveOutcome, error) {
	row, err := MapTweetToEntity(tweet)
	if err != nil {
		return 0, err
	}

	var existing int64
	if err := tx.Model(&entities.Tweet{}).Where("id = ?", row.ID).Count(&existing).Error; err != nil {
		return 0, fmt.Errorf("failed to check tweet existence: %w", err)
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(mutableColumns),
	}
	if repo.policy == PolicyIgnore {
		onConflict = clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}
	}

	if err := tx.Clauses(onConflict).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("failed to upsert tweet: %w", err)
	}

	switch {
	case existing == 0:
		return outcomeInserted, nil
	case repo.policy == PolicyIgnore:
		return outcomeIgnored, nil
	default:
		return outcomeUpdated, nil
	}
}

func (repo *Impl) FindByID(id string) (entities.Tweet, error) {
	var tweet entities.Tweet
	result := repo.db.GetDB().Where("id = ?", id).First(&tweet)
	return tweet, result.Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.Tweet{}).Count(count)

	return *count
}

// rawPayload is the JSON stored in raw_data. Timestamps are text so that
// the payload only holds JSON-native values.
type rawPayload struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	CreatedAt       string         `json:"created_at"`
	AuthorUsername  string         `json:"author_username"`
	RetweetCount    int            `json:"retweet_count"`
	LikeCount       int            `json:"like_count"`
	ReplyCount      int            `json:"reply_count"`
	QuoteCount      int            `json:"quote_count"`
	ConversationID  *string        `json:"conversation_id"`
	IsRetweet       bool           `json:"is_retweet"`
	OriginalTweetID *string        `json:"original_tweet_id"`
	RawData         map[string]any `json:"raw_data"`
}

func MapTweetToEntity(tweet entities.NormalizedTweet) (entities.Tweet, error) {
	payload := rawPayload{
		ID:              tweet.ID,
		Text:            tweet.Text,
		CreatedAt:       dates.ToISO8601(tweet.CreatedAt),
		AuthorUsername:  tweet.AuthorUsername,
		RetweetCount:    tweet.RetweetCount,
		LikeCount:       tweet.LikeCount,
		ReplyCount:      tweet.ReplyCount,
		QuoteCount:      tweet.QuoteCount,
		IsRetweet:       tweet.IsRetweet,
		OriginalTweetID: tweet.OriginalTweetID,
		RawData:         tweet.RawData,
	}
	if tweet.ConversationID != "" {
		conversationID := tweet.ConversationID
		payload.ConversationID = &conversationID
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return entities.Tweet{}, fmt.Errorf("failed to serialize tweet %s: %w", tweet.ID, err)
	}

	return entities.Tweet{
		ID:             tweet.ID,
		Text:           tweet.Text,
		AuthorUsername: tweet.AuthorUsername,
		CreatedAt:      tweet.CreatedAt.UTC(),
		RetweetCount:   tweet.RetweetCount,
		LikeCount:      tweet.LikeCount,
		RawData:        datatypes.JSON(raw),
	}, nil
}
