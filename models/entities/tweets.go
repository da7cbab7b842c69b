package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Tweet is the persisted row. Only the mutable columns are rewritten on
// conflict: text, retweet_count, like_count and raw_data.
type Tweet struct {
	ID             string `gorm:"primaryKey"`
	Text           string
	AuthorUsername string
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	RetweetCount   int
	LikeCount      int
	RawData        datatypes.JSON
}

func (Tweet) TableName() string {
	return "tweets"
}
