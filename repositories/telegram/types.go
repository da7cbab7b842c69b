package telegram

import (
	"tweet-collector/models/entities"
	"tweet-collector/utils/databases"
)

// Repository stores the chats subscribed to run reports.
type Repository interface {
	SaveOrUpdate(user entities.TelegramUser) error
	Delete(chatID int64) error
	FetchAll() ([]entities.TelegramUser, error)
}

type Impl struct {
	db databases.SqlConnection
}
