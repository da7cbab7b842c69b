package telegram

import (
	"fmt"

	"tweet-collector/models/entities"
	"tweet-collector/utils/databases"

	"gorm.io/gorm/clause"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) FetchAll() ([]entities.TelegramUser, error) {
	var users []entities.TelegramUser
	result := repo.db.GetDB().Order("chat_id").Find(&users)

	return users, result.Error
}

// SaveOrUpdate subscribes a chat, refreshing its display name when it is
// already known.
func (repo *Impl) SaveOrUpdate(user entities.TelegramUser) error {
	err := repo.db.GetDB().
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&user).Error
	if err != nil {
		return fmt.Errorf("failed to save subscriber %d: %w", user.ChatID, err)
	}

	return nil
}

func (repo *Impl) Delete(chatID int64) error {
	return repo.db.GetDB().Delete(&entities.TelegramUser{}, chatID).Error
}
