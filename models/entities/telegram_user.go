package entities

// TelegramUser is a chat subscribed to run reports.
type TelegramUser struct {
	ChatID int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name   string `json:"name,omitempty"`
}

func (TelegramUser) TableName() string {
	return "telegram_users"
}
