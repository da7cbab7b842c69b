package telegram

import (
	"errors"

	telegramRepo "tweet-collector/repositories/telegram"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/patrickmn/go-cache"
)

type MessageType int

const (
	MessageTypeUnknown     MessageType = -1
	MessageTypeWelcome     MessageType = 1
	MessageTypeHelp        MessageType = 2
	MessageTypeNoReport    MessageType = 3
	MessageTypeSubscribe   MessageType = 4
	MessageTypeUnsubscribe MessageType = 5
)

const lastReportKey = "last_report"

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen command")
)

type Service interface {
	ListenAndDispatch() error
	Stop()
}

// messenger is the subset of *gotgbot.Bot used to reply to chats.
type messenger interface {
	SendMessage(chatID int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error)
}

type Impl struct {
	bot          *gotgbot.Bot
	messenger    messenger
	updater      *ext.Updater
	telegramRepo telegramRepo.Repository
	cache        *cache.Cache
}
