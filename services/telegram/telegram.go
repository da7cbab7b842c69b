package telegram

import (
	"time"

	"tweet-collector/models/constants"
	"tweet-collector/models/entities"
	"tweet-collector/pkg/observer"
	telegramRepo "tweet-collector/repositories/telegram"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

func New(token string, telegramRepo telegramRepo.Repository) (*Impl, error) {
	if token == "" {
		return nil, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		log.Error().Err(err).Msg("Cannot reach Telegram")
		return nil, ErrBotNotInitialized
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Err(err).Msg("An error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	service := newService(b, telegramRepo)
	service.bot = b
	dispatcher.AddHandler(handlers.NewCommand("start", service.startCmd))
	dispatcher.AddHandler(handlers.NewCommand("help", service.helpCmd))
	dispatcher.AddHandler(handlers.NewCommand("report", service.reportCmd))
	dispatcher.AddHandler(handlers.NewCommand("subscribe", service.subscribeCmd))
	dispatcher.AddHandler(handlers.NewCommand("unsubscribe", service.unsubscribeCmd))

	service.updater = ext.NewUpdater(dispatcher, nil)

	return service, nil
}

func newService(m messenger, telegramRepo telegramRepo.Repository) *Impl {
	return &Impl{
		messenger:    m,
		telegramRepo: telegramRepo,
		cache:        cache.New(cache.NoExpiration, 0),
	}
}

// ListenAndDispatch polls Telegram until Stop is called.
func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Cannot start polling")
		return ErrFailedToStartListening
	}

	log.Info().Str(constants.LogUsername, service.bot.Username).Msg("Telegram bot listening")
	service.updater.Idle()
	return nil
}

func (service *Impl) Stop() {
	if service.updater == nil {
		return
	}
	if err := service.updater.Stop(); err != nil {
		log.Error().Err(err).Msg("Cannot stop Telegram updater, continuing...")
	}
}

func (service *Impl) OnNotify(e observer.Event) {
	if e.E != observer.RunCompletedEvent {
		return
	}

	log.Debug().Msg("Received run report")
	message := formatRunReport(e.Report)
	service.cache.Set(lastReportKey, message, cache.NoExpiration)

	users, err := service.telegramRepo.FetchAll()
	if err != nil {
		log.Error().Err(err).Msg("Cannot read subscribers, report not pushed")
		return
	}

	for _, user := range users {
		service.send(user.ChatID, message)
	}
}

func (service *Impl) startCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("start", ctx)
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeWelcome))
	return nil
}

func (service *Impl) helpCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("help", ctx)
	service.send(ctx.EffectiveChat.Id, getMessageFromMessageType(MessageTypeHelp))
	return nil
}

func (service *Impl) subscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("subscribe", ctx)
	service.subscribe(ctx.EffectiveChat.Id, ctx.EffectiveChat.Username)
	return nil
}

func (service *Impl) unsubscribeCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("unsubscribe", ctx)
	service.unsubscribe(ctx.EffectiveChat.Id)
	return nil
}

func (service *Impl) reportCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	logCommand("report", ctx)
	service.report(ctx.EffectiveChat.Id)
	return nil
}

func (service *Impl) subscribe(chatID int64, name string) {
	err := service.telegramRepo.SaveOrUpdate(entities.TelegramUser{ChatID: chatID, Name: name})
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot save subscriber")
		service.send(chatID, getMessageFromMessageType(MessageTypeUnknown))
		return
	}
	service.send(chatID, getMessageFromMessageType(MessageTypeSubscribe))
}

func (service *Impl) unsubscribe(chatID int64) {
	if err := service.telegramRepo.Delete(chatID); err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot delete subscriber")
		service.send(chatID, getMessageFromMessageType(MessageTypeUnknown))
		return
	}
	service.send(chatID, getMessageFromMessageType(MessageTypeUnsubscribe))
}

func (service *Impl) report(chatID int64) {
	if x, found := service.cache.Get(lastReportKey); found {
		service.send(chatID, x.(string))
		return
	}
	log.Warn().Str(constants.LogCommand, "report").Msg("No report")
	service.send(chatID, getMessageFromMessageType(MessageTypeNoReport))
}

func (service *Impl) send(chatID int64, message string) {
	_, err := service.messenger.SendMessage(chatID, message, &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot send message")
	}
}

func logCommand(cmd string, ctx *ext.Context) {
	log.Info().
		Str(constants.LogCommand, cmd).
		Str(constants.LogUsername, ctx.EffectiveChat.Username).
		Int64(constants.LogChatID, ctx.EffectiveChat.Id).
		Msg("Command received")
}
