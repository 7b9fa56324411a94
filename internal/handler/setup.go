package handler

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/layfhaker/bezneg/internal/config"
	"github.com/layfhaker/bezneg/internal/service"
)

var globalConfig *config.Config

func Initialize(cfg *config.Config) {
	globalConfig = cfg
	service.Initialize(cfg)
}

// SetupMessageHandlers configures all bot update handlers
func SetupMessageHandlers(bh *th.BotHandler, bot *telego.Bot) {
	service.InitRepositories()

	bh.HandleMessage(func(ctx *th.Context, message telego.Message) error {
		return HandleCommand(ctx, bot, message)
	})

	bh.HandleInlineQuery(func(ctx *th.Context, query telego.InlineQuery) error {
		return HandleInlineQuery(ctx, bot, query)
	})

	bh.HandleCallbackQuery(func(ctx *th.Context, query telego.CallbackQuery) error {
		return HandleCallbackQuery(ctx, bot, query)
	})
}
