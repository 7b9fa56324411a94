package handler

import (
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/layfhaker/bezneg/internal/logger"
	"github.com/layfhaker/bezneg/internal/service"
)

// HandleCallbackQuery processes callback queries from inline keyboards
func HandleCallbackQuery(ctx *th.Context, bot *telego.Bot, query telego.CallbackQuery) error {
	// Skip if no data
	if query.Data == "" {
		return nil
	}

	logger.Infof("Received callback query: %s", query.Data)

	if strings.HasPrefix(query.Data, "show:") {
		return handleShowCallback(ctx, bot, query)
	}

	return nil
}

// handleShowCallback answers a reveal button press with a per-viewer
// alert: the real body, the sender's reject text, or an expired notice.
// The viewer's answer goes out as a popup only; nothing about the chat
// message itself changes.
func handleShowCallback(ctx *th.Context, bot *telego.Bot, query telego.CallbackQuery) error {
	ref := strings.TrimPrefix(query.Data, "show:")

	result, err := service.Reveal(ref, query.From.Username)
	if err != nil {
		// Storage trouble reads the same as a stale reference to the
		// viewer; the details stay in the log
		logger.Errorf("Error revealing message %s: %v", ref, err)
		return answerAlert(ctx, bot, query.ID, "❌ Сообщение не найдено или устарело")
	}

	switch result.Outcome {
	case service.RevealExpired:
		return answerAlert(ctx, bot, query.ID, "❌ Сообщение не найдено или устарело")
	case service.RevealDenied:
		logger.Infof("User @%s was denied message %s", strings.ToLower(query.From.Username), ref)
		return answerAlert(ctx, bot, query.ID, result.Text)
	default:
		logger.Infof("User %d read message %s", query.From.ID, ref)
		return answerAlert(ctx, bot, query.ID, result.Text)
	}
}

func answerAlert(ctx *th.Context, bot *telego.Bot, queryID, text string) error {
	return bot.AnswerCallbackQuery(ctx.Context(), &telego.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
		ShowAlert:       true,
	})
}
