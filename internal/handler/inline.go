package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/layfhaker/bezneg/internal/logger"
	"github.com/layfhaker/bezneg/internal/parser"
	"github.com/layfhaker/bezneg/internal/service"
)

const previewBodyLength = 50

// HandleInlineQuery turns an inline query into a stored scoped message
// and answers with a single preview article carrying the reveal button.
func HandleInlineQuery(ctx *th.Context, bot *telego.Bot, query telego.InlineQuery) error {
	raw := strings.TrimSpace(query.Query)

	if raw == "" {
		// Empty query: offer a jump into private chat for instructions
		return bot.AnswerInlineQuery(ctx.Context(), &telego.AnswerInlineQueryParams{
			InlineQueryID: query.ID,
			Results:       []telego.InlineQueryResult{},
			Button: &telego.InlineQueryResultsButton{
				Text:           "Как пользоваться ботом?",
				StartParameter: "help",
			},
			CacheTime: 5,
		})
	}

	msg, err := service.CreateScopedMessage(query.From.ID, raw)
	if err != nil {
		return answerWithHint(ctx, bot, query, err)
	}

	excluded := msg.ExcludedHandles()
	excludedDisplay := "@" + strings.Join(excluded, ", @")

	var previewTitle string
	if len(excluded) == 1 {
		previewTitle = fmt.Sprintf("🔒 Сообщение (без @%s)", excluded[0])
	} else {
		previewTitle = fmt.Sprintf("🔒 Сообщение (исключены: %d чел.)", len(excluded))
	}

	// The article posted to the chat never contains the body, only the
	// preview shown to the author while composing does
	publicText := fmt.Sprintf("🔒 <b>Секретное сообщение</b>\n\n<i>Не для: %s</i>", excludedDisplay)

	keyboard := telego.InlineKeyboardMarkup{
		InlineKeyboard: [][]telego.InlineKeyboardButton{
			{
				{
					Text:         "👀 Показать сообщение",
					CallbackData: "show:" + msg.Ref,
				},
			},
		},
	}

	result := &telego.InlineQueryResultArticle{
		Type:        telego.ResultTypeArticle,
		ID:          msg.Ref,
		Title:       previewTitle,
		Description: "📝 " + truncateBody(msg.Body, previewBodyLength),
		InputMessageContent: &telego.InputTextMessageContent{
			MessageText: publicText,
			ParseMode:   "HTML",
		},
		ReplyMarkup: &keyboard,
	}

	err = bot.AnswerInlineQuery(ctx.Context(), &telego.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       []telego.InlineQueryResult{result},
		CacheTime:     1,
		IsPersonal:    true,
	})
	if err == nil {
		logger.Infof("Inline query from %d, excluded: %v", query.From.ID, excluded)
	}
	return err
}

// answerWithHint maps composition failures onto hint articles
func answerWithHint(ctx *th.Context, bot *telego.Bot, query telego.InlineQuery, cause error) error {
	var id, title, description string
	switch cause {
	case parser.ErrEmptyBody:
		id = "no_text"
		title = "⚠️ Введи текст сообщения"
		description = "Формат: сообщение @исключённый1 @исключённый2"
	case parser.ErrNoExclusions:
		id = "no_excluded"
		title = "⚠️ Укажи кого исключить"
		description = "Добавь @username в конце сообщения"
	default:
		logger.Errorf("Error creating scoped message for user %d: %v", query.From.ID, cause)
		id = "store_failed"
		title = "⚠️ Не получилось сохранить сообщение"
		description = "Попробуй ещё раз чуть позже"
	}

	result := &telego.InlineQueryResultArticle{
		Type:        telego.ResultTypeArticle,
		ID:          id,
		Title:       title,
		Description: description,
		InputMessageContent: &telego.InputTextMessageContent{
			MessageText: "Ошибка: " + description,
		},
	}

	return bot.AnswerInlineQuery(ctx.Context(), &telego.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       []telego.InlineQueryResult{result},
		CacheTime:     5,
	})
}

// truncateBody shortens the body for the composer preview
func truncateBody(body string, limit int) string {
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	return string(runes[:limit]) + "..."
}
