package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"github.com/layfhaker/bezneg/internal/logger"
	"github.com/layfhaker/bezneg/internal/models"
	"github.com/layfhaker/bezneg/internal/service"
)

// HandleCommand dispatches private chat commands
func HandleCommand(ctx *th.Context, bot *telego.Bot, message telego.Message) error {
	// Commands are a private chat affair; the bot does its group work
	// through inline mode only.
	if message.Chat.Type != "private" || message.From == nil {
		return nil
	}

	text := strings.TrimSpace(message.Text)
	switch {
	case text == "/start" || strings.HasPrefix(text, "/start "):
		return sendWelcomeMessage(ctx, bot, message)
	case text == "/help":
		return sendWelcomeMessage(ctx, bot, message)
	case text == "/setmessage" || strings.HasPrefix(text, "/setmessage "):
		return handleSetMessageCommand(ctx, bot, message)
	case text == "/resetmessage":
		return handleResetMessageCommand(ctx, bot, message)
	case text == "/settings":
		return handleSettingsCommand(ctx, bot, message)
	}
	return nil
}

// sendWelcomeMessage sends the welcome text with usage instructions
func sendWelcomeMessage(ctx *th.Context, bot *telego.Bot, message telego.Message) error {
	botUsername, err := getBotUsername(ctx.Context(), bot)
	if err != nil {
		logger.Warningf("Error getting bot username: %v", err)
		botUsername = "beznegbot"
	}

	welcomeText := fmt.Sprintf(`👋 <b>Привет! Я бот "Без него"</b>

Я отправляю сообщения, которые видят <b>все, кроме</b> указанных людей.

<b>🔹 Как использовать:</b>
В любом чате напиши:
<code>@%s Твоё сообщение @username1 @username2</code>

Сообщение увидят все, <b>кроме</b> @username1 и @username2.

<b>🔹 Команды:</b>
/setmessage &lt;текст&gt; — изменить текст, который видят исключённые
/resetmessage — сбросить текст на стандартный
/settings — посмотреть настройки

<b>🔹 Пример:</b>
<code>@%s Го в кино вечером? @vasya</code>
Все увидят приглашение, кроме Васи 😏`, botUsername, botUsername)

	_, err = bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: message.Chat.ID},
		Text:      welcomeText,
		ParseMode: "HTML",
	})
	if err == nil {
		logger.Infof("User %d started the bot", message.From.ID)
	}
	return err
}

// handleSetMessageCommand stores a custom reject text for the sender
func handleSetMessageCommand(ctx *th.Context, bot *telego.Bot, message telego.Message) error {
	args := strings.SplitN(message.Text, " ", 2)

	if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
		_, err := bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
			ChatID: telego.ChatID{ID: message.Chat.ID},
			Text: "⚠️ Укажи текст после команды.\n\n" +
				"Пример: <code>/setmessage Тебе это видеть не положено!</code>",
			ParseMode: "HTML",
		})
		return err
	}

	newText := strings.TrimSpace(args[1])

	err := service.SetRejectMessage(message.From.ID, newText)
	if err == service.ErrRejectTooLong {
		_, err := bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
			ChatID: telego.ChatID{ID: message.Chat.ID},
			Text:   fmt.Sprintf("⚠️ Слишком длинный текст. Максимум %d символов.", models.MaxRejectMessageLength),
		})
		return err
	}
	if err != nil {
		logger.Errorf("Error saving reject message for user %d: %v", message.From.ID, err)
		_, err := bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
			ChatID: telego.ChatID{ID: message.Chat.ID},
			Text:   "⚠️ Не получилось сохранить настройку, попробуй ещё раз позже.",
		})
		return err
	}

	_, err = bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: message.Chat.ID},
		Text:      fmt.Sprintf("✅ Установлено новое сообщение для исключённых:\n\n<i>%s</i>", newText),
		ParseMode: "HTML",
	})
	if err == nil {
		logger.Infof("User %d changed their reject message", message.From.ID)
	}
	return err
}

// handleResetMessageCommand restores the default reject text
func handleResetMessageCommand(ctx *th.Context, bot *telego.Bot, message telego.Message) error {
	if err := service.ResetRejectMessage(message.From.ID); err != nil {
		logger.Errorf("Error resetting reject message for user %d: %v", message.From.ID, err)
		_, err := bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
			ChatID: telego.ChatID{ID: message.Chat.ID},
			Text:   "⚠️ Не получилось сбросить настройку, попробуй ещё раз позже.",
		})
		return err
	}

	_, err := bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: message.Chat.ID},
		Text:      fmt.Sprintf("✅ Сообщение сброшено на стандартное:\n\n<i>%s</i>", models.DefaultRejectMessage),
		ParseMode: "HTML",
	})
	if err == nil {
		logger.Infof("User %d reset their reject message", message.From.ID)
	}
	return err
}

// handleSettingsCommand shows the sender's current settings
func handleSettingsCommand(ctx *th.Context, bot *telego.Bot, message telego.Message) error {
	rejectText := service.GetRejectMessage(message.From.ID)

	kind := "(стандартное)"
	if rejectText != models.DefaultRejectMessage {
		kind = "(кастомное)"
	}

	settingsText := fmt.Sprintf(`⚙️ <b>Твои настройки:</b>

<b>Сообщение для исключённых:</b>
<i>%s</i>
%s`, rejectText, kind)

	_, err := bot.SendMessage(ctx.Context(), &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: message.Chat.ID},
		Text:      settingsText,
		ParseMode: "HTML",
	})
	return err
}
