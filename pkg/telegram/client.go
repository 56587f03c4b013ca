package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client is a thin wrapper over the bot API used for outbound notification
// pushes only; the app never consumes updates.
type Client struct {
	Bot *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Client{
		Bot: bot,
	}, nil
}

// SendMessage pushes a plain-text message to the chat. Best-effort: callers
// treat a failure as a skipped push, not an error of the triggering action.
func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := c.Bot.Send(msg)
	return err
}
