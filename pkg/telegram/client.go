package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier defines the interface for a Telegram notifier.
type Notifier interface {
	SendMessage(text string) error
}

// Client sends to a single configured chat and exposes the bot for update polling.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a new Telegram client.
func NewClient(botToken string, chatID int64) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Client{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendMessage sends a message to the configured Telegram chat.
func (c *Client) SendMessage(text string) error {
	return c.SendMessageTo(c.chatID, text)
}

// SendMessageTo sends a Markdown message to chatID.
func (c *Client) SendMessageTo(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.bot.Send(msg)
	return err
}

// ChatID is the chat the client is bound to.
func (c *Client) ChatID() int64 {
	return c.chatID
}

// Updates starts long polling and returns the update channel.
func (c *Client) Updates(timeoutSeconds int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSeconds
	return c.bot.GetUpdatesChan(u)
}

// StopUpdates ends long polling started by Updates.
func (c *Client) StopUpdates() {
	c.bot.StopReceivingUpdates()
}
