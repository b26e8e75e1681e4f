package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Client adapts the go-telegram/bot client to the send operations the
// dispatcher and handlers depend on.
type Client struct {
	bot *bot.Bot
}

// NewClient wraps a bot instance.
func NewClient(b *bot.Bot) *Client {
	return &Client{bot: b}
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

func (c *Client) SendTextWithKeyboard(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	return err
}

func (c *Client) SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error {
	_, err := c.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: fileID},
		Caption: caption,
	})
	return err
}

func (c *Client) SendVideo(ctx context.Context, chatID int64, fileID, caption string) error {
	_, err := c.bot.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:  chatID,
		Video:   &models.InputFileString{Data: fileID},
		Caption: caption,
	})
	return err
}

func (c *Client) SendDocument(ctx context.Context, chatID int64, fileID, caption string) error {
	_, err := c.bot.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileString{Data: fileID},
		Caption:  caption,
	})
	return err
}

func (c *Client) SendAnimation(ctx context.Context, chatID int64, fileID, caption string) error {
	_, err := c.bot.SendAnimation(ctx, &bot.SendAnimationParams{
		ChatID:    chatID,
		Animation: &models.InputFileString{Data: fileID},
		Caption:   caption,
	})
	return err
}

func (c *Client) SendSticker(ctx context.Context, chatID int64, fileID string) error {
	_, err := c.bot.SendSticker(ctx, &bot.SendStickerParams{
		ChatID:  chatID,
		Sticker: &models.InputFileString{Data: fileID},
	})
	return err
}

func (c *Client) SendVoice(ctx context.Context, chatID int64, fileID, caption string) error {
	_, err := c.bot.SendVoice(ctx, &bot.SendVoiceParams{
		ChatID:  chatID,
		Voice:   &models.InputFileString{Data: fileID},
		Caption: caption,
	})
	return err
}

func (c *Client) SendVideoNote(ctx context.Context, chatID int64, fileID string) error {
	_, err := c.bot.SendVideoNote(ctx, &bot.SendVideoNoteParams{
		ChatID:    chatID,
		VideoNote: &models.InputFileString{Data: fileID},
	})
	return err
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, queryID string) error {
	_, err := c.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
	})
	return err
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := c.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	return err
}
