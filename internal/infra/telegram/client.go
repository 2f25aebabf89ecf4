// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"lesson_planning_bot/internal/domain/planning"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements app.ChatSender using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified recipient.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}
	_, err := tba.bot.Send(telebot.ChatID(recipientChatID), text, options)
	return err
}

// telegramFile defers the download of an attachment until submission.
type telegramFile struct {
	bot  *telebot.Bot
	file telebot.File
}

var _ planning.FileSource = (*telegramFile)(nil)

// Open resolves the file path with getFile and streams the content. The
// download is bound to ctx.
func (f *telegramFile) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := f.bot.FileByID(f.file.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve telegram file %s: %w", f.file.FileID, err)
	}

	url := f.bot.URL + "/file/bot" + f.bot.Token + "/" + file.FilePath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request for %s: %w", f.file.FileID, err)
	}
	client := f.bot.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download telegram file %s: %w", f.file.FileID, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download telegram file %s: status %d", f.file.FileID, resp.StatusCode)
	}
	return resp.Body, nil
}

func fileRef(b *telebot.Bot, file telebot.File, name, mime string) *planning.FileRef {
	return &planning.FileRef{
		Name:     name,
		MimeType: mime,
		Size:     int64(file.FileSize),
		Source:   &telegramFile{bot: b, file: file},
	}
}
