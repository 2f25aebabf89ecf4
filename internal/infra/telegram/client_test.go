package telegram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func newFileServer(t *testing.T, download http.HandlerFunc) *telebot.Bot {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/bottok/getFile", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"result":{"file_id":"doc-1","file_path":"documents/plano.pdf"}}`)
	})
	mux.HandleFunc("/file/bottok/documents/plano.pdf", download)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	b, err := telebot.NewBot(telebot.Settings{URL: srv.URL, Token: "tok", Offline: true})
	require.NoError(t, err)
	return b
}

func TestTelegramFile_Open(t *testing.T) {
	b := newFileServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "%PDF-1.4")
	})
	ref := fileRef(b, telebot.File{FileID: "doc-1", FileSize: 8}, "plano.pdf", "application/pdf")

	rc, err := ref.Source.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
}

func TestTelegramFile_OpenMissingFile(t *testing.T) {
	b := newFileServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	ref := fileRef(b, telebot.File{FileID: "doc-1"}, "plano.pdf", "application/pdf")

	_, err := ref.Source.Open(context.Background())
	assert.ErrorContains(t, err, "status 404")
}

func TestTelegramFile_OpenHonoursContext(t *testing.T) {
	b := newFileServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ref := fileRef(b, telebot.File{FileID: "doc-1"}, "plano.pdf", "application/pdf")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err := ref.Source.Open(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = ref.Source.Open(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
