package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestClient_Send_Success(t *testing.T) {
	var got sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(sendResponse{Success: true})
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), testLogger())
	require.NoError(t, c.Send(context.Background(), "olá"))
	assert.Equal(t, "olá", got.Message)
}

func TestClient_Send_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"server error text", http.StatusBadRequest, `{"success":false,"error":"canal inválido"}`, "canal inválido"},
		{"non-2xx with success body", http.StatusBadGateway, `{"success":true}`, "HTTP 502: Bad Gateway"},
		{"non-2xx without body", http.StatusInternalServerError, ``, "HTTP 500: Internal Server Error"},
		{"success false", http.StatusOK, `{"success":false}`, unknownFailure},
		{"success false with text", http.StatusOK, `{"success":false,"error":"limite"}`, "limite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL, server.Client(), testLogger()).Send(context.Background(), "x")
			require.Error(t, err)
			var sendErr *SendError
			require.ErrorAs(t, err, &sendErr)
			assert.Equal(t, tt.wantMsg, sendErr.Message)
			assert.Equal(t, tt.status, sendErr.StatusCode)
		})
	}
}

func TestClient_Send_UnparsableSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	err := NewClient(server.URL, server.Client(), testLogger()).Send(context.Background(), "x")
	assert.Error(t, err)
}
