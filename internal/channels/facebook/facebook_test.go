package facebook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var got sendMessageReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/messages", r.URL.Path)
		require.Equal(t, "page-token", r.URL.Query().Get("access_token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"message_id": "mid.1"})
	}))
	defer srv.Close()

	c := NewClient("page-token")
	c.BaseURL = srv.URL
	require.NoError(t, c.SendMessage(context.Background(), "user-1", "hello"))
	require.Equal(t, "user-1", got.Recipient.ID)
	require.Equal(t, "hello", got.Message.Text)
}

func TestSendMessage_TokenMissing(t *testing.T) {
	c := NewClient("")
	require.Error(t, c.SendMessage(context.Background(), "user-1", "hello"))
}

func TestWebhookPayloadDecoding(t *testing.T) {
	raw := `{
		"object": "page",
		"entry": [{
			"messaging": [{
				"sender": {"id": "4242"},
				"message": {"mid": "mid.77", "text": "hi there"}
			}]
		}]
	}`

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	require.Equal(t, "page", payload.Object)
	require.Len(t, payload.Entry, 1)
	ev := payload.Entry[0].Messaging[0]
	require.Equal(t, "4242", ev.Sender.ID)
	require.NotNil(t, ev.Message)
	require.Equal(t, "hi there", ev.Message.Text)
}
