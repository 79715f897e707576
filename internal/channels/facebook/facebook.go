// Package facebook wraps the Messenger side of the gateway: the Graph
// API send call and the webhook event payload shapes. Webhook route
// handling lives in the HTTP layer.
package facebook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WebhookPayload is the POST body Facebook delivers for page events.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	Messaging []MessagingEvent `json:"messaging"`
}

type MessagingEvent struct {
	Sender struct {
		ID string `json:"id"`
	} `json:"sender"`
	Message *struct {
		MID  string `json:"mid"`
		Text string `json:"text"`
	} `json:"message"`
}

type Client struct {
	BaseURL     string
	AccessToken string
	Client      *http.Client
}

func NewClient(accessToken string) *Client {
	return &Client{
		BaseURL:     "https://graph.facebook.com/v12.0",
		AccessToken: accessToken,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageReq struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

// SendMessage delivers a text reply to a Messenger recipient.
func (c *Client) SendMessage(ctx context.Context, recipientID, text string) error {
	if c.AccessToken == "" {
		return errors.New("facebook: page access token is not configured")
	}

	var body sendMessageReq
	body.Recipient.ID = recipientID
	body.Message.Text = text

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/me/messages?access_token=%s", strings.TrimRight(c.BaseURL, "/"), c.AccessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("facebook: %s", msg)
	}
	return nil
}
