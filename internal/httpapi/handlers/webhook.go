package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gopherchat/assistant-gateway/internal/channels/facebook"
	"github.com/gopherchat/assistant-gateway/internal/common"
)

// VerifyWebhook answers the Facebook subscription handshake: echo the
// challenge when the verify token matches.
func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	verifyToken := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && verifyToken != "" && verifyToken == h.deps.FBVerifyToken {
		log.Info().Msg("webhook verified successfully")
		c.String(http.StatusOK, challenge)
		return
	}
	log.Warn().Msg("webhook verification failed")
	common.Fail(c, http.StatusForbidden, 40301, "verification token mismatch")
}

// HandleWebhook processes Messenger page events: each text message runs
// the pipeline under a channel identity and the reply goes back through
// the Graph API. Facebook delivers at least once, so message ids are
// deduplicated when Redis is available.
func (h *Handler) HandleWebhook(c *gin.Context) {
	var payload facebook.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	if payload.Object != "page" {
		common.Fail(c, http.StatusNotFound, 40401, "unsupported webhook object")
		return
	}

	ctx := c.Request.Context()
	for _, entry := range payload.Entry {
		for _, event := range entry.Messaging {
			if event.Message == nil || event.Message.Text == "" {
				continue
			}

			if h.deps.Dedup != nil && event.Message.MID != "" {
				first, err := h.deps.Dedup.MarkMessageSeen(ctx, event.Message.MID)
				if err != nil {
					// Dedup is best effort; process anyway.
					log.Warn().Err(err).Msg("webhook dedup unavailable")
				} else if !first {
					continue
				}
			}

			senderID := event.Sender.ID
			log.Info().Str("sender_id", senderID).Msg("messenger message received")

			user, err := h.deps.Users.MirrorUser(ctx,
				fmt.Sprintf("fb-%s", senderID),
				fmt.Sprintf("fb-%s@messenger.local", senderID))
			if err != nil {
				log.Error().Err(err).Str("sender_id", senderID).Msg("messenger identity mirror failed")
				continue
			}

			reply, err := h.deps.Chat.HandleChatTurn(ctx, user, event.Message.Text)
			if err != nil {
				// The exchange was not recorded, so no reply is sent.
				log.Error().Err(err).Str("sender_id", senderID).Msg("messenger exchange not recorded")
				continue
			}

			if err := h.deps.FB.SendMessage(ctx, senderID, reply); err != nil {
				log.Error().Err(err).Str("sender_id", senderID).Msg("messenger reply failed")
			}
		}
	}

	c.String(http.StatusOK, "EVENT_RECEIVED")
}
