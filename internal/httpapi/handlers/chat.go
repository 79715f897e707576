package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gopherchat/assistant-gateway/internal/common"
	"github.com/gopherchat/assistant-gateway/internal/httpapi/middleware"
)

type chatReq struct {
	Message string `json:"message" binding:"required"`
}

// Chat runs one turn of the pipeline for the authenticated identity.
// Provider failures come back inside the reply text; a persistence
// failure is a hard 500 with no reply at all.
func (h *Handler) Chat(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	log.Info().Str("email", user.Email).Msg("chat request")

	reply, err := h.deps.Chat.HandleChatTurn(c.Request.Context(), user, req.Message)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to record exchange")
		return
	}

	common.OK(c, gin.H{"response": reply})
}

// ChatHistory returns the turns of the caller's active session.
func (h *Handler) ChatHistory(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	turns, err := h.deps.Chat.LatestSessionTurns(c.Request.Context(), user)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to load history")
		return
	}

	common.OK(c, gin.H{"turns": turns})
}
