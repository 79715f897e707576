package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gopherchat/assistant-gateway/internal/common"
)

func (h *Handler) botStatus(c *gin.Context) gin.H {
	ok, msg := h.deps.BotStatus(c.Request.Context(), h.deps.Settings.TelegramBotToken())
	return gin.H{"ok": ok, "message": msg}
}

func (h *Handler) GetSettings(c *gin.Context) {
	common.OK(c, gin.H{
		"telegram_bot_token": h.deps.Settings.TelegramBotToken(),
		"ai_provider":        h.deps.Settings.ActiveProvider(),
		"bot_status":         h.botStatus(c),
	})
}

type updateSettingsReq struct {
	TelegramBotToken *string `json:"telegram_bot_token"`
	AIProvider       *string `json:"ai_provider"`
}

// UpdateSettings swaps runtime settings in memory for the lifetime of
// the process. Last writer wins; nothing is persisted across restarts.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req updateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	if req.TelegramBotToken != nil {
		h.deps.Settings.SetTelegramBotToken(*req.TelegramBotToken)
	}
	if req.AIProvider != nil {
		h.deps.Settings.SetActiveProvider(*req.AIProvider)
	}

	common.OK(c, gin.H{
		"status": "success",
		"settings": gin.H{
			"telegram_bot_token": h.deps.Settings.TelegramBotToken(),
			"ai_provider":        h.deps.Settings.ActiveProvider(),
			"bot_status":         h.botStatus(c),
		},
	})
}
