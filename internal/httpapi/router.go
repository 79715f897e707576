package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gopherchat/assistant-gateway/internal/common"
	"github.com/gopherchat/assistant-gateway/internal/httpapi/handlers"
	"github.com/gopherchat/assistant-gateway/internal/httpapi/middleware"
)

func NewRouter(h *handlers.Handler, verifier middleware.TokenVerifier) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.GET("/ping", h.Ping)

	// identity
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	// Facebook webhook (verification handshake + events)
	r.GET("/webhook", h.VerifyWebhook)
	r.POST("/webhook", h.HandleWebhook)

	// runtime settings
	r.GET("/settings", h.GetSettings)
	r.POST("/settings", h.UpdateSettings)

	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(verifier))
	authGroup.GET("/me", h.Me)
	authGroup.POST("/chat", h.Chat)
	authGroup.GET("/chat/history", h.ChatHistory)

	return r
}
